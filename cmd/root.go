package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"bootkit/internal/bootstrap"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeBootstrapFailed indicates a fatal bootstrap error such as a
	// missing logger, module catalog or container.
	ExitCodeBootstrapFailed = 2
)

// rootCmd represents the base command for the bootkit application.
var rootCmd = &cobra.Command{
	Use:   "bootkit",
	Short: "Bootstrap and host modular applications",
	Long: `bootkit assembles a modular application in a fixed sequence of phases:
it creates the logger and the module catalog, configures the dependency
container, sets up regions and the shell, and finally initializes the
cataloged modules in dependency order.

Use 'bootkit run' to bootstrap and host the application, or 'bootkit phases',
'bootkit modules' and 'bootkit registrations' to inspect a single bootstrap run.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "bootkit version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}
	if bootstrap.IsFatal(err) {
		return ExitCodeBootstrapFailed
	}
	return ExitCodeError
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newPhasesCmd())
	rootCmd.AddCommand(newModulesCmd())
	rootCmd.AddCommand(newRegistrationsCmd())
}
