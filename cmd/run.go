package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"bootkit/internal/app"
)

type runOptions struct {
	debug      bool
	silent     bool
	headless   bool
	configPath string
}

// newRunCmd creates the run command: bootstrap once, then host the
// application until interrupted.
func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Bootstrap the application and keep it running",
		Long: `Runs the bootstrap sequence and hosts the resulting application until
it receives SIGINT or SIGTERM.

While running, bootkit can:
  - serve Prometheus metrics (metrics.enabled in config.yaml)
  - watch the module catalog file and load newly added modules (watchCatalog)
  - notify systemd once the application is ready

Configuration:
  bootkit reads config.yaml from ~/.config/bootkit, or from the directory
  given by --config-path. Without a module catalog file the built-in
  catalog is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging, including every bootstrap phase")
	cmd.Flags().BoolVar(&opts.silent, "silent", false, "Suppress all log output")
	cmd.Flags().BoolVar(&opts.headless, "headless", false, "Run without a shell window")
	cmd.Flags().StringVar(&opts.configPath, "config-path", "", "Custom configuration directory path")
	return cmd
}

func runRun(cmd *cobra.Command, opts *runOptions) error {
	cfg := app.NewConfig(opts.debug, opts.silent, opts.configPath)
	cfg.Headless = opts.headless

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	// Log lines would interleave with the spinner.
	var s *spinner.Spinner
	if !opts.debug && !opts.silent {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
		s.Suffix = " Bootstrapping application..."
		s.Start()
	}
	proc, _, err := application.Bootstrap()
	if s != nil {
		s.Stop()
	}
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.Serve(ctx, proc)
}
