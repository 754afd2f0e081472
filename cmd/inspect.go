package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bootkit/internal/app"
	"bootkit/internal/bootstrap"
	"bootkit/internal/formatting"
)

// inspectOptions are shared by the commands that bootstrap once and print
// what the run produced.
type inspectOptions struct {
	debug      bool
	headless   bool
	configPath string
	output     string
	noHeaders  bool
	noColor    bool
}

func (o *inspectOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.debug, "debug", false, "Print bootstrap log output")
	cmd.Flags().BoolVar(&o.headless, "headless", false, "Bootstrap without a shell window")
	cmd.Flags().StringVar(&o.configPath, "config-path", "", "Custom configuration directory path")
	cmd.Flags().StringVarP(&o.output, "output", "o", "table", "Output format: table, plain, json or yaml")
	cmd.Flags().BoolVar(&o.noHeaders, "no-headers", false, "Omit the header row in plain output")
	cmd.Flags().BoolVar(&o.noColor, "no-color", false, "Disable colored output")
}

func (o *inspectOptions) printer(cmd *cobra.Command) (*formatting.Printer, error) {
	format, err := formatting.ParseFormat(o.output)
	if err != nil {
		return nil, err
	}
	return formatting.NewPrinter(cmd.OutOrStdout(), formatting.Options{
		Format:    format,
		NoHeaders: o.noHeaders,
		Color:     !o.noColor,
	}), nil
}

// bootstrap runs the bootstrap sequence once. The bootstrapper is returned
// even when the run fails so its report can be printed.
func (o *inspectOptions) bootstrap() (*bootstrap.Process, *bootstrap.Bootstrapper, error) {
	cfg := app.NewConfig(o.debug, !o.debug, o.configPath)
	cfg.Headless = o.headless

	application, err := app.NewApplication(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Bootstrap()
}

func newPhasesCmd() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "phases",
		Short: "Run the bootstrap sequence once and print the phase report",
		Long: `Runs the bootstrap sequence once and prints the outcome of every phase:
its status (ok, error or skipped) and how long it took. The report is
printed for failed runs too, and the command then exits with the
bootstrap error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.printer(cmd)
			if err != nil {
				return err
			}

			_, b, runErr := opts.bootstrap()
			if b == nil || b.Report() == nil {
				return runErr
			}

			view := formatting.NewReportView(b.Report())
			if err := p.Print(view, view.Table()); err != nil {
				return err
			}
			return runErr
		},
	}
	opts.addFlags(cmd)
	return cmd
}

func newModulesCmd() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List the cataloged modules in load order",
		Long: `Runs the bootstrap sequence once and lists the cataloged modules in
dependency order, with their initialization mode and the state they
reached. OnDemand modules stay NotStarted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.printer(cmd)
			if err != nil {
				return err
			}

			proc, _, err := opts.bootstrap()
			if err != nil {
				return err
			}

			modules, err := proc.Catalog.ModulesInLoadOrder()
			if err != nil {
				return err
			}
			views := formatting.NewModuleViews(modules)
			return p.Print(views, formatting.ModulesTable(views))
		},
	}
	opts.addFlags(cmd)
	return cmd
}

func newRegistrationsCmd() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "registrations",
		Short: "List the container registrations after bootstrapping",
		Long: `Runs the bootstrap sequence once and lists every container registration
in registration order: application registrations first, then the defaults
and the region adapter and behavior capabilities.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.printer(cmd)
			if err != nil {
				return err
			}

			proc, _, err := opts.bootstrap()
			if err != nil {
				return err
			}

			views := formatting.NewRegistrationViews(proc.Container.Registrations())
			return p.Print(views, formatting.RegistrationsTable(views))
		},
	}
	opts.addFlags(cmd)
	return cmd
}
