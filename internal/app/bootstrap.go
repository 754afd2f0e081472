package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"bootkit/internal/bootstrap"
	"bootkit/internal/config"
	"bootkit/internal/events"
	"bootkit/internal/metrics"
	"bootkit/internal/modularity"
	"bootkit/internal/modules"
	"bootkit/internal/shell"
	"bootkit/pkg/logging"
)

// Application represents the bootkit process: it loads the configuration,
// bootstraps the modular application and hosts it until shutdown.
//
// Example usage:
//
//	cfg := app.NewConfig(true, false, "")
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("failed to create application: %w", err)
//	}
//	return application.Run(ctx)
type Application struct {
	config   *Config
	settings config.Config
	types    *modularity.TypeRegistry
	metrics  *metrics.Recorder
	host     shell.Host
}

// NewApplication configures logging, loads the settings and prepares the
// module type registry. Nothing is bootstrapped yet.
func NewApplication(cfg *Config) (*Application, error) {
	if cfg.Settings == nil {
		configPath := cfg.ConfigPath
		if configPath == "" {
			var err error
			configPath, err = config.GetDefaultConfigPath()
			if err != nil {
				return nil, err
			}
		}

		settings, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load bootkit configuration from path %s: %w", configPath, err)
		}
		cfg.Settings = &settings
	}
	settings := *cfg.Settings
	if cfg.Headless {
		settings.Headless = true
	}

	appLogLevel := logging.ParseLevel(settings.LogLevel)
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}
	var logOutput io.Writer = os.Stdout
	if cfg.Silent {
		logOutput = io.Discard
	}
	logging.Init(appLogLevel, logging.Format(settings.LogFormat), logOutput)

	types, err := modules.NewTypeRegistry()
	if err != nil {
		logging.Error("App", err, "Failed to register module types")
		return nil, fmt.Errorf("failed to register module types: %w", err)
	}

	return &Application{
		config:   cfg,
		settings: settings,
		types:    types,
		metrics:  metrics.New(),
		host:     shell.NewHeadlessHost(),
	}, nil
}

// Settings returns the loaded configuration.
func (a *Application) Settings() config.Config {
	return a.settings
}

// Metrics returns the application metrics.
func (a *Application) Metrics() *metrics.Recorder {
	return a.metrics
}

// Bootstrap runs the bootstrap sequence once and returns the process. The
// failed run's report is available from the returned bootstrapper.
func (a *Application) Bootstrap() (*bootstrap.Process, *bootstrap.Bootstrapper, error) {
	agg := events.NewAggregator()
	a.observe(agg)

	b := bootstrap.New(bootstrap.Options{
		Hooks: bootstrap.Hooks{
			CreateLogger: func(*bootstrap.Bootstrapper) (logging.Facade, error) {
				return logging.NewSlogFacade(nil, "Bootstrap"), nil
			},
			CreateModuleCatalog: func(*bootstrap.Bootstrapper) (*modularity.Catalog, error) {
				return a.ModuleCatalog()
			},
		},
		Host:    a.host,
		Metrics: a.metrics,
	}, &applicationInstaller{types: a.types, events: agg, settings: a.settings})

	proc, err := b.Run(a.settings.DefaultConfiguration)
	if err != nil {
		logging.Error("App", err, "Bootstrap failed")
		return nil, b, err
	}
	logging.Info("App", "Bootstrap %s completed in %s", proc.RunID, proc.Report.Duration)
	return proc, b, nil
}

// ModuleCatalog reads the configured catalog file. Without one the
// built-in catalog is used.
func (a *Application) ModuleCatalog() (*modularity.Catalog, error) {
	path := a.settings.CatalogPath
	if path != "" {
		_, err := os.Stat(path)
		if err == nil {
			return modularity.LoadCatalogFile(path)
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		logging.Info("App", "No module catalog at %s, using the built-in catalog", path)
	}
	return modularity.NewCatalog(modules.DefaultCatalog()...)
}

// observe logs every published event and feeds module outcomes into the
// metrics.
func (a *Application) observe(agg *events.Aggregator) {
	topics := []events.EventReason{
		events.TopicModuleLoaded,
		events.TopicModuleLoadFailed,
		events.TopicCatalogReloaded,
		events.TopicRegionCreated,
		events.TopicNavigated,
		events.TopicNavigationFailed,
		events.TopicBootstrapCompleted,
	}
	for _, topic := range topics {
		agg.Subscribe(topic, func(e events.Event) {
			if e.Type == events.EventTypeWarning {
				logging.Warn("Events", "%s", e.Message)
				return
			}
			logging.Debug("Events", "%s", e.Message)
		})
	}

	agg.Subscribe(events.TopicModuleLoaded, func(events.Event) { a.metrics.ModuleLoaded(nil) })
	agg.Subscribe(events.TopicModuleLoadFailed, func(e events.Event) {
		a.metrics.ModuleLoaded(errors.New(e.Data.Error))
	})
}

// Run bootstraps the application and hosts it until ctx is cancelled or a
// termination signal arrives.
func (a *Application) Run(ctx context.Context) error {
	proc, _, err := a.Bootstrap()
	if err != nil {
		return err
	}
	return a.Serve(ctx, proc)
}
