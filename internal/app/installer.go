package app

import (
	"bootkit/internal/bootstrap"
	"bootkit/internal/config"
	"bootkit/internal/container"
	"bootkit/internal/events"
	"bootkit/internal/modularity"
	"bootkit/internal/shell"
)

// applicationInstaller registers what bootkit adds on top of the bootstrap
// defaults: the compiled-in module types, the process event aggregator and,
// unless headless, the main window.
type applicationInstaller struct {
	types    *modularity.TypeRegistry
	events   *events.Aggregator
	settings config.Config
}

// Install implements bootstrap.Installer.
func (i *applicationInstaller) Install(r bootstrap.Registrar) error {
	c := r.Container()

	if err := c.RegisterInstance(container.KeyModuleTypeRegistry, i.types); err != nil {
		return err
	}
	if i.events != nil {
		if err := c.RegisterInstance(container.KeyEventAggregator, i.events); err != nil {
			return err
		}
	}

	if i.settings.Headless {
		return nil
	}

	title := i.settings.Shell.Title
	return r.RegisterTypeIfMissing(container.KeyShell, container.Impl("MainWindow", func(container.Resolver) (any, error) {
		return shell.NewMainWindow(title, shell.DefaultTargets()...), nil
	}), false)
}
