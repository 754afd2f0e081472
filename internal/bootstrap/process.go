package bootstrap

import (
	"context"

	"bootkit/internal/container"
	"bootkit/internal/events"
	"bootkit/internal/locator"
	"bootkit/internal/modularity"
	"bootkit/internal/region"
)

// Context returns ctx carrying the process service locator.
func (p *Process) Context(ctx context.Context) context.Context {
	return locator.WithHandle(ctx, p.Locator)
}

// ModuleManager resolves the module manager.
func (p *Process) ModuleManager() (*modularity.Manager, error) {
	return container.ResolveAs[*modularity.Manager](p.Container, container.KeyModuleManager)
}

// RegionManager resolves the region manager.
func (p *Process) RegionManager() (*region.Manager, error) {
	return container.ResolveAs[*region.Manager](p.Container, container.KeyRegionManager)
}

// Events resolves the event aggregator.
func (p *Process) Events() (*events.Aggregator, error) {
	return container.ResolveAs[*events.Aggregator](p.Container, container.KeyEventAggregator)
}

// Headless reports whether the run created no shell.
func (p *Process) Headless() bool {
	return p.Shell == nil
}
