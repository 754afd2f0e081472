package region

import (
	"fmt"
	"sync"

	"bootkit/internal/container"
)

// ViewFactory builds a view instance.
type ViewFactory func() (any, error)

type viewRegistration struct {
	name    string
	factory ViewFactory
}

// ViewRegistry maps region names to the views that should populate them.
// Views registered before a region exists are added when it is created.
type ViewRegistry struct {
	mu        sync.RWMutex
	regions   map[string][]viewRegistration
	listeners []func(regionName string, view NamedView)
}

// NewViewRegistry creates an empty registry.
func NewViewRegistry() *ViewRegistry {
	return &ViewRegistry{regions: make(map[string][]viewRegistration)}
}

// ViewRegistryImplementation is the default registration for
// container.KeyRegionViewRegistry.
var ViewRegistryImplementation = container.Impl("RegionViewRegistry", func(container.Resolver) (any, error) {
	return NewViewRegistry(), nil
})

// Register records factory as a view of regionName. Listeners (regions
// already created) receive a freshly built instance immediately.
func (v *ViewRegistry) Register(regionName, viewName string, factory ViewFactory) error {
	if regionName == "" || viewName == "" || factory == nil {
		return fmt.Errorf("view registration needs a region, a view name and a factory")
	}

	v.mu.Lock()
	for _, existing := range v.regions[regionName] {
		if existing.name == viewName {
			v.mu.Unlock()
			return fmt.Errorf("view %s is already registered with region %s", viewName, regionName)
		}
	}
	v.regions[regionName] = append(v.regions[regionName], viewRegistration{name: viewName, factory: factory})
	listeners := append(([]func(string, NamedView))(nil), v.listeners...)
	v.mu.Unlock()

	if len(listeners) == 0 {
		return nil
	}

	view, err := factory()
	if err != nil {
		return fmt.Errorf("failed to create view %s for region %s: %w", viewName, regionName, err)
	}
	for _, fn := range listeners {
		fn(regionName, NamedView{Name: viewName, View: view})
	}
	return nil
}

// Contents builds one instance of every view registered for regionName, in
// registration order.
func (v *ViewRegistry) Contents(regionName string) ([]NamedView, error) {
	v.mu.RLock()
	regs := append([]viewRegistration(nil), v.regions[regionName]...)
	v.mu.RUnlock()

	out := make([]NamedView, 0, len(regs))
	for _, reg := range regs {
		view, err := reg.factory()
		if err != nil {
			return nil, fmt.Errorf("failed to create view %s for region %s: %w", reg.name, regionName, err)
		}
		out = append(out, NamedView{Name: reg.name, View: view})
	}
	return out, nil
}

// Factory returns the factory of a view registered under viewName for any
// region.
func (v *ViewRegistry) Factory(viewName string) (ViewFactory, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	for _, regs := range v.regions {
		for _, reg := range regs {
			if reg.name == viewName {
				return reg.factory, true
			}
		}
	}
	return nil, false
}

// ViewNames returns the view names registered for regionName.
func (v *ViewRegistry) ViewNames(regionName string) []string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	regs := v.regions[regionName]
	out := make([]string, 0, len(regs))
	for _, reg := range regs {
		out = append(out, reg.name)
	}
	return out
}

// OnContentRegistered registers fn to receive views registered from now on.
func (v *ViewRegistry) OnContentRegistered(fn func(regionName string, view NamedView)) {
	v.mu.Lock()
	v.listeners = append(v.listeners, fn)
	v.mu.Unlock()
}
