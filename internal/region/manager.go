package region

import (
	"errors"
	"fmt"
	"sync"

	"bootkit/internal/container"
	"bootkit/internal/events"
	"bootkit/internal/faults"
	"bootkit/pkg/logging"
)

// ErrRegionNotFound is returned for operations on an unknown region.
var ErrRegionNotFound = errors.New("region not found")

// Host is an element that declares region targets and carries a region
// manager, typically the shell.
type Host interface {
	RegionTargets() []Target
	SetRegionManager(m *Manager)
	RegionManager() *Manager
}

// Manager keeps the named regions of an application.
type Manager struct {
	mu      sync.RWMutex
	regions map[string]*Region
	order   []string
	pending []*DelayedRegionCreationBehavior

	views      *ViewRegistry
	mappings   *AdapterMappings
	events     *events.Aggregator
	newDelayed func() (*DelayedRegionCreationBehavior, error)
	newNav     func() (*NavigationService, error)
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithEvents publishes region events on agg.
func WithEvents(agg *events.Aggregator) ManagerOption {
	return func(m *Manager) { m.events = agg }
}

// WithDelayedBehaviorFactory overrides how delayed creation behaviors are
// built.
func WithDelayedBehaviorFactory(fn func() (*DelayedRegionCreationBehavior, error)) ManagerOption {
	return func(m *Manager) { m.newDelayed = fn }
}

// WithNavigationFactory sets how navigation services are built for new
// regions. Without it regions have no navigation service.
func WithNavigationFactory(fn func() (*NavigationService, error)) ManagerOption {
	return func(m *Manager) { m.newNav = fn }
}

// NewManager creates a manager over a view registry and adapter mappings.
func NewManager(views *ViewRegistry, mappings *AdapterMappings, opts ...ManagerOption) *Manager {
	m := &Manager{
		regions:  make(map[string]*Region),
		views:    views,
		mappings: mappings,
	}
	m.newDelayed = func() (*DelayedRegionCreationBehavior, error) {
		return NewDelayedRegionCreationBehavior(m.mappings), nil
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ManagerImplementation is the default registration for
// container.KeyRegionManager. Delayed creation behaviors and navigation
// services are resolved from the container on demand.
var ManagerImplementation = container.Impl("RegionManager", func(r container.Resolver) (any, error) {
	c, err := container.ResolveAs[*container.Container](r, container.KeyContainer)
	if err != nil {
		return nil, err
	}
	views, err := container.ResolveAs[*ViewRegistry](r, container.KeyRegionViewRegistry)
	if err != nil {
		return nil, err
	}
	mappings, err := container.ResolveAs[*AdapterMappings](r, container.KeyRegionAdapterMappings)
	if err != nil {
		return nil, err
	}

	opts := []ManagerOption{
		WithDelayedBehaviorFactory(func() (*DelayedRegionCreationBehavior, error) {
			return container.ResolveAs[*DelayedRegionCreationBehavior](c, container.KeyDelayedRegionCreationBehavior)
		}),
	}
	if r.HasRegistration(container.KeyNavigationService) {
		opts = append(opts, WithNavigationFactory(func() (*NavigationService, error) {
			return container.ResolveAs[*NavigationService](c, container.KeyNavigationService)
		}))
	}
	if r.HasRegistration(container.KeyEventAggregator) {
		agg, err := container.ResolveAs[*events.Aggregator](r, container.KeyEventAggregator)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithEvents(agg))
	}
	return NewManager(views, mappings, opts...), nil
})

// SetRegionManager binds manager to host and schedules creation of every
// region the host declares. Regions are created by the next
// RefreshAllRegions.
func SetRegionManager(host Host, manager *Manager) error {
	if host == nil || manager == nil {
		return fmt.Errorf("SetRegionManager needs a host and a manager")
	}

	host.SetRegionManager(manager)
	for _, target := range host.RegionTargets() {
		b, err := manager.newDelayed()
		if err != nil {
			return faults.New(faults.KindRegionCreation, "schedule region "+target.RegionName, err)
		}
		b.bind(target, manager)
		manager.mu.Lock()
		manager.pending = append(manager.pending, b)
		manager.mu.Unlock()
	}
	return nil
}

// RefreshAllRegions creates every scheduled region that does not exist yet.
// All scheduled regions are attempted; failures are joined into one
// KindUpdateRegions error.
func (m *Manager) RefreshAllRegions() error {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()

	var (
		errs  []error
		retry []*DelayedRegionCreationBehavior
	)
	for _, b := range pending {
		if err := b.TryCreateRegion(); err != nil {
			errs = append(errs, err)
			retry = append(retry, b)
		}
	}

	if len(retry) > 0 {
		m.mu.Lock()
		m.pending = append(retry, m.pending...)
		m.mu.Unlock()
	}
	if len(errs) > 0 {
		return faults.New(faults.KindUpdateRegions, "refresh regions", errors.Join(errs...))
	}
	return nil
}

// PendingRegions returns the names of regions scheduled but not created.
func (m *Manager) PendingRegions() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.pending))
	for _, b := range m.pending {
		out = append(out, b.target.RegionName)
	}
	return out
}

// register adds a created region. Called by RegionManagerRegistrationBehavior.
func (m *Manager) register(r *Region) error {
	m.mu.Lock()
	if _, exists := m.regions[r.Name()]; exists {
		m.mu.Unlock()
		return faults.New(faults.KindRegionCreation, "register region",
			fmt.Errorf("region %s is already registered", r.Name()))
	}
	m.regions[r.Name()] = r
	m.order = append(m.order, r.Name())
	newNav := m.newNav
	m.mu.Unlock()

	if newNav != nil {
		nav, err := newNav()
		if err != nil {
			return faults.New(faults.KindRegionCreation, "register region "+r.Name(), err)
		}
		nav.setRegion(r)
		r.setNavigationService(nav)
	}

	logging.Debug("Region", "Registered region %s (%s)", r.Name(), r.Policy())
	m.publish(events.TopicRegionCreated, events.EventData{Region: r.Name()})
	return nil
}

// AddRegion registers a region created outside a host.
func (m *Manager) AddRegion(r *Region) error {
	r.setManager(m)
	return m.register(r)
}

// RemoveRegion forgets the named region.
func (m *Manager) RemoveRegion(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.regions[name]; !ok {
		return false
	}
	delete(m.regions, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// Regions returns the registered region names in creation order.
func (m *Manager) Regions() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.order...)
}

// Region returns the named region.
func (m *Manager) Region(name string) (*Region, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.regions[name]
	return r, ok
}

// AddToRegion adds view to the named region.
func (m *Manager) AddToRegion(regionName, viewName string, view any) error {
	r, ok := m.Region(regionName)
	if !ok {
		return fmt.Errorf("%w: %s", ErrRegionNotFound, regionName)
	}
	return r.Add(viewName, view)
}

// RegisterViewWithRegion records a view for the named region in the view
// registry. The region does not need to exist yet.
func (m *Manager) RegisterViewWithRegion(regionName, viewName string, factory ViewFactory) error {
	return m.views.Register(regionName, viewName, factory)
}

// RequestNavigate navigates the named region to target.
func (m *Manager) RequestNavigate(regionName, target string, params map[string]string) error {
	r, ok := m.Region(regionName)
	if !ok {
		err := fmt.Errorf("%w: %s", ErrRegionNotFound, regionName)
		m.publish(events.TopicNavigationFailed, events.EventData{Region: regionName, Target: target, Error: err.Error()})
		return err
	}
	nav := r.NavigationService()
	if nav == nil {
		err := fmt.Errorf("region %s has no navigation service", regionName)
		m.publish(events.TopicNavigationFailed, events.EventData{Region: regionName, Target: target, Error: err.Error()})
		return err
	}
	return nav.RequestNavigate(target, params)
}

// Views returns the view registry.
func (m *Manager) Views() *ViewRegistry {
	return m.views
}

func (m *Manager) publish(reason events.EventReason, data events.EventData) {
	if m.events != nil {
		m.events.Publish(reason, data)
	}
}
