package region

import (
	"fmt"
	"sync"

	"bootkit/internal/container"
	"bootkit/internal/faults"
)

// TargetKind is the kind of host element a region is declared on.
type TargetKind string

const (
	// ContentControl hosts a single active view.
	ContentControl TargetKind = "ContentControl"
	// ItemsControl shows every view.
	ItemsControl TargetKind = "ItemsControl"
	// Selector shows views of which any subset can be selected.
	Selector TargetKind = "Selector"
)

// Target is a region declared by a host element.
type Target struct {
	RegionName string
	Kind       TargetKind
}

// Adapter creates regions for one kind of target.
type Adapter interface {
	TargetKind() TargetKind
	Initialize(target Target, manager *Manager) (*Region, error)
}

// adapterBase creates a region with the adapter's policy, lets the adapter
// wire it up, then attaches the factory's default behaviors.
type adapterBase struct {
	kind      TargetKind
	policy    ActivationPolicy
	behaviors *BehaviorFactory
	adapt     func(r *Region)
}

func (a *adapterBase) TargetKind() TargetKind { return a.kind }

func (a *adapterBase) Initialize(target Target, manager *Manager) (*Region, error) {
	if target.RegionName == "" {
		return nil, faults.New(faults.KindRegionCreation, "initialize region", fmt.Errorf("%s target has no region name", a.kind))
	}

	r := NewRegion(target.RegionName, a.policy)
	r.setManager(manager)
	if a.adapt != nil {
		a.adapt(r)
	}

	if a.behaviors != nil {
		if err := a.behaviors.attachDefaults(r); err != nil {
			return nil, faults.New(faults.KindRegionCreation, fmt.Sprintf("initialize region %s", target.RegionName), err)
		}
	}
	return r, nil
}

// NewContentControlAdapter creates the adapter for ContentControl targets.
// The first view added to an empty region becomes active.
func NewContentControlAdapter(behaviors *BehaviorFactory) Adapter {
	return &adapterBase{
		kind:      ContentControl,
		policy:    SingleActive,
		behaviors: behaviors,
		adapt: func(r *Region) {
			r.OnViewAdded(func(nv NamedView) {
				if len(r.ActiveViews()) == 0 {
					_ = r.Activate(nv.Name)
				}
			})
			r.OnViewRemoved(func(NamedView) {
				if len(r.ActiveViews()) > 0 {
					return
				}
				if views := r.Views(); len(views) > 0 {
					_ = r.Activate(views[0].Name)
				}
			})
		},
	}
}

// NewItemsControlAdapter creates the adapter for ItemsControl targets.
func NewItemsControlAdapter(behaviors *BehaviorFactory) Adapter {
	return &adapterBase{kind: ItemsControl, policy: AllActive, behaviors: behaviors}
}

// NewSelectorAdapter creates the adapter for Selector targets.
func NewSelectorAdapter(behaviors *BehaviorFactory) Adapter {
	return &adapterBase{kind: Selector, policy: MultipleActive, behaviors: behaviors}
}

// AdapterMappings maps target kinds to the adapter that creates their
// regions.
type AdapterMappings struct {
	mu       sync.RWMutex
	adapters map[TargetKind]Adapter
}

// NewAdapterMappings creates an empty mapping.
func NewAdapterMappings() *AdapterMappings {
	return &AdapterMappings{adapters: make(map[TargetKind]Adapter)}
}

// AdapterMappingsImplementation is the default registration for
// container.KeyRegionAdapterMappings. It maps every adapter registered for
// CapabilityAdapter.
var AdapterMappingsImplementation = container.Impl("RegionAdapterMappings", func(r container.Resolver) (any, error) {
	c, err := container.ResolveAs[*container.Container](r, container.KeyContainer)
	if err != nil {
		return nil, err
	}
	instances, err := c.ResolveCapability(CapabilityAdapter)
	if err != nil {
		return nil, err
	}

	m := NewAdapterMappings()
	for _, inst := range instances {
		adapter, ok := inst.(Adapter)
		if !ok {
			return nil, fmt.Errorf("region adapter %T does not implement Adapter", inst)
		}
		if err := m.Register(adapter); err != nil {
			return nil, err
		}
	}
	return m, nil
})

// Register maps adapter to its target kind. A kind can be mapped once.
func (m *AdapterMappings) Register(adapter Adapter) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kind := adapter.TargetKind()
	if _, exists := m.adapters[kind]; exists {
		return fmt.Errorf("an adapter is already mapped for %s", kind)
	}
	m.adapters[kind] = adapter
	return nil
}

// Mapping returns the adapter for kind.
func (m *AdapterMappings) Mapping(kind TargetKind) (Adapter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	adapter, ok := m.adapters[kind]
	if !ok {
		return nil, faults.New(faults.KindRegionCreation, "find region adapter", fmt.Errorf("no adapter mapped for %s", kind))
	}
	return adapter, nil
}

// Len returns the number of mapped target kinds.
func (m *AdapterMappings) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.adapters)
}
