package region

import (
	"fmt"
	"sync"

	"bootkit/internal/container"
	"bootkit/internal/faults"
)

// DelayedRegionCreationBehavior creates the region for one host target the
// first time the manager refreshes after the host was bound.
type DelayedRegionCreationBehavior struct {
	mu       sync.Mutex
	mappings *AdapterMappings
	target   Target
	manager  *Manager
	region   *Region
}

// NewDelayedRegionCreationBehavior creates an unbound behavior.
func NewDelayedRegionCreationBehavior(mappings *AdapterMappings) *DelayedRegionCreationBehavior {
	return &DelayedRegionCreationBehavior{mappings: mappings}
}

// DelayedRegionCreationImplementation is the default registration for
// container.KeyDelayedRegionCreationBehavior.
var DelayedRegionCreationImplementation = container.Impl("DelayedRegionCreationBehavior", func(r container.Resolver) (any, error) {
	mappings, err := container.ResolveAs[*AdapterMappings](r, container.KeyRegionAdapterMappings)
	if err != nil {
		return nil, err
	}
	return NewDelayedRegionCreationBehavior(mappings), nil
})

func (b *DelayedRegionCreationBehavior) bind(target Target, manager *Manager) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.target = target
	b.manager = manager
}

// Target returns the bound target.
func (b *DelayedRegionCreationBehavior) Target() Target {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.target
}

// Region returns the created region, or nil before creation.
func (b *DelayedRegionCreationBehavior) Region() *Region {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.region
}

// TryCreateRegion creates the region through the adapter mapped for the
// target kind. It is a no-op once the region exists.
func (b *DelayedRegionCreationBehavior) TryCreateRegion() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.region != nil {
		return nil
	}
	if b.manager == nil {
		return faults.New(faults.KindRegionCreation, "create region", fmt.Errorf("behavior is not bound to a host"))
	}

	adapter, err := b.mappings.Mapping(b.target.Kind)
	if err != nil {
		return err
	}
	r, err := adapter.Initialize(b.target, b.manager)
	if err != nil {
		return err
	}
	b.region = r
	return nil
}
