package region

import (
	"bootkit/internal/container"
)

// Capabilities offered by this package.
const (
	CapabilityAdapter  container.Capability = "RegionAdapter"
	CapabilityBehavior container.Capability = "RegionBehavior"
)

func newAdapterImpl(name string, ctor func(*BehaviorFactory) Adapter) *container.Implementation {
	return container.Impl(name, func(r container.Resolver) (any, error) {
		behaviors, err := container.ResolveAs[*BehaviorFactory](r, container.KeyRegionBehaviorFactory)
		if err != nil {
			return nil, err
		}
		return ctor(behaviors), nil
	})
}

// Capabilities returns the region adapters and behaviors compiled into the
// binary. Behaviors are listed in the order they attach to a new region.
func Capabilities() *container.CapabilityCatalog {
	catalog := container.NewCapabilityCatalog()

	catalog.Add(CapabilityAdapter,
		newAdapterImpl("ContentControlRegionAdapter", NewContentControlAdapter),
		newAdapterImpl("ItemsControlRegionAdapter", NewItemsControlAdapter),
		newAdapterImpl("SelectorRegionAdapter", NewSelectorAdapter),
	)

	catalog.Add(CapabilityBehavior,
		container.Impl(ActiveAwareBehaviorKey, func(container.Resolver) (any, error) {
			return ActiveAwareBehavior{}, nil
		}),
		container.Impl(SyncRegionContextBehaviorKey, func(container.Resolver) (any, error) {
			return SyncRegionContextBehavior{}, nil
		}),
		container.Impl(RegionManagerRegistrationBehaviorKey, func(container.Resolver) (any, error) {
			return RegionManagerRegistrationBehavior{}, nil
		}),
		container.Impl(AutoPopulateBehaviorKey, func(r container.Resolver) (any, error) {
			views, err := container.ResolveAs[*ViewRegistry](r, container.KeyRegionViewRegistry)
			if err != nil {
				return nil, err
			}
			return NewAutoPopulateBehavior(views), nil
		}),
	)

	return catalog
}
