package region

import (
	"fmt"
	"sync"

	"bootkit/internal/container"
)

// Behavior adds functionality to a region once attached.
type Behavior interface {
	// Key identifies the behavior inside a region's behavior collection.
	Key() string
	// Attach hooks the behavior up to r.
	Attach(r *Region) error
}

// BehaviorCollection is the set of behaviors attached to one region.
type BehaviorCollection struct {
	mu     sync.Mutex
	region *Region
	items  map[string]Behavior
	order  []string
}

func newBehaviorCollection(r *Region) *BehaviorCollection {
	return &BehaviorCollection{region: r, items: make(map[string]Behavior)}
}

// Add attaches b to the region under b.Key(). A key can be attached once.
func (c *BehaviorCollection) Add(b Behavior) error {
	key := b.Key()

	c.mu.Lock()
	if _, exists := c.items[key]; exists {
		c.mu.Unlock()
		return fmt.Errorf("behavior %s is already attached to region %s", key, c.region.Name())
	}
	c.items[key] = b
	c.order = append(c.order, key)
	c.mu.Unlock()

	return b.Attach(c.region)
}

// Contains reports whether a behavior with key is attached.
func (c *BehaviorCollection) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

// Keys returns the attached behavior keys in attach order.
func (c *BehaviorCollection) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.order...)
}

// BehaviorConstructor builds a fresh behavior instance.
type BehaviorConstructor func() (Behavior, error)

// BehaviorFactory holds the behaviors attached to every new region.
type BehaviorFactory struct {
	mu    sync.RWMutex
	ctors map[string]BehaviorConstructor
	order []string
}

// NewBehaviorFactory creates an empty factory.
func NewBehaviorFactory() *BehaviorFactory {
	return &BehaviorFactory{ctors: make(map[string]BehaviorConstructor)}
}

// BehaviorFactoryImplementation is the default registration for
// container.KeyRegionBehaviorFactory. It offers every implementation
// registered for CapabilityBehavior, each resolved afresh per region.
var BehaviorFactoryImplementation = container.Impl("RegionBehaviorFactory", func(r container.Resolver) (any, error) {
	c, err := container.ResolveAs[*container.Container](r, container.KeyContainer)
	if err != nil {
		return nil, err
	}

	f := NewBehaviorFactory()
	for _, reg := range c.Registrations() {
		if reg.Capability != CapabilityBehavior {
			continue
		}
		key := reg.Key
		f.AddIfMissing(reg.Implementation, func() (Behavior, error) {
			return container.ResolveAs[Behavior](c, key)
		})
	}
	return f, nil
})

// AddIfMissing registers ctor under key unless key is already known.
func (f *BehaviorFactory) AddIfMissing(key string, ctor BehaviorConstructor) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.ctors[key]; exists {
		return
	}
	f.ctors[key] = ctor
	f.order = append(f.order, key)
}

// Contains reports whether key is known.
func (f *BehaviorFactory) Contains(key string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.ctors[key]
	return ok
}

// Keys returns the known behavior keys in registration order.
func (f *BehaviorFactory) Keys() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.order...)
}

// Create builds the behavior registered under key.
func (f *BehaviorFactory) Create(key string) (Behavior, error) {
	f.mu.RLock()
	ctor, ok := f.ctors[key]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("no region behavior registered for %s", key)
	}
	return ctor()
}

// attachDefaults adds every known behavior not yet attached to r.
func (f *BehaviorFactory) attachDefaults(r *Region) error {
	for _, key := range f.Keys() {
		b, err := f.Create(key)
		if err != nil {
			return err
		}
		if r.Behaviors().Contains(b.Key()) {
			continue
		}
		if err := r.Behaviors().Add(b); err != nil {
			return err
		}
	}
	return nil
}

// Default behavior keys.
const (
	AutoPopulateBehaviorKey              = "AutoPopulate"
	ActiveAwareBehaviorKey               = "ActiveAware"
	SyncRegionContextBehaviorKey         = "SyncRegionContext"
	RegionManagerRegistrationBehaviorKey = "RegionManagerRegistration"
)

// RegionManagerRegistrationBehavior registers the region with the manager
// that created it.
type RegionManagerRegistrationBehavior struct{}

// Key implements Behavior.
func (RegionManagerRegistrationBehavior) Key() string { return RegionManagerRegistrationBehaviorKey }

// Attach implements Behavior.
func (RegionManagerRegistrationBehavior) Attach(r *Region) error {
	m := r.Manager()
	if m == nil {
		return nil
	}
	return m.register(r)
}

// AutoPopulateBehavior fills the region with the views registered for its
// name in the view registry, now and whenever new ones are registered.
type AutoPopulateBehavior struct {
	views *ViewRegistry
}

// NewAutoPopulateBehavior creates the behavior over views.
func NewAutoPopulateBehavior(views *ViewRegistry) *AutoPopulateBehavior {
	return &AutoPopulateBehavior{views: views}
}

// Key implements Behavior.
func (*AutoPopulateBehavior) Key() string { return AutoPopulateBehaviorKey }

// Attach implements Behavior.
func (b *AutoPopulateBehavior) Attach(r *Region) error {
	contents, err := b.views.Contents(r.Name())
	if err != nil {
		return err
	}
	for _, nv := range contents {
		if _, exists := r.View(nv.Name); exists {
			continue
		}
		if err := r.Add(nv.Name, nv.View); err != nil {
			return err
		}
	}

	b.views.OnContentRegistered(func(regionName string, nv NamedView) {
		if regionName != r.Name() {
			return
		}
		if _, exists := r.View(nv.Name); !exists {
			_ = r.Add(nv.Name, nv.View)
		}
	})
	return nil
}

// ActiveAwareBehavior tells ActiveAware views about activation changes.
type ActiveAwareBehavior struct{}

// Key implements Behavior.
func (ActiveAwareBehavior) Key() string { return ActiveAwareBehaviorKey }

// Attach implements Behavior.
func (ActiveAwareBehavior) Attach(r *Region) error {
	for _, nv := range r.Views() {
		if aware, ok := nv.View.(ActiveAware); ok {
			aware.SetActive(r.IsActive(nv.Name))
		}
	}
	r.OnActiveChanged(func(nv NamedView, active bool) {
		if aware, ok := nv.View.(ActiveAware); ok {
			aware.SetActive(active)
		}
	})
	return nil
}

// SyncRegionContextBehavior hands the region context to ContextAware views.
type SyncRegionContextBehavior struct{}

// Key implements Behavior.
func (SyncRegionContextBehavior) Key() string { return SyncRegionContextBehaviorKey }

// Attach implements Behavior.
func (SyncRegionContextBehavior) Attach(r *Region) error {
	propagate := func(ctx any) {
		for _, nv := range r.Views() {
			if aware, ok := nv.View.(ContextAware); ok {
				aware.SetRegionContext(ctx)
			}
		}
	}
	r.OnContextChanged(propagate)
	r.OnViewAdded(func(nv NamedView) {
		if aware, ok := nv.View.(ContextAware); ok {
			aware.SetRegionContext(r.Context())
		}
	})
	if ctx := r.Context(); ctx != nil {
		propagate(ctx)
	}
	return nil
}
