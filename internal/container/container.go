package container

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"bootkit/pkg/logging"
)

type entry struct {
	reg  Registration
	impl *Implementation
}

// Container is the dependency container shared by every service resolved
// during and after bootstrap.
//
// Registration is expected to happen from a single goroutine (the bootstrap
// sequence). Resolution is safe for concurrent use; concurrent first
// resolutions of the same singleton build it exactly once.
type Container struct {
	mu         sync.RWMutex
	entries    map[Key]*entry
	order      []Key
	singletons map[Key]any
	building   singleflight.Group

	capabilities *CapabilityCatalog
}

// Option configures a Container.
type Option func(*Container)

// WithCapabilities sets the catalog consulted by Scan.
func WithCapabilities(catalog *CapabilityCatalog) Option {
	return func(c *Container) {
		c.capabilities = catalog
	}
}

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		entries:    make(map[Key]*entry),
		singletons: make(map[Key]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register adds a type registration. Registering a key twice is an error.
func (c *Container) Register(key Key, impl *Implementation, lifetime Lifetime) error {
	return c.register(key, impl, lifetime, "")
}

// RegisterCapability registers impl as a member of capability under
// CapabilityKey(capability, impl.Name).
func (c *Container) RegisterCapability(capability Capability, impl *Implementation, lifetime Lifetime) error {
	if impl == nil {
		return fmt.Errorf("%w: nil implementation for capability %s", ErrInvalidRegistration, capability)
	}
	return c.register(CapabilityKey(capability, impl.Name), impl, lifetime, capability)
}

func (c *Container) register(key Key, impl *Implementation, lifetime Lifetime, capability Capability) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidRegistration)
	}
	if impl == nil || impl.New == nil {
		return fmt.Errorf("%w: nil implementation for %s", ErrInvalidRegistration, key)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		return &DuplicateRegistrationError{Key: key}
	}

	c.entries[key] = &entry{
		reg: Registration{
			Key:            key,
			Implementation: impl.Name,
			Lifetime:       lifetime,
			Capability:     capability,
		},
		impl: impl,
	}
	c.order = append(c.order, key)

	logging.Debug("Container", "Registered %s -> %s (%s)", key, impl.Name, lifetime)
	return nil
}

// RegisterInstance registers a fixed instance under key.
func (c *Container) RegisterInstance(key Key, instance any) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidRegistration)
	}
	if instance == nil {
		return fmt.Errorf("%w: nil instance for %s", ErrInvalidRegistration, key)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		return &DuplicateRegistrationError{Key: key}
	}

	c.entries[key] = &entry{
		reg: Registration{
			Key:            key,
			Implementation: fmt.Sprintf("%T", instance),
			Lifetime:       Singleton,
			Instance:       instance,
		},
	}
	c.order = append(c.order, key)

	logging.Debug("Container", "Registered instance %s (%T)", key, instance)
	return nil
}

// HasRegistration reports whether key has a registration.
func (c *Container) HasRegistration(key Key) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok
}

// Registration returns the registration for key.
func (c *Container) Registration(key Key) (Registration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return Registration{}, false
	}
	return e.reg, true
}

// Registrations returns all registrations in registration order.
func (c *Container) Registrations() []Registration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Registration, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.entries[key].reg)
	}
	return out
}

// Scan returns the known implementations of capability. Without a
// capability catalog the result is empty.
func (c *Container) Scan(capability Capability) []*Implementation {
	if c.capabilities == nil {
		return nil
	}
	return c.capabilities.Implementations(capability)
}

// Resolve returns the instance registered under key.
func (c *Container) Resolve(key Key) (any, error) {
	return c.resolve(key, nil)
}

// ResolveCapability resolves every registration that belongs to capability,
// in registration order.
func (c *Container) ResolveCapability(capability Capability) ([]any, error) {
	c.mu.RLock()
	var keys []Key
	for _, key := range c.order {
		if c.entries[key].reg.Capability == capability {
			keys = append(keys, key)
		}
	}
	c.mu.RUnlock()

	out := make([]any, 0, len(keys))
	for _, key := range keys {
		v, err := c.Resolve(key)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *Container) resolve(key Key, chain []Key) (any, error) {
	for _, k := range chain {
		if k == key {
			return nil, &ResolutionError{Key: key, Reason: ReasonCircular, Chain: chain}
		}
	}

	c.mu.RLock()
	e, ok := c.entries[key]
	var cached any
	if ok && e.reg.Lifetime == Singleton {
		cached = c.singletons[key]
	}
	c.mu.RUnlock()

	if !ok {
		return nil, &ResolutionError{Key: key, Reason: ReasonNotRegistered, Chain: chain}
	}
	if e.reg.Instance != nil {
		return e.reg.Instance, nil
	}
	if cached != nil {
		return cached, nil
	}
	if e.reg.Lifetime == Transient {
		return c.build(e, chain)
	}

	v, err, _ := c.building.Do(string(key), func() (any, error) {
		c.mu.RLock()
		existing := c.singletons[key]
		c.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}

		instance, err := c.build(e, chain)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.singletons[key] = instance
		c.mu.Unlock()
		return instance, nil
	})
	return v, err
}

func (c *Container) build(e *entry, chain []Key) (any, error) {
	key := e.reg.Key
	scope := &scope{
		container: c,
		chain:     append(append([]Key(nil), chain...), key),
	}

	instance, err := e.impl.New(scope)
	if err != nil {
		return nil, &ResolutionError{Key: key, Reason: ReasonFactoryFailed, Chain: chain, Err: err}
	}
	if instance == nil {
		return nil, &ResolutionError{Key: key, Reason: ReasonNilInstance, Chain: chain}
	}
	return instance, nil
}

// scope is the Resolver handed to factories. It carries the resolution
// chain so cycles are reported instead of recursing forever.
type scope struct {
	container *Container
	chain     []Key
}

func (s *scope) Resolve(key Key) (any, error) {
	return s.container.resolve(key, s.chain)
}

func (s *scope) HasRegistration(key Key) bool {
	return s.container.HasRegistration(key)
}

// ResolveAs resolves key and asserts the instance to T.
func ResolveAs[T any](r Resolver, key Key) (T, error) {
	var zero T

	v, err := r.Resolve(key)
	if err != nil {
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		return zero, &ResolutionError{
			Key:    key,
			Reason: ReasonFactoryFailed,
			Err:    fmt.Errorf("component %s is %T, want %T", key, v, zero),
		}
	}
	return typed, nil
}
