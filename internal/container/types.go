package container

import (
	"fmt"
	"sync"
)

// Key identifies a registration. Keys play the role of abstract service
// types: one key, one registration.
type Key string

// Lifetime decides whether a registration is built once or on every resolve.
type Lifetime int

const (
	Singleton Lifetime = iota
	Transient
)

// String returns the lifetime name.
func (l Lifetime) String() string {
	switch l {
	case Singleton:
		return "singleton"
	case Transient:
		return "transient"
	default:
		return fmt.Sprintf("Lifetime(%d)", int(l))
	}
}

// Resolver is the read side of the container handed to factories.
type Resolver interface {
	Resolve(key Key) (any, error)
	HasRegistration(key Key) bool
}

// Factory builds an instance, resolving its own dependencies through r.
type Factory func(r Resolver) (any, error)

// Implementation is a named factory: the concrete type behind a key.
type Implementation struct {
	Name string
	New  Factory
}

// Impl is shorthand for &Implementation{Name: name, New: f}.
func Impl(name string, f Factory) *Implementation {
	return &Implementation{Name: name, New: f}
}

// Registration describes one entry in the container.
type Registration struct {
	Key            Key
	Implementation string
	Lifetime       Lifetime
	Capability     Capability
	// Instance is set for instance registrations.
	Instance any
}

// IsInstance reports whether the registration is a fixed instance.
func (r Registration) IsInstance() bool {
	return r.Instance != nil
}

// Capability groups implementations that can be discovered without naming
// them individually (region adapters, region behaviors).
type Capability string

// CapabilityKey is the key a capability implementation is registered under.
func CapabilityKey(capability Capability, name string) Key {
	return Key(string(capability) + "/" + name)
}

// CapabilityCatalog is the explicit list of implementations known for each
// capability. It is populated at startup from compiled-in lists.
type CapabilityCatalog struct {
	mu      sync.RWMutex
	entries map[Capability][]*Implementation
}

// NewCapabilityCatalog creates an empty catalog.
func NewCapabilityCatalog() *CapabilityCatalog {
	return &CapabilityCatalog{entries: make(map[Capability][]*Implementation)}
}

// Add appends implementations for capability.
func (c *CapabilityCatalog) Add(capability Capability, impls ...*Implementation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[capability] = append(c.entries[capability], impls...)
}

// Implementations returns the implementations known for capability, in the
// order they were added.
func (c *CapabilityCatalog) Implementations(capability Capability) []*Implementation {
	c.mu.RLock()
	defer c.mu.RUnlock()

	impls := c.entries[capability]
	out := make([]*Implementation, len(impls))
	copy(out, impls)
	return out
}
