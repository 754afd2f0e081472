package locator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"bootkit/internal/container"
	"bootkit/pkg/logging"
)

// ErrNoProvider is returned by Handle.Current before a provider was set.
var ErrNoProvider = errors.New("service locator provider is not set")

// ServiceLocator resolves services by key without holding the container.
type ServiceLocator interface {
	// Resolve returns the instance registered under key.
	Resolve(key container.Key) (any, error)

	// ResolveAll returns every instance registered for capability, in
	// registration order.
	ResolveAll(capability container.Capability) ([]any, error)
}

// ContainerLocator is the default ServiceLocator, backed by a container.
type ContainerLocator struct {
	c *container.Container
}

// NewContainerLocator creates a locator over c.
func NewContainerLocator(c *container.Container) *ContainerLocator {
	return &ContainerLocator{c: c}
}

// Resolve implements ServiceLocator.
func (l *ContainerLocator) Resolve(key container.Key) (any, error) {
	return l.c.Resolve(key)
}

// ResolveAll implements ServiceLocator.
func (l *ContainerLocator) ResolveAll(capability container.Capability) ([]any, error) {
	return l.c.ResolveCapability(capability)
}

// Implementation is the default registration for container.KeyServiceLocator.
// It resolves the container from container.KeyContainer.
var Implementation = container.Impl("ContainerLocator", func(r container.Resolver) (any, error) {
	c, err := container.ResolveAs[*container.Container](r, container.KeyContainer)
	if err != nil {
		return nil, err
	}
	return NewContainerLocator(c), nil
})

// Provider returns the current ServiceLocator.
type Provider func() (ServiceLocator, error)

// Handle holds the process's single locator provider.
//
// A Handle is created by whoever owns the process lifetime and passed down
// through a context.Context (see WithHandle). Each SetProvider replaces the
// previous provider.
//
// Thread-safe: Yes, protected by an internal RWMutex.
type Handle struct {
	mu       sync.RWMutex
	provider Provider
}

// NewHandle creates a handle with no provider.
func NewHandle() *Handle {
	return &Handle{}
}

// SetProvider installs p, replacing any previous provider.
//
// Args:
//   - p: Provider that returns the locator to use; nil clears the handle
//
// Example:
//
//	h.SetProvider(func() (locator.ServiceLocator, error) {
//		return container.ResolveAs[locator.ServiceLocator](c, container.KeyServiceLocator)
//	})
func (h *Handle) SetProvider(p Provider) {
	h.mu.Lock()
	defer h.mu.Unlock()
	logging.Debug("Locator", "Setting service locator provider: %v", p != nil)
	h.provider = p
}

// HasProvider reports whether a provider is installed.
func (h *Handle) HasProvider() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.provider != nil
}

// Current invokes the installed provider.
//
// Returns:
//   - ServiceLocator: the locator returned by the provider
//   - error: ErrNoProvider when nothing is installed, or the provider's error
func (h *Handle) Current() (ServiceLocator, error) {
	h.mu.RLock()
	p := h.provider
	h.mu.RUnlock()

	if p == nil {
		return nil, ErrNoProvider
	}
	sl, err := p()
	if err != nil {
		return nil, fmt.Errorf("service locator provider failed: %w", err)
	}
	return sl, nil
}

// Get resolves key through the handle's current locator and asserts the
// result to T.
func Get[T any](h *Handle, key container.Key) (T, error) {
	var zero T

	sl, err := h.Current()
	if err != nil {
		return zero, err
	}
	v, err := sl.Resolve(key)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("service %s is %T, want %T", key, v, zero)
	}
	return typed, nil
}

type handleKey struct{}

// WithHandle returns a copy of ctx carrying h.
func WithHandle(ctx context.Context, h *Handle) context.Context {
	return context.WithValue(ctx, handleKey{}, h)
}

// FromContext returns the handle carried by ctx.
func FromContext(ctx context.Context) (*Handle, bool) {
	h, ok := ctx.Value(handleKey{}).(*Handle)
	return h, ok && h != nil
}
