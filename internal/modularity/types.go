package modularity

import (
	"fmt"
	"sort"
	"sync"

	"bootkit/internal/faults"
)

// Constructor builds a fresh, uninitialized module.
type Constructor func() Module

// TypeRegistry maps module type names to constructors. It is filled at
// startup from the modules compiled into the binary.
type TypeRegistry struct {
	mu    sync.RWMutex
	types map[string]Constructor
}

// NewTypeRegistry creates an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{types: make(map[string]Constructor)}
}

// Register adds a constructor under name. A name can be registered once.
func (r *TypeRegistry) Register(name string, ctor Constructor) error {
	if name == "" || ctor == nil {
		return fmt.Errorf("module type registration needs a name and a constructor")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[name]; exists {
		return fmt.Errorf("module type %s is already registered", name)
	}
	r.types[name] = ctor
	return nil
}

// New builds a module of the named type.
func (r *TypeRegistry) New(name string) (Module, error) {
	r.mu.RLock()
	ctor, ok := r.types[name]
	r.mu.RUnlock()

	if !ok {
		return nil, faults.New(faults.KindModuleTypeLoading, "load module type",
			fmt.Errorf("module type %s is not registered", name))
	}

	m := ctor()
	if m == nil {
		return nil, faults.New(faults.KindModuleTypeLoading, "load module type",
			fmt.Errorf("constructor for module type %s returned nil", name))
	}
	return m, nil
}

// Types returns the registered type names, sorted.
func (r *TypeRegistry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.types))
	for name := range r.types {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
