package modularity

import (
	"errors"
	"fmt"
	"sync"

	"bootkit/internal/dependency"
	"bootkit/internal/faults"
)

// ErrUnknownModule is returned for lookups of a module the catalog does not
// contain.
var ErrUnknownModule = errors.New("module not found in catalog")

// Catalog is the set of modules known to the application.
//
// Thread-safe: Yes. The manager updates module states while a catalog
// watcher may add modules from another goroutine.
type Catalog struct {
	mu      sync.RWMutex
	modules []*ModuleInfo
	index   map[string]*ModuleInfo
}

// NewCatalog creates a catalog holding modules. Duplicate names are
// rejected as by AddModule.
func NewCatalog(modules ...ModuleInfo) (*Catalog, error) {
	c := &Catalog{index: make(map[string]*ModuleInfo)}
	for _, m := range modules {
		if err := c.AddModule(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// AddModule appends a module to the catalog.
func (c *Catalog) AddModule(info ModuleInfo) error {
	if info.Name == "" {
		return faults.New(faults.KindConfigurationProcessing, "add module", errors.New("module name is empty"))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.index[info.Name]; exists {
		return faults.New(faults.KindDuplicateModule, "add module",
			fmt.Errorf("module %s is already in the catalog", info.Name))
	}

	stored := info.clone()
	stored.State = StateNotStarted
	c.modules = append(c.modules, &stored)
	c.index[info.Name] = &stored
	return nil
}

// Modules returns a snapshot of the cataloged modules in the order they
// were added.
func (c *Catalog) Modules() []ModuleInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]ModuleInfo, 0, len(c.modules))
	for _, m := range c.modules {
		out = append(out, m.clone())
	}
	return out
}

// Module returns a snapshot of the named module.
func (c *Catalog) Module(name string) (ModuleInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	m, ok := c.index[name]
	if !ok {
		return ModuleInfo{}, false
	}
	return m.clone(), true
}

// Len returns the number of cataloged modules.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.modules)
}

// Initialize validates the catalog: every dependency must exist, the
// dependency graph must be acyclic, and a WhenAvailable module must not
// depend on an OnDemand module.
func (c *Catalog) Initialize() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, m := range c.modules {
		for _, dep := range m.DependsOn {
			target, ok := c.index[dep]
			if !ok {
				return faults.New(faults.KindConfigurationProcessing, "validate catalog",
					fmt.Errorf("module %s depends on unknown module %s", m.Name, dep))
			}
			if m.InitializationMode == WhenAvailable && target.InitializationMode == OnDemand {
				return faults.New(faults.KindConfigurationProcessing, "validate catalog",
					fmt.Errorf("module %s is loaded when available but depends on on-demand module %s", m.Name, dep))
			}
		}
	}

	if err := c.graphLocked().Validate(); err != nil {
		return classifyGraphError(err)
	}
	return nil
}

// ModulesInLoadOrder returns every module with dependencies before
// dependents.
func (c *Catalog) ModulesInLoadOrder() ([]ModuleInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids, err := c.graphLocked().TopologicalOrder()
	if err != nil {
		return nil, classifyGraphError(err)
	}
	return c.infosLocked(ids), nil
}

// CompleteListWithDependencies returns the named modules plus everything
// they transitively depend on, in load order.
func (c *Catalog) CompleteListWithDependencies(names ...string) ([]ModuleInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]dependency.NodeID, 0, len(names))
	for _, name := range names {
		if _, ok := c.index[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownModule, name)
		}
		ids = append(ids, dependency.NodeID(name))
	}

	ordered, err := c.graphLocked().Closure(ids...)
	if err != nil {
		return nil, classifyGraphError(err)
	}
	return c.infosLocked(ordered), nil
}

func (c *Catalog) setState(name string, state ModuleState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.index[name]; ok {
		m.State = state
	}
}

func (c *Catalog) graphLocked() *dependency.Graph {
	g := dependency.New()
	for _, m := range c.modules {
		deps := make([]dependency.NodeID, 0, len(m.DependsOn))
		for _, d := range m.DependsOn {
			deps = append(deps, dependency.NodeID(d))
		}
		g.AddNode(dependency.Node{ID: dependency.NodeID(m.Name), DependsOn: deps})
	}
	return g
}

func (c *Catalog) infosLocked(ids []dependency.NodeID) []ModuleInfo {
	out := make([]ModuleInfo, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.index[string(id)].clone())
	}
	return out
}

func classifyGraphError(err error) error {
	var cycle *dependency.CycleError
	if errors.As(err, &cycle) {
		return faults.New(faults.KindCyclicDependency, "order modules", err)
	}
	return faults.New(faults.KindConfigurationProcessing, "order modules", err)
}
