package modularity

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"bootkit/internal/container"
	"bootkit/internal/events"
	"bootkit/pkg/logging"
)

// Manager loads cataloged modules through a ModuleInitializer.
type Manager struct {
	mu          sync.Mutex
	catalog     *Catalog
	initializer ModuleInitializer
	events      *events.Aggregator
	logger      logging.Facade
}

// NewManager creates a manager. agg may be nil.
func NewManager(catalog *Catalog, initializer ModuleInitializer, agg *events.Aggregator, logger logging.Facade) *Manager {
	return &Manager{
		catalog:     catalog,
		initializer: initializer,
		events:      agg,
		logger:      logger,
	}
}

// ManagerImplementation is the default registration for
// container.KeyModuleManager. It depends on the module catalog, the module
// initializer and the logger; the event aggregator is used when registered.
var ManagerImplementation = container.Impl("ModuleManager", func(r container.Resolver) (any, error) {
	catalog, err := container.ResolveAs[*Catalog](r, container.KeyModuleCatalog)
	if err != nil {
		return nil, err
	}
	initializer, err := container.ResolveAs[ModuleInitializer](r, container.KeyModuleInitializer)
	if err != nil {
		return nil, err
	}
	logger, err := container.ResolveAs[logging.Facade](r, container.KeyLogger)
	if err != nil {
		return nil, err
	}

	var agg *events.Aggregator
	if r.HasRegistration(container.KeyEventAggregator) {
		agg, err = container.ResolveAs[*events.Aggregator](r, container.KeyEventAggregator)
		if err != nil {
			return nil, err
		}
	}
	return NewManager(catalog, initializer, agg, logger), nil
})

// Catalog returns the managed catalog.
func (m *Manager) Catalog() *Catalog {
	return m.catalog
}

// Run validates the catalog and initializes every WhenAvailable module in
// dependency order. It stops at the first failing module.
func (m *Manager) Run() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.catalog.Initialize(); err != nil {
		return err
	}

	ordered, err := m.catalog.ModulesInLoadOrder()
	if err != nil {
		return err
	}

	var pending []ModuleInfo
	for _, info := range ordered {
		if info.InitializationMode == WhenAvailable {
			pending = append(pending, info)
		}
	}
	return m.loadLocked(pending)
}

// LoadModule initializes the named module and every module it depends on
// that is not initialized yet. It is how OnDemand modules are loaded.
func (m *Manager) LoadModule(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	modules, err := m.catalog.CompleteListWithDependencies(name)
	if err != nil {
		return err
	}
	return m.loadLocked(modules)
}

// Refresh merges modules from a reloaded catalog that this manager has not
// seen, then initializes the new WhenAvailable ones. Modules already in the
// catalog are left untouched. The merged catalog is validated before
// anything is added, so a rejected reload leaves the catalog unchanged. It
// returns the names of the merged modules.
func (m *Manager) Refresh(reloaded *Catalog) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var fresh []ModuleInfo
	for _, info := range reloaded.Modules() {
		if _, known := m.catalog.Module(info.Name); !known {
			fresh = append(fresh, info)
		}
	}
	if len(fresh) == 0 {
		return nil, nil
	}

	candidate, err := NewCatalog(append(m.catalog.Modules(), fresh...)...)
	if err != nil {
		return nil, err
	}
	if err := candidate.Initialize(); err != nil {
		return nil, err
	}

	added := make([]string, 0, len(fresh))
	for _, info := range fresh {
		if err := m.catalog.AddModule(info); err != nil {
			return added, err
		}
		added = append(added, info.Name)
	}

	var pending []ModuleInfo
	for _, name := range added {
		info, _ := m.catalog.Module(name)
		if info.InitializationMode != WhenAvailable {
			continue
		}
		withDeps, err := m.catalog.CompleteListWithDependencies(name)
		if err != nil {
			return added, err
		}
		pending = append(pending, withDeps...)
	}
	return added, m.loadLocked(pending)
}

func (m *Manager) loadLocked(modules []ModuleInfo) error {
	for _, info := range modules {
		current, ok := m.catalog.Module(info.Name)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownModule, info.Name)
		}
		if current.State == StateInitialized {
			continue
		}
		if err := m.loadOne(current); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) loadOne(info ModuleInfo) error {
	m.catalog.setState(info.Name, StateInitializing)
	m.log(fmt.Sprintf("Initializing module %s.", info.Name), logging.CategoryDebug, logging.PriorityLow)

	start := time.Now()
	err := m.initializer.Initialize(info)
	if err != nil {
		m.catalog.setState(info.Name, StateFailed)
		m.log(fmt.Sprintf("Module %s failed to initialize: %v", info.Name, err), logging.CategoryException, logging.PriorityHigh)
		m.publish(events.TopicModuleLoadFailed, events.EventData{Name: info.Name, Error: err.Error()})
		return err
	}

	m.catalog.setState(info.Name, StateInitialized)
	m.publish(events.TopicModuleLoaded, events.EventData{Name: info.Name, Duration: time.Since(start)})
	return nil
}

func (m *Manager) publish(reason events.EventReason, data events.EventData) {
	if m.events != nil {
		m.events.Publish(reason, data)
	}
}

func (m *Manager) log(message string, category logging.Category, priority logging.Priority) {
	if m.logger != nil {
		m.logger.Log(message, category, priority)
	}
}

// IsUnknownModule reports whether err is a lookup of a module the catalog
// does not contain.
func IsUnknownModule(err error) bool {
	return errors.Is(err, ErrUnknownModule)
}
