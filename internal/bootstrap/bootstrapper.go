package bootstrap

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"bootkit/internal/container"
	"bootkit/internal/events"
	"bootkit/internal/faults"
	"bootkit/internal/locator"
	"bootkit/internal/metrics"
	"bootkit/internal/modularity"
	"bootkit/internal/region"
	"bootkit/internal/shell"
	"bootkit/pkg/logging"
)

// Hooks override individual phases. A nil hook selects the default
// behavior of its phase.
type Hooks struct {
	CreateLogger                    func(b *Bootstrapper) (logging.Facade, error)
	CreateModuleCatalog             func(b *Bootstrapper) (*modularity.Catalog, error)
	ConfigureModuleCatalog          func(b *Bootstrapper) error
	CreateContainer                 func(b *Bootstrapper) (*container.Container, error)
	ConfigureContainer              func(b *Bootstrapper) error
	ConfigureRegionAdapterMappings  func(b *Bootstrapper) error
	ConfigureDefaultRegionBehaviors func(b *Bootstrapper) error
	// CreateShell returns nil for a headless run. A nil *shell.MainWindow
	// counts as nil; any other shell type must be returned as an untyped nil.
	CreateShell                     func(b *Bootstrapper) (any, error)
	InitializeShell                 func(b *Bootstrapper) error
}

// Options configures a Bootstrapper.
type Options struct {
	Hooks

	// Host receives the shell as its main window. Defaults to a
	// shell.HeadlessHost.
	Host shell.Host
	// Metrics is optional.
	Metrics *metrics.Recorder
	// Faults receives the framework fault kinds. Defaults to a new registry.
	Faults *faults.Registry
	// Locator is the process-wide service locator slot. Defaults to a new
	// handle.
	Locator *locator.Handle
	// Capabilities seeds the default container. Defaults to
	// region.Capabilities().
	Capabilities *container.CapabilityCatalog
}

// ModuleRunner is the contract resolved from container.KeyModuleManager.
type ModuleRunner interface {
	Run() error
}

// Bootstrapper drives the startup sequence of an application. It is
// single-use: Run may be called once.
type Bootstrapper struct {
	hooks        Hooks
	installers   []Installer
	host         shell.Host
	metrics      *metrics.Recorder
	faults       *faults.Registry
	locator      *locator.Handle
	capabilities *container.CapabilityCatalog

	ran        atomic.Bool
	useDefault bool
	runID      uuid.UUID
	report     *Report

	logger    logging.Facade
	catalog   *modularity.Catalog
	container *container.Container
	shell     any
}

// New creates a bootstrapper. Installers are applied in order during
// ConfigureContainer.
func New(opts Options, installers ...Installer) *Bootstrapper {
	b := &Bootstrapper{
		hooks:        opts.Hooks,
		installers:   installers,
		host:         opts.Host,
		metrics:      opts.Metrics,
		faults:       opts.Faults,
		locator:      opts.Locator,
		capabilities: opts.Capabilities,
	}
	if b.host == nil {
		b.host = shell.NewHeadlessHost()
	}
	if b.faults == nil {
		b.faults = faults.NewRegistry()
	}
	if b.locator == nil {
		b.locator = locator.NewHandle()
	}
	if b.capabilities == nil {
		b.capabilities = region.Capabilities()
	}
	return b
}

// Process is the running application produced by a successful Run.
type Process struct {
	RunID     uuid.UUID
	Logger    logging.Facade
	Catalog   *modularity.Catalog
	Container *container.Container
	Locator   *locator.Handle
	Faults    *faults.Registry
	Host      shell.Host
	// Shell is nil for headless runs.
	Shell  any
	Report *Report
}

type step struct {
	phase Phase
	run   func() error
	// needsShell phases are skipped when no shell was created.
	needsShell bool
}

// Run executes the bootstrap sequence. When useDefaultConfiguration is
// false, ConfigureContainer only applies the installers.
func (b *Bootstrapper) Run(useDefaultConfiguration bool) (*Process, error) {
	if !b.ran.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRun
	}

	b.useDefault = useDefaultConfiguration
	b.runID = uuid.New()
	b.report = newReport(b.runID)

	err := b.run()
	b.report.finish(err)
	if b.metrics != nil {
		b.metrics.RunFinished(err)
	}
	if err != nil {
		return nil, err
	}

	return &Process{
		RunID:     b.runID,
		Logger:    b.logger,
		Catalog:   b.catalog,
		Container: b.container,
		Locator:   b.locator,
		Faults:    b.faults,
		Host:      b.host,
		Shell:     b.shell,
		Report:    b.report,
	}, nil
}

func (b *Bootstrapper) run() error {
	steps := []step{
		{phase: PhaseCreateLogger, run: b.createLogger},
		{phase: PhaseCreateModuleCatalog, run: b.createModuleCatalog},
		{phase: PhaseConfigureModuleCatalog, run: b.configureModuleCatalog},
		{phase: PhaseCreateContainer, run: b.createContainer},
		{phase: PhaseConfigureContainer, run: b.configureContainer},
		{phase: PhaseConfigureServiceLocator, run: b.configureServiceLocator},
		{phase: PhaseConfigureRegionAdapterMappings, run: b.configureRegionAdapterMappings},
		{phase: PhaseConfigureDefaultRegionBehaviors, run: b.configureDefaultRegionBehaviors},
		{phase: PhaseRegisterFrameworkFaults, run: b.registerFrameworkFaults},
		{phase: PhaseCreateShell, run: b.createShell},
		{phase: PhaseBindRegionManager, run: b.bindRegionManager, needsShell: true},
		{phase: PhaseInitializeShell, run: b.initializeShell, needsShell: true},
		{phase: PhaseInitializeModules, run: b.initializeModules},
	}

	for _, s := range steps {
		if s.needsShell && b.shell == nil {
			b.skip(s.phase)
			continue
		}
		if err := b.runPhase(s.phase, s.run); err != nil {
			b.log(fmt.Sprintf("Bootstrap phase %s failed: %v", s.phase, err), logging.CategoryException, logging.PriorityHigh)
			return err
		}
	}

	if b.metrics != nil {
		b.metrics.SetRegistrations(len(b.container.Registrations()))
	}
	b.log(SequenceCompletedMessage, logging.CategoryDebug, logging.PriorityLow)
	return b.publishCompleted()
}

func (b *Bootstrapper) publishCompleted() error {
	if !b.container.HasRegistration(container.KeyEventAggregator) {
		return nil
	}
	agg, err := container.ResolveAs[*events.Aggregator](b.container, container.KeyEventAggregator)
	if err != nil {
		return err
	}
	agg.Publish(events.TopicBootstrapCompleted, events.EventData{
		Name:     b.runID.String(),
		Duration: time.Since(b.report.Started),
		Count:    b.catalog.Len(),
	})
	return nil
}

func (b *Bootstrapper) runPhase(p Phase, fn func() error) error {
	// The logger phase announces itself once a logger exists.
	if p != PhaseCreateLogger {
		b.log(p.Message(), logging.CategoryDebug, logging.PriorityLow)
	}

	start := time.Now()
	err := fn()
	d := time.Since(start)

	res := PhaseResult{Phase: p, Name: p.String(), Status: StatusOK, Duration: d}
	if err != nil {
		res.Status = StatusError
		res.Error = err.Error()
	}
	b.report.record(res)
	if b.metrics != nil {
		b.metrics.ObservePhase(p.String(), res.Status, d)
	}

	if err == nil && p == PhaseCreateLogger {
		b.log(p.Message(), logging.CategoryDebug, logging.PriorityLow)
	}
	return err
}

func (b *Bootstrapper) skip(p Phase) {
	b.report.record(PhaseResult{Phase: p, Name: p.String(), Status: StatusSkipped})
	if b.metrics != nil {
		b.metrics.ObservePhase(p.String(), StatusSkipped, 0)
	}
}

func (b *Bootstrapper) log(message string, category logging.Category, priority logging.Priority) {
	if b.logger != nil {
		b.logger.Log(message, category, priority)
	}
}

func (b *Bootstrapper) createLogger() error {
	create := b.hooks.CreateLogger
	if create == nil {
		create = func(*Bootstrapper) (logging.Facade, error) {
			return logging.NewSlogFacade(nil, "Bootstrap"), nil
		}
	}
	logger, err := create(b)
	if err != nil {
		return err
	}
	if logger == nil {
		return &FatalError{Phase: PhaseCreateLogger, Err: ErrMissingLogger}
	}
	b.logger = logger
	return nil
}

func (b *Bootstrapper) createModuleCatalog() error {
	create := b.hooks.CreateModuleCatalog
	if create == nil {
		create = func(*Bootstrapper) (*modularity.Catalog, error) {
			return modularity.NewCatalog()
		}
	}
	catalog, err := create(b)
	if err != nil {
		return err
	}
	if catalog == nil {
		return &FatalError{Phase: PhaseCreateModuleCatalog, Err: ErrMissingModuleCatalog}
	}
	b.catalog = catalog
	return nil
}

func (b *Bootstrapper) configureModuleCatalog() error {
	if b.hooks.ConfigureModuleCatalog == nil {
		return nil
	}
	return b.hooks.ConfigureModuleCatalog(b)
}

func (b *Bootstrapper) createContainer() error {
	create := b.hooks.CreateContainer
	if create == nil {
		create = func(b *Bootstrapper) (*container.Container, error) {
			return container.New(container.WithCapabilities(b.capabilities)), nil
		}
	}
	c, err := create(b)
	if err != nil {
		return err
	}
	if c == nil {
		return &FatalError{Phase: PhaseCreateContainer, Err: ErrMissingContainer}
	}
	b.container = c
	return nil
}

func (b *Bootstrapper) configureContainer() error {
	if b.hooks.ConfigureContainer != nil {
		return b.hooks.ConfigureContainer(b)
	}
	return DefaultConfigureContainer(b)
}

// DefaultConfigureContainer is the default ConfigureContainer phase. A hook
// that only adds to the defaults can call it first.
//
// With the default configuration it registers the logger, the module
// catalog and the container as instances, applies the installers, fills in
// every default service an installer did not provide, and registers the
// region adapter and behavior capabilities as transients. Without it only
// the installers are applied.
func DefaultConfigureContainer(b *Bootstrapper) error {
	c := b.container

	if b.useDefault {
		instances := []struct {
			key   container.Key
			value any
		}{
			{container.KeyLogger, b.logger},
			{container.KeyModuleCatalog, b.catalog},
			{container.KeyContainer, c},
		}
		for _, inst := range instances {
			if err := c.RegisterInstance(inst.key, inst.value); err != nil {
				return err
			}
		}
	}

	for _, installer := range b.installers {
		if err := installer.Install(b); err != nil {
			return fmt.Errorf("installer %T: %w", installer, err)
		}
	}

	if !b.useDefault {
		return nil
	}

	for _, d := range defaultRegistrations() {
		if err := b.RegisterTypeIfMissing(d.key, d.impl, d.singleton); err != nil {
			return err
		}
	}

	for _, capability := range []container.Capability{region.CapabilityAdapter, region.CapabilityBehavior} {
		for _, impl := range c.Scan(capability) {
			if err := c.RegisterCapability(capability, impl, container.Transient); err != nil {
				return err
			}
		}
	}
	return nil
}

// RegisterTypeIfMissing registers impl under key unless key already has a
// registration, in which case it logs and does nothing.
func (b *Bootstrapper) RegisterTypeIfMissing(key container.Key, impl *container.Implementation, asSingleton bool) error {
	if key == "" {
		return &ArgumentError{Param: "key", Message: "must not be empty"}
	}
	if impl == nil || impl.New == nil {
		return &ArgumentError{Param: "impl", Message: fmt.Sprintf("no implementation for %s", key)}
	}
	if b.container == nil {
		return errors.New("cannot register types before the container exists")
	}

	if b.container.HasRegistration(key) {
		b.log(fmt.Sprintf("Type '%s' was already registered by the application. Skipping.", key), logging.CategoryDebug, logging.PriorityLow)
		return nil
	}

	lifetime := container.Transient
	if asSingleton {
		lifetime = container.Singleton
	}
	return b.container.Register(key, impl, lifetime)
}

func (b *Bootstrapper) configureServiceLocator() error {
	c := b.container
	b.locator.SetProvider(func() (locator.ServiceLocator, error) {
		return container.ResolveAs[locator.ServiceLocator](c, container.KeyServiceLocator)
	})
	return nil
}

func (b *Bootstrapper) configureRegionAdapterMappings() error {
	if b.hooks.ConfigureRegionAdapterMappings == nil {
		return nil
	}
	return b.hooks.ConfigureRegionAdapterMappings(b)
}

func (b *Bootstrapper) configureDefaultRegionBehaviors() error {
	if b.hooks.ConfigureDefaultRegionBehaviors == nil {
		return nil
	}
	return b.hooks.ConfigureDefaultRegionBehaviors(b)
}

func (b *Bootstrapper) registerFrameworkFaults() error {
	b.faults.Register(faults.KindActivation)
	b.faults.Register(faults.KindConfigurationProcessing, faults.KindComponentNotFound)
	return nil
}

func (b *Bootstrapper) createShell() error {
	create := b.hooks.CreateShell
	if create == nil {
		create = DefaultCreateShell
	}
	s, err := create(b)
	if err != nil {
		return err
	}
	if isNilShell(s) {
		s = nil
	}
	b.shell = s
	return nil
}

// isNilShell reports whether s is nil, including a nil *shell.MainWindow.
// Other shell types must be returned as an untyped nil for a headless run.
func isNilShell(s any) bool {
	switch v := s.(type) {
	case nil:
		return true
	case *shell.MainWindow:
		return v == nil
	default:
		return false
	}
}

// DefaultCreateShell resolves container.KeyShell when it is registered. No
// registration means a headless run.
func DefaultCreateShell(b *Bootstrapper) (any, error) {
	if !b.container.HasRegistration(container.KeyShell) {
		return nil, nil
	}
	return b.container.Resolve(container.KeyShell)
}

func (b *Bootstrapper) bindRegionManager() error {
	host, ok := b.shell.(region.Host)
	if !ok {
		return faults.New(faults.KindRegionCreation, "bind region manager",
			fmt.Errorf("shell %T does not declare regions", b.shell))
	}

	manager, err := container.ResolveAs[*region.Manager](b.container, container.KeyRegionManager)
	if err != nil {
		return err
	}
	if err := region.SetRegionManager(host, manager); err != nil {
		return err
	}
	b.log(UpdatingRegionsMessage, logging.CategoryDebug, logging.PriorityLow)
	if err := manager.RefreshAllRegions(); err != nil {
		return err
	}
	if b.metrics != nil {
		b.metrics.SetRegions(len(manager.Regions()))
	}
	return nil
}

func (b *Bootstrapper) initializeShell() error {
	if b.hooks.InitializeShell != nil {
		return b.hooks.InitializeShell(b)
	}
	return DefaultInitializeShell(b)
}

// DefaultInitializeShell makes the shell the host's main window and shows
// it. A shell that is not a shell.Window cannot be assigned and aborts the
// run.
func DefaultInitializeShell(b *Bootstrapper) error {
	w, _ := b.shell.(shell.Window)
	b.host.SetMainWindow(w)
	if w == nil || b.host.MainWindow() == nil {
		return &FatalError{
			Phase: PhaseInitializeShell,
			Err:   ErrShellWindowAssignment,
			Cause: fmt.Errorf("shell %T is not a window", b.shell),
		}
	}
	b.host.MainWindow().Show()
	return nil
}

func (b *Bootstrapper) initializeModules() error {
	manager, err := container.ResolveAs[ModuleRunner](b.container, container.KeyModuleManager)
	if err != nil {
		if key, ok := container.MissingKey(err); ok && key == container.KeyModuleCatalog {
			return &FatalError{Phase: PhaseInitializeModules, Err: ErrMissingModuleCatalog, Cause: err}
		}
		return err
	}
	return manager.Run()
}

// Logger returns the logger created in the first phase.
func (b *Bootstrapper) Logger() logging.Facade { return b.logger }

// ModuleCatalog returns the module catalog, or nil before it is created.
func (b *Bootstrapper) ModuleCatalog() *modularity.Catalog { return b.catalog }

// Container returns the container, or nil before it is created.
func (b *Bootstrapper) Container() *container.Container { return b.container }

// Shell returns the shell, or nil before it is created and for headless
// runs.
func (b *Bootstrapper) Shell() any { return b.shell }

// Host returns the hosting environment.
func (b *Bootstrapper) Host() shell.Host { return b.host }

// Locator returns the service locator handle.
func (b *Bootstrapper) Locator() *locator.Handle { return b.locator }

// Faults returns the fault kind registry.
func (b *Bootstrapper) Faults() *faults.Registry { return b.faults }

// UseDefaultConfiguration reports the flag passed to Run.
func (b *Bootstrapper) UseDefaultConfiguration() bool { return b.useDefault }

// Report returns the phase report of the current or last run. It is nil
// before Run.
func (b *Bootstrapper) Report() *Report { return b.report }
