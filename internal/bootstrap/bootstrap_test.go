package bootstrap

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bootkit/internal/container"
	"bootkit/internal/events"
	"bootkit/internal/faults"
	"bootkit/internal/metrics"
	"bootkit/internal/modularity"
	"bootkit/internal/region"
	"bootkit/internal/shell"
	"bootkit/pkg/logging"
)

func recorderLogger(rec *logging.Recorder) func(*Bootstrapper) (logging.Facade, error) {
	return func(*Bootstrapper) (logging.Facade, error) { return rec, nil }
}

// phaseMessages filters the recorder down to phase entry messages and the
// completion message.
func phaseMessages(rec *logging.Recorder) []string {
	known := map[string]bool{SequenceCompletedMessage: true}
	for _, p := range Phases() {
		known[p.Message()] = true
	}
	var out []string
	for _, m := range rec.Messages() {
		if known[m] {
			out = append(out, m)
		}
	}
	return out
}

func expectedMessages(phases ...Phase) []string {
	out := make([]string, 0, len(phases)+1)
	for _, p := range phases {
		out = append(out, p.Message())
	}
	return append(out, SequenceCompletedMessage)
}

func shellInstaller(w any) Installer {
	return InstallerFunc(func(r Registrar) error {
		return r.RegisterTypeIfMissing(container.KeyShell, container.Impl("MainWindow", func(container.Resolver) (any, error) {
			return w, nil
		}), false)
	})
}

func newMainWindow() *shell.MainWindow {
	return shell.NewMainWindow("Test",
		region.Target{RegionName: "MainRegion", Kind: region.ContentControl},
		region.Target{RegionName: "NavigationRegion", Kind: region.ItemsControl},
	)
}

type greeterModule struct {
	Regions *region.Manager `inject:"RegionManager"`
}

func (m *greeterModule) Initialize() error {
	return m.Regions.RegisterViewWithRegion("MainRegion", "Greeting", func() (any, error) {
		return "hello", nil
	})
}

func TestRun_PhaseOrder(t *testing.T) {
	rec := logging.NewRecorder(nil)
	b := New(Options{Hooks: Hooks{CreateLogger: recorderLogger(rec)}}, shellInstaller(newMainWindow()))

	_, err := b.Run(true)
	require.NoError(t, err)

	assert.Equal(t, expectedMessages(Phases()...), phaseMessages(rec))

	for _, e := range rec.Entries() {
		if e.Message == PhaseCreateContainer.Message() {
			assert.Equal(t, logging.CategoryDebug, e.Category)
			assert.Equal(t, logging.PriorityLow, e.Priority)
		}
	}
}

func TestRun_HeadlessSkipsShellPhases(t *testing.T) {
	rec := logging.NewRecorder(nil)
	b := New(Options{Hooks: Hooks{CreateLogger: recorderLogger(rec)}})

	proc, err := b.Run(true)
	require.NoError(t, err)
	assert.True(t, proc.Headless())

	assert.Equal(t, expectedMessages(
		PhaseCreateModuleCatalog,
		PhaseConfigureModuleCatalog,
		PhaseCreateContainer,
		PhaseConfigureContainer,
		PhaseConfigureServiceLocator,
		PhaseConfigureRegionAdapterMappings,
		PhaseConfigureDefaultRegionBehaviors,
		PhaseRegisterFrameworkFaults,
		PhaseCreateShell,
		PhaseInitializeModules,
	), phaseMessages(rec)[1:])

	for _, p := range []Phase{PhaseBindRegionManager, PhaseInitializeShell} {
		res, ok := proc.Report.Phase(p)
		require.True(t, ok)
		assert.Equal(t, StatusSkipped, res.Status)
	}
	res, ok := proc.Report.Phase(PhaseInitializeModules)
	require.True(t, ok)
	assert.Equal(t, StatusOK, res.Status)
	assert.Nil(t, proc.Host.MainWindow())
}

func TestRun_NilMainWindowIsHeadless(t *testing.T) {
	b := New(Options{Hooks: Hooks{
		CreateLogger: recorderLogger(logging.NewRecorder(nil)),
		CreateShell: func(*Bootstrapper) (any, error) {
			return (*shell.MainWindow)(nil), nil
		},
	}})

	proc, err := b.Run(true)
	require.NoError(t, err)
	assert.True(t, proc.Headless())
	assert.Nil(t, proc.Shell)

	for _, p := range []Phase{PhaseBindRegionManager, PhaseInitializeShell} {
		res, ok := proc.Report.Phase(p)
		require.True(t, ok)
		assert.Equal(t, StatusSkipped, res.Status)
	}
	assert.Nil(t, proc.Host.MainWindow())
}

func TestRun_BindRegionManagerLogsRegionUpdate(t *testing.T) {
	rec := logging.NewRecorder(nil)
	b := New(Options{Hooks: Hooks{CreateLogger: recorderLogger(rec)}}, shellInstaller(newMainWindow()))

	_, err := b.Run(true)
	require.NoError(t, err)

	messages := rec.Messages()
	bind := indexOf(messages, PhaseBindRegionManager.Message())
	update := indexOf(messages, UpdatingRegionsMessage)
	initShell := indexOf(messages, PhaseInitializeShell.Message())
	require.NotEqual(t, -1, bind)
	require.NotEqual(t, -1, update)
	assert.Less(t, bind, update)
	assert.Less(t, update, initShell)
}

func TestRun_HeadlessDoesNotLogRegionUpdate(t *testing.T) {
	rec := logging.NewRecorder(nil)
	b := New(Options{Hooks: Hooks{CreateLogger: recorderLogger(rec)}})

	_, err := b.Run(true)
	require.NoError(t, err)
	assert.NotContains(t, rec.Messages(), UpdatingRegionsMessage)
}

func indexOf(messages []string, message string) int {
	for i, m := range messages {
		if m == message {
			return i
		}
	}
	return -1
}

func TestRun_NilLoggerAbortsFirst(t *testing.T) {
	catalogCalled := false
	b := New(Options{Hooks: Hooks{
		CreateLogger: func(*Bootstrapper) (logging.Facade, error) { return nil, nil },
		CreateModuleCatalog: func(*Bootstrapper) (*modularity.Catalog, error) {
			catalogCalled = true
			return modularity.NewCatalog()
		},
	}})

	proc, err := b.Run(true)
	require.Error(t, err)
	assert.Nil(t, proc)
	assert.True(t, IsFatal(err))
	assert.ErrorIs(t, err, ErrMissingLogger)
	assert.False(t, catalogCalled)

	var fe *FatalError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, PhaseCreateLogger, fe.Phase)

	report := b.Report()
	require.Len(t, report.Phases, 1)
	assert.Equal(t, StatusError, report.Status)
}

func TestRun_NilFactoryResults(t *testing.T) {
	tests := []struct {
		name  string
		hooks Hooks
		want  error
		phase Phase
	}{
		{
			name: "catalog",
			hooks: Hooks{CreateModuleCatalog: func(*Bootstrapper) (*modularity.Catalog, error) {
				return nil, nil
			}},
			want:  ErrMissingModuleCatalog,
			phase: PhaseCreateModuleCatalog,
		},
		{
			name: "container",
			hooks: Hooks{CreateContainer: func(*Bootstrapper) (*container.Container, error) {
				return nil, nil
			}},
			want:  ErrMissingContainer,
			phase: PhaseCreateContainer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := logging.NewRecorder(nil)
			tt.hooks.CreateLogger = recorderLogger(rec)
			b := New(Options{Hooks: tt.hooks})

			_, err := b.Run(true)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var fe *FatalError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.phase, fe.Phase)

			assert.NotContains(t, rec.Messages(), PhaseInitializeModules.Message())
			assert.NotContains(t, rec.Messages(), SequenceCompletedMessage)
		})
	}
}

func TestRun_FailedPhaseStopsDownstream(t *testing.T) {
	boom := errors.New("catalog source unavailable")
	containerCalled := false
	rec := logging.NewRecorder(nil)

	b := New(Options{Hooks: Hooks{
		CreateLogger:           recorderLogger(rec),
		ConfigureModuleCatalog: func(*Bootstrapper) error { return boom },
		CreateContainer: func(*Bootstrapper) (*container.Container, error) {
			containerCalled = true
			return container.New(), nil
		},
	}})

	_, err := b.Run(true)
	assert.ErrorIs(t, err, boom)
	assert.False(t, IsFatal(err))
	assert.False(t, containerCalled)

	report := b.Report()
	require.Len(t, report.Phases, 3)
	assert.Equal(t, StatusError, report.Phases[2].Status)
	assert.Equal(t, boom.Error(), report.Phases[2].Error)
}

func TestRun_SecondRunFails(t *testing.T) {
	b := New(Options{Hooks: Hooks{CreateLogger: recorderLogger(logging.NewRecorder(nil))}})

	_, err := b.Run(true)
	require.NoError(t, err)

	proc, err := b.Run(true)
	assert.Nil(t, proc)
	assert.ErrorIs(t, err, ErrAlreadyRun)
}

func TestRun_DefaultRegistrations(t *testing.T) {
	b := New(Options{Hooks: Hooks{CreateLogger: recorderLogger(logging.NewRecorder(nil))}})

	proc, err := b.Run(true)
	require.NoError(t, err)
	c := proc.Container

	for _, key := range []container.Key{container.KeyLogger, container.KeyModuleCatalog, container.KeyContainer} {
		reg, ok := c.Registration(key)
		require.True(t, ok, key)
		assert.True(t, reg.IsInstance(), key)
	}

	for _, key := range DefaultKeys() {
		assert.True(t, c.HasRegistration(key), key)
	}

	transient := []container.Key{
		container.KeyNavigationJournalEntry,
		container.KeyNavigationJournal,
		container.KeyNavigationService,
		container.KeyDelayedRegionCreationBehavior,
	}
	for _, key := range transient {
		reg, _ := c.Registration(key)
		assert.Equal(t, container.Transient, reg.Lifetime, key)
	}
	reg, _ := c.Registration(container.KeyRegionManager)
	assert.Equal(t, container.Singleton, reg.Lifetime)

	for _, capability := range []container.Capability{region.CapabilityAdapter, region.CapabilityBehavior} {
		for _, impl := range region.Capabilities().Implementations(capability) {
			reg, ok := c.Registration(container.CapabilityKey(capability, impl.Name))
			require.True(t, ok, impl.Name)
			assert.Equal(t, container.Transient, reg.Lifetime)
		}
	}

	assert.Equal(t, []faults.Kind{
		faults.KindActivation,
		faults.KindConfigurationProcessing,
		faults.KindComponentNotFound,
	}, proc.Faults.Kinds())
}

func TestRegisterTypeIfMissing(t *testing.T) {
	impl := func(name string) *container.Implementation {
		return container.Impl(name, func(container.Resolver) (any, error) { return name, nil })
	}

	t.Run("invalid arguments", func(t *testing.T) {
		b := New(Options{})
		b.container = container.New()

		err := b.RegisterTypeIfMissing("", impl("A"), true)
		assert.True(t, IsArgumentError(err))

		err = b.RegisterTypeIfMissing("Widget", nil, true)
		assert.True(t, IsArgumentError(err))

		err = b.RegisterTypeIfMissing("Widget", &container.Implementation{Name: "NoFactory"}, true)
		assert.True(t, IsArgumentError(err))
		assert.False(t, b.container.HasRegistration("Widget"))
	})

	t.Run("absent key is registered", func(t *testing.T) {
		b := New(Options{})
		b.container = container.New()

		require.NoError(t, b.RegisterTypeIfMissing("Widget", impl("A"), false))

		reg, ok := b.container.Registration("Widget")
		require.True(t, ok)
		assert.Equal(t, "A", reg.Implementation)
		assert.Equal(t, container.Transient, reg.Lifetime)
	})

	t.Run("present key is kept", func(t *testing.T) {
		rec := logging.NewRecorder(nil)
		b := New(Options{})
		b.container = container.New()
		b.logger = rec

		require.NoError(t, b.RegisterTypeIfMissing("Widget", impl("A"), true))
		require.NoError(t, b.RegisterTypeIfMissing("Widget", impl("B"), false))

		reg, _ := b.container.Registration("Widget")
		assert.Equal(t, "A", reg.Implementation)
		assert.Equal(t, container.Singleton, reg.Lifetime)
		assert.Len(t, b.container.Registrations(), 1)
		assert.Contains(t, rec.Messages(), "Type 'Widget' was already registered by the application. Skipping.")
	})
}

func TestRun_FirstInstallerWins(t *testing.T) {
	register := func(name string) Installer {
		return InstallerFunc(func(r Registrar) error {
			return r.RegisterTypeIfMissing("Widget", container.Impl(name, func(container.Resolver) (any, error) {
				return name, nil
			}), true)
		})
	}

	b := New(Options{Hooks: Hooks{CreateLogger: recorderLogger(logging.NewRecorder(nil))}}, register("A"), register("B"))
	proc, err := b.Run(true)
	require.NoError(t, err)

	v, err := proc.Container.Resolve("Widget")
	require.NoError(t, err)
	assert.Equal(t, "A", v)
}

func TestRun_InstallerReplacesDefault(t *testing.T) {
	agg := events.NewAggregator()
	var completed []events.Event
	agg.Subscribe(events.TopicBootstrapCompleted, func(e events.Event) { completed = append(completed, e) })

	rec := logging.NewRecorder(nil)
	custom := InstallerFunc(func(r Registrar) error {
		return r.Container().RegisterInstance(container.KeyEventAggregator, agg)
	})

	b := New(Options{Hooks: Hooks{CreateLogger: recorderLogger(rec)}}, custom)
	proc, err := b.Run(true)
	require.NoError(t, err)

	got, err := proc.Events()
	require.NoError(t, err)
	assert.Same(t, agg, got)
	assert.Contains(t, rec.Messages(), "Type 'EventAggregator' was already registered by the application. Skipping.")

	require.Len(t, completed, 1)
	assert.Equal(t, proc.RunID.String(), completed[0].Data.Name)
}

func TestRun_InstallerErrorAborts(t *testing.T) {
	boom := errors.New("bad installer")
	b := New(Options{Hooks: Hooks{CreateLogger: recorderLogger(logging.NewRecorder(nil))}},
		InstallerFunc(func(Registrar) error { return boom }))

	_, err := b.Run(true)
	assert.ErrorIs(t, err, boom)

	res, ok := b.Report().Phase(PhaseConfigureContainer)
	require.True(t, ok)
	assert.Equal(t, StatusError, res.Status)
	_, ok = b.Report().Phase(PhaseConfigureServiceLocator)
	assert.False(t, ok)
}

func TestRun_EndToEnd(t *testing.T) {
	types := modularity.NewTypeRegistry()
	require.NoError(t, types.Register("greeter", func() modularity.Module { return &greeterModule{} }))

	window := newMainWindow()
	host := shell.NewHeadlessHost()
	rec := logging.NewRecorder(nil)
	recorder := metrics.New()

	appInstaller := InstallerFunc(func(r Registrar) error {
		return r.Container().RegisterInstance(container.KeyModuleTypeRegistry, types)
	})

	b := New(Options{
		Hooks: Hooks{
			CreateLogger: recorderLogger(rec),
			CreateModuleCatalog: func(*Bootstrapper) (*modularity.Catalog, error) {
				return modularity.NewCatalog(modularity.ModuleInfo{Name: "Greeter", Type: "greeter"})
			},
		},
		Host:    host,
		Metrics: recorder,
	}, appInstaller, shellInstaller(window))

	proc, err := b.Run(true)
	require.NoError(t, err)

	assert.True(t, window.IsShown())
	assert.Same(t, window, host.MainWindow())
	assert.Same(t, window, proc.Shell)
	require.NotNil(t, window.RegionManager())

	regions, err := proc.RegionManager()
	require.NoError(t, err)
	assert.Same(t, regions, window.RegionManager())
	assert.ElementsMatch(t, []string{"MainRegion", "NavigationRegion"}, regions.Regions())

	main, ok := regions.Region("MainRegion")
	require.True(t, ok)
	v, ok := main.View("Greeting")
	require.True(t, ok)
	assert.Equal(t, "hello", v)

	info, ok := proc.Catalog.Module("Greeter")
	require.True(t, ok)
	assert.Equal(t, modularity.StateInitialized, info.State)

	loc, err := proc.Locator.Current()
	require.NoError(t, err)
	mm, err := loc.Resolve(container.KeyModuleManager)
	require.NoError(t, err)
	assert.IsType(t, &modularity.Manager{}, mm)

	assert.Equal(t, StatusOK, proc.Report.Status)
	require.Len(t, proc.Report.Phases, len(Phases()))
	for _, res := range proc.Report.Phases {
		assert.Equal(t, StatusOK, res.Status, res.Name)
	}

	runs, err := testutil.GatherAndCount(recorder.Registry(), "bootkit_bootstrap_runs_total")
	require.NoError(t, err)
	assert.Equal(t, 1, runs)
	phases, err := testutil.GatherAndCount(recorder.Registry(), "bootkit_bootstrap_phase_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, len(Phases()), phases)
}

func TestRun_MissingCatalogIsTranslated(t *testing.T) {
	installer := InstallerFunc(func(r Registrar) error {
		return r.RegisterTypeIfMissing(container.KeyModuleManager, modularity.ManagerImplementation, true)
	})
	b := New(Options{Hooks: Hooks{CreateLogger: recorderLogger(logging.NewRecorder(nil))}}, installer)

	_, err := b.Run(false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingModuleCatalog)

	var fe *FatalError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, PhaseInitializeModules, fe.Phase)
	assert.True(t, container.IsResolutionError(fe.Cause))
}

func TestRun_OtherResolutionErrorsPropagate(t *testing.T) {
	b := New(Options{Hooks: Hooks{CreateLogger: recorderLogger(logging.NewRecorder(nil))}})

	_, err := b.Run(false)
	require.Error(t, err)
	assert.False(t, IsFatal(err))
	assert.True(t, container.IsResolutionError(err))

	key, ok := container.MissingKey(err)
	require.True(t, ok)
	assert.Equal(t, container.KeyModuleManager, key)
}

type fakeRunner struct{ ran bool }

func (f *fakeRunner) Run() error {
	f.ran = true
	return nil
}

func TestRun_WithoutDefaultsAppliesInstallersOnly(t *testing.T) {
	runner := &fakeRunner{}
	installer := InstallerFunc(func(r Registrar) error {
		return r.Container().RegisterInstance(container.KeyModuleManager, runner)
	})
	b := New(Options{Hooks: Hooks{CreateLogger: recorderLogger(logging.NewRecorder(nil))}}, installer)

	proc, err := b.Run(false)
	require.NoError(t, err)
	assert.True(t, runner.ran)
	assert.False(t, proc.Container.HasRegistration(container.KeyLogger))
	assert.False(t, proc.Container.HasRegistration(container.KeyRegionManager))
	assert.Len(t, proc.Container.Registrations(), 1)
}

// regionOnlyShell declares regions but is not a window.
type regionOnlyShell struct {
	manager *region.Manager
}

func (s *regionOnlyShell) RegionTargets() []region.Target     { return nil }
func (s *regionOnlyShell) SetRegionManager(m *region.Manager) { s.manager = m }
func (s *regionOnlyShell) RegionManager() *region.Manager     { return s.manager }

func TestRun_ShellWindowAssignmentFails(t *testing.T) {
	rec := logging.NewRecorder(nil)
	b := New(Options{Hooks: Hooks{CreateLogger: recorderLogger(rec)}}, shellInstaller(&regionOnlyShell{}))

	_, err := b.Run(true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShellWindowAssignment)

	var fe *FatalError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, PhaseInitializeShell, fe.Phase)
	assert.NotContains(t, rec.Messages(), PhaseInitializeModules.Message())
}

func TestRun_ShellHooks(t *testing.T) {
	var order []string
	window := newMainWindow()

	b := New(Options{Hooks: Hooks{
		CreateLogger: recorderLogger(logging.NewRecorder(nil)),
		CreateShell: func(*Bootstrapper) (any, error) {
			order = append(order, "create")
			return window, nil
		},
		InitializeShell: func(b *Bootstrapper) error {
			order = append(order, "initialize")
			assert.NotNil(t, window.RegionManager(), "region manager is bound before the shell initializes")
			return DefaultInitializeShell(b)
		},
	}})

	proc, err := b.Run(true)
	require.NoError(t, err)
	assert.Equal(t, []string{"create", "initialize"}, order)
	assert.Same(t, window, proc.Host.MainWindow())
}

func TestFatalError(t *testing.T) {
	cause := errors.New("no catalog key")
	err := &FatalError{Phase: PhaseInitializeModules, Err: ErrMissingModuleCatalog, Cause: cause}

	assert.Equal(t, "bootstrap failed in InitializeModules: module catalog is missing (no catalog key)", err.Error())
	assert.ErrorIs(t, err, ErrMissingModuleCatalog)
	assert.NotErrorIs(t, err, cause)
	assert.False(t, IsFatal(cause))
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "CreateLogger", PhaseCreateLogger.String())
	assert.Equal(t, "InitializeModules", PhaseInitializeModules.String())
	assert.Equal(t, "Phase(99)", Phase(99).String())
	assert.Len(t, Phases(), 13)
}
