package bootstrap

import "fmt"

// Phase is one step of the bootstrap sequence, in execution order.
type Phase int

const (
	PhaseCreateLogger Phase = iota + 1
	PhaseCreateModuleCatalog
	PhaseConfigureModuleCatalog
	PhaseCreateContainer
	PhaseConfigureContainer
	PhaseConfigureServiceLocator
	PhaseConfigureRegionAdapterMappings
	PhaseConfigureDefaultRegionBehaviors
	PhaseRegisterFrameworkFaults
	PhaseCreateShell
	PhaseBindRegionManager
	PhaseInitializeShell
	PhaseInitializeModules
)

var phaseInfo = map[Phase]struct {
	name    string
	message string
}{
	PhaseCreateLogger:                    {"CreateLogger", "Logger was created successfully."},
	PhaseCreateModuleCatalog:             {"CreateModuleCatalog", "Creating module catalog."},
	PhaseConfigureModuleCatalog:          {"ConfigureModuleCatalog", "Configuring module catalog."},
	PhaseCreateContainer:                 {"CreateContainer", "Creating the container."},
	PhaseConfigureContainer:              {"ConfigureContainer", "Configuring the container."},
	PhaseConfigureServiceLocator:         {"ConfigureServiceLocator", "Configuring the service locator."},
	PhaseConfigureRegionAdapterMappings:  {"ConfigureRegionAdapterMappings", "Configuring the region adapters."},
	PhaseConfigureDefaultRegionBehaviors: {"ConfigureDefaultRegionBehaviors", "Configuring default region behaviors."},
	PhaseRegisterFrameworkFaults:         {"RegisterFrameworkFaults", "Registering framework fault kinds."},
	PhaseCreateShell:                     {"CreateShell", "Creating the shell."},
	PhaseBindRegionManager:               {"BindRegionManager", "Setting the region manager."},
	PhaseInitializeShell:                 {"InitializeShell", "Initializing the shell."},
	PhaseInitializeModules:               {"InitializeModules", "Initializing modules."},
}

// SequenceCompletedMessage is logged after the last phase.
const SequenceCompletedMessage = "Bootstrapper sequence completed."

// UpdatingRegionsMessage is logged by the bind region manager phase before
// the regions are refreshed.
const UpdatingRegionsMessage = "Updating regions."

// Phases returns every phase in execution order.
func Phases() []Phase {
	out := make([]Phase, 0, len(phaseInfo))
	for p := PhaseCreateLogger; p <= PhaseInitializeModules; p++ {
		out = append(out, p)
	}
	return out
}

// String returns the phase name.
func (p Phase) String() string {
	if info, ok := phaseInfo[p]; ok {
		return info.name
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Message returns the log message written when the phase starts.
func (p Phase) Message() string {
	return phaseInfo[p].message
}
