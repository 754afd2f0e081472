package modularity

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Module is a pluggable unit of application feature code.
type Module interface {
	Initialize() error
}

// InitializationMode decides when a module is loaded.
type InitializationMode int

const (
	// WhenAvailable modules are loaded by Manager.Run.
	WhenAvailable InitializationMode = iota
	// OnDemand modules are loaded only through Manager.LoadModule.
	OnDemand
)

// String returns the mode name as used in catalog files.
func (m InitializationMode) String() string {
	switch m {
	case WhenAvailable:
		return "WhenAvailable"
	case OnDemand:
		return "OnDemand"
	default:
		return fmt.Sprintf("InitializationMode(%d)", int(m))
	}
}

// ParseInitializationMode parses a mode name, case-insensitively. An empty
// string is WhenAvailable.
func ParseInitializationMode(s string) (InitializationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "whenavailable":
		return WhenAvailable, nil
	case "ondemand":
		return OnDemand, nil
	default:
		return WhenAvailable, fmt.Errorf("unknown initialization mode %q", s)
	}
}

// MarshalYAML implements yaml.Marshaler.
func (m InitializationMode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *InitializationMode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseInitializationMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ModuleState is the lifecycle state of a cataloged module.
type ModuleState int

const (
	StateNotStarted ModuleState = iota
	StateInitializing
	StateInitialized
	StateFailed
)

// String returns the state name.
func (s ModuleState) String() string {
	switch s {
	case StateNotStarted:
		return "NotStarted"
	case StateInitializing:
		return "Initializing"
	case StateInitialized:
		return "Initialized"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("ModuleState(%d)", int(s))
	}
}

// ModuleInfo describes one cataloged module.
type ModuleInfo struct {
	// Name identifies the module inside the catalog.
	Name string `yaml:"name" json:"name"`

	// Type is the TypeRegistry name the module is built from. Empty means
	// the module name.
	Type string `yaml:"type,omitempty" json:"type,omitempty"`

	// DependsOn lists the names of modules that must be initialized first.
	DependsOn []string `yaml:"dependsOn,omitempty" json:"dependsOn,omitempty"`

	InitializationMode InitializationMode `yaml:"initializationMode,omitempty" json:"initializationMode"`

	State ModuleState `yaml:"-" json:"state"`
}

// TypeName returns Type, or Name when Type is empty.
func (m ModuleInfo) TypeName() string {
	if m.Type != "" {
		return m.Type
	}
	return m.Name
}

func (m ModuleInfo) clone() ModuleInfo {
	m.DependsOn = append([]string(nil), m.DependsOn...)
	return m
}
