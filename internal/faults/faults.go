package faults

import (
	"errors"
	"fmt"
	"sync"
)

// Kind tags an error with the framework condition it represents.
type Kind int

const (
	KindUnknown Kind = iota
	// KindActivation is a service locator activation failure.
	KindActivation
	// KindConfigurationProcessing is a failure while processing container
	// configuration (installers, default registrations).
	KindConfigurationProcessing
	// KindComponentNotFound is a container resolution of an unregistered key.
	KindComponentNotFound
	// KindModuleInitialize is a module whose Initialize call failed.
	KindModuleInitialize
	// KindModuleTypeLoading is a catalog entry naming an unknown module type.
	KindModuleTypeLoading
	// KindDuplicateModule is a catalog with two modules of the same name.
	KindDuplicateModule
	// KindCyclicDependency is a dependency cycle in modules or resolutions.
	KindCyclicDependency
	// KindRegionCreation is a region that could not be created for a target.
	KindRegionCreation
	// KindUpdateRegions is a failure during a region refresh pass.
	KindUpdateRegions
)

var kindNames = map[Kind]string{
	KindUnknown:                 "Unknown",
	KindActivation:              "Activation",
	KindConfigurationProcessing: "ConfigurationProcessing",
	KindComponentNotFound:       "ComponentNotFound",
	KindModuleInitialize:        "ModuleInitialize",
	KindModuleTypeLoading:       "ModuleTypeLoading",
	KindDuplicateModule:         "DuplicateModule",
	KindCyclicDependency:        "CyclicDependency",
	KindRegionCreation:          "RegionCreation",
	KindUpdateRegions:           "UpdateRegions",
}

// String returns the kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Kinded is implemented by errors that carry a fault kind. Error types from
// other packages (for example container.ResolutionError) implement it so
// they take part in classification without depending on *Error.
type Kinded interface {
	FaultKind() Kind
}

// Error is a kinded error wrapping an optional cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// New creates a kinded error for operation op.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Op != "":
		return e.Op
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String()
	}
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// FaultKind implements Kinded.
func (e *Error) FaultKind() Kind {
	return e.Kind
}

// KindOf returns the kind of the first kinded error in err's chain.
func KindOf(err error) (Kind, bool) {
	var k Kinded
	if errors.As(err, &k) {
		return k.FaultKind(), true
	}
	return KindUnknown, false
}

// Is reports whether any error in err's tree carries kind. Joined errors
// are searched too.
func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	if k, ok := err.(Kinded); ok && k.FaultKind() == kind {
		return true
	}
	switch u := err.(type) {
	case interface{ Unwrap() error }:
		return Is(u.Unwrap(), kind)
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			if Is(e, kind) {
				return true
			}
		}
	}
	return false
}

// Registry is the append-only set of kinds considered framework noise when
// looking for the root cause of an error.
type Registry struct {
	mu    sync.RWMutex
	kinds []Kind
	set   map[Kind]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{set: make(map[Kind]struct{})}
}

// Register appends kinds to the registry. Kinds already present are ignored.
func (r *Registry) Register(kinds ...Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, k := range kinds {
		if _, ok := r.set[k]; ok {
			continue
		}
		r.set[k] = struct{}{}
		r.kinds = append(r.kinds, k)
	}
}

// IsFramework reports whether kind has been registered.
func (r *Registry) IsFramework(kind Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.set[kind]
	return ok
}

// IsFrameworkError reports whether err itself (not its causes) carries a
// registered kind.
func (r *Registry) IsFrameworkError(err error) bool {
	k, ok := err.(Kinded)
	return ok && r.IsFramework(k.FaultKind())
}

// Kinds returns the registered kinds in registration order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Kind, len(r.kinds))
	copy(out, r.kinds)
	return out
}

// RootCause strips framework errors from the outside of err's chain and
// returns the first error that is not framework noise. When every link is a
// framework error the innermost one is returned.
func RootCause(err error, r *Registry) error {
	if err == nil || r == nil {
		return err
	}

	current := err
	for r.IsFrameworkError(current) {
		next := errors.Unwrap(current)
		if next == nil {
			return current
		}
		current = next
	}
	return current
}
