package container

import (
	"errors"
	"fmt"
	"strings"

	"bootkit/internal/faults"
)

// ErrInvalidRegistration is returned for registrations with an empty key or
// a missing implementation.
var ErrInvalidRegistration = errors.New("invalid registration")

// DuplicateRegistrationError is returned when a key is registered twice
// through the direct registration path.
type DuplicateRegistrationError struct {
	Key Key
}

// Error implements the error interface.
func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("component %s is already registered", e.Key)
}

// FaultKind implements faults.Kinded.
func (e *DuplicateRegistrationError) FaultKind() faults.Kind {
	return faults.KindConfigurationProcessing
}

// Reason says why a resolution failed.
type Reason int

const (
	// ReasonNotRegistered means no registration exists for the key.
	ReasonNotRegistered Reason = iota
	// ReasonFactoryFailed means the factory returned an error, usually
	// because one of its own dependencies could not be resolved.
	ReasonFactoryFailed
	// ReasonNilInstance means the factory returned nil without an error.
	ReasonNilInstance
	// ReasonCircular means the key is already being resolved further up the
	// chain.
	ReasonCircular
)

// ResolutionError is returned by Resolve. Nested failures keep the whole
// chain: the outer error names the requested key, the inner ones the
// dependencies that failed underneath it.
type ResolutionError struct {
	Key    Key
	Reason Reason
	Chain  []Key
	Err    error
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	switch e.Reason {
	case ReasonNotRegistered:
		return fmt.Sprintf("no component registered for %s", e.Key)
	case ReasonNilInstance:
		return fmt.Sprintf("factory for %s returned no instance", e.Key)
	case ReasonCircular:
		path := make([]string, 0, len(e.Chain)+1)
		for _, k := range e.Chain {
			path = append(path, string(k))
		}
		path = append(path, string(e.Key))
		return fmt.Sprintf("circular dependency resolving %s: %s", e.Key, strings.Join(path, " -> "))
	default:
		return fmt.Sprintf("failed to resolve %s: %v", e.Key, e.Err)
	}
}

// Unwrap returns the underlying failure.
func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// FaultKind implements faults.Kinded.
func (e *ResolutionError) FaultKind() faults.Kind {
	switch e.Reason {
	case ReasonNotRegistered:
		return faults.KindComponentNotFound
	case ReasonCircular:
		return faults.KindCyclicDependency
	default:
		return faults.KindActivation
	}
}

// IsResolutionError reports whether err is or wraps a ResolutionError.
func IsResolutionError(err error) bool {
	var re *ResolutionError
	return errors.As(err, &re)
}

// MissingKey returns the innermost key in err's chain that had no
// registration. It is how callers attribute a failed resolution to its
// root cause: resolving a manager that needs an unregistered catalog reports
// the catalog key, not the manager key.
func MissingKey(err error) (Key, bool) {
	var (
		found Key
		ok    bool
	)
	for e := err; e != nil; e = errors.Unwrap(e) {
		if re, is := e.(*ResolutionError); is && re.Reason == ReasonNotRegistered {
			found, ok = re.Key, true
		}
	}
	return found, ok
}
