package bootstrap

import (
	"errors"
	"fmt"
)

// Fatal bootstrap conditions. They are always wrapped in a *FatalError.
var (
	ErrMissingLogger         = errors.New("logger factory returned no logger")
	ErrMissingModuleCatalog  = errors.New("module catalog is missing")
	ErrMissingContainer      = errors.New("container factory returned no container")
	ErrShellWindowAssignment = errors.New("shell could not be assigned as the main window")
)

// ErrAlreadyRun is returned by a second Run on the same Bootstrapper.
var ErrAlreadyRun = errors.New("bootstrapper has already run")

// FatalError aborts the bootstrap sequence.
type FatalError struct {
	Phase Phase
	Err   error
	// Cause is the failure that was attributed to Err, if any.
	Cause error
}

// Error implements the error interface.
func (e *FatalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("bootstrap failed in %s: %v (%v)", e.Phase, e.Err, e.Cause)
	}
	return fmt.Sprintf("bootstrap failed in %s: %v", e.Phase, e.Err)
}

// Unwrap returns the fatal condition.
func (e *FatalError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err is or wraps a *FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}

// ArgumentError reports an invalid argument passed to a registration helper.
type ArgumentError struct {
	Param   string
	Message string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Param, e.Message)
}

// IsArgumentError reports whether err is or wraps an *ArgumentError.
func IsArgumentError(err error) bool {
	var ae *ArgumentError
	return errors.As(err, &ae)
}
