// Package faults is the error taxonomy used to tell framework noise apart
// from the errors that actually caused a failure.
//
// Every framework error type carries a Kind, either by being a *Error or by
// implementing Kinded. A Registry holds the set of kinds that error
// reporting should look through; RootCause peels those off the outside of
// an error chain. The registry is append-only for the lifetime of a
// bootstrap Process.
package faults
