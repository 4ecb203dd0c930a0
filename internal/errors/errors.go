// Package errors defines the error kinds shared by the task runner, the
// power-sum engine, and the image recolor engine.
//
// Three kinds exist:
//   - InvalidArgumentError: rejected input, detected before any work starts
//   - WorkerFailureError: a unit of work returned an error or panicked
//   - IOFailureError: decoding or encoding an image file failed
//
// Each typed error matches its sentinel through errors.Is:
//
//	if errors.Is(err, errors.ErrInvalidArgument) { ... }
//
//	var wf *errors.WorkerFailureError
//	if errors.As(err, &wf) {
//	    log.Printf("unit %d failed", wf.Index)
//	}
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions so callers only import this package.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Sentinel errors, one per kind.
var (
	// ErrInvalidArgument indicates that input validation failed.
	ErrInvalidArgument = New("invalid argument")
	// ErrWorkerFailure indicates that a unit of work terminated abnormally.
	ErrWorkerFailure = New("worker failure")
	// ErrIOFailure indicates that an image could not be read or written.
	ErrIOFailure = New("io failure")
)

// InvalidArgumentError describes a rejected input value.
type InvalidArgumentError struct {
	Field  string
	Value  any
	Reason string
}

// NewInvalidArgument creates an InvalidArgumentError for field.
func NewInvalidArgument(field string, value any, reason string) *InvalidArgumentError {
	return &InvalidArgumentError{Field: field, Value: value, Reason: reason}
}

func (e *InvalidArgumentError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid argument: %s", e.Reason)
	}
	return fmt.Sprintf("invalid argument %s=%v: %s", e.Field, e.Value, e.Reason)
}

// Is matches ErrInvalidArgument.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// WorkerFailureError records the failure of the unit submitted at Index.
//
// Panic holds the recovered value when the unit panicked instead of
// returning an error; Cause is then an error describing the panic.
type WorkerFailureError struct {
	Index int
	Cause error
	Panic any
}

// NewWorkerFailure wraps cause as the failure of unit index.
func NewWorkerFailure(index int, cause error) *WorkerFailureError {
	return &WorkerFailureError{Index: index, Cause: cause}
}

// NewWorkerPanic records a recovered panic value for unit index.
func NewWorkerPanic(index int, value any) *WorkerFailureError {
	return &WorkerFailureError{
		Index: index,
		Cause: fmt.Errorf("panic: %v", value),
		Panic: value,
	}
}

func (e *WorkerFailureError) Error() string {
	return fmt.Sprintf("worker %d failed: %v", e.Index, e.Cause)
}

func (e *WorkerFailureError) Unwrap() error {
	return e.Cause
}

// Is matches ErrWorkerFailure.
func (e *WorkerFailureError) Is(target error) bool {
	return target == ErrWorkerFailure
}

// IOFailureError describes a failed read or write at the image boundary.
type IOFailureError struct {
	Op    string // "open", "decode", "encode", "create"
	Path  string
	Cause error
}

// NewIOFailure wraps cause for the operation op on path.
func NewIOFailure(op, path string, cause error) *IOFailureError {
	return &IOFailureError{Op: op, Path: path, Cause: cause}
}

func (e *IOFailureError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Cause)
}

func (e *IOFailureError) Unwrap() error {
	return e.Cause
}

// Is matches ErrIOFailure.
func (e *IOFailureError) Is(target error) bool {
	return target == ErrIOFailure
}

// IsInvalidArgument reports whether err is, or wraps, an invalid argument error.
func IsInvalidArgument(err error) bool {
	return Is(err, ErrInvalidArgument)
}

// IsWorkerFailure reports whether err is, or wraps, a worker failure.
func IsWorkerFailure(err error) bool {
	return Is(err, ErrWorkerFailure)
}

// IsIOFailure reports whether err is, or wraps, an image I/O failure.
func IsIOFailure(err error) bool {
	return Is(err, ErrIOFailure)
}
