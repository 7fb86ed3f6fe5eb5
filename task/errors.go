package task

import "fmt"

// InitError is returned by a TaskConstructor when a task cannot be built.
// It always carries one of the three reasons below; Unwrap exposes the
// underlying cause so callers can errors.As/Is through it the same way the
// teacher's hookError wraps a recoverable cause (client/allocrunner/
// taskrunner/errors_test.go).
type InitError struct {
	cause error
}

// Error implements error by delegating to the wrapped cause, matching the
// teacher's hookError.Error().
func (e *InitError) Error() string {
	return e.cause.Error()
}

// Unwrap exposes the wrapped cause for errors.As/errors.Is.
func (e *InitError) Unwrap() error {
	return e.cause
}

// ResourceMissingError is the InitError cause when a constructor requires
// a resource the provider could not supply.
type ResourceMissingError struct {
	Name string
}

func (e *ResourceMissingError) Error() string {
	return fmt.Sprintf("required resource %q is not available", e.Name)
}

// ResourceTypeMismatchError is the InitError cause when a constructor
// retrieves a resource under the wrong type.
type ResourceTypeMismatchError struct {
	Name     string
	Expected string
}

func (e *ResourceTypeMismatchError) Error() string {
	return fmt.Sprintf("resource %q is not of type %s", e.Name, e.Expected)
}

// NewResourceMissingError builds the InitError for a missing resource.
func NewResourceMissingError(name string) *InitError {
	return &InitError{cause: &ResourceMissingError{Name: name}}
}

// NewResourceTypeMismatchError builds the InitError for a type-mismatched
// resource retrieval.
func NewResourceTypeMismatchError(name, expected string) *InitError {
	return &InitError{cause: &ResourceTypeMismatchError{Name: name, Expected: expected}}
}

// NewCustomInitError wraps a constructor-defined cause.
func NewCustomInitError(cause error) *InitError {
	return &InitError{cause: cause}
}
