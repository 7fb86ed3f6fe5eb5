package noderuntime

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ErrInvalidEnvironment is returned by New when it detects it is being
// constructed from inside an already-active executor context.
var ErrInvalidEnvironment = errors.New("noderuntime: node cannot be constructed from within an ambient executor context")

// ErrNoTasks is returned by Run when zero tasks were registered.
var ErrNoTasks = errors.New("noderuntime: no tasks registered")

// InitializationFailedError is returned by Run when one or more task
// constructors failed. Names lists every failed task, in registration
// order, so an operator can fix every defect in one pass rather than
// one-by-one.
type InitializationFailedError struct {
	Names []string
	merr  *multierror.Error
}

// newInitializationFailedError builds the aggregate from the per-task causes,
// in registration order, using go-multierror the same way the teacher's
// client/consul/sync_test.go and alloc_runner_test.go accumulate per-item
// failures during a batch operation.
func newInitializationFailedError(names []string, causes []error) *InitializationFailedError {
	merr := multierror.Append(new(multierror.Error), causes...)
	return &InitializationFailedError{Names: names, merr: merr}
}

func (e *InitializationFailedError) Error() string {
	return fmt.Sprintf("noderuntime: %d task(s) failed to initialize: %s", len(e.Names), strings.Join(e.Names, ", "))
}

// Errors returns the per-task causes in registration order.
func (e *InitializationFailedError) Errors() []error {
	return e.merr.Errors
}

// Unwrap exposes the per-task causes so errors.Is/As can reach through to
// a specific TaskInitError.
func (e *InitializationFailedError) Unwrap() []error {
	return e.merr.Errors
}

// TaskFailedError is returned by Run when the first task to resolve did so
// with an error or a panic.
type TaskFailedError struct {
	Name  string
	Cause error
}

func (e *TaskFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("noderuntime: task %q failed: %s", e.Name, e.Cause)
	}
	return fmt.Sprintf("noderuntime: task %q failed", e.Name)
}

func (e *TaskFailedError) Unwrap() error {
	return e.Cause
}
