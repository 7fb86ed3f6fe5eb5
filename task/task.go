// Package task defines the contract long-running node units implement,
// and the typed errors their constructors can fail with.
package task

import (
	"context"

	"github.com/nodecore/noderuntime/stopsignal"
)

// HealthProbe is reserved for a health aggregator task (see
// task/healthcheck) to poll. Concrete domain checks live outside this
// package; the runtime only ever moves them around.
type HealthProbe interface {
	// CheckHealth reports the current status of whatever the probe backs.
	// A non-nil error means unhealthy; the error is the reason.
	CheckHealth(ctx context.Context) error
}

// Task is the polymorphic unit of work the node drives to completion.
//
// Run is consumed by value from the node's perspective: the node calls it
// at most once. AfterShutdown is extracted before Run is spawned, so the
// node retains it even once the task value itself has been handed to the
// executor.
type Task interface {
	// Run performs the task's main work. It must observe stop and return
	// within a bounded time after the edge fires; the node does not force
	// cancellation.
	Run(stop stopsignal.Subscription) error

	// AfterShutdown returns a hook to run, sequentially with every other
	// task's hook, once every Run has resolved. ok is false when the task
	// has no post-shutdown work.
	AfterShutdown() (hook func(context.Context), ok bool)

	// HealthProbe returns this task's probe, if it exposes one. ok is
	// false when the task has nothing to report.
	HealthProbe() (probe HealthProbe, ok bool)
}

// BaseTask provides no-op AfterShutdown/HealthProbe implementations so
// concrete tasks that don't need them can embed BaseTask and implement
// only Run, mirroring how most of the teacher's task hooks only implement
// the lifecycle callbacks they actually need.
type BaseTask struct{}

// AfterShutdown implements Task with no hook.
func (BaseTask) AfterShutdown() (func(context.Context), bool) { return nil, false }

// HealthProbe implements Task with no probe.
func (BaseTask) HealthProbe() (HealthProbe, bool) { return nil, false }
