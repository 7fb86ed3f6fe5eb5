package noderuntime

import (
	"context"

	"github.com/nodecore/noderuntime/internal/executor"
	"github.com/nodecore/noderuntime/stopsignal"
)

// taskRecord is the node's internal bookkeeping per initialized task. Once
// handed to the executor, there is no Go "moved-from" state to mark, so
// the run field (the task's Run method) is never cleared; it stands in for
// the spec's linear-use field: Run is only ever called once, from exactly
// one place in this file.
type taskRecord struct {
	name             string
	run              func(stopsignal.Subscription) error
	afterShutdown    func(context.Context)
	hasAfterShutdown bool
}

// Run consumes the node: it drains every registered constructor exactly
// once, spawns the resulting tasks, waits for the first to resolve, fires
// the stop signal, drains the rest, and finally runs every after-shutdown
// hook sequentially in registration order. It blocks the calling goroutine
// until shutdown completes.
//
// Calling Run more than once on the same Node is a programmer error and
// panics, mirroring the "must be Some prior to calling this method"
// invariant the original node framework enforces with an expect().
func (n *Node) Run() error {
	if !n.started.CompareAndSwap(false, true) {
		panic("noderuntime: Run called more than once")
	}

	constructors := n.constructors
	n.constructors = nil

	records, initErr := n.initialize(constructors)
	if initErr != nil {
		return initErr
	}

	n.wiring.Fire()

	handles := make([]executor.Handle, len(records))
	for i, rec := range records {
		rec := rec
		sub := n.stop.Subscribe()
		handles[i] = n.exec.Go(i, func(ctx context.Context) error {
			return rec.run(sub)
		})
	}

	first, remaining := executor.WaitFirst(handles)
	firstName := records[first.Index].name
	failure := n.logFirstOutcome(firstName, first)

	// Draining: fire stop, then wait for every remaining task to resolve.
	// Their results are discarded; the first-to-resolve outcome above is
	// the one that determines overall node failure.
	n.stop.Fire()
	for len(remaining) > 0 {
		_, remaining = executor.WaitFirst(remaining)
	}

	n.runAfterShutdownHooks(records)

	if failure {
		return &TaskFailedError{Name: firstName, Cause: first.Err}
	}
	return nil
}

// initialize drains every constructor, attempting the whole batch even
// once a failure is seen, so an operator sees every defect in one pass.
func (n *Node) initialize(constructors []namedConstructor) ([]taskRecord, error) {
	var records []taskRecord
	var failedNames []string
	var failedErrs []error

	for _, nc := range constructors {
		ctx := &NodeContext{
			registry: n.registry,
			names:    n.names,
			stop:     n.stop,
			wiring:   n.wiring,
			exec:     n.exec,
		}

		t, err := nc.ctor(ctx)
		if err != nil {
			n.logger.Error("task failed to initialize", "task", nc.name, "error", err)
			failedNames = append(failedNames, nc.name)
			failedErrs = append(failedErrs, err)
			continue
		}

		hook, hasHook := t.AfterShutdown()
		records = append(records, taskRecord{
			name:             nc.name,
			run:              t.Run,
			afterShutdown:    hook,
			hasAfterShutdown: hasHook,
		})
	}

	if len(failedNames) > 0 {
		return nil, newInitializationFailedError(failedNames, failedErrs)
	}
	if len(records) == 0 {
		return nil, ErrNoTasks
	}
	return records, nil
}

// logFirstOutcome logs the first task to resolve at the appropriate level
// and reports whether the node should be considered failed.
func (n *Node) logFirstOutcome(name string, outcome executor.Outcome) bool {
	switch {
	case outcome.Panic != nil:
		n.logger.Error("task panicked", "task", name, "panic", outcome.Panic)
		return true
	case outcome.Err != nil:
		n.logger.Error("task exited with an error", "task", name, "error", outcome.Err)
		return true
	default:
		n.logger.Info("task completed", "task", name)
		return false
	}
}

// runAfterShutdownHooks invokes every task's after-shutdown hook, in
// registration order, on a single goroutine. A hook that panics is logged
// but does not suppress the others.
func (n *Node) runAfterShutdownHooks(records []taskRecord) {
	var hooks []func(context.Context)
	var names []string
	for _, rec := range records {
		if rec.hasAfterShutdown {
			hooks = append(hooks, rec.afterShutdown)
			names = append(names, rec.name)
		}
	}

	runner := executor.NewHookRunner(n.exec.Context())
	for _, outcome := range runner.RunAll(hooks) {
		n.logger.Error("after-shutdown hook panicked", "task", names[outcome.Index], "panic", outcome.Panic)
	}
}
