package noderuntime

import (
	"context"

	"github.com/nodecore/noderuntime/internal/executor"
	"github.com/nodecore/noderuntime/internal/nameset"
	"github.com/nodecore/noderuntime/resource"
	"github.com/nodecore/noderuntime/stopsignal"
)

// ExecutorHandle lets a task constructor or a running task spawn auxiliary
// work on the node's executor. A constructor must not block on async work
// through any executor other than this one.
type ExecutorHandle struct {
	exec *executor.Executor
}

// Go spawns fn on the node's executor. The work is tagged with index 0;
// the index is only meaningful for tasks spawned directly by Node.Run.
func (h ExecutorHandle) Go(fn func(ctx context.Context) error) executor.Handle {
	return h.exec.Go(0, fn)
}

// NodeContext is the short-lived, read-only view handed to each task
// constructor. Its lifetime ends when the constructor returns; it must not
// be retained afterward.
type NodeContext struct {
	registry *resource.Registry
	names    *nameset.Set
	stop     *stopsignal.Signal
	wiring   *stopsignal.WiringLatch
	exec     *executor.Executor
}

// StopSubscription returns a fresh, independent observer of the node's
// stop signal.
func (nc *NodeContext) StopSubscription() stopsignal.Subscription {
	return nc.stop.Subscribe()
}

// WiredSubscription returns a subscription to the wiring latch, fired once
// every constructor in this batch has returned successfully.
func (nc *NodeContext) WiredSubscription() stopsignal.Subscription {
	return nc.wiring.Subscribe()
}

// ExecutorHandle returns a handle suitable for spawning auxiliary work on
// the node's executor.
func (nc *NodeContext) ExecutorHandle() ExecutorHandle {
	return ExecutorHandle{exec: nc.exec}
}

// GetResource retrieves a named resource as T, delegating to the node's
// registry. ok is false when the resource is absent everywhere; a
// present-but-wrong-typed resource returns a non-nil error instead.
func GetResource[T any](nc *NodeContext, name string) (T, bool, error) {
	return resource.Get[T](nc.registry, name)
}

// Collection fetches (creating if absent) the named collection of T.
// Claims the name in the shared namespace on first creation so it cannot
// later collide with a plain resource or a task name.
func Collection[T any](nc *NodeContext, name string) *resource.Collection[T] {
	if !nc.names.Contains(name) || !nc.registry.Has(name) {
		// A collision here is a programmer error surfaced immediately,
		// the same way a duplicate AddTask name is: both happen during
		// the single-threaded wiring phase, long before any task runs.
		if err := nc.names.Claim(name, nameset.KindCollection); err != nil {
			panic(err)
		}
	}
	return resource.CollectionOf[T](nc.registry, name)
}
