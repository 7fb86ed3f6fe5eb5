// Package noderuntime is a node runtime: a container that wires together
// long-running asynchronous tasks with the shared resources they need,
// drives them to completion on a managed executor, and coordinates an
// orderly, deterministic shutdown.
//
// See the lifecycle state machine documented on Node.Run.
package noderuntime

import (
	"context"
	"sync/atomic"

	"github.com/hashicorp/go-hclog"

	"github.com/nodecore/noderuntime/internal/executor"
	"github.com/nodecore/noderuntime/internal/nameset"
	"github.com/nodecore/noderuntime/resource"
	"github.com/nodecore/noderuntime/stopsignal"
	"github.com/nodecore/noderuntime/task"
)

// reservedStopResourceName is the name under which the node seeds its own
// stop subscription as a resource, for tasks that prefer to discover it
// through GetResource rather than through NodeContext.StopSubscription
// directly (spec §3, "StopSignal ... if exposed as a resource").
const reservedStopResourceName = "noderuntime.stop_subscription"

// Constructor is a one-shot closure that, given a NodeContext, produces
// either a Task or a *task.InitError. The node owns the constructor until
// Run consumes it.
type Constructor func(*NodeContext) (task.Task, error)

// Node owns an executor, drives the task lifecycle state machine,
// aggregates init errors, runs tasks, and orchestrates shutdown and hooks.
//
// Configuring -> add_task -> Configuring
// Configuring -> run -> Initializing
// Initializing -> all ok -> Running
// Initializing -> any err -> Failed(init) [terminal]
// Running -> first task resolves -> Draining
// Draining -> all tasks resolved, hooks done -> Done(success|failure) [terminal]
type Node struct {
	logger   hclog.Logger
	registry *resource.Registry
	names    *nameset.Set
	stop     *stopsignal.Signal
	wiring   *stopsignal.WiringLatch
	exec     *executor.Executor

	constructors []namedConstructor
	started      atomic.Bool
}

type namedConstructor struct {
	name string
	ctor Constructor
}

// Option configures a Node at construction time.
type Option func(*Node)

// WithLogger overrides the node's logger. Defaults to hclog.NewNullLogger().
func WithLogger(logger hclog.Logger) Option {
	return func(n *Node) { n.logger = logger }
}

// New constructs a Node wired to provider. Its executor is created from
// context.Background(), which never carries the executor's ambient marker,
// so New does not detect a call made from inside another node's executor
// goroutine and succeeds in that case. ErrInvalidEnvironment is returned
// only when executor.New rejects the context it is given.
func New(provider resource.Provider, opts ...Option) (*Node, error) {
	exec, err := executor.New(context.Background())
	if err != nil {
		return nil, ErrInvalidEnvironment
	}

	n := &Node{
		logger:   hclog.NewNullLogger(),
		registry: resource.NewRegistry(provider),
		names:    nameset.New(),
		stop:     stopsignal.New(),
		wiring:   stopsignal.NewWiringLatch(),
		exec:     exec,
	}
	for _, opt := range opts {
		opt(n)
	}

	n.registry.Insert(reservedStopResourceName, n.stop.Subscribe())
	_ = n.names.Claim(reservedStopResourceName, nameset.KindResource)

	return n, nil
}

// AddTask registers a named task constructor. The constructor is not
// invoked until Run; a duplicate name (across resources, collections, or
// tasks) is a programmer error and panics immediately, the same way it
// would be caught by a type system that tracked name uniqueness
// statically.
func (n *Node) AddTask(name string, ctor Constructor) *Node {
	if err := n.names.Claim(name, nameset.KindTask); err != nil {
		panic(err)
	}
	n.constructors = append(n.constructors, namedConstructor{name: name, ctor: ctor})
	return n
}

// ExecutorHandle returns a handle to the node's executor, stable across
// the node's life.
func (n *Node) ExecutorHandle() ExecutorHandle {
	return ExecutorHandle{exec: n.exec}
}

// StopSubscription returns a fresh subscription to the node's stop signal,
// for external observers that aren't themselves tasks.
func (n *Node) StopSubscription() stopsignal.Subscription {
	return n.stop.Subscribe()
}
