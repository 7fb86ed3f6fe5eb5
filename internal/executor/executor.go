// Package executor implements the worker pool the node owns: a place to
// spawn task run-futures and auxiliary work, a "first of N to finish"
// primitive (the Go analogue of futures::future::select_all), and a
// single-goroutine sub-context for running post-shutdown hooks in strict
// order.
package executor

import (
	"context"
	"fmt"
)

// ambientKey marks a context as originating from inside this package's own
// goroutines, so a nested New() can detect it and refuse (spec §5,
// "Forbidden nesting" — the Go analogue of Tokio's Handle::try_current()
// check, since Go has no implicit ambient runtime to inspect).
type ambientKey struct{}

// ErrAmbientExecutor is returned by New (and surfaced by the node as
// ErrInvalidEnvironment) when called from inside a goroutine this package
// itself spawned.
var ErrAmbientExecutor = fmt.Errorf("noderuntime: detected an ambient executor context; nesting would deadlock on Run")

// Outcome is the result of a single spawned unit of work.
type Outcome struct {
	Err     error
	Panic   any
	Index   int
	Handle  Handle
}

// Handle identifies one spawned unit of work and carries its result once
// available.
type Handle struct {
	index int
	done  chan Outcome
}

// Executor is a minimal parallel worker pool. It has no upper bound on
// concurrency (the teacher's own client runtime spawns one goroutine per
// alloc/task rather than pooling a fixed worker count), matching the
// spec's "parallel, work-stealing, multi-threaded executor" at the level
// of abstraction Go actually offers: the runtime's own goroutine
// scheduler, not a hand-rolled thread pool.
type Executor struct {
	ctx context.Context
}

// New returns an Executor, or ErrAmbientExecutor if ctx already carries
// this package's ambient marker.
func New(ctx context.Context) (*Executor, error) {
	if ctx.Value(ambientKey{}) != nil {
		return nil, ErrAmbientExecutor
	}
	return &Executor{ctx: context.WithValue(ctx, ambientKey{}, true)}, nil
}

// Go spawns fn on its own goroutine and returns a Handle to observe its
// result. index is caller-assigned bookkeeping (the task's position in
// registration order) and is echoed back in the Outcome for diagnostics.
func (e *Executor) Go(index int, fn func(ctx context.Context) error) Handle {
	h := Handle{index: index, done: make(chan Outcome, 1)}
	go func() {
		outcome := Outcome{Index: index, Handle: h}
		defer func() {
			if r := recover(); r != nil {
				outcome.Panic = r
			}
			h.done <- outcome
		}()
		outcome.Err = fn(e.ctx)
	}()
	return h
}

// Context returns the executor's ambient-marked context, suitable for
// passing to auxiliary work spawned outside of Go (e.g. an http.Server's
// BaseContext).
func (e *Executor) Context() context.Context {
	return e.ctx
}

// WaitFirst blocks until any one of handles resolves, then returns that
// Outcome along with the handles still outstanding. It imposes no
// additional ordering beyond whichever channel the Go runtime happens to
// make ready first, matching the spec's "no additional ordering imposed"
// tie-break rule.
func WaitFirst(handles []Handle) (Outcome, []Handle) {
	cases := make([]chan Outcome, len(handles))
	for i, h := range handles {
		cases[i] = h.done
	}

	first, remaining := selectFirst(cases, handles)
	return first, remaining
}

// selectFirst waits on chans through selectAny (reflect.Select) and returns
// the resolved Outcome together with every handle except the one that
// resolved.
func selectFirst(chans []chan Outcome, handles []Handle) (Outcome, []Handle) {
	idx, outcome := selectAny(chans)
	remaining := make([]Handle, 0, len(handles)-1)
	for i, h := range handles {
		if i != idx {
			remaining = append(remaining, h)
		}
	}
	return outcome, remaining
}
