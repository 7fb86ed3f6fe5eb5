package executor

import "context"

// HookRunner executes a fixed, ordered list of funcs on a single goroutine,
// strictly sequentially, matching the spec's "single-threaded cooperative
// sub-context" requirement for after-shutdown hooks. A hook that panics is
// recovered and reported but does not stop the remaining hooks from
// running, the same "log it, keep going" policy the node applies to hook
// errors.
type HookRunner struct {
	ctx context.Context
}

// NewHookRunner binds a HookRunner to ctx, passed through to every hook.
func NewHookRunner(ctx context.Context) *HookRunner {
	return &HookRunner{ctx: ctx}
}

// HookOutcome reports what happened running one hook, identified by its
// index in the list passed to RunAll.
type HookOutcome struct {
	Index int
	Panic any
}

// RunAll invokes each hook in order, on one goroutine, waiting for each to
// return before starting the next. It returns one HookOutcome per hook
// that panicked; hooks that complete normally produce no entry.
func (r *HookRunner) RunAll(hooks []func(context.Context)) []HookOutcome {
	var panics []HookOutcome

	done := make(chan []HookOutcome, 1)
	go func() {
		var collected []HookOutcome
		for i, hook := range hooks {
			func() {
				defer func() {
					if rec := recover(); rec != nil {
						collected = append(collected, HookOutcome{Index: i, Panic: rec})
					}
				}()
				hook(r.ctx)
			}()
		}
		done <- collected
	}()
	panics = <-done

	return panics
}
