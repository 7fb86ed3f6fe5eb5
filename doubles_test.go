package noderuntime

import (
	"context"
	"sync/atomic"

	"github.com/nodecore/noderuntime/stopsignal"
	"github.com/nodecore/noderuntime/task"
)

var _ task.Task = (*fakeTask)(nil)

// fakeTask is a hand-rolled test double, in the teacher's style
// (client/allocrunner/**/*_test.go uses small literal struct fakes rather
// than a mocking framework, matching the absence of one in go.mod).
type fakeTask struct {
	runFunc           func(stopsignal.Subscription) error
	afterShutdownFunc func(context.Context)
	runCount          atomic.Int32
}

func (f *fakeTask) Run(stop stopsignal.Subscription) error {
	f.runCount.Add(1)
	if f.runFunc != nil {
		return f.runFunc(stop)
	}
	return nil
}

func (f *fakeTask) AfterShutdown() (func(context.Context), bool) {
	if f.afterShutdownFunc == nil {
		return nil, false
	}
	return f.afterShutdownFunc, true
}

func (f *fakeTask) HealthProbe() (task.HealthProbe, bool) {
	return nil, false
}

// countingProvider counts GetResource calls per name, to assert the
// at-most-once-per-name invariant (spec §8 property 2 / scenario S4).
type countingProvider struct {
	values map[string]any
	calls  map[string]int
}

func newCountingProvider(values map[string]any) *countingProvider {
	return &countingProvider{values: values, calls: make(map[string]int)}
}

func (p *countingProvider) GetResource(name string) (any, bool) {
	p.calls[name]++
	v, ok := p.values[name]
	return v, ok
}
