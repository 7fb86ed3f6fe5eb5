// Package periodic implements a cron-scheduled maintenance task, built on
// github.com/hashicorp/cronexpr — the teacher's own periodic-dispatch
// dependency (Nomad's periodic job scheduler parses cron expressions with
// the same library).
package periodic

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/cronexpr"
	"github.com/hashicorp/go-hclog"

	"github.com/nodecore/noderuntime/stopsignal"
	"github.com/nodecore/noderuntime/task"
)

// Config describes one periodic job.
type Config struct {
	// Schedule is a standard cron expression, e.g. "*/5 * * * * * *".
	Schedule string

	// Do is invoked once per tick. A returned error is logged but never
	// stops the schedule; only the stop signal does that.
	Do func(ctx context.Context) error

	Logger hclog.Logger
}

// Task runs Do on every tick of Schedule until the node stops it.
type Task struct {
	task.BaseTask

	expr   *cronexpr.Expression
	do     func(ctx context.Context) error
	logger hclog.Logger
}

// New parses cfg.Schedule and returns a ready-to-run Task, or a
// *task.InitError wrapping the parse failure.
func New(cfg Config) (*Task, error) {
	if cfg.Do == nil {
		return nil, task.NewCustomInitError(fmt.Errorf("periodic: Do is required"))
	}
	expr, err := cronexpr.Parse(cfg.Schedule)
	if err != nil {
		return nil, task.NewCustomInitError(fmt.Errorf("periodic: invalid schedule %q: %w", cfg.Schedule, err))
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Task{expr: expr, do: cfg.Do, logger: logger}, nil
}

// Run loops: sleep until the next scheduled tick or until stop fires,
// whichever comes first.
func (t *Task) Run(stop stopsignal.Subscription) error {
	for {
		next := t.expr.Next(time.Now())
		if next.IsZero() {
			// Schedule can never fire again; nothing left to do but wait
			// for shutdown.
			<-stop.Done()
			return nil
		}

		timer := time.NewTimer(time.Until(next))
		select {
		case <-stop.Done():
			timer.Stop()
			return nil
		case <-timer.C:
			if err := t.do(context.Background()); err != nil {
				t.logger.Error("periodic tick failed", "error", err)
			}
		}
	}
}
