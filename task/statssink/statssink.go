// Package statssink periodically samples a resource value and exports it
// as a gauge through github.com/hashicorp/go-metrics, the teacher's own
// runtime telemetry library.
package statssink

import (
	"time"

	"github.com/hashicorp/go-hclog"
	gometrics "github.com/hashicorp/go-metrics"

	"github.com/nodecore/noderuntime/stopsignal"
	"github.com/nodecore/noderuntime/task"
)

// Config describes one metric to sample on an interval.
type Config struct {
	// Key is the metrics key, e.g. []string{"noderuntime", "pool", "size"}.
	Key []string

	// Interval between samples. Defaults to 10s if zero.
	Interval time.Duration

	// Sample returns the current value to emit as a gauge.
	Sample func() float32

	// Sink receives the gauge; defaults to an in-memory sink
	// (gometrics.NewInmemSink) if nil.
	Sink gometrics.MetricSink

	Logger hclog.Logger
}

// Task samples Config.Sample on Config.Interval and emits it as a gauge
// until the node stops it.
type Task struct {
	task.BaseTask

	cfg    Config
	logger hclog.Logger
}

// New validates cfg and returns a ready-to-run Task.
func New(cfg Config) (*Task, error) {
	if cfg.Sample == nil {
		return nil, task.NewCustomInitError(errRequired("Sample"))
	}
	if len(cfg.Key) == 0 {
		return nil, task.NewCustomInitError(errRequired("Key"))
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Second
	}
	if cfg.Sink == nil {
		// A caller that doesn't wire a real sink (Statsd, Prometheus,
		// etc.) still gets a working in-memory one rather than a nil
		// dereference at the first tick.
		cfg.Sink = gometrics.NewInmemSink(10*time.Second, time.Minute)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Task{cfg: cfg, logger: logger}, nil
}

// Run emits a gauge sample on every tick until stop fires.
func (t *Task) Run(stop stopsignal.Subscription) error {
	ticker := time.NewTicker(t.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop.Done():
			return nil
		case <-ticker.C:
			value := t.cfg.Sample()
			t.cfg.Sink.SetGauge(t.cfg.Key, value)
			t.logger.Trace("sampled gauge", "key", t.cfg.Key, "value", value)
		}
	}
}

type missingFieldError string

func (e missingFieldError) Error() string { return string(e) + " is required" }

func errRequired(field string) error {
	return missingFieldError(field)
}
