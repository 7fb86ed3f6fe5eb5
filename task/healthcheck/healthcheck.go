// Package healthcheck implements the health aggregator task the core spec
// reserves HealthProbe for (spec.md §3, §4.3) without itself specifying
// one. Grounded directly on original_source/core/lib/node/src/healthcheck.rs
// and .../task/healtcheck_server.rs: a task that serves the aggregate
// health of every probe it was built with over HTTP and shuts its listener
// down on the node's stop signal.
package healthcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-uuid"

	"github.com/nodecore/noderuntime/stopsignal"
	"github.com/nodecore/noderuntime/task"
)

// Config mirrors the original's HealthCheckConfig: just a bind address,
// no parsed-file surface (SPEC_FULL.md §2.3).
type Config struct {
	// BindAddr is the address the aggregate health endpoint listens on,
	// e.g. "127.0.0.1:8090".
	BindAddr string

	Logger hclog.Logger
}

// Task serves GET /healthz, polling every registered probe on each
// request and reporting 200 when all are healthy, 503 otherwise.
type Task struct {
	task.BaseTask

	cfg     Config
	probes  []namedProbe
	logger  hclog.Logger
	server  *http.Server
}

type namedProbe struct {
	name  string
	probe task.HealthProbe
}

// New builds the health-check task from the given probes, each paired
// with a name for the JSON report. See NewFromContext for building the
// same task from every probe a set of peer constructors contributed to a
// shared resource collection.
func New(probes []task.HealthProbe, names []string, cfg Config) (*Task, error) {
	if cfg.BindAddr == "" {
		return nil, fmt.Errorf("healthcheck: BindAddr is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	if len(probes) != len(names) {
		return nil, fmt.Errorf("healthcheck: probes and names must be parallel slices")
	}

	np := make([]namedProbe, len(probes))
	for i := range probes {
		np[i] = namedProbe{name: names[i], probe: probes[i]}
	}

	return &Task{cfg: cfg, probes: np, logger: cfg.Logger}, nil
}

type statusReport struct {
	Healthy bool              `json:"healthy"`
	Checks  map[string]string `json:"checks"`
	RoundID string            `json:"round_id"`
}

func (t *Task) handle(w http.ResponseWriter, r *http.Request) {
	roundID, _ := uuid.GenerateUUID()

	report := statusReport{Healthy: true, Checks: make(map[string]string), RoundID: roundID}
	for _, np := range t.probes {
		if err := np.probe.CheckHealth(r.Context()); err != nil {
			report.Healthy = false
			report.Checks[np.name] = err.Error()
		} else {
			report.Checks[np.name] = "ok"
		}
	}

	status := http.StatusOK
	if !report.Healthy {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(report)
}

// Run starts the HTTP server and blocks until the stop signal fires, then
// shuts the listener down gracefully.
func (t *Task) Run(stop stopsignal.Subscription) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", t.handle)

	t.server = &http.Server{Addr: t.cfg.BindAddr, Handler: mux}

	var wg sync.WaitGroup
	wg.Add(1)
	serveErrCh := make(chan error, 1)
	go func() {
		defer wg.Done()
		if err := t.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErrCh <- err
		}
	}()

	select {
	case <-stop.Done():
		t.logger.Debug("health-check server stopping")
	case err := <-serveErrCh:
		return err
	}

	shutdownCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := t.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	wg.Wait()
	return nil
}
