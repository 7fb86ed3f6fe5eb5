package statssink

import (
	"sync/atomic"
	"testing"
	"time"

	gometrics "github.com/hashicorp/go-metrics"
	"github.com/stretchr/testify/require"

	"github.com/nodecore/noderuntime/stopsignal"
)

func TestNew_RequiresSampleAndKey(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)

	_, err = New(Config{Sample: func() float32 { return 0 }})
	require.Error(t, err, "Key is required")
}

func TestNew_DefaultsIntervalAndSink(t *testing.T) {
	tsk, err := New(Config{Key: []string{"x"}, Sample: func() float32 { return 1 }})
	require.NoError(t, err)
	require.Equal(t, 10*time.Second, tsk.cfg.Interval)
	require.NotNil(t, tsk.cfg.Sink)
}

type spySink struct {
	gometrics.MetricSink
	calls atomic.Int32
}

func (s *spySink) SetGauge(key []string, val float32) {
	s.calls.Add(1)
}

func TestTask_RunSamplesUntilStopped(t *testing.T) {
	sink := &spySink{}
	tsk, err := New(Config{
		Key:      []string{"noderuntime", "test"},
		Interval: 50 * time.Millisecond,
		Sample:   func() float32 { return 42 },
		Sink:     sink,
	})
	require.NoError(t, err)

	sig := stopsignal.New()
	done := make(chan error, 1)
	go func() { done <- tsk.Run(sig.Subscribe()) }()

	time.Sleep(180 * time.Millisecond)
	sig.Fire()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after stop fired")
	}

	require.GreaterOrEqual(t, sink.calls.Load(), int32(2))
}
