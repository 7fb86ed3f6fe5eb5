package periodic

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nodecore/noderuntime/stopsignal"
)

func TestNew_RequiresDo(t *testing.T) {
	_, err := New(Config{Schedule: "* * * * * *"})
	require.Error(t, err)
}

func TestNew_RejectsInvalidSchedule(t *testing.T) {
	_, err := New(Config{Schedule: "not a schedule", Do: func(context.Context) error { return nil }})
	require.Error(t, err)
}

func TestTask_RunTicksUntilStopped(t *testing.T) {
	var ticks atomic.Int32
	tsk, err := New(Config{
		Schedule: "* * * * * * *",
		Do: func(context.Context) error {
			ticks.Add(1)
			return nil
		},
	})
	require.NoError(t, err)

	sig := stopsignal.New()
	done := make(chan error, 1)
	go func() { done <- tsk.Run(sig.Subscribe()) }()

	time.Sleep(1200 * time.Millisecond)
	sig.Fire()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after stop fired")
	}

	require.GreaterOrEqual(t, ticks.Load(), int32(1))
}

func TestTask_RunReturnsImmediatelyIfAlreadyStopped(t *testing.T) {
	tsk, err := New(Config{
		Schedule: "* * * * * * *",
		Do:       func(context.Context) error { return nil },
	})
	require.NoError(t, err)

	sig := stopsignal.New()
	sig.Fire()

	done := make(chan error, 1)
	go func() { done <- tsk.Run(sig.Subscribe()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run should return promptly when stop is already fired")
	}
}
