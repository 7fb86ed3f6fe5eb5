// Package stopsignal provides the broadcast latches the node runtime uses
// to coordinate cooperative shutdown and to announce that resource wiring
// has completed.
package stopsignal

import "sync"

// Signal is a boolean latch that transitions false -> true exactly once.
// The node holds the sole writer; any number of readers can each obtain an
// independent Subscription that observes the transition.
type Signal struct {
	mu   sync.Mutex
	done bool
	ch   chan struct{}
}

// New returns an unfired Signal.
func New() *Signal {
	return &Signal{ch: make(chan struct{})}
}

// Fire transitions the signal to true. Safe to call more than once or
// concurrently; only the first call has any effect.
func (s *Signal) Fire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	s.done = true
	close(s.ch)
}

// Fired reports whether the signal has already transitioned.
func (s *Signal) Fired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Subscribe returns a new, independent observer of the edge.
func (s *Signal) Subscribe() Subscription {
	return Subscription{ch: s.ch, sig: s}
}

// Subscription lets a task observe a Signal's false->true edge without
// being able to fire it itself.
type Subscription struct {
	ch  <-chan struct{}
	sig *Signal
}

// Done returns a channel that is closed once the edge fires. Safe to read
// from multiple goroutines and to select on repeatedly.
func (s Subscription) Done() <-chan struct{} {
	return s.ch
}

// Fired reports whether the edge has already happened, without blocking.
func (s Subscription) Fired() bool {
	select {
	case <-s.ch:
		return true
	default:
		return false
	}
}
