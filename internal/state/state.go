// Package state holds the per-endpoint reachability state machine.
//
// A Machine turns a stream of boolean samples into a Status: whether the
// endpoint is online, when the current episode began, and how many times it
// has come back after being offline. One goroutine writes samples while any
// number of readers take snapshots; both go through the same mutex, so a
// snapshot always matches exactly one completed RecordSample call.
package state

import (
	"sync"
	"time"
)

// State is the three-valued reachability of an endpoint.
type State int

const (
	// Unknown means no sample has been recorded yet.
	Unknown State = iota
	// Online means the last sample reached the endpoint.
	Online
	// Offline means the last sample failed to reach the endpoint.
	Offline
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Online:
		return "online"
	case Offline:
		return "offline"
	default:
		return "awaiting"
	}
}

func stateOf(online bool) State {
	if online {
		return Online
	}
	return Offline
}

// Episode describes a finished run of same-valued samples.
type Episode struct {
	State    State
	Since    time.Time
	Duration time.Duration
}

// Status is a point-in-time copy of a Machine's record.
type Status struct {
	State    State
	Since    time.Time // wall clock start of the current episode, zero while Unknown
	Restarts uint64    // offline -> online transitions
	Samples  uint64
	Previous *Episode // episode ended by the last transition, nil before the first one

	// reference carries the monotonic reading Elapsed measures from.
	reference time.Time
}

// IsOnline reports the last sample and whether any sample exists yet.
func (s Status) IsOnline() (online bool, known bool) {
	return s.State == Online, s.State != Unknown
}

// Known reports whether at least one sample has been recorded.
func (s Status) Known() bool {
	return s.State != Unknown
}

// Elapsed returns how long the current episode has lasted at now.
// It is zero while the state is Unknown.
func (s Status) Elapsed(now time.Time) time.Duration {
	if s.State == Unknown || s.reference.IsZero() {
		return 0
	}
	d := now.Sub(s.reference)
	if d < 0 {
		return 0
	}
	return d
}

// Machine is the mutable record for one endpoint.
type Machine struct {
	mu     sync.Mutex
	status Status
	now    func() time.Time
}

// Option configures a Machine.
type Option func(*Machine)

// WithNow overrides the clock used to stamp transitions.
func WithNow(now func() time.Time) Option {
	return func(m *Machine) {
		if now != nil {
			m.now = now
		}
	}
}

// New creates a Machine with no samples recorded.
func New(opts ...Option) *Machine {
	m := &Machine{now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RecordSample folds one reachability sample into the record.
// It returns true when the sample started a new episode (including the first
// sample), false when it only confirmed the current state.
func (m *Machine) RecordSample(online bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := stateOf(online)
	s := &m.status
	s.Samples++

	prev := s.State
	if prev == next {
		return false
	}

	now := m.now()
	if prev != Unknown {
		s.Previous = &Episode{
			State:    prev,
			Since:    s.Since,
			Duration: now.Sub(s.reference),
		}
		if prev == Offline && next == Online {
			s.Restarts++
		}
	}

	s.State = next
	s.Since = now.Round(0)
	s.reference = now
	return true
}

// Snapshot returns a copy of the current record.
func (m *Machine) Snapshot() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.status
	if out.Previous != nil {
		ep := *out.Previous
		out.Previous = &ep
	}
	return out
}
