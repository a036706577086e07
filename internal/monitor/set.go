package monitor

import (
	"context"
	"sync"
)

// Set is the ordered collection of monitors started together.
type Set struct {
	monitors []*Monitor
	cancel   context.CancelFunc
}

// StartAll creates one Monitor per endpoint, in order, and starts each.
// It returns as soon as every polling loop has been launched.
func StartAll(ctx context.Context, endpoints []Endpoint, opts ...Option) *Set {
	ctx, cancel := context.WithCancel(ctx)

	s := &Set{
		monitors: make([]*Monitor, 0, len(endpoints)),
		cancel:   cancel,
	}
	for _, ep := range endpoints {
		m := New(ep, opts...)
		m.Start(ctx)
		s.monitors = append(s.monitors, m)
	}
	return s
}

// Monitors returns the monitors in configuration order.
func (s *Set) Monitors() []*Monitor {
	out := make([]*Monitor, len(s.monitors))
	copy(out, s.monitors)
	return out
}

// Len returns the number of monitors.
func (s *Set) Len() int {
	return len(s.monitors)
}

// OnlineCount returns how many endpoints were online at their last sample.
func (s *Set) OnlineCount() int {
	count := 0
	for _, m := range s.monitors {
		if online, _ := m.Snapshot().IsOnline(); online {
			count++
		}
	}
	return count
}

// Stop cancels every polling loop and waits for all of them to exit.
func (s *Set) Stop() {
	s.cancel()

	var wg sync.WaitGroup
	for _, m := range s.monitors {
		wg.Add(1)
		go func(m *Monitor) {
			defer wg.Done()
			m.Stop()
		}(m)
	}
	wg.Wait()
}
