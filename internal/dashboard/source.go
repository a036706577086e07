package dashboard

import (
	"github.com/rileyhilliard/slability/internal/monitor"
	"github.com/rileyhilliard/slability/internal/state"
)

// Source is anything the dashboard can render: a fixed endpoint and a
// point-in-time status. *monitor.Monitor satisfies it.
type Source interface {
	Endpoint() monitor.Endpoint
	Snapshot() state.Status
}

// FromSet adapts the monitors of a set, keeping their order.
func FromSet(set *monitor.Set) []Source {
	monitors := set.Monitors()
	sources := make([]Source, len(monitors))
	for i, m := range monitors {
		sources[i] = m
	}
	return sources
}
