package monitor

import "time"

// Endpoint is the immutable description of one monitored target.
type Endpoint struct {
	// Label is the display name. Empty means the address is the identity.
	Label string
	// Target is the host:port as written in configuration.
	Target string
	// Address is the resolved ip:port that is probed.
	Address string
	// Timeout bounds a single probe.
	Timeout time.Duration
	// Interval is the pause between probes.
	Interval time.Duration
}

// Name returns the label, falling back to the target as written and then
// to the resolved address.
func (e Endpoint) Name() string {
	switch {
	case e.Label != "":
		return e.Label
	case e.Target != "":
		return e.Target
	}
	return e.Address
}

// HasLabel reports whether the endpoint carries its own display name.
func (e Endpoint) HasLabel() bool {
	return e.Label != ""
}
