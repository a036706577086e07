package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Defaults for the probe timings, in milliseconds.
const (
	DefaultTimeoutMS  = 1000
	DefaultIntervalMS = 5000
)

// Config represents the complete .slability.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// TimeoutMS bounds a single TCP connect attempt.
	TimeoutMS int `yaml:"timeout" mapstructure:"timeout"`

	// IntervalMS is the pause between probes of the same endpoint.
	IntervalMS int `yaml:"interval" mapstructure:"interval"`

	// Targets are monitored and displayed in this order.
	Targets []EndpointConfig `yaml:"endpoints" mapstructure:"endpoints"`
}

// EndpointConfig is one target as written in the config file.
type EndpointConfig struct {
	// Label is an optional display name.
	Label string `yaml:"label,omitempty" mapstructure:"label"`

	// Address is host:port. The host may be a name or an IP.
	Address string `yaml:"address" mapstructure:"address"`
}

// Timeout returns the probe timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// Interval returns the probe interval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMS) * time.Millisecond
}

// DefaultConfig returns a Config with sensible defaults and no endpoints.
func DefaultConfig() *Config {
	return &Config{
		Version:    CurrentConfigVersion,
		TimeoutMS:  DefaultTimeoutMS,
		IntervalMS: DefaultIntervalMS,
		Targets:    []EndpointConfig{},
	}
}
