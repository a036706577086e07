package config

import (
	"fmt"
	"net"
	"strconv"

	"github.com/rileyhilliard/slability/internal/errors"
	"github.com/rileyhilliard/slability/internal/monitor"
)

// Resolver turns a host:port into a TCP address. The first address wins.
type Resolver func(address string) (*net.TCPAddr, error)

// DefaultResolver uses the system resolver.
func DefaultResolver(address string) (*net.TCPAddr, error) {
	return net.ResolveTCPAddr("tcp", address)
}

// Validate checks the config for errors and returns structured error messages.
// It does not touch the network; see Resolve.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but slability only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest slability release")
	}

	if cfg.TimeoutMS <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Timeout must be positive, got %dms", cfg.TimeoutMS),
			fmt.Sprintf("Pass --timeout in milliseconds, e.g. --timeout %d", DefaultTimeoutMS))
	}

	if cfg.IntervalMS <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval must be positive, got %dms", cfg.IntervalMS),
			fmt.Sprintf("Pass --interval in milliseconds, e.g. --interval %d", DefaultIntervalMS))
	}

	if len(cfg.Targets) == 0 {
		return errors.New(errors.ErrConfig,
			"Nothing to monitor",
			"Pass at least one address with -a host:port, or run 'slability init'")
	}

	for i, ep := range cfg.Targets {
		if err := validateAddress(i, ep); err != nil {
			return err
		}
	}

	return nil
}

func validateAddress(index int, ep EndpointConfig) error {
	where := fmt.Sprintf("Endpoint %d", index+1)
	if ep.Label != "" {
		where = fmt.Sprintf("Endpoint '%s'", ep.Label)
	}

	if ep.Address == "" {
		return errors.New(errors.ErrConfig,
			where+" is missing an address",
			"Every endpoint needs an 'address: host:port'")
	}

	host, port, err := net.SplitHostPort(ep.Address)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("%s has a malformed address '%s'", where, ep.Address),
			"Use host:port, and wrap IPv6 hosts in brackets: [::1]:22")
	}

	if host == "" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("%s has no host in '%s'", where, ep.Address),
			"Use host:port, e.g. example.com:443")
	}

	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("%s has an invalid port '%s'", where, port),
			"Ports are numbers between 1 and 65535")
	}

	return nil
}

// Endpoints validates the config and resolves every target with the system
// resolver, producing monitor endpoints in config order.
func (c *Config) Endpoints() ([]monitor.Endpoint, error) {
	return c.Resolve(DefaultResolver)
}

// Resolve is Endpoints with a caller-supplied resolver.
func (c *Config) Resolve(resolve Resolver) ([]monitor.Endpoint, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}

	endpoints := make([]monitor.Endpoint, 0, len(c.Targets))
	for _, target := range c.Targets {
		addr, err := resolve(target.Address)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Can't resolve '%s'", target.Address),
				"Check the hostname is spelled right and DNS is reachable")
		}
		endpoints = append(endpoints, monitor.Endpoint{
			Label:    target.Label,
			Target:   target.Address,
			Address:  addr.String(),
			Timeout:  c.Timeout(),
			Interval: c.Interval(),
		})
	}
	return endpoints, nil
}
