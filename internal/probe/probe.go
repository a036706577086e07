// Package probe checks TCP reachability of an address.
package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"time"
)

// Prober reports whether an address accepted a TCP connection within timeout.
type Prober interface {
	Probe(ctx context.Context, address string, timeout time.Duration) bool
}

// Func adapts a plain function to the Prober interface.
type Func func(ctx context.Context, address string, timeout time.Duration) bool

// Probe calls f.
func (f Func) Probe(ctx context.Context, address string, timeout time.Duration) bool {
	return f(ctx, address, timeout)
}

// FailReason categorizes why a probe failed.
type FailReason int

const (
	FailUnknown FailReason = iota
	FailTimeout
	FailRefused
	FailReset
	FailUnreachable
	FailCanceled
)

// String returns a human-readable description of the failure reason.
func (r FailReason) String() string {
	switch r {
	case FailTimeout:
		return "connection timed out"
	case FailRefused:
		return "connection refused"
	case FailReset:
		return "connection reset"
	case FailUnreachable:
		return "host unreachable"
	case FailCanceled:
		return "probe canceled"
	default:
		return "unknown error"
	}
}

// ProbeError represents a failed probe with categorized failure reason.
type ProbeError struct {
	Address string
	Reason  FailReason
	Cause   error
}

func (e *ProbeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("probe %s failed: %s (%v)", e.Address, e.Reason, e.Cause)
	}
	return fmt.Sprintf("probe %s failed: %s", e.Address, e.Reason)
}

func (e *ProbeError) Unwrap() error {
	return e.Cause
}

// TCP probes by opening and immediately closing a TCP connection.
type TCP struct {
	// Dialer is used as a template; its Timeout is replaced per call.
	Dialer net.Dialer
}

// NewTCP returns a TCP prober with a default dialer.
func NewTCP() *TCP {
	return &TCP{}
}

// Probe reports whether address accepted a connection within timeout.
// Refused, timed out and unreachable all collapse to false.
func (p *TCP) Probe(ctx context.Context, address string, timeout time.Duration) bool {
	_, err := p.Check(ctx, address, timeout)
	return err == nil
}

// Check dials address and returns the connect latency, or a *ProbeError
// describing why the connection could not be made.
func (p *TCP) Check(ctx context.Context, address string, timeout time.Duration) (time.Duration, error) {
	d := p.Dialer
	d.Timeout = timeout

	start := time.Now()
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return 0, categorize(ctx, address, err)
	}
	latency := time.Since(start)
	_ = conn.Close()

	return latency, nil
}

// categorize converts a dial error into a ProbeError with a failure reason.
func categorize(ctx context.Context, address string, err error) *ProbeError {
	if err == nil {
		return nil
	}

	probeErr := &ProbeError{
		Address: address,
		Reason:  FailUnknown,
		Cause:   err,
	}

	if ctx != nil && errors.Is(ctx.Err(), context.Canceled) {
		probeErr.Reason = FailCanceled
		return probeErr
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		probeErr.Reason = FailTimeout
		return probeErr
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		probeErr.Reason = FailRefused
		return probeErr
	case errors.Is(err, syscall.ECONNRESET):
		probeErr.Reason = FailReset
		return probeErr
	case errors.Is(err, syscall.EHOSTUNREACH), errors.Is(err, syscall.ENETUNREACH):
		probeErr.Reason = FailUnreachable
		return probeErr
	}

	errStr := strings.ToLower(err.Error())

	if strings.Contains(errStr, "timeout") {
		probeErr.Reason = FailTimeout
		return probeErr
	}

	if strings.Contains(errStr, "connection refused") {
		probeErr.Reason = FailRefused
		return probeErr
	}

	if strings.Contains(errStr, "connection reset") {
		probeErr.Reason = FailReset
		return probeErr
	}

	if strings.Contains(errStr, "no route to host") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "host is down") {
		probeErr.Reason = FailUnreachable
		return probeErr
	}

	return probeErr
}
