package cli

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/rileyhilliard/slability/internal/errors"
	"github.com/rileyhilliard/slability/internal/monitor"
	"github.com/rileyhilliard/slability/internal/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChecker answers from a table keyed by address. Unknown addresses are
// reachable.
type fakeChecker struct {
	mu      sync.Mutex
	errs    map[string]error
	delays  map[string]time.Duration
	checked []string
}

func (f *fakeChecker) Check(_ context.Context, address string, _ time.Duration) (time.Duration, error) {
	f.mu.Lock()
	f.checked = append(f.checked, address)
	delay := f.delays[address]
	err := f.errs[address]
	f.mu.Unlock()

	time.Sleep(delay)
	return 1500 * time.Microsecond, err
}

func endpoint(label, address string) monitor.Endpoint {
	return monitor.Endpoint{
		Label:    label,
		Target:   address,
		Address:  address,
		Timeout:  time.Second,
		Interval: 5 * time.Second,
	}
}

func TestRunStatus_Text(t *testing.T) {
	checker := &fakeChecker{errs: map[string]error{
		"192.0.2.2:22": &probe.ProbeError{Address: "192.0.2.2:22", Reason: probe.FailRefused},
	}}
	endpoints := []monitor.Endpoint{
		endpoint("web", "192.0.2.1:443"),
		endpoint("", "192.0.2.2:22"),
	}

	var out bytes.Buffer
	err := runStatus(context.Background(), &out, endpoints, checker, false)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrProbe))
	assert.Contains(t, err.Error(), "1 of 2 endpoints offline")

	text := out.String()
	assert.Contains(t, text, "web")
	assert.Contains(t, text, "online")
	assert.Contains(t, text, "offline")
	assert.Contains(t, text, "1.5ms")
	assert.Contains(t, text, "connection refused")
	assert.Contains(t, text, "1/2 online")
}

func TestRunStatus_AllOnline(t *testing.T) {
	var out bytes.Buffer
	err := runStatus(context.Background(), &out,
		[]monitor.Endpoint{endpoint("a", "192.0.2.1:1"), endpoint("b", "192.0.2.2:2")},
		&fakeChecker{}, false)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "2/2 online")
}

func TestRunStatus_JSON(t *testing.T) {
	checker := &fakeChecker{errs: map[string]error{
		"192.0.2.2:22": &probe.ProbeError{Address: "192.0.2.2:22", Reason: probe.FailTimeout},
	}}

	var out bytes.Buffer
	err := runStatus(context.Background(), &out,
		[]monitor.Endpoint{endpoint("web", "192.0.2.1:443"), endpoint("", "192.0.2.2:22")},
		checker, true)
	require.Error(t, err)

	var env struct {
		Success bool         `json:"success"`
		Data    StatusOutput `json:"data"`
		Error   *JSONError   `json:"error"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &env))

	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, errors.ErrProbe, env.Error.Code)

	assert.Equal(t, 2, env.Data.Total)
	assert.Equal(t, 1, env.Data.Online)
	require.Len(t, env.Data.Endpoints, 2)

	web := env.Data.Endpoints[0]
	assert.Equal(t, "web", web.Name)
	assert.Equal(t, "online", web.State)
	assert.InDelta(t, 1.5, web.LatencyMS, 0.001)
	assert.False(t, web.Since.IsZero())

	down := env.Data.Endpoints[1]
	assert.Equal(t, "192.0.2.2:22", down.Name)
	assert.Equal(t, "offline", down.State)
	assert.Equal(t, "connection timed out", down.Reason)
	assert.NotEmpty(t, down.Error)
}

func TestProbeAll_PreservesOrder(t *testing.T) {
	checker := &fakeChecker{delays: map[string]time.Duration{
		"192.0.2.1:1": 30 * time.Millisecond,
		"192.0.2.2:2": 10 * time.Millisecond,
	}}
	endpoints := []monitor.Endpoint{
		endpoint("slow", "192.0.2.1:1"),
		endpoint("fast", "192.0.2.2:2"),
		endpoint("instant", "192.0.2.3:3"),
	}

	results, err := probeAll(context.Background(), endpoints, checker)
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, "slow", results[0].Name)
	assert.Equal(t, "fast", results[1].Name)
	assert.Equal(t, "instant", results[2].Name)
	assert.Len(t, checker.checked, 3)
}

func TestProbeAll_UnclassifiedError(t *testing.T) {
	checker := &fakeChecker{errs: map[string]error{
		"192.0.2.1:1": stderrors.New("boom"),
	}}

	results, err := probeAll(context.Background(), []monitor.Endpoint{endpoint("", "192.0.2.1:1")}, checker)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "offline", results[0].State)
	assert.Equal(t, "unknown error", results[0].Reason)
	assert.Equal(t, "boom", results[0].Error)
}

// countingChecker records the peak number of concurrent checks.
type countingChecker struct {
	mu       sync.Mutex
	inFlight int
	peak     int
}

func (c *countingChecker) Check(_ context.Context, _ string, _ time.Duration) (time.Duration, error) {
	c.mu.Lock()
	c.inFlight++
	if c.inFlight > c.peak {
		c.peak = c.inFlight
	}
	c.mu.Unlock()

	time.Sleep(5 * time.Millisecond)

	c.mu.Lock()
	c.inFlight--
	c.mu.Unlock()
	return time.Millisecond, nil
}

func TestProbeAll_LimitsConcurrency(t *testing.T) {
	endpoints := make([]monitor.Endpoint, maxConcurrentProbes*2+3)
	for i := range endpoints {
		endpoints[i] = endpoint("", fmt.Sprintf("192.0.2.%d:80", i+1))
	}

	checker := &countingChecker{}
	results, err := probeAll(context.Background(), endpoints, checker)
	require.NoError(t, err)

	require.Len(t, results, len(endpoints))
	for i, r := range results {
		assert.Equal(t, endpoints[i].Address, r.Address)
		assert.Equal(t, "online", r.State)
	}
	assert.LessOrEqual(t, checker.peak, maxConcurrentProbes)
}

// blockingChecker waits for ctx to end, like a dial to a black hole.
type blockingChecker struct {
	started chan struct{}
	once    sync.Once
}

func (b *blockingChecker) Check(ctx context.Context, address string, _ time.Duration) (time.Duration, error) {
	b.once.Do(func() { close(b.started) })
	<-ctx.Done()
	return 0, &probe.ProbeError{Address: address, Reason: probe.FailCanceled, Cause: ctx.Err()}
}

func TestRunStatus_Canceled(t *testing.T) {
	for _, asJSON := range []bool{false, true} {
		t.Run(fmt.Sprintf("json=%v", asJSON), func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			checker := &blockingChecker{started: make(chan struct{})}
			go func() {
				<-checker.started
				cancel()
			}()

			var out bytes.Buffer
			err := runStatus(ctx, &out, []monitor.Endpoint{
				endpoint("a", "192.0.2.1:1"),
				endpoint("b", "192.0.2.2:2"),
			}, checker, asJSON)

			require.Error(t, err)
			assert.ErrorIs(t, err, context.Canceled)
			assert.True(t, errors.IsCode(err, errors.ErrExec))
			assert.NotContains(t, out.String(), "probe canceled")

			if asJSON {
				var env JSONEnvelope
				require.NoError(t, json.Unmarshal(out.Bytes(), &env))
				assert.False(t, env.Success)
				require.NotNil(t, env.Error)
				assert.Equal(t, errors.ErrExec, env.Error.Code)
			} else {
				assert.Empty(t, out.String())
			}
		})
	}
}

func TestProbeAll_RealTCP(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()

	closed, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	closedAddr := closed.Addr().String()
	require.NoError(t, closed.Close())

	results, err := probeAll(context.Background(), []monitor.Endpoint{
		endpoint("up", ln.Addr().String()),
		endpoint("down", closedAddr),
	}, probe.NewTCP())
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "online", results[0].State)
	assert.Equal(t, "offline", results[1].State)
	assert.Equal(t, "connection refused", results[1].Reason)
}
