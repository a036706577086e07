package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/rileyhilliard/slability/internal/probe"
	"github.com/rileyhilliard/slability/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// byAddress answers per address; unknown addresses block until cancelled.
func byAddress(results map[string]bool) probe.Prober {
	return probe.Func(func(ctx context.Context, address string, _ time.Duration) bool {
		online, ok := results[address]
		if !ok {
			<-ctx.Done()
			return false
		}
		return online
	})
}

func TestStartAll_PreservesOrder(t *testing.T) {
	endpoints := []Endpoint{
		{Label: "c", Address: "10.0.0.3:22", Timeout: time.Second, Interval: time.Second},
		{Label: "a", Address: "10.0.0.1:22", Timeout: time.Second, Interval: time.Second},
		{Label: "b", Address: "10.0.0.2:22", Timeout: time.Second, Interval: time.Second},
	}

	set := StartAll(context.Background(), endpoints, WithProber(byAddress(nil)))
	defer set.Stop()

	require.Equal(t, 3, set.Len())
	var labels []string
	for _, m := range set.Monitors() {
		labels = append(labels, m.Endpoint().Label)
	}
	assert.Equal(t, []string{"c", "a", "b"}, labels)
}

func TestStartAll_NoDeduplication(t *testing.T) {
	ep := Endpoint{Address: "10.0.0.1:22", Timeout: time.Second, Interval: time.Second}

	set := StartAll(context.Background(), []Endpoint{ep, ep}, WithProber(byAddress(nil)))
	defer set.Stop()

	assert.Equal(t, 2, set.Len())
}

// A monitor stuck on a slow probe must not hold back the others.
func TestStartAll_MonitorsPollIndependently(t *testing.T) {
	const timeout = 100 * time.Millisecond
	const interval = 50 * time.Millisecond

	endpoints := []Endpoint{
		{Label: "stuck", Address: "10.0.0.1:80", Timeout: timeout, Interval: interval},
		{Label: "up", Address: "10.0.0.2:80", Timeout: timeout, Interval: interval},
		{Label: "down", Address: "10.0.0.3:80", Timeout: timeout, Interval: interval},
	}
	prober := byAddress(map[string]bool{
		"10.0.0.2:80": true,
		"10.0.0.3:80": false,
	})

	start := time.Now()
	set := StartAll(context.Background(), endpoints, WithProber(prober))
	defer set.Stop()
	assert.Less(t, time.Since(start), timeout, "StartAll waited on a probe")

	monitors := set.Monitors()
	require.Eventually(t, func() bool {
		return monitors[1].Snapshot().Known() && monitors[2].Snapshot().Known()
	}, interval+timeout+time.Second, 5*time.Millisecond)

	assert.Equal(t, state.Unknown, monitors[0].Snapshot().State)
	assert.Equal(t, state.Online, monitors[1].Snapshot().State)
	assert.Equal(t, state.Offline, monitors[2].Snapshot().State)
	assert.Equal(t, 1, set.OnlineCount())
}

func TestSet_StopWaitsForEveryLoop(t *testing.T) {
	endpoints := []Endpoint{
		{Address: "10.0.0.1:80", Timeout: time.Second, Interval: time.Millisecond},
		{Address: "10.0.0.2:80", Timeout: time.Second, Interval: time.Millisecond},
	}
	set := StartAll(context.Background(), endpoints,
		WithProber(byAddress(map[string]bool{"10.0.0.2:80": true})))

	set.Stop()

	for _, m := range set.Monitors() {
		select {
		case <-m.Done():
		default:
			t.Fatalf("%s still running after Stop", m.Endpoint().Name())
		}
	}
}

func TestSet_MonitorsReturnsCopy(t *testing.T) {
	set := StartAll(context.Background(), []Endpoint{{Address: "10.0.0.1:80", Interval: time.Second}},
		WithProber(byAddress(nil)))
	defer set.Stop()

	ms := set.Monitors()
	ms[0] = nil
	assert.NotNil(t, set.Monitors()[0])
}

func TestStartAll_Empty(t *testing.T) {
	set := StartAll(context.Background(), nil)
	assert.Zero(t, set.Len())
	assert.Zero(t, set.OnlineCount())
	set.Stop()
}
