package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/rileyhilliard/slability/internal/logger"
	"github.com/rileyhilliard/slability/internal/probe"
	"github.com/rileyhilliard/slability/internal/state"
)

// Monitor polls one endpoint on its own goroutine and keeps its state.
type Monitor struct {
	endpoint Endpoint
	machine  *state.Machine
	prober   probe.Prober
	log      logger.Logger

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// Option configures a Monitor.
type Option func(*monitorOptions)

type monitorOptions struct {
	prober probe.Prober
	log    logger.Logger
	now    func() time.Time
}

// WithProber replaces the default TCP prober.
func WithProber(p probe.Prober) Option {
	return func(o *monitorOptions) {
		if p != nil {
			o.prober = p
		}
	}
}

// WithLogger sets the logger used for transition and failure messages.
func WithLogger(l logger.Logger) Option {
	return func(o *monitorOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// WithNow overrides the clock used by the state machine.
func WithNow(now func() time.Time) Option {
	return func(o *monitorOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// New creates a Monitor for ep. Nothing runs until Start is called.
func New(ep Endpoint, opts ...Option) *Monitor {
	o := monitorOptions{
		prober: probe.NewTCP(),
		log:    logger.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	var machineOpts []state.Option
	if o.now != nil {
		machineOpts = append(machineOpts, state.WithNow(o.now))
	}

	return &Monitor{
		endpoint: ep,
		machine:  state.New(machineOpts...),
		prober:   o.prober,
		log:      o.log,
		done:     make(chan struct{}),
	}
}

// Endpoint returns the monitored endpoint.
func (m *Monitor) Endpoint() Endpoint {
	return m.endpoint
}

// Snapshot returns a consistent copy of the endpoint's current status.
func (m *Monitor) Snapshot() state.Status {
	return m.machine.Snapshot()
}

// Start launches the polling loop and returns immediately.
// The loop runs until ctx is cancelled or Stop is called. Calling Start
// more than once has no effect.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return
	}
	m.started = true

	ctx, m.cancel = context.WithCancel(ctx)
	go m.run(ctx)
}

// Stop cancels the polling loop and waits for it to exit.
// It is safe to call on a Monitor that was never started.
func (m *Monitor) Stop() {
	m.mu.Lock()
	started, cancel := m.started, m.cancel
	m.mu.Unlock()

	if !started {
		return
	}
	cancel()
	<-m.done
}

// Done returns a channel closed once the polling loop has exited.
func (m *Monitor) Done() <-chan struct{} {
	return m.done
}

// checker is implemented by probers that can explain a failure.
type checker interface {
	Check(ctx context.Context, address string, timeout time.Duration) (time.Duration, error)
}

// sample runs one probe. The error is informational only.
func (m *Monitor) sample(ctx context.Context) (bool, error) {
	ep := m.endpoint
	if c, ok := m.prober.(checker); ok {
		_, err := c.Check(ctx, ep.Address, ep.Timeout)
		return err == nil, err
	}
	return m.prober.Probe(ctx, ep.Address, ep.Timeout), nil
}

// run is the probe -> record -> sleep loop.
func (m *Monitor) run(ctx context.Context) {
	defer close(m.done)

	ep := m.endpoint
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		online, err := m.sample(ctx)
		if ctx.Err() != nil {
			// A probe cut short by shutdown is not a real sample.
			return
		}

		if m.machine.RecordSample(online) {
			s := m.machine.Snapshot()
			if err != nil {
				m.log.Debug("%s is %s (restarts=%d): %v", ep.Name(), s.State, s.Restarts, err)
			} else {
				m.log.Debug("%s is %s (restarts=%d)", ep.Name(), s.State, s.Restarts)
			}
		}

		timer.Reset(ep.Interval)
	}
}
