package health

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/linanwx/helpdock/assistant"
	"github.com/linanwx/helpdock/logger"
)

const (
	// DefaultNotReadyDelay is the wait before re-checking a service that
	// answered but is still starting up.
	DefaultNotReadyDelay = 5 * time.Second
	// DefaultFailureDelay is the wait before re-checking an unreachable service.
	DefaultFailureDelay = 10 * time.Second
)

// Checker reports the assistant service's readiness.
type Checker interface {
	Health(ctx context.Context) (assistant.Health, error)
}

// Status is the outcome of one readiness check.
type Status struct {
	Ready     bool
	Message   string
	Err       error
	CheckedAt time.Time
}

// PollerOptions configures a Poller.
type PollerOptions struct {
	NotReadyDelay time.Duration
	FailureDelay  time.Duration
	Clock         clockwork.Clock
	OnStatus      func(Status)
}

func (o PollerOptions) normalize() PollerOptions {
	if o.NotReadyDelay <= 0 {
		o.NotReadyDelay = DefaultNotReadyDelay
	}
	if o.FailureDelay <= 0 {
		o.FailureDelay = DefaultFailureDelay
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	return o
}

// Poller watches the service until it reports ready. It only logs and
// records what it sees; nothing waits on it.
type Poller struct {
	checker Checker
	opts    PollerOptions

	mu     sync.RWMutex
	last   Status
	checks int
}

// NewPoller creates a poller for checker.
func NewPoller(checker Checker, opts PollerOptions) *Poller {
	return &Poller{checker: checker, opts: opts.normalize()}
}

// Run checks immediately and keeps re-checking with the configured delays
// until the service is ready or ctx is done. It returns ctx.Err() when
// cancelled and nil once the service is ready.
func (p *Poller) Run(ctx context.Context) error {
	for {
		st := p.check(ctx)
		if st.Ready {
			return nil
		}

		delay := p.opts.NotReadyDelay
		if st.Err != nil {
			delay = p.opts.FailureDelay
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.opts.Clock.After(delay):
		}
	}
}

// Last returns the most recent status and how many checks have run.
func (p *Poller) Last() (Status, int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last, p.checks
}

func (p *Poller) check(ctx context.Context) Status {
	h, err := p.checker.Health(ctx)
	st := Status{Ready: err == nil && h.Ready, Message: h.Message, Err: err, CheckedAt: p.opts.Clock.Now()}

	switch {
	case err != nil:
		logger.Warn("assistant service unreachable", "err", err, "retry", p.opts.FailureDelay)
	case st.Ready:
		logger.Info("assistant service ready")
	default:
		logger.Info("assistant service not ready", "status", h.Status, "message", h.Message, "retry", p.opts.NotReadyDelay)
	}

	p.mu.Lock()
	p.last = st
	p.checks++
	p.mu.Unlock()

	if p.opts.OnStatus != nil {
		p.opts.OnStatus(st)
	}
	return st
}
