package health

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/linanwx/helpdock/assistant"
)

type result struct {
	health assistant.Health
	err    error
}

type scriptedChecker struct {
	mu      sync.Mutex
	results []result
}

func (s *scriptedChecker) Health(ctx context.Context) (assistant.Health, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.results[0]
	if len(s.results) > 1 {
		s.results = s.results[1:]
	}
	return r.health, r.err
}

func TestPollerBackoffUntilReady(t *testing.T) {
	checker := &scriptedChecker{results: []result{
		{err: errors.New("connection refused")},
		{health: assistant.Health{Status: "starting", Ready: false}},
		{health: assistant.Health{Status: "ok", Ready: true}},
	}}
	clock := clockwork.NewFakeClock()
	p := NewPoller(checker, PollerOptions{Clock: clock})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	if err := clock.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("waiting for first backoff: %v", err)
	}
	if st, n := p.Last(); n != 1 || st.Err == nil {
		t.Fatalf("after first check: status %+v, checks %d", st, n)
	}

	clock.Advance(DefaultNotReadyDelay)
	if _, n := p.Last(); n != 1 {
		t.Fatal("re-checked before the failure delay elapsed")
	}
	clock.Advance(DefaultFailureDelay - DefaultNotReadyDelay)

	if err := clock.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("waiting for second backoff: %v", err)
	}
	if st, n := p.Last(); n != 2 || st.Err != nil || st.Ready {
		t.Fatalf("after second check: status %+v, checks %d", st, n)
	}

	clock.Advance(DefaultNotReadyDelay)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run = %v, want nil once ready", err)
		}
	case <-ctx.Done():
		t.Fatal("poller did not stop after the service became ready")
	}
	if st, n := p.Last(); n != 3 || !st.Ready {
		t.Fatalf("final status %+v, checks %d", st, n)
	}
}

func TestPollerStopsOnCancel(t *testing.T) {
	checker := &scriptedChecker{results: []result{{err: errors.New("down")}}}
	clock := clockwork.NewFakeClock()
	var seen []Status
	var mu sync.Mutex
	p := NewPoller(checker, PollerOptions{Clock: clock, OnStatus: func(s Status) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	}})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	wait, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := clock.BlockUntilContext(wait, 1); err != nil {
		t.Fatalf("waiting for backoff: %v", err)
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run = %v, want context.Canceled", err)
		}
	case <-wait.Done():
		t.Fatal("poller ignored cancellation")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 1 {
		t.Fatalf("OnStatus called %d times, want 1", len(seen))
	}
}

func TestCollect(t *testing.T) {
	ready := &scriptedChecker{results: []result{{health: assistant.Health{Status: "ok", Ready: true}}}}
	s := Collect(context.Background(), Options{BaseURL: "http://x", Checker: ready, ConfigFile: "/c.yaml"})
	if s.Status != "healthy" || !s.Service.Reachable || s.Paths == nil || s.Paths.ConfigFile != "/c.yaml" {
		t.Fatalf("snapshot = %+v", s)
	}

	starting := &scriptedChecker{results: []result{{health: assistant.Health{Status: "starting"}}}}
	if s := Collect(context.Background(), Options{Checker: starting}); s.Status != "degraded" {
		t.Fatalf("status = %q, want degraded", s.Status)
	}

	down := &scriptedChecker{results: []result{{err: errors.New("refused")}}}
	s = Collect(context.Background(), Options{Checker: down})
	if s.Status != "unreachable" || s.Service.Error != "refused" || s.Paths != nil {
		t.Fatalf("snapshot = %+v", s)
	}
}
