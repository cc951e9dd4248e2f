package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"
)

type stubSweeper struct {
	mu      sync.Mutex
	calls   int
	befores []time.Time
	err     error
}

func (s *stubSweeper) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	s.befores = append(s.befores, before)

	return 1, s.err
}

func (s *stubSweeper) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}

func TestSweepSessionsUsesTTL(t *testing.T) {
	store := &stubSweeper{}
	s := New(context.Background(), store, time.Hour, slog.Default())

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.sweepSessions()

	if store.callCount() != 1 {
		t.Fatalf("expected one sweep, got %d", store.callCount())
	}

	if want := now.Add(-time.Hour); !store.befores[0].Equal(want) {
		t.Fatalf("unexpected cutoff: got %s want %s", store.befores[0], want)
	}
}

func TestSweepSessionsSkipsWithoutTTL(t *testing.T) {
	store := &stubSweeper{}
	s := New(context.Background(), store, 0, slog.Default())

	s.sweepSessions()

	if store.callCount() != 0 {
		t.Fatalf("expected no sweep without TTL, got %d", store.callCount())
	}
}

func TestSweepSessionsSkipsWhenContextIsDone(t *testing.T) {
	store := &stubSweeper{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(ctx, store, time.Hour, slog.Default())
	s.sweepSessions()

	if store.callCount() != 0 {
		t.Fatalf("expected no sweep after cancellation, got %d", store.callCount())
	}
}

func TestSweepSessionsToleratesStoreError(t *testing.T) {
	store := &stubSweeper{err: errors.New("boom")}
	s := New(context.Background(), store, time.Hour, slog.Default())

	s.sweepSessions()

	if store.callCount() != 1 {
		t.Fatalf("expected one sweep, got %d", store.callCount())
	}
}

func TestSchedulerStartStop(t *testing.T) {
	s := New(context.Background(), &stubSweeper{}, time.Hour, slog.Default())

	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entries := s.cron.Entries(); len(entries) != 1 {
		t.Fatalf("expected one cron entry, got %d", len(entries))
	}

	s.Stop()
}
