package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	SessionSweepSpec      = "*/10 * * * *"
	Timezone              = "UTC"
	TimezoneOffsetSeconds = 0
	sweepSessionsTimeout  = time.Minute
)

type SessionSweeper interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type Scheduler struct {
	ctx   context.Context
	cron  *cron.Cron
	store SessionSweeper
	ttl   time.Duration
	now   func() time.Time
	log   *slog.Logger
}

func New(ctx context.Context, store SessionSweeper, ttl time.Duration, log *slog.Logger) *Scheduler {
	c := cron.New(cron.WithLocation(time.FixedZone(Timezone, TimezoneOffsetSeconds)))

	return &Scheduler{
		ctx:   ctx,
		cron:  c,
		store: store,
		ttl:   ttl,
		now:   time.Now,
		log:   log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(SessionSweepSpec, s.sweepSessions); err != nil {
		return err
	}

	s.cron.Start()

	return nil
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sweepSessions() {
	ctx, cancel := context.WithTimeout(s.ctx, sweepSessionsTimeout)
	defer cancel()

	select {
	case <-ctx.Done():
		s.log.InfoContext(ctx, "Scheduler context is done",
			"error", ctx.Err())
		return
	default:
	}

	if s.ttl <= 0 {
		return
	}

	before := s.now().Add(-s.ttl)

	deleted, err := s.store.DeleteExpired(ctx, before)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to delete expired sessions",
			"error", err,
			"before", before,
			"ttl", s.ttl)

		return
	}

	s.log.InfoContext(ctx, "Expired sessions are swept",
		"deleted", deleted,
		"before", before,
		"ttl", s.ttl)
}
