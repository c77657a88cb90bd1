package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hr-portal-backend/internal/usecase/renewal"
	"hr-portal-backend/pkg/date"

	"github.com/bsm/redislock"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const LockKey = "lock:renewal:daily"

type Runner interface {
	RunDaily(ctx context.Context, asOf time.Time) (*renewal.RunResult, error)
}

// Scheduler fires the renewal run on a cron spec. Overlap inside the process is
// skipped by the cron chain; across instances by a redis lock.
type Scheduler struct {
	cron    *cron.Cron
	runner  Runner
	locker  *redislock.Client
	lockTTL time.Duration
	loc     *time.Location
	log     logrus.FieldLogger
	now     func() time.Time
}

func New(runner Runner, locker *redislock.Client, spec string, loc *time.Location, lockTTL time.Duration, log logrus.FieldLogger) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	log = log.WithField("module", "scheduler")
	cl := cron.PrintfLogger(log)
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		runner:  runner,
		locker:  locker,
		lockTTL: lockTTL,
		loc:     loc,
		log:     log,
		now:     time.Now,
	}
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, fmt.Errorf("renewal cron spec %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("renewal scheduler started")
}

// Stop prevents new runs and waits for a running one, or for ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("renewal scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Today is the civil date in the scheduler's zone, as a UTC midnight.
func (s *Scheduler) Today() time.Time {
	n := s.now().In(s.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// RunOnce executes a renewal run for asOf while holding the cluster lock.
// renewal.ErrAlreadyRunning when another holder has it; renewal.ErrFutureDate
// when asOf is after today in the scheduler's zone.
func (s *Scheduler) RunOnce(ctx context.Context, asOf time.Time) (*renewal.RunResult, error) {
	if date.Of(asOf).After(s.Today()) {
		return nil, fmt.Errorf("%w: %s", renewal.ErrFutureDate, date.Format(asOf))
	}
	lock, err := s.locker.Obtain(ctx, LockKey, s.lockTTL, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, renewal.ErrAlreadyRunning
	}
	if err != nil {
		return nil, fmt.Errorf("obtain renewal lock: %w", err)
	}
	defer func() {
		// outlive a cancelled ctx so the lock is not left to expire
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			s.log.WithError(err).Warn("release renewal lock")
		}
	}()

	return s.runner.RunDaily(ctx, asOf)
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.lockTTL)
	defer cancel()

	asOf := s.Today()
	res, err := s.RunOnce(ctx, asOf)
	switch {
	case errors.Is(err, renewal.ErrAlreadyRunning):
		s.log.WithField("as_of", asOf.Format("2006-01-02")).Info("renewal skipped, lock held elsewhere")
	case err != nil:
		entry := s.log.WithError(err)
		if res != nil {
			entry = entry.WithField("failures", res.Failures)
		}
		entry.Error("scheduled renewal finished with errors")
	}
}
