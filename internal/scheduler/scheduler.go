// Package scheduler fires a job once per day at a configured local time. The
// fire time is configuration; the loop owns no business logic.
package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type Scheduler struct {
	hour   int
	minute int
	job    func(ctx context.Context)
	log    zerolog.Logger
	now    func() time.Time
}

func New(hour, minute int, job func(ctx context.Context), log zerolog.Logger) *Scheduler {
	return &Scheduler{hour: hour, minute: minute, job: job, log: log, now: time.Now}
}

// Run blocks until ctx is cancelled, firing the job at the configured time
// each day.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		next := nextFire(s.now(), s.hour, s.minute)
		s.log.Info().Time("next_run", next).Msg("scheduler waiting")

		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.Info().Msg("scheduler stopped")
			return
		case <-timer.C:
			s.job(ctx)
		}
	}
}

// nextFire returns the next occurrence of hour:minute strictly after now, in
// now's location.
func nextFire(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
