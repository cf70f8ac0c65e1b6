// Package jobs runs the periodic maintenance tasks of the server.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Default schedules.
const (
	ProbeSchedule   = "@every 30s"
	CleanupSchedule = "@every 10m"

	// LimiterIdle is how long a client may stay quiet before its limiter is dropped.
	LimiterIdle = 30 * time.Minute
)

// Prober checks a dependency, e.g. the database.
type Prober interface {
	Probe(ctx context.Context) error
}

// Cleaner drops idle state and reports how much was removed.
type Cleaner interface {
	Cleanup(maxIdle time.Duration) int
}

// Scheduler wraps a cron runner with the server's jobs.
type Scheduler struct {
	cron *cron.Cron
	log  logrus.FieldLogger
}

// New creates a scheduler. Panics inside jobs are recovered and logged.
func New(log logrus.FieldLogger) *Scheduler {
	logger := cron.PrintfLogger(log)
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger))),
		log:  log,
	}
}

// AddProbe runs p on schedule.
func (s *Scheduler) AddProbe(schedule string, p Prober) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if err := p.Probe(context.Background()); err != nil {
			s.log.WithError(err).Debug("probe job failed")
		}
	})
	return err
}

// AddCleanup runs c.Cleanup(maxIdle) on schedule.
func (s *Scheduler) AddCleanup(schedule string, c Cleaner, maxIdle time.Duration) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if n := c.Cleanup(maxIdle); n > 0 {
			s.log.WithField("removed", n).Debug("dropped idle rate limiters")
		}
	})
	return err
}

// Len returns the number of scheduled jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for running jobs until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
