package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"trainingLog/internal/jobs"
	"trainingLog/internal/logging"
)

type nopProber struct{}

func (nopProber) Probe(context.Context) error { return nil }

type nopCleaner struct{}

func (nopCleaner) Cleanup(time.Duration) int { return 0 }

func TestScheduleJobs(t *testing.T) {
	s := jobs.New(logging.Discard())
	if err := scheduleJobs(s, nopProber{}, nopCleaner{}, jobs.ProbeSchedule, jobs.CleanupSchedule); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 jobs, got %d", s.Len())
	}
}

func TestScheduleJobs_InvalidSchedule(t *testing.T) {
	s := jobs.New(logging.Discard())
	err := scheduleJobs(s, nopProber{}, nopCleaner{}, "not a schedule", jobs.CleanupSchedule)
	if err == nil || !strings.Contains(err.Error(), "schedule probe") {
		t.Fatalf("expected probe schedule error, got %v", err)
	}
	err = scheduleJobs(jobs.New(logging.Discard()), nopProber{}, nopCleaner{}, jobs.ProbeSchedule, "@every nope")
	if err == nil || !strings.Contains(err.Error(), "schedule cleanup") {
		t.Fatalf("expected cleanup schedule error, got %v", err)
	}
}
