package jobs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trainingLog/internal/logging"
)

type countingProber struct{ n atomic.Int32 }

func (p *countingProber) Probe(context.Context) error {
	p.n.Add(1)
	return nil
}

type countingCleaner struct{ n atomic.Int32 }

func (c *countingCleaner) Cleanup(time.Duration) int {
	c.n.Add(1)
	return 1
}

func TestScheduler_RunsJobs(t *testing.T) {
	s := New(logging.Discard())
	p := &countingProber{}
	c := &countingCleaner{}
	require.NoError(t, s.AddProbe("@every 1s", p))
	require.NoError(t, s.AddCleanup("@every 1s", c, time.Minute))
	assert.Equal(t, 2, s.Len())

	s.Start()
	assert.Eventually(t, func() bool {
		return p.n.Load() > 0 && c.n.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
}

func TestScheduler_RejectsBadSchedule(t *testing.T) {
	s := New(logging.Discard())
	assert.Error(t, s.AddProbe("not a schedule", &countingProber{}))
	assert.Equal(t, 0, s.Len())
}
