package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/logging"
)

func TestScheduler_RunsUntilStopped(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler(logging.Discard())
	s.AddJob(Job{
		Name:     "poll",
		Interval: 10 * time.Millisecond,
		Fn: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})
	s.Start(context.Background())

	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}

func TestScheduler_ParentContextStopsJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{}, 1)

	s := NewScheduler(logging.Discard())
	s.AddJob(Job{
		Name:      "poll",
		Interval:  time.Hour,
		Immediate: true,
		Fn: func(ctx context.Context) error {
			started <- struct{}{}
			<-ctx.Done()
			return ctx.Err()
		},
	})
	s.Start(ctx)
	<-started

	cancel()
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after its context was cancelled")
	}
}

func TestScheduler_IgnoresDisabledAndLateJobs(t *testing.T) {
	var runs atomic.Int32
	fn := func(context.Context) error {
		runs.Add(1)
		return errors.New("boom")
	}

	s := NewScheduler(logging.Discard())
	s.AddJob(Job{Name: "disabled", Interval: 0, Fn: fn})
	s.AddJob(Job{Name: "kept", Interval: time.Hour, Fn: fn})
	s.Start(context.Background())
	s.AddJob(Job{Name: "late", Interval: time.Hour, Fn: fn})
	defer s.Stop()

	s.RunOnce(context.Background())
	assert.Equal(t, int32(1), runs.Load())
}
