package agent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startScheduler(t *testing.T) *Scheduler {
	t.Helper()
	s := NewScheduler()
	s.Start()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.Stop(ctx)
	})
	return s
}

func waitState(t *testing.T, s *Scheduler, id uuid.UUID, want JobState) {
	t.Helper()
	require.Eventually(t, func() bool {
		st, _ := s.State(id)
		return st == want
	}, 3*time.Second, 10*time.Millisecond)
}

func TestOnceScheduleFiresOnce(t *testing.T) {
	at := time.Now().Add(time.Hour)
	o := &onceSchedule{at: at}

	assert.Equal(t, at, o.Next(time.Now()))
	assert.True(t, o.Next(time.Now()).IsZero())
}

func TestOnceSchedulePastTimeFiresNow(t *testing.T) {
	now := time.Now()
	o := &onceSchedule{at: now.Add(-time.Minute)}

	assert.Equal(t, now, o.Next(now))
}

func TestScheduleOnceRunsJobOnce(t *testing.T) {
	s := startScheduler(t)

	var calls atomic.Int32
	id, err := s.ScheduleOnce(JobFunc{Name: "count", Fn: func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}}, time.Now().Add(50*time.Millisecond))
	require.NoError(t, err)

	waitState(t, s, id, StateSucceeded)
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 0, s.Pending())
}

func TestScheduleBeforeStart(t *testing.T) {
	s := NewScheduler()
	t.Cleanup(func() { _ = s.Stop(context.Background()) })

	id, err := s.ScheduleOnce(JobFunc{Name: "early", Fn: func(ctx context.Context) error {
		return nil
	}}, time.Now().Add(-time.Second))
	require.NoError(t, err)

	st, ok := s.State(id)
	require.True(t, ok)
	assert.Equal(t, StateScheduled, st)
	assert.Equal(t, 1, s.Pending())

	s.Start()
	waitState(t, s, id, StateSucceeded)
}

func TestFailedJobIsAbandoned(t *testing.T) {
	s := startScheduler(t)

	id, err := s.ScheduleOnce(JobFunc{Name: "fail", Fn: func(ctx context.Context) error {
		return errors.New("boom")
	}}, time.Now())
	require.NoError(t, err)

	waitState(t, s, id, StateAbandoned)
}

func TestPanickingJobIsAbandoned(t *testing.T) {
	s := startScheduler(t)

	id, err := s.ScheduleOnce(JobFunc{Name: "panic", Fn: func(ctx context.Context) error {
		panic("boom")
	}}, time.Now())
	require.NoError(t, err)

	waitState(t, s, id, StateAbandoned)
}

func TestPendingCountsFutureJobs(t *testing.T) {
	s := startScheduler(t)

	id, err := s.ScheduleOnce(JobFunc{Name: "later", Fn: func(ctx context.Context) error {
		return nil
	}}, time.Now().Add(time.Hour))
	require.NoError(t, err)

	st, ok := s.State(id)
	require.True(t, ok)
	assert.Equal(t, StateScheduled, st)
	assert.Equal(t, 1, s.Pending())
}

func TestStopCancelsRunningJob(t *testing.T) {
	s := NewScheduler()
	s.Start()

	started := make(chan struct{})
	id, err := s.ScheduleOnce(JobFunc{Name: "block", Fn: func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}}, time.Now())
	require.NoError(t, err)

	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("job never started")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))

	st, _ := s.State(id)
	assert.Equal(t, StateAbandoned, st)

	_, err = s.ScheduleOnce(JobFunc{Name: "late", Fn: func(ctx context.Context) error { return nil }}, time.Now())
	assert.ErrorIs(t, err, ErrSchedulerStopped)
}

func TestUnknownJobState(t *testing.T) {
	s := NewScheduler()

	st, ok := s.State(uuid.New())
	assert.False(t, ok)
	assert.Equal(t, StateUnknown, st)
	assert.Equal(t, "unknown", st.String())
}
