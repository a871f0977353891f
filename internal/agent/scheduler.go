package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// JobState adalah posisi job dalam lifecycle Scheduled -> Firing -> Succeeded/Abandoned.
type JobState int

const (
	StateUnknown JobState = iota
	StateScheduled
	StateFiring
	StateSucceeded
	StateAbandoned
)

func (s JobState) String() string {
	switch s {
	case StateScheduled:
		return "scheduled"
	case StateFiring:
		return "firing"
	case StateSucceeded:
		return "succeeded"
	case StateAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// ErrSchedulerStopped is returned by ScheduleOnce after Stop.
var ErrSchedulerStopped = errors.New("scheduler stopped")

// finished job states kept for State lookups
const maxHistory = 1024

// onceSchedule fires at a single instant and never again.
type onceSchedule struct {
	mu    sync.Mutex
	at    time.Time
	fired bool
}

func (o *onceSchedule) Next(t time.Time) time.Time {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.fired {
		return time.Time{}
	}
	o.fired = true
	if o.at.Before(t) {
		return t
	}
	return o.at
}

// cronLogger meneruskan log internal cron ke slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}

// Scheduler menjalankan job sekali jalan pada waktu yang ditentukan.
// Job yang sudah dijadwalkan tidak bisa dibatalkan; job tetap jalan walaupun
// data yang memicunya sudah dihapus.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	entries  map[uuid.UUID]cron.EntryID
	states   map[uuid.UUID]JobState
	finished []uuid.UUID
	stopped  bool
}

// NewScheduler membuat instance scheduler baru
func NewScheduler() *Scheduler {
	logger := slog.Default().With("component", "scheduler")
	ctx, cancel := context.WithCancel(context.Background())

	cl := cronLogger{logger: logger}

	return &Scheduler{
		cron:    cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl))),
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		entries: make(map[uuid.UUID]cron.EntryID),
		states:  make(map[uuid.UUID]JobState),
	}
}

// ScheduleOnce mendaftarkan job untuk dijalankan satu kali pada waktu at.
// Waktu yang sudah lewat berarti job dijalankan secepatnya setelah Start.
func (s *Scheduler) ScheduleOnce(job Job, at time.Time) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return uuid.Nil, ErrSchedulerStopped
	}

	id := uuid.New()
	entryID := s.cron.Schedule(&onceSchedule{at: at}, cron.FuncJob(func() {
		s.run(id, job)
	}))

	s.entries[id] = entryID
	s.states[id] = StateScheduled
	jobsPending.Inc()

	s.logger.Info("job scheduled", "job", job.GetName(), "id", id, "at", at)
	return id, nil
}

func (s *Scheduler) run(id uuid.UUID, job Job) {
	// blocks until ScheduleOnce has recorded the entry
	s.mu.Lock()
	s.states[id] = StateFiring
	s.mu.Unlock()
	jobsPending.Dec()

	state := StateSucceeded
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("job panicked", "job", job.GetName(), "id", id, "panic", fmt.Sprint(r))
			state = StateAbandoned
		}
		s.finish(id, job.GetName(), state)
	}()

	s.logger.Info("job firing", "job", job.GetName(), "id", id)
	if err := job.Execute(s.ctx); err != nil {
		s.logger.Error("job abandoned", "job", job.GetName(), "id", id, "error", err)
		state = StateAbandoned
		return
	}
	s.logger.Info("job succeeded", "job", job.GetName(), "id", id)
}

func (s *Scheduler) finish(id uuid.UUID, name string, state JobState) {
	s.mu.Lock()
	entryID, ok := s.entries[id]
	delete(s.entries, id)
	s.states[id] = state
	s.finished = append(s.finished, id)
	if len(s.finished) > maxHistory {
		delete(s.states, s.finished[0])
		s.finished = s.finished[1:]
	}
	s.mu.Unlock()

	if ok {
		s.cron.Remove(entryID)
	}
	jobsFinished.WithLabelValues(name, state.String()).Inc()
}

// State mengembalikan state job. ok bernilai false untuk id yang tidak dikenal
// atau yang sudah keluar dari history.
func (s *Scheduler) State(id uuid.UUID) (JobState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[id]
	return st, ok
}

// Pending menghitung job yang belum mulai jalan.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, st := range s.states {
		if st == StateScheduled {
			n++
		}
	}
	return n
}

// Start menjalankan scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "pending", s.Pending())
}

// Stop menghentikan scheduler, membatalkan context job yang sedang jalan,
// lalu menunggu job tersebut selesai atau ctx habis.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	s.cancel()
	done := s.cron.Stop()

	select {
	case <-done.Done():
		s.logger.Info("scheduler stopped", "pending", s.Pending())
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
