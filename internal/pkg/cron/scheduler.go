package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// job is one registered sweep with its own interval and a logger
// scoped to the job name, so every line a run emits carries it.
type job struct {
	name     string
	interval time.Duration
	run      func(ctx context.Context) error
	log      *slog.Logger
	runs     int
}

// Scheduler drives the background sweeps on fixed intervals. All jobs
// share the scheduler's lifetime context; Stop cancels it and waits
// for in-flight runs to return before giving the process back.
type Scheduler struct {
	jobs   []*job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob registers a named job. Registration after Start has no
// effect on the running set.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j := &job{
		name:     name,
		interval: interval,
		run:      fn,
		log:      slog.Default().With("job", name),
	}
	s.jobs = append(s.jobs, j)
	j.log.Info("sweep job registered", "interval", interval.String())
}

// Start launches one goroutine per registered job. Each job fires
// once immediately, then on its interval.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.loop(j)
	}

	slog.Info("sweep scheduler started", "jobs", len(s.jobs))
}

// Stop cancels all jobs and blocks until in-flight runs finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("sweep scheduler stopped")
}

func (s *Scheduler) loop(j *job) {
	defer s.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	s.execute(j)

	for {
		select {
		case <-s.ctx.Done():
			j.log.Info("sweep job stopping", "runs", j.runs)
			return
		case <-ticker.C:
			s.execute(j)
		}
	}
}

func (s *Scheduler) execute(j *job) {
	start := time.Now()
	j.runs++

	if err := j.run(s.ctx); err != nil {
		j.log.Error("sweep run failed", "run", j.runs, "duration", time.Since(start).String(), "error", err)
		return
	}
	j.log.Debug("sweep run finished", "run", j.runs, "duration", time.Since(start).String())
}

// RunOnce fires every registered job a single time on the caller's
// context, bypassing the tickers.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		if err := j.run(ctx); err != nil {
			j.log.Error("sweep run failed", "error", err)
		}
	}
}
