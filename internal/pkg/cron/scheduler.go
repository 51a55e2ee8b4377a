package cron

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Job represents a scheduled job
type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

// JobStatus is the outcome of the latest run of a job.
type JobStatus struct {
	Name      string        `json:"name"`
	LastRun   time.Time     `json:"last_run"`
	Duration  time.Duration `json:"duration"`
	LastError string        `json:"last_error,omitempty"`
	Runs      int           `json:"runs"`
	Failures  int           `json:"failures"`
}

// Scheduler runs each registered job on its own ticker until stopped.
type Scheduler struct {
	jobs    []Job
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool

	statusMu sync.RWMutex
	status   map[string]JobStatus
}

// NewScheduler creates a scheduler whose jobs stop when parent is cancelled or Stop is called.
func NewScheduler(parent context.Context) *Scheduler {
	ctx, cancel := context.WithCancel(parent)
	return &Scheduler{
		jobs:   make([]Job, 0),
		ctx:    ctx,
		cancel: cancel,
		status: make(map[string]JobStatus),
	}
}

// AddJob adds a job to the scheduler. Jobs added after Start are ignored.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		slog.Warn("Cron job registered after start, ignoring", "name", name)
		return
	}

	s.jobs = append(s.jobs, Job{
		Name:     name,
		Interval: interval,
		Fn:       fn,
	})
	slog.Info("Cron job registered", "name", name, "interval", interval)
}

// Start begins running all scheduled jobs
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
	}

	slog.Info("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop gracefully stops all scheduled jobs
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

func (s *Scheduler) runJob(job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	// Run immediately on start
	s.executeJob(s.ctx, job)

	for {
		select {
		case <-s.ctx.Done():
			slog.Info("Cron job stopping", "name", job.Name)
			return
		case <-ticker.C:
			s.executeJob(s.ctx, job)
		}
	}
}

func (s *Scheduler) executeJob(ctx context.Context, job Job) {
	start := time.Now()
	slog.Debug("Cron job starting", "name", job.Name)

	err := job.Fn(ctx)
	elapsed := time.Since(start)
	if err != nil {
		slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", elapsed)
	} else {
		slog.Debug("Cron job completed", "name", job.Name, "duration", elapsed)
	}

	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	st := s.status[job.Name]
	st.Name = job.Name
	st.LastRun = start
	st.Duration = elapsed
	st.Runs++
	st.LastError = ""
	if err != nil {
		st.LastError = err.Error()
		st.Failures++
	}
	s.status[job.Name] = st
}

// RunOnce runs all jobs once in registration order.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	jobs := append([]Job(nil), s.jobs...)
	s.mu.Unlock()

	for _, job := range jobs {
		s.executeJob(ctx, job)
	}
}

// Status returns the latest outcome of every job that has run, sorted by name.
func (s *Scheduler) Status() []JobStatus {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()

	out := make([]JobStatus, 0, len(s.status))
	for _, st := range s.status {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
