// Package scheduler enqueues recurring jobs on a worker pool.
package scheduler

import (
	"sync"
	"time"

	"github.com/platify/platify-core/internal/worker"
)

// Enqueuer accepts jobs without blocking
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

type entry struct {
	interval time.Duration
	job      worker.Job
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	pool     Enqueuer
	quit     chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	entries  []entry
	started  bool
	stopOnce sync.Once
}

// New creates a new scheduler
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval. Jobs registered after
// Start begin ticking immediately.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{interval: interval, job: job}
	s.entries = append(s.entries, e)
	if s.started {
		s.run(e)
	}
}

// Start starts ticking every registered job
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true
	for _, e := range s.entries {
		s.run(e)
	}
}

func (s *Scheduler) run(e entry) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				// A full queue skips this tick; the next tick retries
				s.pool.TryEnqueue(e.job)
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}
