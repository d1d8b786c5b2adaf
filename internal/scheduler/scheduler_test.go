package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/platify/platify-core/internal/testing/leaktest"
	"github.com/platify/platify-core/internal/worker"
)

// MockJob is a simple job for testing
type MockJob struct {
	RunCount int32
	Done     chan struct{}
}

func (m *MockJob) Name() string { return "mock" }

func (m *MockJob) Process(ctx context.Context) error {
	atomic.AddInt32(&m.RunCount, 1)
	// Signal that job ran
	select {
	case m.Done <- struct{}{}:
	default:
	}
	return nil
}

func TestScheduler(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	pool := worker.NewPool(1, 10)
	pool.Start()

	sched := New(pool)

	job := &MockJob{Done: make(chan struct{}, 10)}
	sched.Schedule(10*time.Millisecond, job)
	sched.Start()

	timeout := time.After(time.Second)
	runCount := 0
	for runCount < 2 {
		select {
		case <-job.Done:
			runCount++
		case <-timeout:
			t.Fatal("Timeout waiting for job execution")
		}
	}

	sched.Stop()
	sched.Stop()
	pool.Stop()

	assert.GreaterOrEqual(t, runCount, 2)
	checker.Check(0)
}

func TestScheduler_NothingRunsBeforeStart(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &MockJob{Done: make(chan struct{}, 10)}
	sched.Schedule(5*time.Millisecond, job)

	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&job.RunCount))
}

type fullQueue struct {
	attempts int32
}

func (f *fullQueue) TryEnqueue(worker.Job) bool {
	atomic.AddInt32(&f.attempts, 1)
	return false
}

func TestScheduler_FullQueueDoesNotBlock(t *testing.T) {
	queue := &fullQueue{}
	sched := New(queue)
	sched.Start()
	sched.Schedule(5*time.Millisecond, &MockJob{})

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&queue.attempts) >= 3
	}, time.Second, 5*time.Millisecond)

	done := make(chan struct{})
	go func() {
		sched.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked")
	}
}
