package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platify/platify-core/internal/testing/leaktest"
)

type testJob struct {
	executed *int32
	err      error
}

func (j *testJob) Name() string { return "test" }

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return j.err
}

func TestPool(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	var executed int32
	pool := NewPool(TestWorkerCount, TestQueueSize)
	pool.Start()

	job := &testJob{executed: &executed}
	require.True(t, pool.Enqueue(job))
	require.True(t, pool.Enqueue(&testJob{executed: &executed, err: errors.New("failed job keeps the worker alive")}))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&executed) == TestExpectedJobCount
	}, time.Second, 5*time.Millisecond)

	pool.Stop()
	checker.Check(0)
}

func TestPool_EnqueueAfterStop(t *testing.T) {
	var executed int32
	pool := NewPool(1, 1)
	pool.Start()
	pool.Stop()
	pool.Stop()

	assert.False(t, pool.Enqueue(&testJob{executed: &executed}))
	assert.False(t, pool.TryEnqueue(&testJob{executed: &executed}))
}

type blockingJob struct {
	started chan struct{}
}

func (j *blockingJob) Name() string { return "blocking" }

func (j *blockingJob) Process(ctx context.Context) error {
	close(j.started)
	<-ctx.Done()
	return ctx.Err()
}

func TestPool_TryEnqueueWhenFull(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	pool := NewPool(1, 1)
	pool.Start()

	blocker := &blockingJob{started: make(chan struct{})}
	require.True(t, pool.Enqueue(blocker))
	<-blocker.started

	var executed int32
	assert.True(t, pool.TryEnqueue(&testJob{executed: &executed}), "queue has room for one job")
	assert.False(t, pool.TryEnqueue(&testJob{executed: &executed}), "queue is full")

	// Stop cancels the blocking job's context
	pool.Stop()
	checker.Check(0)
}
