package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/DegenBox_Go/internal/testing/leaktest"
)

type testJob struct {
	executed *int32
	block    chan struct{}
}

func (j *testJob) Name() string { return "test" }

func (j *testJob) Process(ctx context.Context) error {
	if j.block != nil {
		select {
		case <-j.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	atomic.AddInt32(j.executed, 1)
	return nil
}

func TestPool(t *testing.T) {
	var executed int32
	pool := NewPool(context.Background(), TestWorkerCount, TestQueueSize)
	pool.Start()

	job := &testJob{executed: &executed}
	assert.True(t, pool.Enqueue(job))
	assert.True(t, pool.Enqueue(job))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&executed) == TestExpectedJobCount
	}, time.Second, 10*time.Millisecond)

	pool.Stop()
}

func TestPool_EnqueueFullQueue(t *testing.T) {
	var executed int32
	pool := NewPool(context.Background(), 1, 1)

	// Not started, so the single slot stays occupied
	assert.True(t, pool.Enqueue(&testJob{executed: &executed}))
	assert.False(t, pool.Enqueue(&testJob{executed: &executed}))
	pool.Stop()
}

func TestPool_StopCancelsRunningJobs(t *testing.T) {
	var executed int32
	pool := NewPool(context.Background(), 1, 1)
	pool.Start()

	pool.Enqueue(&testJob{executed: &executed, block: make(chan struct{})})

	done := make(chan struct{})
	go func() {
		pool.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
	assert.Zero(t, atomic.LoadInt32(&executed))
}

func TestPool_StopReleasesWorkers(t *testing.T) {
	leaktest.Verify(t, func() {
		var executed int32
		pool := NewPool(context.Background(), TestWorkerCount, TestQueueSize)
		pool.Start()
		pool.Enqueue(&testJob{executed: &executed})
		pool.Stop()
	})
}
