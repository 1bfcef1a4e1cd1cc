package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/osse101/DegenBox_Go/internal/worker"
)

// Enqueuer accepts jobs without blocking
type Enqueuer interface {
	Enqueue(job worker.Job) bool
}

// Scheduler feeds periodic jobs to a worker pool
type Scheduler struct {
	pool     Enqueuer
	quit     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New creates a scheduler that enqueues on pool
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule enqueues job now and then every interval until Stop. Ticks that
// find the queue full are dropped rather than queued up behind it.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			if !s.pool.Enqueue(job) {
				slog.Default().Debug(LogMsgTickSkipped, "job", job.Name(), "interval", interval)
			}
			select {
			case <-ticker.C:
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop halts every schedule and waits for the loops to exit. It is safe to
// call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}
