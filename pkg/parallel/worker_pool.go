package parallel

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// WorkerPool runs independent tasks over a fixed number of goroutines.
// Seed trials share only read-only inputs, so tasks need no coordination
// beyond completion tracking.
type WorkerPool struct {
	workers   int
	taskQueue chan func()
	wg        sync.WaitGroup
	once      sync.Once
	panics    atomic.Int64
}

// NewWorkerPool creates a pool with the given number of workers.
// A non-positive count falls back to a single worker.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}

	pool := &WorkerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*2),
	}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool
}

// Workers returns the number of worker goroutines.
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

// worker processes tasks from the queue, surviving task panics so one bad
// trial cannot take the rest of the run down with it.
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		func() {
			defer func() {
				if r := recover(); r != nil {
					wp.panics.Add(1)
				}
			}()
			task()
		}()
	}
}

// Submit adds a task to the pool. Submitting after Wait panics.
func (wp *WorkerPool) Submit(task func()) {
	wp.taskQueue <- task
}

// Wait closes the queue, blocks until every submitted task has finished,
// and reports an error if any task panicked.
func (wp *WorkerPool) Wait() error {
	wp.once.Do(func() {
		close(wp.taskQueue)
	})
	wp.wg.Wait()

	if n := wp.panics.Load(); n > 0 {
		return fmt.Errorf("%d task(s) panicked", n)
	}
	return nil
}
