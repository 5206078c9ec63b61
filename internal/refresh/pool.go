package refresh

import (
	"context"
	"log"
	"sync"
)

// WorkerPool runs a fixed number of workers that each recompute one
// project at a time.
type WorkerPool struct {
	size    int
	jobs    chan string
	handle  func(ctx context.Context, projectID string)
	pending sync.WaitGroup
}

// NewWorkerPool creates a new worker pool. handle is called once per
// dispatched project ID.
func NewWorkerPool(size int, handle func(ctx context.Context, projectID string)) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	return &WorkerPool{
		size:   size,
		jobs:   make(chan string, size), // Buffered channel
		handle: handle,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Refresh worker %d started", id)
	for {
		select {
		case projectID := <-wp.jobs:
			wp.handle(ctx, projectID)
			wp.pending.Done()
		case <-ctx.Done():
			log.Printf("Refresh worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a project for the workers. It blocks while the queue is
// full and reports false if ctx ends first.
func (wp *WorkerPool) Dispatch(ctx context.Context, projectID string) bool {
	wp.pending.Add(1)
	select {
	case wp.jobs <- projectID:
		return true
	case <-ctx.Done():
		wp.pending.Done()
		return false
	}
}

// Wait blocks until every dispatched job has been handled or ctx ends.
func (wp *WorkerPool) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		wp.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan string {
	return wp.jobs
}
