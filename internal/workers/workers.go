package workers

import (
	"context"
	"sync"
)

// Workers runs a set of background workers and tracks their completion.
type Workers struct {
	workers []Worker
	wg      sync.WaitGroup
}

// NewWorkers creates an aggregate over the given workers.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run launches every worker in its own goroutine and returns immediately.
// Cancel ctx to stop the workers, then [Workers.Wait] for them to finish.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker := worker
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			worker.Run(ctx)
		}()
	}
}

// Wait blocks until every launched worker has returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}
