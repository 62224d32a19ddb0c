package workers

import (
	"context"
	"sync"
)

type Workers struct {
	workers []Worker
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every worker in its own goroutine and waits for all of them.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Go(func() {
			worker.Run(ctx)
		})
	}
	wg.Wait()
}
