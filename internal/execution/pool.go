package execution

import (
	"context"
	"sync"
	"time"

	"execbench/internal/config"
	"execbench/internal/domain"
	"execbench/internal/ui"
)

// WorkerPool fans requests out across a fixed set of workers
type WorkerPool struct {
	config   *config.Config
	runner   *Runner
	progress *ui.ProgressBar
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner *Runner) *WorkerPool {
	return &WorkerPool{config: cfg, runner: runner}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

// Execute dispatches requests 1..requests and blocks until every outcome is
// recorded. Workers pull indices from a shared queue and each writes only its
// own request's slot, so the result holds exactly one outcome per request
// regardless of completion order. A failed request never stops the run.
func (wp *WorkerPool) Execute(ctx context.Context, requests int) ([]domain.Outcome, time.Duration, error) {
	if requests <= 0 {
		return nil, 0, nil
	}

	queue := make(chan int, requests)
	for idx := 1; idx <= requests; idx++ {
		queue <- idx
	}
	close(queue)

	outcomes := make([]domain.Outcome, requests)

	var mu sync.Mutex
	var succeeded, failed int
	startTime := time.Now()
	workerCount := wp.config.Workers
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queue {
				outcome := wp.runner.Run(ctx, idx)
				outcomes[idx-1] = outcome

				mu.Lock()
				if outcome.OK {
					succeeded++
				} else {
					failed++
				}
				if wp.progress != nil {
					if !outcome.OK {
						wp.progress.ReportFailure(outcome)
					}
					wp.progress.Update(succeeded, failed)
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wp.progress != nil {
		wp.progress.Finish()
	}
	return outcomes, time.Since(startTime), nil
}
