package execution

import (
	"context"
	"sync"
	"time"

	"btt/internal/config"
	"btt/internal/domain"
	"btt/internal/ui"
)

// WorkerPool manages a pool of workers for processing spec files in parallel
type WorkerPool struct {
	config   *config.Config
	runner   *Runner
	progress *ui.ProgressBar
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner *Runner) *WorkerPool {
	return &WorkerPool{
		config: cfg,
		runner: runner,
	}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

type job struct {
	index int
	path  string
}

// Check checks every spec. Results keep the order of specs. With failFast no
// new spec is started after the first one that fails; specs never started
// are left out of the results.
func (wp *WorkerPool) Check(specs []string, failFast bool) ([]domain.CheckResult, time.Duration) {
	if len(specs) == 0 {
		return nil, 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startTime := time.Now()
	results := make([]domain.CheckResult, len(specs))
	done := make([]bool, len(specs))

	var mu sync.Mutex
	var conforming, drifted int

	wp.run(ctx, specs, func(j job) {
		result := wp.runner.Check(j.path)

		mu.Lock()
		defer mu.Unlock()
		results[j.index] = result
		done[j.index] = true
		if result.Conforms() {
			conforming++
		} else {
			drifted++
			if failFast {
				cancel()
			}
		}
		if wp.progress != nil {
			wp.progress.Update(conforming, drifted)
		}
	})

	if wp.progress != nil {
		wp.progress.Finish()
	}

	var collected []domain.CheckResult
	for i, result := range results {
		if done[i] {
			collected = append(collected, result)
		}
	}
	return collected, time.Since(startTime)
}

// Scaffold emits test files for every spec, in the order of specs
func (wp *WorkerPool) Scaffold(specs []string) ([]domain.ScaffoldResult, time.Duration) {
	if len(specs) == 0 {
		return nil, 0
	}

	startTime := time.Now()
	results := make([]domain.ScaffoldResult, len(specs))

	var mu sync.Mutex
	var succeeded, failed int

	wp.run(context.Background(), specs, func(j job) {
		result := wp.runner.Scaffold(j.path)

		mu.Lock()
		defer mu.Unlock()
		results[j.index] = result
		if result.Error == nil {
			succeeded++
		} else {
			failed++
		}
		if wp.progress != nil {
			wp.progress.Update(succeeded, failed)
		}
	})

	if wp.progress != nil {
		wp.progress.Finish()
	}
	return results, time.Since(startTime)
}

// run feeds specs to the workers until they are exhausted or ctx is done
func (wp *WorkerPool) run(ctx context.Context, specs []string, process func(job)) {
	queue := make(chan job, 1)
	go func() {
		defer close(queue)
		for i, spec := range specs {
			select {
			case <-ctx.Done():
				return
			case queue <- job{index: i, path: spec}:
			}
		}
	}()

	workerCount := wp.config.Processors
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				if ctx.Err() != nil {
					continue
				}
				process(j)
			}
		}()
	}
	wg.Wait()
}
