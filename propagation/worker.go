package propagation

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/star/orbitgo/internal/metrics"
)

// DefaultWorkers returns the worker count used when the caller does not
// specify one.
func DefaultWorkers() int {
	return runtime.NumCPU()
}

// batchJob is a unit of work for the worker pool.
type batchJob struct {
	prop   *Propagator
	tsince float64 // minutes from the satellite's own epoch
}

// batchResult is the output of a single satellite propagation.
type batchResult struct {
	result BatchResult
	err    error
	catnum int
}

// BatchResult is one successfully propagated satellite from a batch.
type BatchResult struct {
	CatalogNumber int
	State         StateVector
}

// WorkerPool manages a fixed number of goroutines for parallel propagation.
type WorkerPool struct {
	workers int
	logger  *slog.Logger
}

// NewWorkerPool creates a worker pool with the given number of workers.
// Non-positive worker counts fall back to DefaultWorkers; a nil logger
// falls back to slog.Default.
func NewWorkerPool(workers int, logger *slog.Logger) *WorkerPool {
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkerPool{
		workers: workers,
		logger:  logger,
	}
}

// PropagateBatch propagates every satellite to the target time using the
// worker pool. Each propagator is evaluated at the offset of targetTime from
// its own element set epoch. Returns results for all satellites that
// succeeded plus the success and error counts; failed satellites are logged
// and skipped.
func (wp *WorkerPool) PropagateBatch(ctx context.Context, props []*Propagator, targetTime time.Time) ([]BatchResult, int, int) {
	if len(props) == 0 {
		return nil, 0, 0
	}

	start := time.Now()

	jobs := make(chan batchJob, wp.workers*2)
	results := make(chan batchResult, wp.workers*2)

	// Start workers.
	var wg sync.WaitGroup
	for i := 0; i < wp.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			metrics.WorkerStarted()
			defer metrics.WorkerStopped()
			for job := range jobs {
				result := propagateSingle(job)
				select {
				case results <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Feed jobs in a goroutine.
	go func() {
		defer close(jobs)
		for _, prop := range props {
			job := batchJob{
				prop:   prop,
				tsince: targetTime.Sub(prop.Epoch()).Minutes(),
			}
			select {
			case jobs <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Close results when all workers are done.
	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect results.
	out := make([]BatchResult, 0, len(props))
	var successCount, errorCount int

	for result := range results {
		if result.err != nil {
			errorCount++
			metrics.RecordFailure(failureKind(result.err))
			wp.logger.Warn("propagation failed",
				"catalog_number", result.catnum,
				"error", result.err,
			)
			continue
		}
		successCount++
		out = append(out, result.result)
	}

	metrics.RecordBatch(time.Since(start), successCount, errorCount)
	return out, successCount, errorCount
}

// propagateSingle evaluates one satellite at its offset from epoch.
func propagateSingle(job batchJob) batchResult {
	state, err := job.prop.Propagate(job.tsince)
	if err != nil {
		return batchResult{catnum: job.prop.CatalogNumber(), err: err}
	}
	return batchResult{
		catnum: job.prop.CatalogNumber(),
		result: BatchResult{
			CatalogNumber: job.prop.CatalogNumber(),
			State:         state,
		},
	}
}

// failureKind maps a propagation error to its metrics label.
func failureKind(err error) string {
	var perr *PropagationError
	if errors.As(err, &perr) {
		return string(perr.Kind)
	}
	return "other"
}
