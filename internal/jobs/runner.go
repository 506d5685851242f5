package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"medrush/internal/core/application/usecases/commands"
	"medrush/internal/core/domain/model/order"
	"medrush/internal/pkg/errs"
)

const (
	// maxRetries bounds how often a failed job run is re-executed.
	maxRetries = 2

	retryDelay = time.Second
)

// Job is one unit of background work executed by the Runner.
type Job func(ctx context.Context) error

// Runner executes submitted jobs asynchronously. A failed run is retried up
// to maxRetries times; validation and data-integrity failures are never
// retried because re-running them cannot change the outcome.
type Runner struct {
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewRunner creates an async job runner.
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{
		logger: logger.With("component", "job_runner"),
	}
}

// Submit schedules a job for asynchronous execution and returns immediately.
func (r *Runner) Submit(name string, job Job) {
	r.wg.Add(1)

	go func() {
		defer r.wg.Done()
		r.run(name, job)
	}()
}

// Wait blocks until every submitted job has finished, including retries.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) run(name string, job Job) {
	ctx := context.Background()

	for attempt := 0; ; attempt++ {
		err := job(ctx)
		if err == nil {
			if attempt > 0 {
				r.logger.Info("job succeeded after retry", "job", name, "attempt", attempt+1)
			}
			return
		}

		if !isRetryable(err) {
			r.logger.Error("job failed, not retryable", "job", name, "error", err)
			return
		}

		if attempt == maxRetries {
			r.logger.Error("job failed after all retries", "job", name,
				"attempts", attempt+1, "error", err)
			return
		}

		r.logger.Warn("job failed, retrying", "job", name,
			"attempt", attempt+1, "error", err)
		time.Sleep(retryDelay)
	}
}

// isRetryable reports whether a failure might resolve on a later run.
// Optimizer outages, lock contention and storage errors qualify; invalid
// input and optimizer integrity violations do not.
func isRetryable(err error) bool {
	switch {
	case errors.Is(err, commands.ErrVehicleLabelMismatch),
		errors.Is(err, commands.ErrShipmentLabelMismatch),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrObjectNotFound):
		return false
	}
	return true
}
