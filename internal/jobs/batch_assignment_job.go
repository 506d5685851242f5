package jobs

import (
	"context"
	"log/slog"
	"time"

	"medrush/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// assignPendingOrdersHandler is the slice of the command layer the job needs.
type assignPendingOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.AssignPendingOrdersCommand) error
}

// BatchAssignmentConfig drives the scheduled batch assignment runs.
type BatchAssignmentConfig struct {
	// Schedule is a cron expression with a seconds field.
	Schedule string
	// Regions lists every dispatch region that gets its own run per tick.
	Regions        []string
	CourierMinLoad int
	CourierMaxLoad int
	// WindowDuration spans the delivery window of a run, starting at the
	// moment the job fires.
	WindowDuration time.Duration
}

// BatchAssignmentJob periodically assigns each region's pending order backlog
// to couriers. Every tick submits one independent run per configured region
// to the async runner, so a failing region does not block the others.
type BatchAssignmentJob struct {
	handler assignPendingOrdersHandler
	runner  *Runner
	cron    *cron.Cron
	config  BatchAssignmentConfig
	logger  *slog.Logger
}

// NewBatchAssignmentJob creates the scheduled batch assignment job.
func NewBatchAssignmentJob(
	handler assignPendingOrdersHandler,
	runner *Runner,
	config BatchAssignmentConfig,
	logger *slog.Logger,
) *BatchAssignmentJob {
	return &BatchAssignmentJob{
		handler: handler,
		runner:  runner,
		cron:    cron.New(cron.WithSeconds()),
		config:  config,
		logger:  logger.With("component", "batch_assignment_job"),
	}
}

// Start registers the cron schedule and begins firing runs.
func (j *BatchAssignmentJob) Start() error {
	_, err := j.cron.AddFunc(j.config.Schedule, j.trigger)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("batch assignment job started",
		"schedule", j.config.Schedule, "regions", j.config.Regions)
	return nil
}

// Stop stops the cron schedule. Runs already submitted to the runner keep
// executing; callers drain them through Runner.Wait.
func (j *BatchAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.Info("batch assignment job stopped")
}

func (j *BatchAssignmentJob) trigger() {
	windowStart := time.Now().UTC()
	windowEnd := windowStart.Add(j.config.WindowDuration)

	for _, region := range j.config.Regions {
		cmd, err := commands.NewAssignPendingOrdersCommand(
			region,
			j.config.CourierMinLoad,
			j.config.CourierMaxLoad,
			windowStart,
			windowEnd,
			nil,
		)
		if err != nil {
			j.logger.Error("invalid batch assignment configuration",
				"region", region, "error", err)
			continue
		}

		j.runner.Submit("batch_assignment/"+region, func(ctx context.Context) error {
			return j.handler.Handle(ctx, cmd)
		})
	}
}
