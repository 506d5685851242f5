package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	batchAssignmentJob *BatchAssignmentJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	assignHandler assignPendingOrdersHandler,
	runner *Runner,
	assignmentConfig BatchAssignmentConfig,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		batchAssignmentJob: NewBatchAssignmentJob(assignHandler, runner, assignmentConfig, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.batchAssignmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start batch assignment job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.batchAssignmentJob.Stop()
}
