// Package jobs provides scheduled and asynchronous background work for the
// dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// plus an async Runner that executes submitted work with bounded retries.
//
// # Available Jobs
//
// 1. BatchAssignmentJob - Periodically assigns each region's pending order
// backlog to couriers through the batch optimization pipeline.
//
// Route reoptimization runs are not scheduled; dispatcher requests submit
// them straight to the Runner.
//
// # Usage
//
// Scheduled jobs are managed through JobManager:
//
//	runner := jobs.NewRunner(logger)
//	jobManager := jobs.NewJobManager(assignHandler, runner, assignmentConfig, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer func() {
//		jobManager.StopAll()
//		runner.Wait()
//	}()
//
// # Error Handling
//
// A failed job run is retried up to two times. Validation failures and
// optimizer integrity violations are never retried; the final failure of a
// run is logged and the job is dropped.
package jobs
