package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisURL string

	OptimizerBaseURL string
	OptimizerAPIKey  string

	// AssignmentSchedule is a cron expression with a seconds field.
	AssignmentSchedule string
	// AssignmentRegions lists the dispatch regions batch assignment covers.
	AssignmentRegions []string
	CourierMinLoad    int
	CourierMaxLoad    int
	// AssignmentWindow spans the delivery window of one batch assignment run.
	AssignmentWindow time.Duration
}
