package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"medrush/cmd"
	"medrush/internal/adapters/out/optimizer"
	"medrush/internal/adapters/out/redislock"
	"medrush/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db := mustConnectDB(configs)

	optimizerClient, err := optimizer.NewClient(configs.OptimizerBaseURL, configs.OptimizerAPIKey)
	if err != nil {
		log.Fatalf("Error creating optimizer client: %v", err)
	}

	redisClient, err := redislock.NewClient(configs.RedisURL)
	if err != nil {
		log.Fatalf("Error connecting to redis: %v", err)
	}
	routeLocker := redislock.NewRedisRouteLocker(redisClient)

	root := cmd.NewCompositionRoot(configs, db, optimizerClient, routeLocker, logger)

	runner := jobs.NewRunner(logger)

	jobManager := root.CreateJobManager(runner)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer func() {
		jobManager.StopAll()
		runner.Wait()
	}()

	startWebServer(&root, runner, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		RedisURL:           goDotEnvVariable("REDIS_URL"),
		OptimizerBaseURL:   goDotEnvVariable("OPTIMIZER_BASE_URL"),
		OptimizerAPIKey:    goDotEnvVariable("OPTIMIZER_API_KEY"),
		AssignmentSchedule: goDotEnvVariable("ASSIGNMENT_CRON"),
		AssignmentRegions:  splitList(goDotEnvVariable("ASSIGNMENT_REGIONS")),
		CourierMinLoad:     mustAtoi("COURIER_MIN_LOAD"),
		CourierMaxLoad:     mustAtoi("COURIER_MAX_LOAD"),
		AssignmentWindow:   time.Duration(mustAtoi("ASSIGNMENT_WINDOW_HOURS")) * time.Hour,
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustAtoi(key string) int {
	value, err := strconv.Atoi(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return db
}

func startWebServer(root *cmd.CompositionRoot, runner *jobs.Runner, port string) {
	e := echo.New()

	server := root.CreateHTTPServer(runner)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
