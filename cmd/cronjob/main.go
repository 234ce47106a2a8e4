package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"renttrack-backend/internal/config"
	"renttrack-backend/internal/jobs"
	"renttrack-backend/internal/logger"
	"renttrack-backend/internal/repository/postgres"
	"renttrack-backend/internal/scheduler"
	"renttrack-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'refresh-overdue', 'materialize-periods', 'send-reminders', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentTrack Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	guard := service.NewAuthorizationGuard(store.Orgs, store.Memberships)
	auditEmitter := service.NewAuditEmitter(store.AuditLogs)
	clock := service.NewClock()

	emailService := service.NewEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
	)
	periodService := service.NewRentPeriodService(
		guard,
		store,
		store.RentConfigs,
		store.Occupancies,
		store.RentPeriods,
		auditEmitter,
		clock,
	)

	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{
		Email:  emailService,
		Period: periodService,
	}, cfg)

	// One-shot mode for manual runs and container cron
	if *runOnce != "" {
		switch *runOnce {
		case "refresh-overdue":
			jobRunner.RefreshOverduePeriods()
		case "materialize-periods":
			jobRunner.MaterializeUpcomingPeriods()
		case "send-reminders":
			jobRunner.SendOverdueReminders()
		case "all-nightly":
			jobRunner.RunAllNightlyJobs()
		default:
			logger.Error("Unknown job", "job", *runOnce)
			os.Exit(1)
		}
		return
	}

	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sched.Stop()
}
