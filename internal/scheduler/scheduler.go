package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"renttrack-backend/internal/jobs"
	"renttrack-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	// Refresh runs first so reminder digests see up-to-date days_overdue.
	_, err := s.cron.AddFunc(cfg.RefreshOverduePeriods, s.jobs.RefreshOverduePeriods)
	if err != nil {
		logger.Error("Failed to register RefreshOverduePeriods job", "error", err)
	}

	_, err = s.cron.AddFunc(cfg.MaterializeUpcomingPeriods, s.jobs.MaterializeUpcomingPeriods)
	if err != nil {
		logger.Error("Failed to register MaterializeUpcomingPeriods job", "error", err)
	}

	_, err = s.cron.AddFunc(cfg.SendOverdueReminders, s.jobs.SendOverdueReminders)
	if err != nil {
		logger.Error("Failed to register SendOverdueReminders job", "error", err)
	}

	logger.Info("All cron jobs registered successfully")
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}
