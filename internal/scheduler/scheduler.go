package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/config"
)

// Job is the scheduled report run.
type Job interface {
	RunScheduled(ctx context.Context) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	job      Job
	schedule string
	timeout  time.Duration
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler running job on the configured cron
// schedule in the configured timezone.
func NewScheduler(cfg config.ReportingConfig, job Job, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	// Standard 5-field cron expressions (min, hour, dom, month, dow).
	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:     c,
		job:      job,
		schedule: cfg.CronSchedule,
		timeout:  2 * time.Minute,
		logger:   logger,
	}, nil
}

// Start registers the report job and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.runReports); err != nil {
		return fmt.Errorf("schedule report snapshots: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runReports() {
	s.logger.Info("capturing report snapshots")
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.job.RunScheduled(ctx); err != nil {
		s.logger.Error("scheduled report run failed", zap.Error(err))
		return
	}
	s.logger.Info("scheduled report run completed")
}
