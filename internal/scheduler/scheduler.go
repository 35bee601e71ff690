package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/shiftreport/internal/config"
	"github.com/mamadbah2/shiftreport/internal/domain/models"
	"github.com/mamadbah2/shiftreport/internal/service/reporting"
)

// SummarySender delivers the summary for one calendar date.
type SummarySender interface {
	SendDailySummary(ctx context.Context, date string) (models.SummaryDelivery, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	location *time.Location
	sender   SummarySender
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a scheduler that runs in the configured timezone.
func NewScheduler(cfg config.ReportingConfig, sender SummarySender, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		schedule: cfg.CronSchedule,
		location: loc,
		sender:   sender,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Start registers the daily summary job and starts the scheduler.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.sendDailySummary); err != nil {
		return fmt.Errorf("schedule daily summary %q: %w", s.schedule, err)
	}

	s.logger.Info("starting scheduler",
		zap.String("schedule", s.schedule),
		zap.String("timezone", s.location.String()))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// sendDailySummary delivers the summary of the previous day.
func (s *Scheduler) sendDailySummary() {
	date := reporting.PreviousDay(s.now().In(s.location))
	s.logger.Info("generating daily summary", zap.String("date", date))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := s.sender.SendDailySummary(ctx, date)
	if err != nil {
		s.logger.Error("failed to send daily summary", zap.String("date", date), zap.Error(err))
		return
	}

	s.logger.Info("daily summary finished",
		zap.String("date", date),
		zap.Bool("sent", result.Sent),
		zap.String("reason", result.Reason),
		zap.String("saved_to", result.SavedTo))
}
