package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"github.com/structhr/structhr/internal/logfields"
)

// Refresher applies due employee status transitions for a given date.
type Refresher interface {
	Refresh(ctx context.Context, today time.Time) (int, error)
}

// TodayResolver yields the locked today date, ok=false when unset.
type TodayResolver interface {
	Current(ctx context.Context) (time.Time, bool, error)
}

// Scheduler wraps gocron for the periodic status refresh tick.
type Scheduler struct {
	scheduler gocron.Scheduler
	refresher Refresher
	today     TodayResolver
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(refresher Refresher, today TodayResolver) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: s,
		refresher: refresher,
		today:     today,
	}, nil
}

// ScheduleRefresh registers the status refresh job on the given cron
// expression. Returns the job ID for later management.
func (s *Scheduler) ScheduleRefresh(schedule string) (string, error) {
	job, err := s.scheduler.NewJob(
		gocron.CronJob(schedule, false),
		gocron.NewTask(s.executeRefresh),
		gocron.WithName("status-refresh"),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create refresh job: %w", err)
	}

	return job.ID().String(), nil
}

// Start begins the scheduler.
func (s *Scheduler) Start(ctx context.Context) {
	slog.Info("Starting scheduler")
	s.scheduler.Start()
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	slog.Info("Stopping scheduler")
	return s.scheduler.Shutdown()
}

// executeRefresh is called by gocron on every tick. The refresh runs
// against the locked today date; when no date is locked yet there is
// nothing to transition and the tick is skipped.
func (s *Scheduler) executeRefresh() {
	runID := uuid.NewString()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	today, ok, err := s.today.Current(ctx)
	if err != nil {
		slog.Error("Scheduled refresh failed reading today", logfields.JobID(runID), logfields.Error(err))
		return
	}
	if !ok {
		slog.Debug("Scheduled refresh skipped, no locked today date", logfields.JobID(runID))
		return
	}

	changed, err := s.refresher.Refresh(ctx, today)
	if err != nil {
		slog.Error("Scheduled refresh failed", logfields.JobID(runID), logfields.Error(err))
		return
	}
	slog.Info("Scheduled refresh completed",
		logfields.JobID(runID),
		logfields.Today(today.Format("2006-01-02")),
		slog.Int("changed", changed))
}
