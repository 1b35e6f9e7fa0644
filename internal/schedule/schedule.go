package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron"

	"nasdaq-earnings-bot/internal/interfaces"
	"nasdaq-earnings-bot/internal/logger"
)

// Scheduler fires the daily overview and the polling cycles on cron expressions
// evaluated in one timezone. Expressions have six fields, seconds first.
type Scheduler struct {
	cron    *cron.Cron
	bot     interfaces.Bot
	timeout time.Duration
}

// New creates a scheduler. Each run gets its own context bounded by timeout.
func New(loc *time.Location, bot interfaces.Bot, timeout time.Duration) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:    cron.NewWithLocation(loc),
		bot:     bot,
		timeout: timeout,
	}
}

// Register adds the overview and poll jobs.
func (s *Scheduler) Register(overviewSpec, pollSpec string) error {
	if err := s.cron.AddFunc(overviewSpec, s.runOverview); err != nil {
		return fmt.Errorf("invalid overview schedule %q: %w", overviewSpec, err)
	}
	if err := s.cron.AddFunc(pollSpec, s.runPoll); err != nil {
		return fmt.Errorf("invalid poll schedule %q: %w", pollSpec, err)
	}
	return nil
}

// Jobs reports how many jobs are registered.
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		logger.Debug(context.Background(), "Job scheduled", "next", e.Next)
	}
}

// Stop halts the triggers. Runs already in flight are not interrupted.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) jobContext() (context.Context, context.CancelFunc) {
	ctx := context.Background()
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return context.WithCancel(ctx)
}

func (s *Scheduler) runOverview() {
	ctx, cancel := s.jobContext()
	defer cancel()

	runID := uuid.NewString()
	if err := s.bot.PostOverview(ctx); err != nil {
		logger.ErrorWithErr(ctx, "Scheduled overview failed", err, "run_id", runID)
		return
	}
	logger.Debug(ctx, "Scheduled overview done", "run_id", runID)
}

func (s *Scheduler) runPoll() {
	ctx, cancel := s.jobContext()
	defer cancel()

	runID := uuid.NewString()
	result, err := s.bot.Poll(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "Poll cycle failed", err, "run_id", runID)
		return
	}
	logger.Debug(ctx, "Poll cycle done",
		"run_id", runID,
		"date", result.Date,
		"updates", len(result.Updates),
	)
}
