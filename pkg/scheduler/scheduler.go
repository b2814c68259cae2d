// Package scheduler triggers the daily and weekly digest runs at their
// configured local times.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/ojoconmipisto/superbot/pkg/digest"
)

//go:generate moq -out mocks/runner.go -pkg mocks -skip-ensure -fmt goimports . Runner

// Runner executes one digest fan-out
type Runner interface {
	Run(ctx context.Context, mode digest.Mode) (digest.Result, error)
}

// Config holds the trigger times. Hours and minutes are in the
// configured location's local time.
type Config struct {
	DailyHour    int
	DailyMinute  int
	WeeklyHour   int
	WeeklyMinute int
	WeeklyDay    time.Weekday
	Location     *time.Location
}

// Scheduler fires digest runs on schedule
type Scheduler struct {
	runner Runner
	cfg    Config
	now    func() time.Time
	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// New creates a scheduler instance
func New(runner Runner, cfg Config) *Scheduler {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Scheduler{runner: runner, cfg: cfg, now: time.Now}
}

// Start begins the trigger workers
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.worker(ctx, "daily", digest.ModeDaily, s.nextDaily)

	s.wg.Add(1)
	go s.worker(ctx, "weekly", digest.ModeWeekly, s.nextWeekly)

	lgr.Printf("[INFO] scheduler started, daily at %02d:%02d, weekly on %s at %02d:%02d",
		s.cfg.DailyHour, s.cfg.DailyMinute, s.cfg.WeeklyDay, s.cfg.WeeklyHour, s.cfg.WeeklyMinute)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// RunNow triggers one run immediately, outside the schedule
func (s *Scheduler) RunNow(ctx context.Context, mode digest.Mode) error {
	lgr.Printf("[INFO] triggered immediate %s run", mode)
	res, err := s.runner.Run(ctx, mode)
	if err != nil {
		return err
	}
	lgr.Printf("[INFO] %s run finished: sent=%d errors=%d skipped=%d", mode, res.Sent, res.Errors, res.Skipped)
	return nil
}

// worker sleeps until the next trigger time, runs the digest and
// repeats. A failed run is logged and the worker keeps going.
func (s *Scheduler) worker(ctx context.Context, name string, mode digest.Mode, next func(time.Time) time.Time) {
	defer s.wg.Done()

	for {
		at := next(s.now())
		lgr.Printf("[INFO] next %s run at %s", name, at.Format("2006-01-02 15:04"))

		timer := time.NewTimer(at.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		res, err := s.runner.Run(ctx, mode)
		if err != nil {
			lgr.Printf("[ERROR] %s run failed: %v", name, err)
			continue
		}
		lgr.Printf("[INFO] %s run finished: sent=%d errors=%d skipped=%d", name, res.Sent, res.Errors, res.Skipped)
	}
}

// nextDaily returns the next daily trigger strictly after now
func (s *Scheduler) nextDaily(now time.Time) time.Time {
	now = now.In(s.cfg.Location)
	at := time.Date(now.Year(), now.Month(), now.Day(), s.cfg.DailyHour, s.cfg.DailyMinute, 0, 0, s.cfg.Location)
	if !at.After(now) {
		at = at.AddDate(0, 0, 1)
	}
	return at
}

// nextWeekly returns the next weekly trigger strictly after now
func (s *Scheduler) nextWeekly(now time.Time) time.Time {
	now = now.In(s.cfg.Location)
	days := (int(s.cfg.WeeklyDay) - int(now.Weekday()) + 7) % 7
	at := time.Date(now.Year(), now.Month(), now.Day(), s.cfg.WeeklyHour, s.cfg.WeeklyMinute, 0, 0, s.cfg.Location)
	at = at.AddDate(0, 0, days)
	if !at.After(now) {
		at = at.AddDate(0, 0, 7)
	}
	return at
}
