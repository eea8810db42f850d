package reload

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher triggers schema reloads on a cron schedule so that remote
// manifests picked up over HTTP do not go stale between file events.
type Refresher struct {
	schedule  string
	scheduler *Scheduler
	cron      *cron.Cron
	logger    *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewRefresher creates a periodic refresher. An empty schedule produces a
// refresher whose Start is a no-op.
func NewRefresher(schedule string, scheduler *Scheduler, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{
		schedule:  schedule,
		scheduler: scheduler,
		cron:      cron.New(),
		logger:    logger.With("component", "reload.refresher"),
	}
}

// Start begins scheduled refreshes using standard cron syntax, for example
// "0 * * * *" for hourly. The refresher stops when the context is
// cancelled.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.schedule == "" {
		r.logger.Info("refresh schedule not configured, skipping periodic refresh")
		return nil
	}

	if _, err := cron.ParseStandard(r.schedule); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", r.schedule, err)
	}

	if _, err := r.cron.AddFunc(r.schedule, func() {
		r.logger.Info("periodic schema refresh triggered", "schedule", r.schedule)
		r.scheduler.Schedule("periodic refresh")
	}); err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}

	r.cron.Start()
	r.running = true
	r.logger.Info("periodic refresher started", "schedule", r.schedule)

	go func() {
		<-ctx.Done()
		r.Stop()
	}()

	return nil
}

// Stop stops the refresher and waits for any in-flight job to finish.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cron != nil && r.running {
		ctx := r.cron.Stop()
		<-ctx.Done()
		r.running = false
		r.logger.Info("periodic refresher stopped")
	}
}

// NextRun returns the next scheduled refresh time, or nil when the
// refresher is not running.
func (r *Refresher) NextRun() *time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return nil
	}
	entries := r.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
