package reload

import (
	"log/slog"
	"sync"
	"time"

	"mercator-hq/wclint/pkg/config"
)

// Func executes one reload cycle.
type Func func(reason string)

// Scheduler debounces reload triggers. Repeated Schedule calls within the
// quiet window collapse to one execution of the reload func; a call that
// arrives while a cycle is executing does not interrupt it and instead arms
// a new pending window once the cycle finishes.
type Scheduler struct {
	quiet  time.Duration
	run    Func
	logger *slog.Logger

	mu       sync.Mutex
	timer    *time.Timer
	pending  bool
	inFlight bool
	rearm    bool
	reason   string
	stopped  bool
}

// NewScheduler builds a Scheduler around the reload func. A non-positive
// quiet window falls back to the default debounce.
func NewScheduler(quiet time.Duration, run Func, logger *slog.Logger) *Scheduler {
	if quiet <= 0 {
		quiet = config.DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		quiet:  quiet,
		run:    run,
		logger: logger.With("component", "reload.scheduler"),
	}
}

// Schedule requests a reload. The reason is carried to the reload func for
// logging; when calls coalesce, the most recent reason wins.
func (s *Scheduler) Schedule(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.reason = reason

	if s.inFlight {
		// Absorb into the window armed after the current cycle.
		s.rearm = true
		return
	}
	if s.pending {
		s.timer.Reset(s.quiet)
		return
	}
	s.pending = true
	s.timer = time.AfterFunc(s.quiet, s.fire)
}

// fire runs one reload cycle and re-arms if triggers arrived meanwhile.
func (s *Scheduler) fire() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.pending = false
	s.inFlight = true
	reason := s.reason
	s.mu.Unlock()

	s.logger.Info("reload cycle starting", "reason", reason)
	s.run(reason)

	s.mu.Lock()
	s.inFlight = false
	if s.rearm && !s.stopped {
		s.rearm = false
		s.pending = true
		s.timer = time.AfterFunc(s.quiet, s.fire)
	}
	s.mu.Unlock()
}

// Stop cancels any pending window. A cycle already executing finishes.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.pending = false
	s.rearm = false
}
