package reload

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedulerCoalescesTriggersWithinWindow(t *testing.T) {
	var runs atomic.Int32
	done := make(chan struct{}, 4)
	s := NewScheduler(50*time.Millisecond, func(reason string) {
		runs.Add(1)
		done <- struct{}{}
	}, nil)
	defer s.Stop()

	s.Schedule("first change")
	time.Sleep(10 * time.Millisecond)
	s.Schedule("second change")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reload never fired")
	}

	// Give a stray second firing a chance to appear.
	time.Sleep(150 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Fatalf("expected 1 reload cycle, got %d", got)
	}
}

func TestSchedulerTriggerDuringCycleArmsFollowUp(t *testing.T) {
	var mu sync.Mutex
	var reasons []string
	inRun := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{}, 4)

	s := NewScheduler(20*time.Millisecond, func(reason string) {
		mu.Lock()
		reasons = append(reasons, reason)
		first := len(reasons) == 1
		mu.Unlock()
		if first {
			inRun <- struct{}{}
			<-release
		}
		done <- struct{}{}
	}, nil)
	defer s.Stop()

	s.Schedule("initial")

	select {
	case <-inRun:
	case <-time.After(2 * time.Second):
		t.Fatal("first cycle never started")
	}

	// Arrives mid-cycle and must not interrupt it.
	s.Schedule("mid-cycle")
	s.Schedule("mid-cycle again")
	close(release)

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("cycle %d never completed", i+1)
		}
	}

	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if len(reasons) != 2 {
		t.Fatalf("expected 2 reload cycles, got %d (%v)", len(reasons), reasons)
	}
	if reasons[1] != "mid-cycle again" {
		t.Fatalf("follow-up cycle carried reason %q, want most recent trigger", reasons[1])
	}
}

func TestSchedulerStopCancelsPendingWindow(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler(30*time.Millisecond, func(reason string) {
		runs.Add(1)
	}, nil)

	s.Schedule("change")
	s.Stop()

	time.Sleep(100 * time.Millisecond)
	if got := runs.Load(); got != 0 {
		t.Fatalf("expected no reload after Stop, got %d", got)
	}

	// Schedule after Stop is a no-op.
	s.Schedule("late change")
	time.Sleep(100 * time.Millisecond)
	if got := runs.Load(); got != 0 {
		t.Fatalf("expected no reload after Stop, got %d", got)
	}
}

func TestSchedulerDefaultsQuietWindow(t *testing.T) {
	s := NewScheduler(0, func(string) {}, nil)
	defer s.Stop()
	if s.quiet <= 0 {
		t.Fatalf("expected positive default quiet window, got %v", s.quiet)
	}
}

func TestRefresherEmptyScheduleIsNoop(t *testing.T) {
	r := NewRefresher("", nil, nil)
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start with empty schedule: %v", err)
	}
	if r.NextRun() != nil {
		t.Fatal("expected no scheduled run")
	}
}

func TestRefresherRejectsInvalidSchedule(t *testing.T) {
	s := NewScheduler(time.Second, func(string) {}, nil)
	defer s.Stop()
	r := NewRefresher("not a cron expr", s, nil)
	if err := r.Start(context.Background()); err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
}

func TestRefresherSchedulesRun(t *testing.T) {
	s := NewScheduler(time.Second, func(string) {}, nil)
	defer s.Stop()
	r := NewRefresher("0 3 * * *", s, nil)
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer r.Stop()

	next := r.NextRun()
	if next == nil {
		t.Fatal("expected a scheduled next run")
	}
	if !next.After(time.Now()) {
		t.Fatalf("next run %v not in the future", next)
	}
}
