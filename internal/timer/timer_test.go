package timer

import (
	"sync"
	"testing"
	"time"

	"github.com/Summus1999/InterviewSpark-sub000/internal/domain"
)

func testConfig() domain.TimerConfig {
	return domain.TimerConfig{
		Enabled:         true,
		TimePerQuestion: 60,
		AutoSubmit:      false,
		ShowWarning:     true,
	}
}

// recorder collects callback firings for assertions.
type recorder struct {
	mu       sync.Mutex
	ticks    []int
	warnings int
	warnedAt int
	timeouts int
	done     chan struct{}
}

func newRecorder() *recorder {
	return &recorder{done: make(chan struct{})}
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnTick: func(remaining int) {
			r.mu.Lock()
			r.ticks = append(r.ticks, remaining)
			r.mu.Unlock()
		},
		OnWarning: func() {
			r.mu.Lock()
			r.warnings++
			// OnTick fires before OnWarning on the same tick.
			if len(r.ticks) > 0 {
				r.warnedAt = r.ticks[len(r.ticks)-1]
			}
			r.mu.Unlock()
		},
		OnTimeout: func() {
			r.mu.Lock()
			r.timeouts++
			r.mu.Unlock()
			close(r.done)
		},
	}
}

func (r *recorder) waitTimeout(t *testing.T) {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timer never fired timeout")
	}
}

func TestTimerCountsDownToTimeout(t *testing.T) {
	rec := newRecorder()
	qt := NewWithInterval(testConfig(), false, time.Millisecond, rec.callbacks())
	defer qt.Shutdown()

	if qt.State() != domain.TimerIdle {
		t.Fatalf("expected idle before start, got %s", qt.State())
	}
	qt.Start()
	rec.waitTimeout(t)

	if qt.State() != domain.TimerFinished {
		t.Fatalf("expected finished after timeout, got %s", qt.State())
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.timeouts != 1 {
		t.Fatalf("expected exactly 1 timeout, got %d", rec.timeouts)
	}
	if rec.warnings != 1 {
		t.Fatalf("expected exactly 1 warning, got %d", rec.warnings)
	}
	// Remaining must be monotonically non-increasing and end at 0.
	prev := 61
	for _, r := range rec.ticks {
		if r > prev {
			t.Fatalf("remaining increased from %d to %d", prev, r)
		}
		prev = r
	}
	if prev != 0 {
		t.Fatalf("expected final tick at 0, got %d", prev)
	}
}

func TestTimerPauseResume(t *testing.T) {
	rec := newRecorder()
	qt := NewWithInterval(testConfig(), false, time.Millisecond, rec.callbacks())
	defer qt.Shutdown()

	qt.Start()
	time.Sleep(10 * time.Millisecond)
	qt.Pause()
	if qt.State() != domain.TimerPaused {
		t.Fatalf("expected paused, got %s", qt.State())
	}
	frozen := qt.Remaining()
	time.Sleep(20 * time.Millisecond)
	if got := qt.Remaining(); got != frozen {
		t.Fatalf("remaining moved while paused: %d -> %d", frozen, got)
	}

	qt.Resume()
	rec.waitTimeout(t)
}

func TestTimerResetRestoresFullLimit(t *testing.T) {
	rec := newRecorder()
	qt := NewWithInterval(testConfig(), false, time.Millisecond, rec.callbacks())
	defer qt.Shutdown()

	qt.Start()
	time.Sleep(10 * time.Millisecond)
	qt.Reset()

	if qt.State() != domain.TimerIdle {
		t.Fatalf("expected idle after reset without autoStart, got %s", qt.State())
	}
	if got := qt.Remaining(); got != 60 {
		t.Fatalf("expected remaining restored to 60, got %d", got)
	}
}

func TestTimerResetWithAutoStartRuns(t *testing.T) {
	rec := newRecorder()
	qt := NewWithInterval(testConfig(), true, time.Millisecond, rec.callbacks())
	defer qt.Shutdown()

	qt.Reset()
	if qt.State() != domain.TimerRunning {
		t.Fatalf("expected running after reset with autoStart, got %s", qt.State())
	}
	rec.waitTimeout(t)
}

func TestTimerLimitChangeDeferredToReset(t *testing.T) {
	rec := newRecorder()
	qt := NewWithInterval(testConfig(), false, time.Hour, rec.callbacks())
	defer qt.Shutdown()

	qt.Start()
	qt.SetTimeLimit(120)
	if got := qt.Remaining(); got != 60 {
		t.Fatalf("limit change applied mid-countdown: remaining %d", got)
	}
	qt.Reset()
	if got := qt.Remaining(); got != 120 {
		t.Fatalf("expected new limit 120 after reset, got %d", got)
	}
}

func TestTimerWarningMarkUnaffectedByPendingLimitChange(t *testing.T) {
	rec := newRecorder()
	qt := NewWithInterval(testConfig(), false, time.Millisecond, rec.callbacks())
	defer qt.Shutdown()

	// A pending limit change must not move the current run's warning mark.
	qt.SetTimeLimit(1800)
	qt.Start()
	rec.waitTimeout(t)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.warnings != 1 {
		t.Fatalf("expected exactly one warning, got %d", rec.warnings)
	}
	if rec.warnedAt != 15 {
		t.Fatalf("warning fired at remaining %d, want 15", rec.warnedAt)
	}
}

func TestTimerConfigClamped(t *testing.T) {
	config := domain.TimerConfig{Enabled: true, TimePerQuestion: 5}
	qt := NewWithInterval(config, false, time.Hour, Callbacks{})
	defer qt.Shutdown()

	if got := qt.Remaining(); got != domain.MinTimePerQuestion {
		t.Fatalf("expected limit clamped to %d, got %d", domain.MinTimePerQuestion, got)
	}
}
