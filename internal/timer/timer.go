// Package timer implements the per-question countdown.
package timer

import (
	"sync"
	"time"

	"github.com/Summus1999/InterviewSpark-sub000/internal/domain"
)

// Callbacks receive countdown signals. All callbacks are optional and are
// invoked without the timer's lock held, so they may call back into the
// timer.
type Callbacks struct {
	OnTick    func(remaining int)
	OnWarning func()
	OnTimeout func()
}

// QuestionTimer counts down the time limit for one active question.
// States: idle -> running -> (paused <-> running) -> finished. Reset is
// valid from any state. A time limit changed while running takes effect
// only on the next reset.
type QuestionTimer struct {
	mu sync.Mutex

	config    domain.TimerConfig
	autoStart bool
	interval  time.Duration
	callbacks Callbacks

	state     domain.TimerState
	remaining int
	// limit is the active limit captured at the last reset; config
	// changes do not touch it until the next reset.
	limit     int
	threshold int
	warned    bool

	// generation invalidates ticks from a previous run cycle.
	generation int
	stop       chan struct{}
}

// New creates a timer with the production 1-second tick.
func New(config domain.TimerConfig, autoStart bool, callbacks Callbacks) *QuestionTimer {
	return NewWithInterval(config, autoStart, time.Second, callbacks)
}

// NewWithInterval creates a timer with a custom tick interval. Tests use
// millisecond intervals.
func NewWithInterval(config domain.TimerConfig, autoStart bool, interval time.Duration, callbacks Callbacks) *QuestionTimer {
	config.Normalize()
	return &QuestionTimer{
		config:    config,
		autoStart: autoStart,
		interval:  interval,
		callbacks: callbacks,
		state:     domain.TimerIdle,
		remaining: config.TimePerQuestion,
		limit:     config.TimePerQuestion,
		threshold: config.WarningThreshold(),
	}
}

// State returns the current timer state.
func (t *QuestionTimer) State() domain.TimerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Remaining returns the remaining seconds.
func (t *QuestionTimer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// SetTimeLimit updates the configured limit. The change takes effect on
// the next reset, never mid-countdown.
func (t *QuestionTimer) SetTimeLimit(seconds int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.config.TimePerQuestion = seconds
	t.config.Normalize()
}

// Start begins the countdown from idle. A no-op in any other state.
func (t *QuestionTimer) Start() {
	t.mu.Lock()
	if t.state != domain.TimerIdle {
		t.mu.Unlock()
		return
	}
	t.startLocked()
	t.mu.Unlock()
}

// Pause suspends a running countdown.
func (t *QuestionTimer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != domain.TimerRunning {
		return
	}
	t.stopTickingLocked()
	t.state = domain.TimerPaused
}

// Resume continues a paused countdown.
func (t *QuestionTimer) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != domain.TimerPaused {
		return
	}
	t.startLocked()
}

// Reset restores the full (possibly updated) time limit from any state.
// The timer returns to running when it was created with autoStart, idle
// otherwise.
func (t *QuestionTimer) Reset() {
	t.mu.Lock()
	t.stopTickingLocked()
	t.limit = t.config.TimePerQuestion
	t.remaining = t.limit
	t.threshold = t.config.WarningThreshold()
	t.warned = false
	if t.autoStart {
		t.startLocked()
	} else {
		t.state = domain.TimerIdle
	}
	t.mu.Unlock()
}

// Shutdown stops any ticking goroutine. The timer is unusable afterward.
func (t *QuestionTimer) Shutdown() {
	t.mu.Lock()
	t.stopTickingLocked()
	t.state = domain.TimerIdle
	t.mu.Unlock()
}

func (t *QuestionTimer) startLocked() {
	t.state = domain.TimerRunning
	t.generation++
	t.stop = make(chan struct{})
	go t.run(t.generation, t.stop)
}

func (t *QuestionTimer) stopTickingLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
	t.generation++
}

func (t *QuestionTimer) run(generation int, stop chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !t.tick(generation) {
				return
			}
		}
	}
}

// tick decrements the countdown once. Returns false when this run cycle
// is over.
func (t *QuestionTimer) tick(generation int) bool {
	t.mu.Lock()
	if generation != t.generation || t.state != domain.TimerRunning {
		t.mu.Unlock()
		return false
	}

	if t.remaining > 0 {
		t.remaining--
	}
	remaining := t.remaining

	var fireWarning, fireTimeout bool
	if remaining <= t.threshold && remaining > 0 && !t.warned && t.config.ShowWarning {
		t.warned = true
		fireWarning = true
	}
	if remaining == 0 {
		t.state = domain.TimerFinished
		t.stopTickingLocked()
		fireTimeout = true
	}
	callbacks := t.callbacks
	t.mu.Unlock()

	if callbacks.OnTick != nil {
		callbacks.OnTick(remaining)
	}
	if fireWarning && callbacks.OnWarning != nil {
		callbacks.OnWarning()
	}
	if fireTimeout {
		if callbacks.OnTimeout != nil {
			callbacks.OnTimeout()
		}
		return false
	}
	return true
}
