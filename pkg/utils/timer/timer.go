// Package timer tracks total and per-stage elapsed time for CLI commands.
package timer

import (
	"sync"
	"time"
)

// Timer measures elapsed time across a command run and its stages.
type Timer interface {
	// Start resets the timer and begins the first stage.
	Start()
	// NewStage marks the beginning of a new stage without resetting the total.
	NewStage()
	// GetTiming returns the total elapsed time and the time spent in the current stage.
	GetTiming() (total, stage time.Duration)
}

// Clock returns the current time. Tests inject a deterministic clock.
type Clock func() time.Time

type stageTimer struct {
	mu         sync.Mutex
	now        Clock
	started    time.Time
	stageStart time.Time
}

// New returns a Timer backed by the wall clock.
func New() Timer {
	return NewWithClock(time.Now)
}

// NewWithClock returns a Timer that reads time from clock.
func NewWithClock(clock Clock) Timer {
	return &stageTimer{now: clock}
}

func (t *stageTimer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.started = now
	t.stageStart = now
}

func (t *stageTimer) NewStage() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stageStart = t.now()
}

func (t *stageTimer) GetTiming() (time.Duration, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started.IsZero() {
		return 0, 0
	}

	now := t.now()

	return now.Sub(t.started), now.Sub(t.stageStart)
}
