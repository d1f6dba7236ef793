// Package timer provides tick-counted timers for the simulation. Timers
// never read the wall clock; they advance only when Tick is called.
package timer

import (
	"fmt"
	"math"
)

// TicksPerSecond is the simulation rate all durations are expressed in.
const TicksPerSecond = 60

// Indefinite is the duration of a timer that never expires. Such a timer
// counts up for as long as it runs.
const Indefinite int64 = -1

// State is the lifecycle state of a TickTimer.
type State int

const (
	StateReady State = iota
	StateRunning
	StateStopped
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// SecToTicks converts seconds to simulation ticks, rounding to the nearest tick.
func SecToTicks(sec float64) int64 {
	return int64(math.Round(sec * TicksPerSecond))
}

// TickTimer is a countdown over a fixed number of ticks.
type TickTimer struct {
	name     string
	duration int64
	tick     int64
	state    State
}

// New creates a ready timer with zero duration.
func New(name string) *TickTimer {
	return &TickTimer{name: name}
}

// Reset stops the timer and sets a new duration. A zero duration makes the
// timer expire on its first running tick.
func (t *TickTimer) Reset(duration int64) {
	if duration < 0 && duration != Indefinite {
		panic(fmt.Sprintf("timer %s: invalid duration %d", t.name, duration))
	}
	t.duration = duration
	t.tick = 0
	t.state = StateReady
}

// ResetIndefinite resets the timer to count up without expiring.
func (t *TickTimer) ResetIndefinite() {
	t.Reset(Indefinite)
}

// Start begins or resumes counting. Starting an expired timer has no effect.
func (t *TickTimer) Start() {
	if t.state == StateReady || t.state == StateStopped {
		t.state = StateRunning
	}
}

// Restart resets the timer to duration and starts it.
func (t *TickTimer) Restart(duration int64) {
	t.Reset(duration)
	t.Start()
}

// Stop pauses counting, keeping the elapsed ticks.
func (t *TickTimer) Stop() {
	if t.state == StateRunning {
		t.state = StateStopped
	}
}

// Expire forces the timer into the expired state.
func (t *TickTimer) Expire() {
	t.state = StateExpired
}

// Tick advances a running timer by one tick.
func (t *TickTimer) Tick() {
	if t.state != StateRunning {
		return
	}
	t.tick++
	if t.duration != Indefinite && t.tick >= t.duration {
		t.state = StateExpired
	}
}

// HasExpired reports whether the timer ran out.
func (t *TickTimer) HasExpired() bool {
	return t.state == StateExpired
}

// IsRunning reports whether the timer is counting.
func (t *TickTimer) IsRunning() bool {
	return t.state == StateRunning
}

// IsStopped reports whether the timer was paused after starting.
func (t *TickTimer) IsStopped() bool {
	return t.state == StateStopped
}

// State returns the lifecycle state.
func (t *TickTimer) State() State {
	return t.state
}

// Duration returns the configured duration, or Indefinite.
func (t *TickTimer) Duration() int64 {
	return t.duration
}

// TickCount returns the ticks elapsed since the last reset.
func (t *TickTimer) TickCount() int64 {
	return t.tick
}

// Remaining returns the ticks left before expiry, or Indefinite.
func (t *TickTimer) Remaining() int64 {
	if t.duration == Indefinite {
		return Indefinite
	}
	if t.tick >= t.duration {
		return 0
	}
	return t.duration - t.tick
}

func (t *TickTimer) String() string {
	return fmt.Sprintf("%s[%s %d/%d]", t.name, t.state, t.tick, t.duration)
}
