package game

import (
	"fmt"

	"github.com/vovakirdan/mazechase/internal/timer"
)

// NumHuntingPhases is the number of scatter/chase phases per level.
const NumHuntingPhases = 8

const indefinite = timer.Indefinite

// HuntingPhase is the kind of the current hunting phase.
type HuntingPhase int

const (
	PhaseScattering HuntingPhase = iota
	PhaseChasing
)

func (p HuntingPhase) String() string {
	if p == PhaseScattering {
		return "scattering"
	}
	return "chasing"
}

// HuntingTimer drives the alternating scatter and chase phases of a level.
type HuntingTimer struct {
	durations [NumHuntingPhases]int64
	index     int
	timer     *timer.TickTimer
}

// NewHuntingTimer creates a stopped timer for level 1.
func NewHuntingTimer() *HuntingTimer {
	return &HuntingTimer{
		durations: HuntingDurations(1),
		timer:     timer.New("hunting"),
	}
}

// Reset loads the phase durations of level n and rewinds to phase 0
// without starting.
func (h *HuntingTimer) Reset(levelNumber int) {
	h.durations = HuntingDurations(levelNumber)
	h.index = 0
	h.timer.Reset(h.durations[0])
}

// StartFirstPhase loads the durations of level n and starts scatter phase 0.
func (h *HuntingTimer) StartFirstPhase(levelNumber int) {
	h.durations = HuntingDurations(levelNumber)
	// Index 0 is always valid.
	_ = h.StartPhase(0)
}

// StartPhase starts the phase with the given index from its beginning.
func (h *HuntingTimer) StartPhase(index int) error {
	if index < 0 || index >= NumHuntingPhases {
		return fmt.Errorf("%w: %d", ErrInvalidPhaseIndex, index)
	}
	h.index = index
	h.timer.Restart(h.durations[index])
	return nil
}

// Update advances the timer one tick and reports whether a new phase started.
func (h *HuntingTimer) Update() bool {
	h.timer.Tick()
	if !h.timer.HasExpired() || h.index == NumHuntingPhases-1 {
		return false
	}
	// Guarded by the check above.
	_ = h.StartPhase(h.index + 1)
	return true
}

// Stop pauses the current phase.
func (h *HuntingTimer) Stop() {
	h.timer.Stop()
}

// Start resumes the current phase.
func (h *HuntingTimer) Start() {
	h.timer.Start()
}

// IsStopped reports whether the timer is paused.
func (h *HuntingTimer) IsStopped() bool {
	return !h.timer.IsRunning()
}

// PhaseIndex returns the index of the current phase.
func (h *HuntingTimer) PhaseIndex() int {
	return h.index
}

// Phase returns whether ghosts are scattering or chasing.
func (h *HuntingTimer) Phase() HuntingPhase {
	if h.index%2 == 0 {
		return PhaseScattering
	}
	return PhaseChasing
}

// ScatterPhase returns the 0-based number of the current scatter phase.
func (h *HuntingTimer) ScatterPhase() (int, bool) {
	if h.Phase() != PhaseScattering {
		return 0, false
	}
	return h.index / 2, true
}

// Remaining returns the ticks left in the current phase, or timer.Indefinite.
func (h *HuntingTimer) Remaining() int64 {
	return h.timer.Remaining()
}

// Duration returns the duration of phase i.
func (h *HuntingTimer) Duration(i int) (int64, error) {
	if i < 0 || i >= NumHuntingPhases {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPhaseIndex, i)
	}
	return h.durations[i], nil
}
