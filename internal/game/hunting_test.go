package game

import (
	"errors"
	"testing"

	"pgregory.net/rapid"

	"github.com/vovakirdan/mazechase/internal/timer"
)

func TestHuntingDurationTables(t *testing.T) {
	tests := []struct {
		level    int
		expected [NumHuntingPhases]int64
	}{
		{1, [NumHuntingPhases]int64{420, 1200, 420, 1200, 300, 1200, 300, timer.Indefinite}},
		{2, [NumHuntingPhases]int64{420, 1200, 420, 1200, 300, 61980, 1, timer.Indefinite}},
		{4, [NumHuntingPhases]int64{420, 1200, 420, 1200, 300, 61980, 1, timer.Indefinite}},
		{5, [NumHuntingPhases]int64{300, 1200, 300, 1200, 300, 62262, 1, timer.Indefinite}},
		{42, [NumHuntingPhases]int64{300, 1200, 300, 1200, 300, 62262, 1, timer.Indefinite}},
	}
	for _, tc := range tests {
		if got := HuntingDurations(tc.level); got != tc.expected {
			t.Errorf("HuntingDurations(%d) = %v, expected %v", tc.level, got, tc.expected)
		}
	}
}

func TestHuntingTimerLevelOneSequence(t *testing.T) {
	h := NewHuntingTimer()
	h.StartFirstPhase(1)

	if h.Phase() != PhaseScattering || h.PhaseIndex() != 0 {
		t.Fatalf("initial phase = %s #%d", h.Phase(), h.PhaseIndex())
	}

	for i := 0; i < 419; i++ {
		if h.Update() {
			t.Fatalf("phase changed early at tick %d", i+1)
		}
	}
	if !h.Update() {
		t.Fatal("expected a phase change at tick 420")
	}
	if h.Phase() != PhaseChasing || h.PhaseIndex() != 1 {
		t.Errorf("after 420 ticks: phase %s #%d, expected chasing #1", h.Phase(), h.PhaseIndex())
	}
}

func TestHuntingTimerLastPhaseIsEndless(t *testing.T) {
	h := NewHuntingTimer()
	h.StartFirstPhase(1)
	total := 420 + 1200 + 420 + 1200 + 300 + 1200 + 300
	for i := 0; i < total+100000; i++ {
		h.Update()
	}
	if h.PhaseIndex() != 7 || h.Phase() != PhaseChasing {
		t.Errorf("phase index = %d, expected endless chase 7", h.PhaseIndex())
	}
}

func TestHuntingTimerStopResume(t *testing.T) {
	h := NewHuntingTimer()
	h.StartFirstPhase(1)
	for i := 0; i < 100; i++ {
		h.Update()
	}
	h.Stop()
	for i := 0; i < 1000; i++ {
		h.Update()
	}
	if h.PhaseIndex() != 0 || h.Remaining() != 320 {
		t.Fatalf("stopped timer advanced: index %d remaining %d", h.PhaseIndex(), h.Remaining())
	}
	h.Start()
	h.Update()
	if h.Remaining() != 319 {
		t.Errorf("Remaining() = %d after resume, expected 319", h.Remaining())
	}
}

func TestHuntingTimerInvalidPhase(t *testing.T) {
	h := NewHuntingTimer()
	for _, i := range []int{-1, 8, 100} {
		if err := h.StartPhase(i); !errors.Is(err, ErrInvalidPhaseIndex) {
			t.Errorf("StartPhase(%d) error = %v", i, err)
		}
	}
}

func TestHuntingTimerDuration(t *testing.T) {
	h := NewHuntingTimer()
	h.StartFirstPhase(1)
	if d, err := h.Duration(1); err != nil || d != 1200 {
		t.Errorf("Duration(1) = %d, %v; expected 1200", d, err)
	}
	if d, err := h.Duration(7); err != nil || d != timer.Indefinite {
		t.Errorf("Duration(7) = %d, %v; expected indefinite", d, err)
	}
	for _, i := range []int{-1, 8} {
		if _, err := h.Duration(i); !errors.Is(err, ErrInvalidPhaseIndex) {
			t.Errorf("Duration(%d) error = %v", i, err)
		}
	}
}

func TestHuntingTimerInvalidLevelPanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrInvalidLevelNumber) {
			t.Errorf("expected ErrInvalidLevelNumber panic, got %v", r)
		}
	}()
	NewHuntingTimer().StartFirstPhase(0)
}

func TestHuntingTimerPhaseBoundariesProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		level := rapid.IntRange(1, 30).Draw(t, "level")
		target := rapid.IntRange(1, 6).Draw(t, "phase")

		h := NewHuntingTimer()
		h.StartFirstPhase(level)
		d := HuntingDurations(level)

		var ticks int64
		for i := 0; i < target; i++ {
			ticks += d[i]
		}
		for i := int64(0); i < ticks-1; i++ {
			h.Update()
		}
		if h.PhaseIndex() != target-1 {
			t.Fatalf("level %d: one tick before boundary index = %d, expected %d", level, h.PhaseIndex(), target-1)
		}
		h.Update()
		if h.PhaseIndex() != target {
			t.Fatalf("level %d: at boundary index = %d, expected %d", level, h.PhaseIndex(), target)
		}
		if (target%2 == 0) != (h.Phase() == PhaseScattering) {
			t.Fatalf("phase %d has kind %s", target, h.Phase())
		}
	})
}
