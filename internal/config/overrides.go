package config

import (
	"fmt"

	"github.com/vovakirdan/mazechase/internal/game"
	"github.com/vovakirdan/mazechase/internal/timer"
)

// DifficultyPreset is a named set of variant overrides.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (easy, normal, hard)", s)
	}
}

// ApplyPreset adjusts the overrides for a difficulty preset.
func ApplyPreset(v *VariantConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		v.Lives = 5
		v.ExtraLifeScores = []int{10000, 30000, 60000}
	case DifficultyHard:
		v.Lives = 1
		v.ExtraLifeScores = []int{}
	}
}

// Apply writes the overrides into the rules.
func (v VariantConfig) Apply(r *game.GameRules) {
	if v.Lives > 0 {
		r.InitialLives = v.Lives
	}
	if v.ExtraLifeScores != nil {
		r.ExtraLifeScores = append([]int(nil), v.ExtraLifeScores...)
	}
	if v.PacImmune {
		r.PacImmune = true
	}
	if v.DemoMinSeconds > 0 {
		r.DemoMinTicks = int(timer.SecToTicks(v.DemoMinSeconds))
	}
	if v.MapPath != "" {
		r.MapPath = v.MapPath
	}
}

// FirstLevel returns the level a new game starts in. Only an unset value
// defaults to 1; anything else is passed on for the game to validate.
func (v VariantConfig) FirstLevel() int {
	if v.StartLevel == 0 {
		return 1
	}
	return v.StartLevel
}
