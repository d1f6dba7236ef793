package game

import (
	"fmt"
	"math/rand"
	"sort"
)

const (
	// BaseSpeed is the speed in pixels per tick that a 100% speed maps to.
	BaseSpeed = 1.25

	// PowerFadingTicks is how long before the end of power the fading event fires.
	PowerFadingTicks = 120

	// AllGhostsKilledThreshold is the number of ghost kills in one level
	// that earns the one-time bonus.
	AllGhostsKilledThreshold = 16
)

// ghostKillPoints is indexed by the number of ghosts already eaten during
// the current power period.
var ghostKillPoints = [4]int{200, 400, 800, 1600}

// HuntingStyle selects how ghosts behave during scatter phases.
type HuntingStyle int

const (
	// HuntingClassic sends every ghost to its scatter corner.
	HuntingClassic HuntingStyle = iota
	// HuntingScatterRoaming lets the red and pink ghost roam randomly
	// during the first scatter phase.
	HuntingScatterRoaming
)

// BonusStyle selects how the bonus appears.
type BonusStyle int

const (
	BonusStatic BonusStyle = iota // sits below the house for a few seconds
	BonusMoving                   // wanders from one portal to the other
)

// LevelParams holds the per-level speed and timing table entries. Speeds
// are percentages of BaseSpeed.
type LevelParams struct {
	PacSpeed             int
	GhostSpeed           int
	GhostTunnelSpeed     int
	Elroy1DotsLeft       int
	Elroy1Speed          int
	Elroy2DotsLeft       int
	Elroy2Speed          int
	PacPoweredSpeed      int
	GhostFrightenedSpeed int
	PacPowerSeconds      int
	NumFlashes           int
}

// arcadeLevels is the arcade level table. Levels past the end use the last row.
var arcadeLevels = []LevelParams{
	/* 1*/ {80, 75, 40, 20, 80, 10, 85, 90, 50, 6, 5},
	/* 2*/ {90, 85, 45, 30, 90, 15, 95, 95, 55, 5, 5},
	/* 3*/ {90, 85, 45, 40, 90, 20, 95, 95, 55, 4, 5},
	/* 4*/ {90, 85, 45, 40, 90, 20, 95, 95, 55, 3, 5},
	/* 5*/ {100, 95, 50, 40, 100, 20, 105, 100, 60, 2, 5},
	/* 6*/ {100, 95, 50, 50, 100, 25, 105, 100, 60, 5, 5},
	/* 7*/ {100, 95, 50, 50, 100, 25, 105, 100, 60, 2, 5},
	/* 8*/ {100, 95, 50, 50, 100, 25, 105, 100, 60, 2, 5},
	/* 9*/ {100, 95, 50, 60, 100, 30, 105, 100, 60, 1, 3},
	/*10*/ {100, 95, 50, 60, 100, 30, 105, 100, 60, 5, 5},
	/*11*/ {100, 95, 50, 60, 100, 30, 105, 100, 60, 2, 5},
	/*12*/ {100, 95, 50, 80, 100, 40, 105, 100, 60, 1, 3},
	/*13*/ {100, 95, 50, 80, 100, 40, 105, 100, 60, 1, 3},
	/*14*/ {100, 95, 50, 80, 100, 40, 105, 100, 60, 3, 5},
	/*15*/ {100, 95, 50, 100, 100, 50, 105, 100, 60, 1, 3},
	/*16*/ {100, 95, 50, 100, 100, 50, 105, 100, 60, 1, 3},
	/*17*/ {100, 95, 50, 100, 100, 50, 105, 100, 60, 0, 0},
	/*18*/ {100, 95, 50, 100, 100, 50, 105, 100, 60, 1, 3},
	/*19*/ {100, 95, 50, 120, 100, 60, 105, 100, 60, 0, 0},
	/*20*/ {100, 95, 50, 120, 100, 60, 105, 100, 60, 0, 0},
	/*21*/ {90, 95, 50, 120, 100, 60, 105, 100, 60, 0, 0},
}

// GameRules is the data-driven description of a game variant.
type GameRules struct {
	Variant string
	Title   string
	// MapPath overrides the embedded maze; empty uses the default map.
	MapPath string

	InitialLives    int
	ExtraLifeScores []int

	PelletPoints          int
	EnergizerPoints       int
	AllGhostsKilledPoints int

	Hunting    HuntingStyle
	BonusStyle BonusStyle
	// BonusFoodThresholds are the eaten-food counts that spawn a bonus.
	BonusFoodThresholds [2]int
	BonusPoints         map[BonusSymbol]int
	// ChooseBonus picks the symbol of a level's bonus.
	ChooseBonus func(levelNumber int, rng *rand.Rand) BonusSymbol

	Levels []LevelParams

	// PacImmune makes collisions with hunting ghosts harmless.
	PacImmune bool
	// DemoMinTicks keeps Pac alive in demo levels for at least this long.
	DemoMinTicks int
}

// LevelParams returns the table row for level n. Levels past the table
// reuse the last row.
func (r *GameRules) LevelParams(n int) LevelParams {
	mustValidLevel(n)
	if n > len(r.Levels) {
		return r.Levels[len(r.Levels)-1]
	}
	return r.Levels[n-1]
}

// BonusValue returns the points a symbol is worth in this variant.
func (r *GameRules) BonusValue(s BonusSymbol) int {
	return r.BonusPoints[s]
}

// HuntingDurations returns the eight scatter/chase phase durations in
// ticks for level n. Even indices are scatter phases.
func HuntingDurations(n int) [NumHuntingPhases]int64 {
	mustValidLevel(n)
	switch {
	case n == 1:
		return [NumHuntingPhases]int64{420, 1200, 420, 1200, 300, 1200, 300, indefinite}
	case n <= 4:
		return [NumHuntingPhases]int64{420, 1200, 420, 1200, 300, 61980, 1, indefinite}
	default:
		return [NumHuntingPhases]int64{300, 1200, 300, 1200, 300, 62262, 1, indefinite}
	}
}

var pacManBonusByLevel = []BonusSymbol{
	Cherries, Strawberry, Peach, Peach, Apple, Apple,
	Grapes, Grapes, Galaxian, Galaxian, Bell, Bell, Key,
}

// PacManArcade returns the rules of the original arcade game.
func PacManArcade() GameRules {
	return GameRules{
		Variant:               "pacman",
		Title:                 "Pac-Man",
		InitialLives:          3,
		ExtraLifeScores:       []int{10000},
		PelletPoints:          10,
		EnergizerPoints:       50,
		AllGhostsKilledPoints: 12000,
		Hunting:               HuntingClassic,
		BonusStyle:            BonusStatic,
		BonusFoodThresholds:   [2]int{70, 170},
		BonusPoints: map[BonusSymbol]int{
			Cherries:   100,
			Strawberry: 300,
			Peach:      500,
			Apple:      700,
			Grapes:     1000,
			Galaxian:   2000,
			Bell:       3000,
			Key:        5000,
		},
		ChooseBonus: func(n int, _ *rand.Rand) BonusSymbol {
			if n > len(pacManBonusByLevel) {
				return Key
			}
			return pacManBonusByLevel[n-1]
		},
		Levels:       arcadeLevels,
		DemoMinTicks: 1200,
	}
}

var msPacManBonusOrder = []BonusSymbol{
	Cherries, Strawberry, Orange, Pretzel, Apple, Pear, Banana,
}

// MsPacManArcade returns the rules of the sequel with the moving bonus.
func MsPacManArcade() GameRules {
	return GameRules{
		Variant:               "mspacman",
		Title:                 "Ms. Pac-Man",
		InitialLives:          3,
		ExtraLifeScores:       []int{10000},
		PelletPoints:          10,
		EnergizerPoints:       50,
		AllGhostsKilledPoints: 12000,
		Hunting:               HuntingScatterRoaming,
		BonusStyle:            BonusMoving,
		BonusFoodThresholds:   [2]int{64, 176},
		BonusPoints: map[BonusSymbol]int{
			Cherries:   100,
			Strawberry: 200,
			Orange:     500,
			Pretzel:    700,
			Apple:      1000,
			Pear:       2000,
			Banana:     5000,
		},
		ChooseBonus: func(n int, rng *rand.Rand) BonusSymbol {
			if n <= len(msPacManBonusOrder) {
				return msPacManBonusOrder[n-1]
			}
			return msPacManBonusOrder[rng.Intn(len(msPacManBonusOrder))]
		},
		Levels:       arcadeLevels,
		DemoMinTicks: 1200,
	}
}

var variants = map[string]func() GameRules{
	"pacman":   PacManArcade,
	"mspacman": MsPacManArcade,
}

// RulesFor returns a fresh copy of the named variant's rules.
func RulesFor(variant string) (GameRules, error) {
	f, ok := variants[variant]
	if !ok {
		return GameRules{}, fmt.Errorf("game: unknown variant %q", variant)
	}
	return f(), nil
}

// Variants returns the known variant names in sorted order.
func Variants() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
