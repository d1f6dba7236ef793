package mazechase

import (
	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/game"
)

// GhostSnapshot is the observable state of one ghost.
type GhostSnapshot struct {
	Tile  core.Tile
	Dir   core.Direction
	State game.GhostState
}

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Phase     Phase
	Level     int
	Score     int
	HighScore int
	Lives     int
	FoodLeft  int
	PacPos    core.Vector2f
	PacDir    core.Direction
	PacDead   bool
	Powered   bool
	Ghosts    [game.NumGhosts]GhostSnapshot
	Bonus     game.BonusState
	Elroy     int
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{Tick: g.tick, Phase: g.phase}
	if g.model == nil {
		return s
	}
	s.Score = g.model.Score().Score().Points
	s.HighScore = g.model.Score().HighScore().Points
	s.Lives = g.model.Lives()
	lvl := g.model.Level()
	if lvl == nil {
		return s
	}
	s.Level = lvl.Number()
	s.FoodLeft = lvl.World().UneatenFoodCount()
	pac := lvl.Pac()
	s.PacPos = pac.Position()
	s.PacDir = pac.MoveDir()
	s.PacDead = pac.IsDead()
	s.Powered = pac.IsPowered()
	for i, gh := range lvl.Ghosts() {
		s.Ghosts[i] = GhostSnapshot{Tile: gh.Tile(), Dir: gh.MoveDir(), State: gh.State()}
	}
	s.Bonus = lvl.Bonus().State()
	s.Elroy = lvl.CruiseElroy()
	return s
}
