package game

import (
	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/world"
)

// GameLevel aggregates everything that exists during one level: the maze,
// the actors, the bonus and the timers and counters that steer them.
type GameLevel struct {
	number int
	demo   bool
	rules  *GameRules
	params LevelParams

	world  *world.World
	pac    *Pac
	ghosts [NumGhosts]*Ghost
	bonus  *Bonus

	bonusSymbols [2]BonusSymbol
	nextBonus    int

	hunting    *HuntingTimer
	gateKeeper *GateKeeper

	victims               []GhostID
	ghostsKilled          int
	allGhostsBonusAwarded bool

	elroyMode    int
	elroyEnabled bool

	mazeAccess    accessFunc
	huntingAccess accessFunc
	homeField     *world.DistanceField

	ticks     int64
	started   bool
	completed bool
	powerFade bool
}

func newLevel(number int, demo bool, rules *GameRules, m *world.Map, ctx *SimulationContext) *GameLevel {
	w := world.New(m)
	lvl := &GameLevel{
		number:       number,
		demo:         demo,
		rules:        rules,
		params:       rules.LevelParams(number),
		world:        w,
		pac:          newPac(),
		bonus:        &Bonus{},
		hunting:      NewHuntingTimer(),
		gateKeeper:   NewGateKeeper(),
		victims:      make([]GhostID, 0, NumGhosts),
		elroyEnabled: true,
		mazeAccess:   mazeAccess(w),
		homeField:    w.DistanceField(w.HouseEntryTile()),
	}
	lvl.huntingAccess = func(from core.Tile, d core.Direction) bool {
		if d == core.DirUp && w.IsNoUpTile(from) {
			return false
		}
		return w.IsAccessible(from.Plus(d.Vector()))
	}
	for i := range lvl.ghosts {
		lvl.ghosts[i] = newGhost(GhostID(i), m.Ghosts[i])
	}
	for i := range lvl.bonusSymbols {
		lvl.bonusSymbols[i] = rules.ChooseBonus(number, ctx.Rand)
	}
	lvl.hunting.Reset(number)
	lvl.gateKeeper.Init(number)
	lvl.resetActors()
	return lvl
}

// resetActors puts Pac and the ghosts on their start positions.
func (l *GameLevel) resetActors() {
	l.pac.reset(l.world.Map().PacStart)
	for _, g := range l.ghosts {
		g.reset()
	}
	l.bonus.setInactive()
	l.powerFade = false
}

// Number returns the level number, starting at 1.
func (l *GameLevel) Number() int { return l.number }

// IsDemo reports whether this is an attract-mode level.
func (l *GameLevel) IsDemo() bool { return l.demo }

// Params returns the speed and timing table entry of the level.
func (l *GameLevel) Params() LevelParams { return l.params }

// World returns the maze.
func (l *GameLevel) World() *world.World { return l.world }

// Pac returns the player actor.
func (l *GameLevel) Pac() *Pac { return l.pac }

// Bonus returns the level's bonus.
func (l *GameLevel) Bonus() *Bonus { return l.bonus }

// HuntingTimer returns the scatter/chase timer.
func (l *GameLevel) HuntingTimer() *HuntingTimer { return l.hunting }

// GateKeeper returns the ghost house control.
func (l *GameLevel) GateKeeper() *GateKeeper { return l.gateKeeper }

// Ticks returns the ticks simulated since the level started.
func (l *GameLevel) Ticks() int64 { return l.ticks }

// IsCompleted reports whether all food has been eaten.
func (l *GameLevel) IsCompleted() bool { return l.completed }

// Ghost returns the ghost with the given id. An invalid id is a caller bug
// and panics with ErrInvalidGhostID.
func (l *GameLevel) Ghost(id GhostID) *Ghost {
	return l.ghosts[mustGhostIndex(id)]
}

// Ghosts returns all ghosts in release preference order.
func (l *GameLevel) Ghosts() []*Ghost {
	return l.ghosts[:]
}

// Victims returns the ghosts eaten during the current power period.
func (l *GameLevel) Victims() []GhostID {
	return l.victims
}

// GhostsKilled returns the ghosts eaten in this level.
func (l *GameLevel) GhostsKilled() int {
	return l.ghostsKilled
}

// CruiseElroy returns the red ghost's elevated speed mode (0, 1 or 2).
// The mode is suspended after Pac dies until the orange ghost is out.
func (l *GameLevel) CruiseElroy() int {
	if !l.elroyEnabled {
		return 0
	}
	return l.elroyMode
}

// BonusSymbols returns the symbols of the level's two bonuses.
func (l *GameLevel) BonusSymbols() [2]BonusSymbol {
	return l.bonusSymbols
}

func (l *GameLevel) isVictim(id GhostID) bool {
	for _, v := range l.victims {
		if v == id {
			return true
		}
	}
	return false
}

func speedPct(pct int) float64 {
	return float64(pct) / 100 * BaseSpeed
}

func (l *GameLevel) pacSpeed() float64 {
	if l.pac.IsPowered() {
		return speedPct(l.params.PacPoweredSpeed)
	}
	return speedPct(l.params.PacSpeed)
}

func (l *GameLevel) houseSpeed() float64 {
	return 0.5 * BaseSpeed
}

func (l *GameLevel) ghostSpeed(g *Ghost) float64 {
	inTunnel := l.world.IsTunnel(g.Tile())
	switch g.state {
	case GhostLocked, GhostLeavingHouse:
		return l.houseSpeed()
	case GhostEaten, GhostReturningHome, GhostEnteringHouse:
		return 2 * BaseSpeed
	case GhostFrightened:
		if inTunnel {
			return speedPct(l.params.GhostTunnelSpeed)
		}
		return speedPct(l.params.GhostFrightenedSpeed)
	}
	if inTunnel {
		return speedPct(l.params.GhostTunnelSpeed)
	}
	if g.id == GhostRed {
		switch l.CruiseElroy() {
		case 1:
			return speedPct(l.params.Elroy1Speed)
		case 2:
			return speedPct(l.params.Elroy2Speed)
		}
	}
	return speedPct(l.params.GhostSpeed)
}

// chaseTarget returns the tile a ghost aims for while chasing.
func (l *GameLevel) chaseTarget(g *Ghost) core.Tile {
	pacTile := l.pac.Tile()
	pacDir := l.pac.moveDir
	switch g.id {
	case GhostPink:
		return tilesAhead(pacTile, pacDir, 4)
	case GhostCyan:
		return tilesAhead(pacTile, pacDir, 2).Scaled(2).Minus(l.ghosts[GhostRed].Tile())
	case GhostOrange:
		if g.Tile().DistSq(pacTile) < 8*8 {
			return g.place.Scatter
		}
		return pacTile
	default:
		return pacTile
	}
}

// huntingTarget chooses between the scatter corner and the chase target.
// The red ghost in Elroy mode chases even while the others scatter.
func (l *GameLevel) huntingTarget(g *Ghost) core.Tile {
	if g.id == GhostRed && l.CruiseElroy() > 0 {
		return l.chaseTarget(g)
	}
	if l.hunting.Phase() == PhaseScattering {
		return g.place.Scatter
	}
	return l.chaseTarget(g)
}

// roaming reports whether a hunting ghost walks randomly instead of
// targeting a tile.
func (l *GameLevel) roaming(g *Ghost) bool {
	if l.rules.Hunting != HuntingScatterRoaming {
		return false
	}
	if g.id != GhostRed && g.id != GhostPink {
		return false
	}
	if g.id == GhostRed && l.CruiseElroy() > 0 {
		return false
	}
	phase, ok := l.hunting.ScatterPhase()
	return ok && phase == 0
}
