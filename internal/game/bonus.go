package game

import (
	"fmt"

	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/world"
)

// BonusSymbol is the fruit or object shown as a bonus.
type BonusSymbol int

const (
	Cherries BonusSymbol = iota
	Strawberry
	Peach
	Apple
	Grapes
	Galaxian
	Bell
	Key
	Orange
	Pretzel
	Pear
	Banana
)

var bonusSymbolNames = [...]string{
	Cherries:   "cherries",
	Strawberry: "strawberry",
	Peach:      "peach",
	Apple:      "apple",
	Grapes:     "grapes",
	Galaxian:   "galaxian",
	Bell:       "bell",
	Key:        "key",
	Orange:     "orange",
	Pretzel:    "pretzel",
	Pear:       "pear",
	Banana:     "banana",
}

func (s BonusSymbol) String() string {
	if s >= 0 && int(s) < len(bonusSymbolNames) {
		return bonusSymbolNames[s]
	}
	return fmt.Sprintf("bonus(%d)", int(s))
}

// BonusState is the lifecycle state of a bonus.
type BonusState int

const (
	BonusInactive BonusState = iota
	BonusEdible
	BonusEaten
	BonusExpired
)

func (s BonusState) String() string {
	switch s {
	case BonusInactive:
		return "inactive"
	case BonusEdible:
		return "edible"
	case BonusEaten:
		return "eaten"
	case BonusExpired:
		return "expired"
	default:
		return "unknown"
	}
}

const (
	staticBonusMinTicks = 540
	staticBonusMaxTicks = 600
	bonusEatenTicks     = 120
	movingBonusSpeed    = 0.5 * BaseSpeed
)

// Bonus is the level's fruit. A static bonus sits on a fixed position for a
// random time; a moving bonus walks a route from one portal to the other
// and only disappears at the end of it or when eaten.
type Bonus struct {
	creature

	symbol BonusSymbol
	points int
	state  BonusState
	moving bool
	ticks  int // remaining ticks in the edible or eaten state

	route      []core.Tile
	routeIndex int
	field      *world.DistanceField
}

// Symbol returns the bonus symbol.
func (b *Bonus) Symbol() BonusSymbol { return b.symbol }

// Points returns the value of the bonus.
func (b *Bonus) Points() int { return b.points }

// State returns the lifecycle state.
func (b *Bonus) State() BonusState { return b.state }

// IsMoving reports whether this is a moving bonus.
func (b *Bonus) IsMoving() bool { return b.moving }

// IsActive reports whether the bonus can still be eaten. The points shown
// after eating do not block the next bonus.
func (b *Bonus) IsActive() bool {
	return b.state == BonusEdible
}

// Route returns the waypoints of a moving bonus.
func (b *Bonus) Route() []core.Tile { return b.route }

func (b *Bonus) setInactive() {
	b.state = BonusInactive
	b.ticks = 0
}

func (b *Bonus) activateStatic(symbol BonusSymbol, points int, pos core.Vector2f, ticks int) {
	b.symbol = symbol
	b.points = points
	b.moving = false
	b.placeAt(pos, core.DirLeft)
	b.speed = 0
	b.ticks = ticks
	b.state = BonusEdible
}

// activateMoving starts a walk from one portal end through the house entry,
// around the block below the house, back to the entry and out the other end.
func (b *Bonus) activateMoving(symbol BonusSymbol, points int, w *world.World, ctx *SimulationContext) bool {
	portals := w.Portals()
	if len(portals) == 0 {
		return false
	}
	p := portals[ctx.Rand.Intn(len(portals))]
	start, exit, dir := p.Left, p.Right, core.DirRight
	if ctx.Rand.Intn(2) == 1 {
		start, exit, dir = p.Right, p.Left, core.DirLeft
	}
	entry := w.HouseEntryTile()
	house := w.House()
	below := core.Tile{X: entry.X, Y: house.Min.Y + house.Size.Y}

	b.symbol = symbol
	b.points = points
	b.moving = true
	b.route = []core.Tile{entry, below, entry, inward(exit, w)}
	b.routeIndex = 0
	b.field = w.DistanceField(b.route[0])
	b.placeAt(core.Vector2f{X: float64(start.X * core.TileSize), Y: float64(start.Y * core.TileSize)}, dir)
	b.speed = movingBonusSpeed
	b.state = BonusEdible
	return true
}

// inward returns the grid tile next to a portal end.
func inward(portalEnd core.Tile, w *world.World) core.Tile {
	if portalEnd.X < 0 {
		return core.Tile{X: 0, Y: portalEnd.Y}
	}
	if portalEnd.X >= w.NumCols() {
		return core.Tile{X: w.NumCols() - 1, Y: portalEnd.Y}
	}
	return portalEnd
}

// update advances the bonus and reports whether an edible bonus expired.
func (b *Bonus) update(lvl *GameLevel) bool {
	switch b.state {
	case BonusInactive:
		return false
	case BonusExpired:
		b.setInactive()
		return false
	case BonusEaten:
		b.ticks--
		if b.ticks <= 0 {
			b.setInactive()
		}
		return false
	}

	if !b.moving {
		b.ticks--
		if b.ticks <= 0 {
			b.state = BonusExpired
			return true
		}
		return false
	}
	return b.walk(lvl.world)
}

func (b *Bonus) walk(w *world.World) bool {
	tile := b.Tile()
	if tile == b.route[b.routeIndex] {
		b.routeIndex++
		if b.routeIndex == len(b.route) {
			b.state = BonusExpired
			return true
		}
		b.field = w.DistanceField(b.route[b.routeIndex])
		b.newTileEntered = true
	}
	if b.newTileEntered || b.stuck {
		if d, ok := b.field.NextDirection(tile); ok {
			b.wishDir = d
		}
	}
	b.move(w, mazeAccess(w), false)
	return false
}

func (b *Bonus) eat() {
	b.state = BonusEaten
	b.ticks = bonusEatenTicks
	b.speed = 0
}
