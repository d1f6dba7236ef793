package game

import (
	"fmt"
	"math"

	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/world"
)

// NumGhosts is the number of ghosts in a level.
const NumGhosts = world.NumGhosts

// GhostID identifies a ghost. The order is the house release preference.
type GhostID int

const (
	GhostRed GhostID = iota
	GhostPink
	GhostCyan
	GhostOrange
)

var ghostNames = [NumGhosts]string{"red", "pink", "cyan", "orange"}

func (id GhostID) String() string {
	if id < GhostRed || id > GhostOrange {
		return fmt.Sprintf("ghost(%d)", int(id))
	}
	return ghostNames[id]
}

func mustGhostIndex(id GhostID) int {
	if err := ValidateGhostID(id); err != nil {
		panic(err)
	}
	return int(id)
}

// GhostState is the behavior state of a ghost.
type GhostState int

const (
	GhostLocked GhostState = iota
	GhostLeavingHouse
	GhostHuntingPac
	GhostFrightened
	GhostEaten
	GhostReturningHome
	GhostEnteringHouse
)

var ghostStateNames = [...]string{
	GhostLocked:        "locked",
	GhostLeavingHouse:  "leaving-house",
	GhostHuntingPac:    "hunting-pac",
	GhostFrightened:    "frightened",
	GhostEaten:         "eaten",
	GhostReturningHome: "returning-home",
	GhostEnteringHouse: "entering-house",
}

func (s GhostState) String() string {
	if s >= 0 && int(s) < len(ghostStateNames) {
		return ghostStateNames[s]
	}
	return "unknown"
}

// Ghost is one of the four enemies.
type Ghost struct {
	creature

	id               GhostID
	state            GhostState
	place            world.GhostPlacement
	reverseRequested bool
	revived          bool
	// killIndex is the position in the current power period's kill order, or -1.
	killIndex int
}

func newGhost(id GhostID, place world.GhostPlacement) *Ghost {
	return &Ghost{id: id, place: place, killIndex: -1}
}

// ID returns the ghost's id.
func (g *Ghost) ID() GhostID { return g.id }

// State returns the ghost's behavior state.
func (g *Ghost) State() GhostState { return g.state }

// ScatterTile returns the ghost's corner target.
func (g *Ghost) ScatterTile() core.Tile { return g.place.Scatter }

// ReverseRequested reports whether a reversal waits for the next tile.
func (g *Ghost) ReverseRequested() bool { return g.reverseRequested }

// KillIndex returns the ghost's position in the kill order of the current
// power period, or -1.
func (g *Ghost) KillIndex() int { return g.killIndex }

func (g *Ghost) reset() {
	g.placeAt(g.place.Home, g.place.HomeDir)
	g.state = GhostLocked
	g.reverseRequested = false
	g.revived = false
	g.killIndex = -1
	g.speed = 0
}

func (g *Ghost) setState(s GhostState) {
	g.state = s
}

// requestReversal makes the ghost turn around when it enters its next tile.
func (g *Ghost) requestReversal() {
	g.reverseRequested = true
}

func (g *Ghost) applyReversal() bool {
	if !g.reverseRequested || !g.newTileEntered {
		return false
	}
	g.reverseRequested = false
	g.setDirs(g.moveDir.Opposite())
	return true
}

// navigateTo picks the cheapest turn toward target: never reverse, minimize
// the squared distance from the neighbor tile to the target, break ties by
// direction priority. With no exit left the ghost reverses.
func (g *Ghost) navigateTo(target core.Tile, canEnter accessFunc) {
	tile := g.Tile()
	back := g.moveDir.Opposite()
	found := false
	var best core.Direction
	bestDist := math.MaxInt
	for _, d := range core.Directions {
		if d == back || !canEnter(tile, d) {
			continue
		}
		if dist := tile.Plus(d.Vector()).DistSq(target); dist < bestDist {
			best, bestDist, found = d, dist, true
		}
	}
	if found {
		g.wishDir = best
	} else {
		g.wishDir = back
	}
}

// roam picks a random non-reversing exit.
func (g *Ghost) roam(ctx *SimulationContext, canEnter accessFunc) {
	tile := g.Tile()
	back := g.moveDir.Opposite()
	start := ctx.Rand.Intn(len(core.Directions))
	for i := range core.Directions {
		d := core.Directions[(start+i)%len(core.Directions)]
		if d != back && canEnter(tile, d) {
			g.wishDir = d
			return
		}
	}
	g.wishDir = back
}

func (g *Ghost) update(lvl *GameLevel, ctx *SimulationContext) {
	switch g.state {
	case GhostLocked:
		g.updateLocked(lvl)
	case GhostLeavingHouse:
		g.updateLeavingHouse(lvl)
	case GhostHuntingPac:
		g.updateHuntingPac(lvl, ctx)
	case GhostFrightened:
		g.updateFrightened(lvl, ctx)
	case GhostEaten:
		g.setState(GhostReturningHome)
		g.updateReturningHome(lvl)
	case GhostReturningHome:
		g.updateReturningHome(lvl)
	case GhostEnteringHouse:
		g.updateEnteringHouse(lvl)
	}
}

// updateLocked bounces the ghost up and down inside the house. A ghost
// locked outside the house waits in place.
func (g *Ghost) updateLocked(lvl *GameLevel) {
	if !lvl.world.InsideHouse(g.Tile()) {
		g.speed = 0
		return
	}
	g.speed = lvl.houseSpeed()
	top := g.place.Revival.Y - core.HalfTileSize
	bottom := g.place.Revival.Y + core.HalfTileSize
	if !g.moveDir.IsVertical() {
		g.setDirs(core.DirUp)
	}
	if g.moveDir == core.DirUp && g.pos.Y <= top {
		g.setDirs(core.DirDown)
	} else if g.moveDir == core.DirDown && g.pos.Y >= bottom {
		g.setDirs(core.DirUp)
	}
	g.advance(g.speed)
	g.pos.Y = math.Max(top, math.Min(bottom, g.pos.Y))
}

// updateLeavingHouse moves the ghost to the house center column, then up
// through the door. Outside, it heads left, or right when a reversal was
// requested while it was inside.
func (g *Ghost) updateLeavingHouse(lvl *GameLevel) {
	entry := lvl.world.HouseEntry()
	g.speed = lvl.houseSpeed()

	if dx := entry.X - g.pos.X; math.Abs(dx) > turnEpsilon {
		if dx > 0 {
			g.moveDir = core.DirRight
		} else {
			g.moveDir = core.DirLeft
		}
		g.advance(math.Min(g.speed, math.Abs(dx)))
		return
	}
	g.pos.X = entry.X
	if dy := g.pos.Y - entry.Y; dy > turnEpsilon {
		g.moveDir = core.DirUp
		g.advance(math.Min(g.speed, dy))
		return
	}
	g.pos.Y = entry.Y

	exitDir := core.DirLeft
	if g.reverseRequested {
		exitDir = core.DirRight
		g.reverseRequested = false
	}
	g.setDirs(exitDir)
	g.newTileEntered = false
	if lvl.pac.IsPowered() && !lvl.isVictim(g.id) {
		g.setState(GhostFrightened)
	} else {
		g.setState(GhostHuntingPac)
	}
}

func (g *Ghost) updateHuntingPac(lvl *GameLevel, ctx *SimulationContext) {
	g.speed = lvl.ghostSpeed(g)
	access := lvl.huntingAccess
	if !g.applyReversal() && g.newTileEntered {
		if lvl.roaming(g) {
			g.roam(ctx, access)
		} else {
			g.navigateTo(lvl.huntingTarget(g), access)
		}
	}
	g.move(lvl.world, access, true)
}

func (g *Ghost) updateFrightened(lvl *GameLevel, ctx *SimulationContext) {
	g.speed = lvl.ghostSpeed(g)
	if !g.applyReversal() && g.newTileEntered {
		g.roam(ctx, lvl.mazeAccess)
	}
	g.move(lvl.world, lvl.mazeAccess, true)
}

// updateReturningHome follows the shortest path to the house entry.
func (g *Ghost) updateReturningHome(lvl *GameLevel) {
	g.speed = lvl.ghostSpeed(g)
	entry := lvl.world.HouseEntry()
	if math.Abs(g.pos.X-entry.X) <= g.speed && math.Abs(g.pos.Y-entry.Y) <= g.speed {
		g.pos = entry
		g.setDirs(core.DirDown)
		g.setState(GhostEnteringHouse)
		return
	}
	if g.newTileEntered || g.stuck {
		if d, ok := lvl.homeField.NextDirection(g.Tile()); ok {
			g.wishDir = d
		}
	}
	g.move(lvl.world, lvl.mazeAccess, true)
}

// updateEnteringHouse sinks through the door to the revival position.
func (g *Ghost) updateEnteringHouse(lvl *GameLevel) {
	g.speed = lvl.ghostSpeed(g)
	target := g.place.Revival
	if dy := target.Y - g.pos.Y; dy > turnEpsilon {
		g.moveDir = core.DirDown
		g.advance(math.Min(g.speed, dy))
		return
	}
	g.pos.Y = target.Y
	if dx := target.X - g.pos.X; math.Abs(dx) > turnEpsilon {
		if dx > 0 {
			g.moveDir = core.DirRight
		} else {
			g.moveDir = core.DirLeft
		}
		g.advance(math.Min(g.speed, math.Abs(dx)))
		return
	}
	g.pos = target
	g.setDirs(core.DirUp)
	g.revived = true
	g.killIndex = -1
	g.setState(GhostLocked)
}

// tilesAhead returns the tile n tiles in front of t. Looking up also shifts
// n tiles to the left, as the arcade hardware did.
func tilesAhead(t core.Tile, d core.Direction, n int) core.Tile {
	v := d.Vector().Scaled(n)
	if d == core.DirUp {
		v.X = -n
	}
	return t.Plus(v)
}
