package game

import (
	"github.com/vovakirdan/mazechase/internal/core"
)

// Steering decides where Pac wants to go. It is consulted once per tick
// before Pac moves.
type Steering interface {
	Steer(lvl *GameLevel, pac *Pac)
}

// ManualSteering forwards the last direction requested by the player.
type ManualSteering struct {
	dir     core.Direction
	pending bool
}

// SetDirection records a direction request for the next tick.
func (s *ManualSteering) SetDirection(d core.Direction) {
	s.dir = d
	s.pending = true
}

// Steer implements Steering.
func (s *ManualSteering) Steer(_ *GameLevel, pac *Pac) {
	if !s.pending {
		return
	}
	pac.SetWishDir(s.dir)
	s.pending = false
}

// dangerDistance is the taxicab distance at which the autopilot flees.
const dangerDistance = 3

// AutoSteering drives Pac without a player: it walks to the nearest food
// and turns away from hunting ghosts that come close.
type AutoSteering struct{}

// Steer implements Steering.
func (AutoSteering) Steer(lvl *GameLevel, pac *Pac) {
	if !pac.newTileEntered && !pac.stuck {
		return
	}
	tile := pac.Tile()
	if !lvl.world.InsideBounds(tile) {
		return
	}
	if d, ok := fleeDirection(lvl, tile); ok {
		pac.SetWishDir(d)
		return
	}
	if d, ok := nearestFoodDirection(lvl, tile); ok {
		pac.SetWishDir(d)
	}
}

func fleeDirection(lvl *GameLevel, tile core.Tile) (core.Direction, bool) {
	var danger []core.Tile
	for _, g := range lvl.ghosts {
		if g.state == GhostHuntingPac && g.Tile().Manhattan(tile) <= dangerDistance {
			danger = append(danger, g.Tile())
		}
	}
	if len(danger) == 0 {
		return core.DirUp, false
	}
	best, bestDist, found := core.DirUp, -1, false
	for _, d := range core.Directions {
		next := tile.Plus(d.Vector())
		if !lvl.world.IsAccessible(next) {
			continue
		}
		nearest := -1
		for _, t := range danger {
			if dist := t.Manhattan(next); nearest < 0 || dist < nearest {
				nearest = dist
			}
		}
		if nearest > bestDist {
			best, bestDist, found = d, nearest, true
		}
	}
	return best, found
}

// nearestFoodDirection returns the first step of a shortest path to the
// closest uneaten food.
func nearestFoodDirection(lvl *GameLevel, from core.Tile) (core.Direction, bool) {
	w := lvl.world
	type node struct {
		tile  core.Tile
		first core.Direction
	}
	visited := make(map[core.Tile]bool, w.NumCols()*w.NumRows())
	visited[from] = true
	queue := make([]node, 0, 64)
	for _, d := range core.Directions {
		n := from.Plus(d.Vector())
		if w.InsideBounds(n) && w.IsAccessible(n) {
			visited[n] = true
			queue = append(queue, node{tile: n, first: d})
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if w.HasFoodAt(cur.tile) {
			return cur.first, true
		}
		for _, d := range core.Directions {
			n := cur.tile.Plus(d.Vector())
			if visited[n] || !w.InsideBounds(n) || !w.IsAccessible(n) {
				continue
			}
			visited[n] = true
			queue = append(queue, node{tile: n, first: cur.first})
		}
	}
	return core.DirUp, false
}
