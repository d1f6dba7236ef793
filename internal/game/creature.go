package game

import (
	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/world"
)

const turnEpsilon = 1e-6

// accessFunc reports whether an actor on tile from may move one tile in d.
type accessFunc func(from core.Tile, d core.Direction) bool

// creature is the moving body shared by Pac, the ghosts and the moving bonus.
// Its position is the top-left corner of an 8x8 collision box.
type creature struct {
	pos            core.Vector2f
	moveDir        core.Direction
	wishDir        core.Direction
	speed          float64
	newTileEntered bool
	stuck          bool
}

// placeAt puts the creature at pos facing dir and forces a fresh decision.
func (c *creature) placeAt(pos core.Vector2f, dir core.Direction) {
	c.pos = pos
	c.moveDir = dir
	c.wishDir = dir
	c.newTileEntered = true
	c.stuck = false
}

// Position returns the top-left pixel position.
func (c *creature) Position() core.Vector2f {
	return c.pos
}

// Center returns the pixel center of the collision box.
func (c *creature) Center() core.Vector2f {
	return c.pos.Plus(core.Vector2f{X: core.HalfTileSize, Y: core.HalfTileSize})
}

// Tile returns the tile containing the creature's center.
func (c *creature) Tile() core.Tile {
	return core.TileOf(c.Center())
}

// MoveDir returns the current direction of travel.
func (c *creature) MoveDir() core.Direction {
	return c.moveDir
}

// WishDir returns the direction the creature turns into at the next chance.
func (c *creature) WishDir() core.Direction {
	return c.wishDir
}

// SameTile reports whether two creatures occupy the same tile.
func (c *creature) SameTile(o *creature) bool {
	return c.Tile() == o.Tile()
}

func (c *creature) setDirs(d core.Direction) {
	c.moveDir = d
	c.wishDir = d
}

func (c *creature) setCenter(p core.Vector2f) {
	c.pos = p.Minus(core.Vector2f{X: core.HalfTileSize, Y: core.HalfTileSize})
}

func (c *creature) advance(dist float64) {
	v := c.moveDir.Vector()
	c.pos.X += float64(v.X) * dist
	c.pos.Y += float64(v.Y) * dist
}

// move advances the creature by its speed. A reversal takes effect at once,
// a perpendicular turn only when the tile center is reached this tick; the
// rest of the distance is then spent in the new direction. A blocked
// creature stops at the tile center.
func (c *creature) move(w *world.World, canEnter accessFunc, usePortals bool) {
	before := c.Tile()
	c.step(before, canEnter)
	if usePortals {
		c.teleport(w)
	}
	c.newTileEntered = c.Tile() != before
}

func (c *creature) step(tile core.Tile, canEnter accessFunc) {
	if c.wishDir == c.moveDir.Opposite() {
		c.moveDir = c.wishDir
	}
	center := c.Center()
	tc := tile.Center()
	v := c.moveDir.Vector()
	ahead := (tc.X-center.X)*float64(v.X) + (tc.Y-center.Y)*float64(v.Y)
	reachesCenter := ahead >= -turnEpsilon && ahead <= c.speed+turnEpsilon

	if reachesCenter && c.wishDir != c.moveDir && canEnter(tile, c.wishDir) {
		c.setCenter(tc)
		c.moveDir = c.wishDir
		if ahead > 0 {
			c.advance(c.speed - ahead)
		} else {
			c.advance(c.speed)
		}
		c.stuck = false
		return
	}
	if (reachesCenter || ahead < 0) && !canEnter(tile, c.moveDir) {
		c.setCenter(tc)
		c.stuck = true
		return
	}
	c.stuck = false
	c.advance(c.speed)
}

// teleport moves a creature that stepped onto a portal end to the other end,
// keeping its offset within the tile.
func (c *creature) teleport(w *world.World) {
	t := c.Tile()
	for _, p := range w.Portals() {
		shift := float64((p.Right.X - p.Left.X) * core.TileSize)
		switch {
		case t == p.Left && c.moveDir == core.DirLeft:
			c.pos.X += shift
			return
		case t == p.Right && c.moveDir == core.DirRight:
			c.pos.X -= shift
			return
		}
	}
}

// mazeAccess is the access rule of actors walking the maze: walls and doors
// block, portal ends are open.
func mazeAccess(w *world.World) accessFunc {
	return func(from core.Tile, d core.Direction) bool {
		return w.IsAccessible(from.Plus(d.Vector()))
	}
}
