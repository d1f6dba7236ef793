// Package world holds the maze: map resources loaded from YAML and the
// per-level World combining static terrain with the food still on it.
package world

import (
	"math/bits"

	"github.com/vovakirdan/mazechase/internal/core"
)

// World is the mutable maze of one level. A fresh World is created for
// every level so food eaten in one level never leaks into the next.
type World struct {
	m *Map

	food    []uint64 // uneaten food bitset indexed like the terrain
	uneaten int
	noUp    map[core.Tile]bool
}

// New creates a world with all food of the map in place.
func New(m *Map) *World {
	w := &World{
		m:    m,
		food: make([]uint64, (m.Cols*m.Rows+63)/64),
		noUp: make(map[core.Tile]bool, len(m.NoUpTiles)),
	}
	for _, t := range m.NoUpTiles {
		w.noUp[t] = true
	}
	w.ResetFood()
	return w
}

// Map returns the static map backing the world.
func (w *World) Map() *Map {
	return w.m
}

// NumCols returns the grid width in tiles.
func (w *World) NumCols() int { return w.m.Cols }

// NumRows returns the grid height in tiles.
func (w *World) NumRows() int { return w.m.Rows }

// ResetFood puts every pellet and energizer back.
func (w *World) ResetFood() {
	for i := range w.food {
		w.food[i] = 0
	}
	w.uneaten = 0
	for i, c := range w.m.terrain {
		if c.IsFood() {
			w.food[i/64] |= 1 << uint(i%64)
			w.uneaten++
		}
	}
}

// InsideBounds reports whether the tile lies on the grid.
func (w *World) InsideBounds(t core.Tile) bool {
	return w.m.InsideBounds(t)
}

// IsWall reports whether the tile is a wall.
func (w *World) IsWall(t core.Tile) bool {
	return w.m.Content(t) == Wall
}

// IsDoor reports whether the tile is a ghost house door.
func (w *World) IsDoor(t core.Tile) bool {
	return w.m.Content(t) == Door
}

// IsTunnel reports whether the tile slows ghosts down.
func (w *World) IsTunnel(t core.Tile) bool {
	return w.m.Content(t) == Tunnel
}

// IsPortal reports whether the tile is the outer end of a portal.
func (w *World) IsPortal(t core.Tile) bool {
	for _, p := range w.m.Portals {
		if t == p.Left || t == p.Right {
			return true
		}
	}
	return false
}

// IsAccessible reports whether an actor moving through the maze may enter
// the tile. Doors are closed; outside the grid only portal tiles are open.
func (w *World) IsAccessible(t core.Tile) bool {
	if !w.InsideBounds(t) {
		return w.IsPortal(t)
	}
	c := w.m.Content(t)
	return c != Wall && c != Door
}

// IsIntersection reports whether at least three neighbors are accessible.
func (w *World) IsIntersection(t core.Tile) bool {
	if !w.IsAccessible(t) {
		return false
	}
	n := 0
	for _, d := range core.Directions {
		if w.IsAccessible(t.Plus(d.Vector())) {
			n++
		}
	}
	return n >= 3
}

// IsNoUpTile reports whether hunting ghosts are forbidden to turn up here.
func (w *World) IsNoUpTile(t core.Tile) bool {
	return w.noUp[t]
}

// InsideHouse reports whether the tile lies within the ghost house.
func (w *World) InsideHouse(t core.Tile) bool {
	return w.m.House.Contains(t)
}

// House returns the ghost house rectangle.
func (w *World) House() House {
	return w.m.House
}

// HouseEntry returns the position above the house door.
func (w *World) HouseEntry() core.Vector2f {
	return w.m.houseEntry
}

// HouseEntryTile returns the tile holding the center of the house entry position.
func (w *World) HouseEntryTile() core.Tile {
	return core.TileOf(w.m.houseEntry.Plus(core.Vector2f{X: core.HalfTileSize, Y: core.HalfTileSize}))
}

// Portals returns the map's portals.
func (w *World) Portals() []Portal {
	return w.m.Portals
}

// IsFoodTile reports whether the tile held food at level start.
func (w *World) IsFoodTile(t core.Tile) bool {
	return w.m.Content(t).IsFood()
}

// IsEnergizerTile reports whether the tile held an energizer at level start.
func (w *World) IsEnergizerTile(t core.Tile) bool {
	return w.m.Content(t) == Energizer
}

// HasFoodAt reports whether uneaten food lies on the tile.
func (w *World) HasFoodAt(t core.Tile) bool {
	if !w.InsideBounds(t) {
		return false
	}
	i := w.m.index(t)
	return w.food[i/64]&(1<<uint(i%64)) != 0
}

// HasEatenFoodAt reports whether the tile's food has been eaten.
func (w *World) HasEatenFoodAt(t core.Tile) bool {
	return w.IsFoodTile(t) && !w.HasFoodAt(t)
}

// EatFoodAt removes the food on the tile and reports whether there was any.
func (w *World) EatFoodAt(t core.Tile) bool {
	if !w.HasFoodAt(t) {
		return false
	}
	i := w.m.index(t)
	w.food[i/64] &^= 1 << uint(i%64)
	w.uneaten--
	return true
}

// TotalFoodCount returns the food count at level start.
func (w *World) TotalFoodCount() int {
	return w.m.foodCount
}

// UneatenFoodCount returns the food still in the maze.
func (w *World) UneatenFoodCount() int {
	return w.uneaten
}

// EatenFoodCount returns the food eaten so far.
func (w *World) EatenFoodCount() int {
	return w.m.foodCount - w.uneaten
}

// countBits recounts the bitset. Used to check the cached counter.
func (w *World) countBits() int {
	n := 0
	for _, word := range w.food {
		n += bits.OnesCount64(word)
	}
	return n
}

// Energizers returns the energizer tiles in row-major order.
func (w *World) Energizers() []core.Tile {
	var tiles []core.Tile
	for y := 0; y < w.m.Rows; y++ {
		for x := 0; x < w.m.Cols; x++ {
			t := core.Tile{X: x, Y: y}
			if w.IsEnergizerTile(t) {
				tiles = append(tiles, t)
			}
		}
	}
	return tiles
}
