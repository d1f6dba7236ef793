package world

import (
	"github.com/vovakirdan/mazechase/internal/core"
)

// NumGhosts is the number of ghost placements a map must define.
const NumGhosts = 4

// House is the rectangular ghost house.
type House struct {
	Min  core.Tile // top-left tile
	Size core.Tile // width and height in tiles
}

// Contains reports whether the tile lies inside the house rectangle.
func (h House) Contains(t core.Tile) bool {
	return t.X >= h.Min.X && t.X < h.Min.X+h.Size.X &&
		t.Y >= h.Min.Y && t.Y < h.Min.Y+h.Size.Y
}

// GhostPlacement describes where a ghost starts, revives and scatters to.
type GhostPlacement struct {
	Home    core.Vector2f // top-left pixel position at level start
	HomeDir core.Direction
	Revival core.Vector2f // where the ghost goes after being eaten
	Scatter core.Tile     // corner target during scatter phases
}

// Portal joins two tiles outside the left and right map edges.
type Portal struct {
	Left  core.Tile
	Right core.Tile
}

// Map is an immutable, parsed map resource. One Map can back many worlds.
type Map struct {
	ID   string
	Name string
	Cols int
	Rows int

	terrain []Content

	House     House
	PacStart  core.Vector2f
	BonusPos  core.Vector2f
	Ghosts    [NumGhosts]GhostPlacement
	Portals   []Portal
	NoUpTiles []core.Tile

	doors      []core.Tile
	houseEntry core.Vector2f
	foodCount  int
}

func (m *Map) index(t core.Tile) int {
	return t.Y*m.Cols + t.X
}

// InsideBounds reports whether the tile lies on the map grid.
func (m *Map) InsideBounds(t core.Tile) bool {
	return t.X >= 0 && t.X < m.Cols && t.Y >= 0 && t.Y < m.Rows
}

// Content returns the original content of a tile. Tiles outside the grid are empty.
func (m *Map) Content(t core.Tile) Content {
	if !m.InsideBounds(t) {
		return Empty
	}
	return m.terrain[m.index(t)]
}

// FoodCount returns the number of food tiles on the map.
func (m *Map) FoodCount() int {
	return m.foodCount
}

// Doors returns the house door tiles.
func (m *Map) Doors() []core.Tile {
	return m.doors
}

// HouseEntry returns the top-left pixel position of an actor standing
// centered just above the house door.
func (m *Map) HouseEntry() core.Vector2f {
	return m.houseEntry
}

// derive computes values that follow from the terrain.
func (m *Map) derive() {
	m.doors = m.doors[:0]
	m.foodCount = 0
	for y := 0; y < m.Rows; y++ {
		for x := 0; x < m.Cols; x++ {
			t := core.Tile{X: x, Y: y}
			switch c := m.Content(t); {
			case c == Door:
				m.doors = append(m.doors, t)
			case c.IsFood():
				m.foodCount++
			}
		}
	}
	if len(m.doors) == 0 {
		return
	}
	minX, maxX := m.doors[0].X, m.doors[0].X
	for _, d := range m.doors {
		minX = core.Min(minX, d.X)
		maxX = core.Max(maxX, d.X)
	}
	centerX := float64((minX + maxX + 1) * core.TileSize / 2)
	m.houseEntry = core.Vector2f{
		X: centerX - core.HalfTileSize,
		Y: float64((m.doors[0].Y - 1) * core.TileSize),
	}
}
