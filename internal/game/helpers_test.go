package game

import (
	"testing"

	"github.com/vovakirdan/mazechase/internal/core"
)

// newTestModel builds and starts level n of the variant with a manual
// steering Pac that nobody steers.
func newTestModel(t *testing.T, rules GameRules, level int) *GameModel {
	t.Helper()
	m := NewGameModel(rules, NewSimulationContext(42, nil), WithSteering(&ManualSteering{}))
	m.PrepareForNewGame()
	if err := m.BuildLevel(level); err != nil {
		t.Fatalf("BuildLevel(%d) error: %v", level, err)
	}
	if err := m.StartLevel(); err != nil {
		t.Fatalf("StartLevel() error: %v", err)
	}
	return m
}

// newLevelForTest builds a level without starting it.
func newLevelForTest(t *testing.T, level int) *GameLevel {
	t.Helper()
	m := NewGameModel(PacManArcade(), NewSimulationContext(1, nil))
	if err := m.BuildLevel(level); err != nil {
		t.Fatalf("BuildLevel(%d) error: %v", level, err)
	}
	return m.Level()
}

// putOnTile centers a creature on a tile.
func putOnTile(c *creature, tile core.Tile, dir core.Direction) {
	c.placeAt(core.Vector2f{X: float64(tile.X * core.TileSize), Y: float64(tile.Y * core.TileSize)}, dir)
}

// eatAllBut removes food until only keep tiles remain uneaten, without
// going through the food check.
func eatAllBut(lvl *GameLevel, n int) {
	w := lvl.World()
	for y := 0; y < w.NumRows() && w.UneatenFoodCount() > n; y++ {
		for x := 0; x < w.NumCols() && w.UneatenFoodCount() > n; x++ {
			w.EatFoodAt(core.Tile{X: x, Y: y})
		}
	}
}

// firstFoodTile returns the first uneaten food tile in row-major order.
func firstFoodTile(t *testing.T, lvl *GameLevel, energizer bool) core.Tile {
	t.Helper()
	w := lvl.World()
	for y := 0; y < w.NumRows(); y++ {
		for x := 0; x < w.NumCols(); x++ {
			tile := core.Tile{X: x, Y: y}
			if w.HasFoodAt(tile) && w.IsEnergizerTile(tile) == energizer {
				return tile
			}
		}
	}
	t.Fatal("no food left")
	return core.Tile{}
}

// parkGhosts moves every ghost into the bottom corridor and lets it hunt,
// so scenarios around Pac start with an empty house.
func parkGhosts(lvl *GameLevel) {
	for i, g := range lvl.Ghosts() {
		putOnTile(&g.creature, core.Tile{X: 20 + i, Y: 32}, core.DirLeft)
		g.setState(GhostHuntingPac)
	}
}
