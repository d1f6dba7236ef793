package world

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/mazechase/internal/core"
)

func mustDefaultWorld(t *testing.T) *World {
	t.Helper()
	m, err := DefaultMap()
	if err != nil {
		t.Fatalf("DefaultMap() error: %v", err)
	}
	return New(m)
}

func TestDefaultMapShape(t *testing.T) {
	w := mustDefaultWorld(t)

	if w.NumCols() != 28 || w.NumRows() != 36 {
		t.Fatalf("size = %dx%d, expected 28x36", w.NumCols(), w.NumRows())
	}
	if w.TotalFoodCount() != 244 {
		t.Errorf("TotalFoodCount() = %d, expected 244", w.TotalFoodCount())
	}
	if len(w.Energizers()) != 4 {
		t.Errorf("expected 4 energizers, got %d", len(w.Energizers()))
	}
	if w.UneatenFoodCount() != w.countBits() {
		t.Errorf("cached count %d differs from bitset %d", w.UneatenFoodCount(), w.countBits())
	}
}

func TestDefaultMapPlacements(t *testing.T) {
	w := mustDefaultWorld(t)
	m := w.Map()

	if m.PacStart != (core.Vector2f{X: 108, Y: 208}) {
		t.Errorf("PacStart = %v", m.PacStart)
	}
	if w.HouseEntry() != (core.Vector2f{X: 108, Y: 112}) {
		t.Errorf("HouseEntry() = %v, expected (108,112)", w.HouseEntry())
	}
	if w.HouseEntryTile() != (core.Tile{X: 14, Y: 14}) {
		t.Errorf("HouseEntryTile() = %v", w.HouseEntryTile())
	}
	doors := m.Doors()
	if len(doors) != 2 || doors[0] != (core.Tile{X: 13, Y: 15}) || doors[1] != (core.Tile{X: 14, Y: 15}) {
		t.Errorf("Doors() = %v", doors)
	}

	scatter := []core.Tile{{X: 25, Y: 0}, {X: 2, Y: 0}, {X: 27, Y: 34}, {X: 0, Y: 34}}
	for i, want := range scatter {
		if m.Ghosts[i].Scatter != want {
			t.Errorf("ghost %d scatter = %v, expected %v", i, m.Ghosts[i].Scatter, want)
		}
	}
	if m.Ghosts[0].HomeDir != core.DirLeft || m.Ghosts[1].HomeDir != core.DirDown {
		t.Error("unexpected ghost home directions")
	}
}

func TestTerrainQueries(t *testing.T) {
	w := mustDefaultWorld(t)

	tests := []struct {
		name string
		fn   func(core.Tile) bool
		tile core.Tile
		want bool
	}{
		{"corner is wall", w.IsWall, core.Tile{X: 0, Y: 3}, true},
		{"pellet is accessible", w.IsAccessible, core.Tile{X: 1, Y: 4}, true},
		{"door is not accessible", w.IsAccessible, core.Tile{X: 13, Y: 15}, false},
		{"door query", w.IsDoor, core.Tile{X: 14, Y: 15}, true},
		{"tunnel tile", w.IsTunnel, core.Tile{X: 2, Y: 17}, true},
		{"left portal accessible", w.IsAccessible, core.Tile{X: -1, Y: 17}, true},
		{"outside non-portal", w.IsAccessible, core.Tile{X: -1, Y: 16}, false},
		{"energizer", w.IsEnergizerTile, core.Tile{X: 1, Y: 6}, true},
		{"intersection", w.IsIntersection, core.Tile{X: 6, Y: 4}, true},
		{"corridor is not intersection", w.IsIntersection, core.Tile{X: 3, Y: 4}, false},
		{"no up tile", w.IsNoUpTile, core.Tile{X: 12, Y: 26}, true},
		{"inside house", w.InsideHouse, core.Tile{X: 14, Y: 17}, true},
		{"above house", w.InsideHouse, core.Tile{X: 14, Y: 14}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn(tc.tile); got != tc.want {
				t.Errorf("query(%v) = %v, expected %v", tc.tile, got, tc.want)
			}
		})
	}
}

func TestEatFood(t *testing.T) {
	w := mustDefaultWorld(t)
	tile := core.Tile{X: 1, Y: 4}

	if !w.EatFoodAt(tile) {
		t.Fatal("EatFoodAt should report food on a pellet tile")
	}
	if w.EatFoodAt(tile) {
		t.Error("eating the same tile twice should report no food")
	}
	if w.UneatenFoodCount() != 243 || w.EatenFoodCount() != 1 {
		t.Errorf("counts = %d uneaten, %d eaten", w.UneatenFoodCount(), w.EatenFoodCount())
	}
	if !w.HasEatenFoodAt(tile) {
		t.Error("HasEatenFoodAt should be true after eating")
	}
	if w.EatFoodAt(core.Tile{X: 0, Y: 0}) {
		t.Error("empty tile should have no food")
	}

	w.ResetFood()
	if w.UneatenFoodCount() != 244 || !w.HasFoodAt(tile) {
		t.Error("ResetFood should restore all food")
	}
}

func TestWorldsDoNotShareFood(t *testing.T) {
	m, err := DefaultMap()
	if err != nil {
		t.Fatal(err)
	}
	a, b := New(m), New(m)
	a.EatFoodAt(core.Tile{X: 1, Y: 4})
	if !b.HasFoodAt(core.Tile{X: 1, Y: 4}) {
		t.Error("food eaten in one world leaked into another")
	}
}

func TestDistanceField(t *testing.T) {
	w := mustDefaultWorld(t)
	entry := w.HouseEntryTile()
	f := w.DistanceField(entry)

	if f.Dist(entry) != 0 {
		t.Errorf("Dist(target) = %d", f.Dist(entry))
	}
	if f.Dist(core.Tile{X: 0, Y: 3}) != Unreachable {
		t.Error("walls should be unreachable")
	}
	if f.Dist(core.Tile{X: 14, Y: 17}) != Unreachable {
		t.Error("house interior should be unreachable through the closed door")
	}

	// Walking the field from Pac's start must arrive at the target.
	tile := core.Tile{X: 14, Y: 26}
	for steps := 0; tile != entry; steps++ {
		if steps > 200 {
			t.Fatal("path did not reach the target")
		}
		d, ok := f.NextDirection(tile)
		if !ok {
			t.Fatalf("no direction at %v", tile)
		}
		next := tile.Plus(d.Vector())
		if f.Dist(next) != f.Dist(tile)-1 {
			t.Fatalf("step %v -> %v does not decrease the distance", tile, next)
		}
		tile = next
	}
}

func TestLoadMapFromFile(t *testing.T) {
	data, err := embeddedMaps.ReadFile("maps/arcade.yaml")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := LoadMap(path)
	if err != nil {
		t.Fatalf("LoadMap() error: %v", err)
	}
	if m.FoodCount() != 244 {
		t.Errorf("FoodCount() = %d", m.FoodCount())
	}
}

func TestLoadMapErrors(t *testing.T) {
	if _, err := LoadMap(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}

	tests := []struct {
		name string
		yaml string
	}{
		{"bad size", "size: {w: 0, h: 0}\n"},
		{"unknown character", "size: {w: 3, h: 1}\nterrain: \"#x#\"\n"},
		{"too wide", "size: {w: 2, h: 1}\nterrain: \"###\"\n"},
		{"no ghosts", "size: {w: 3, h: 1}\nterrain: \"#-.\"\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseMap([]byte(tc.yaml))
			if !errors.Is(err, ErrInvalidMap) {
				t.Errorf("ParseMap() error = %v, expected ErrInvalidMap", err)
			}
		})
	}
}
