package world

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/mazechase/internal/core"
)

//go:embed maps/*.yaml
var embeddedMaps embed.FS

// DefaultMapID identifies the embedded arcade maze.
const DefaultMapID = "arcade"

// ErrInvalidMap is wrapped by every validation failure of a map resource.
var ErrInvalidMap = errors.New("invalid map")

// yamlMap is the on-disk structure of a map resource.
type yamlMap struct {
	ID         string       `yaml:"id"`
	Name       string       `yaml:"name"`
	Size       yamlSize     `yaml:"size"`
	TerrainTop int          `yaml:"terrain_top"`
	Terrain    string       `yaml:"terrain"`
	House      yamlHouse    `yaml:"house"`
	PacStart   [2]float64   `yaml:"pac_start"`
	Bonus      [2]float64   `yaml:"bonus"`
	Ghosts     []yamlGhost  `yaml:"ghosts"`
	Portals    []yamlPortal `yaml:"portals"`
	NoUpTiles  [][2]int     `yaml:"no_up_tiles"`
}

type yamlSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

type yamlHouse struct {
	Min  [2]int `yaml:"min"`
	Size [2]int `yaml:"size"`
}

type yamlGhost struct {
	Home    [2]float64 `yaml:"home"`
	Dir     string     `yaml:"dir"`
	Revival [2]float64 `yaml:"revival"`
	Scatter [2]int     `yaml:"scatter"`
}

type yamlPortal struct {
	Left  [2]int `yaml:"left"`
	Right [2]int `yaml:"right"`
}

// DefaultMap parses the embedded arcade maze.
func DefaultMap() (*Map, error) {
	return LoadEmbedded(DefaultMapID)
}

// LoadEmbedded parses one of the maps compiled into the binary.
func LoadEmbedded(id string) (*Map, error) {
	data, err := embeddedMaps.ReadFile("maps/" + id + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("world: unknown embedded map %q: %w", id, err)
	}
	m, err := ParseMap(data)
	if err != nil {
		return nil, fmt.Errorf("world: embedded map %q: %w", id, err)
	}
	return m, nil
}

// LoadMap reads and parses a map file. An empty path selects the embedded default.
func LoadMap(path string) (*Map, error) {
	if path == "" {
		return DefaultMap()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("world: reading map %s: %w", path, err)
	}
	m, err := ParseMap(data)
	if err != nil {
		return nil, fmt.Errorf("world: parsing map %s: %w", path, err)
	}
	return m, nil
}

// ParseMap decodes and validates a YAML map resource.
func ParseMap(data []byte) (*Map, error) {
	var ym yamlMap
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if ym.Size.W <= 0 || ym.Size.H <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidMap, ym.Size.W, ym.Size.H)
	}

	m := &Map{
		ID:      ym.ID,
		Name:    ym.Name,
		Cols:    ym.Size.W,
		Rows:    ym.Size.H,
		terrain: make([]Content, ym.Size.W*ym.Size.H),
	}

	lines := strings.Split(strings.TrimRight(ym.Terrain, "\n"), "\n")
	if ym.TerrainTop < 0 || ym.TerrainTop+len(lines) > m.Rows {
		return nil, fmt.Errorf("%w: %d terrain rows at offset %d exceed height %d",
			ErrInvalidMap, len(lines), ym.TerrainTop, m.Rows)
	}
	for row, line := range lines {
		x := 0
		for _, r := range line {
			if x >= m.Cols {
				return nil, fmt.Errorf("%w: terrain row %d is wider than %d", ErrInvalidMap, row, m.Cols)
			}
			c, ok := parseContent(r)
			if !ok {
				return nil, fmt.Errorf("%w: unknown terrain character %q in row %d", ErrInvalidMap, r, row)
			}
			m.terrain[m.index(core.Tile{X: x, Y: row + ym.TerrainTop})] = c
			x++
		}
	}

	m.House = House{
		Min:  core.Tile{X: ym.House.Min[0], Y: ym.House.Min[1]},
		Size: core.Tile{X: ym.House.Size[0], Y: ym.House.Size[1]},
	}
	m.PacStart = core.HalfTilePos(ym.PacStart[0], ym.PacStart[1])
	m.BonusPos = core.HalfTilePos(ym.Bonus[0], ym.Bonus[1])

	if len(ym.Ghosts) != NumGhosts {
		return nil, fmt.Errorf("%w: expected %d ghosts, got %d", ErrInvalidMap, NumGhosts, len(ym.Ghosts))
	}
	for i, g := range ym.Ghosts {
		dir, err := core.ParseDirection(g.Dir)
		if err != nil {
			return nil, fmt.Errorf("%w: ghost %d: %v", ErrInvalidMap, i, err)
		}
		m.Ghosts[i] = GhostPlacement{
			Home:    core.HalfTilePos(g.Home[0], g.Home[1]),
			HomeDir: dir,
			Revival: core.HalfTilePos(g.Revival[0], g.Revival[1]),
			Scatter: core.Tile{X: g.Scatter[0], Y: g.Scatter[1]},
		}
	}

	for _, p := range ym.Portals {
		portal := Portal{
			Left:  core.Tile{X: p.Left[0], Y: p.Left[1]},
			Right: core.Tile{X: p.Right[0], Y: p.Right[1]},
		}
		if portal.Left.Y != portal.Right.Y || portal.Left.X >= portal.Right.X {
			return nil, fmt.Errorf("%w: portal %v-%v is not a horizontal pair", ErrInvalidMap, portal.Left, portal.Right)
		}
		m.Portals = append(m.Portals, portal)
	}
	for _, t := range ym.NoUpTiles {
		m.NoUpTiles = append(m.NoUpTiles, core.Tile{X: t[0], Y: t[1]})
	}

	m.derive()
	if len(m.doors) == 0 {
		return nil, fmt.Errorf("%w: ghost house has no door", ErrInvalidMap)
	}
	if m.foodCount == 0 {
		return nil, fmt.Errorf("%w: map has no food", ErrInvalidMap)
	}
	return m, nil
}
