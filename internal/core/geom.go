// Package core provides fundamental types shared by the simulation, the
// game flow and the terminal platform. It has no external dependencies so
// the simulation stays pure and testable.
package core

import (
	"fmt"
	"math"
)

// TileSize is the edge length of a maze tile in pixels.
const TileSize = 8

// HalfTileSize is half of TileSize.
const HalfTileSize = TileSize / 2

// Tile is an integer grid coordinate. It doubles as an integer vector for
// tile offsets (for example the "tiles ahead" used by ghost targeting).
type Tile struct {
	X, Y int
}

// Plus returns the component-wise sum of two tiles.
func (t Tile) Plus(o Tile) Tile {
	return Tile{X: t.X + o.X, Y: t.Y + o.Y}
}

// Minus returns the component-wise difference t - o.
func (t Tile) Minus(o Tile) Tile {
	return Tile{X: t.X - o.X, Y: t.Y - o.Y}
}

// Scaled multiplies both components by n.
func (t Tile) Scaled(n int) Tile {
	return Tile{X: t.X * n, Y: t.Y * n}
}

// DistSq returns the squared Euclidean distance between two tiles.
func (t Tile) DistSq(o Tile) int {
	dx, dy := t.X-o.X, t.Y-o.Y
	return dx*dx + dy*dy
}

// Dist returns the Euclidean distance between two tiles.
func (t Tile) Dist(o Tile) float64 {
	return math.Sqrt(float64(t.DistSq(o)))
}

// Manhattan returns the taxicab distance between two tiles.
func (t Tile) Manhattan(o Tile) int {
	return Abs(t.X-o.X) + Abs(t.Y-o.Y)
}

// Center returns the pixel position of the tile center.
func (t Tile) Center() Vector2f {
	return Vector2f{
		X: float64(t.X*TileSize + HalfTileSize),
		Y: float64(t.Y*TileSize + HalfTileSize),
	}
}

func (t Tile) String() string {
	return fmt.Sprintf("(%d,%d)", t.X, t.Y)
}

// Vector2f is a pixel position or offset.
type Vector2f struct {
	X, Y float64
}

// Plus returns the component-wise sum.
func (v Vector2f) Plus(o Vector2f) Vector2f {
	return Vector2f{X: v.X + o.X, Y: v.Y + o.Y}
}

// Minus returns v - o.
func (v Vector2f) Minus(o Vector2f) Vector2f {
	return Vector2f{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scaled multiplies both components by f.
func (v Vector2f) Scaled(f float64) Vector2f {
	return Vector2f{X: v.X * f, Y: v.Y * f}
}

// TileOf returns the tile containing the pixel point p.
func TileOf(p Vector2f) Tile {
	return Tile{
		X: int(math.Floor(p.X / TileSize)),
		Y: int(math.Floor(p.Y / TileSize)),
	}
}

// HalfTilePos converts a tile coordinate that may sit on a half tile
// (13.5, 26) into the pixel position of the top-left corner of an actor's
// collision box.
func HalfTilePos(tx, ty float64) Vector2f {
	return Vector2f{X: tx * TileSize, Y: ty * TileSize}
}

// Direction is one of the four grid directions.
type Direction int

// The declaration order is the tie-break priority used when a ghost picks
// between equally cheap turns.
const (
	DirUp Direction = iota
	DirLeft
	DirDown
	DirRight
)

// Directions lists all directions in tie-break priority order.
var Directions = [4]Direction{DirUp, DirLeft, DirDown, DirRight}

// Vector returns the unit tile offset of the direction.
func (d Direction) Vector() Tile {
	switch d {
	case DirUp:
		return Tile{X: 0, Y: -1}
	case DirLeft:
		return Tile{X: -1, Y: 0}
	case DirDown:
		return Tile{X: 0, Y: 1}
	default:
		return Tile{X: 1, Y: 0}
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirLeft:
		return DirRight
	case DirDown:
		return DirUp
	default:
		return DirLeft
	}
}

// IsVertical reports whether d is Up or Down.
func (d Direction) IsVertical() bool {
	return d == DirUp || d == DirDown
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirLeft:
		return "left"
	case DirDown:
		return "down"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection parses the lowercase name produced by Direction.String.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return DirUp, fmt.Errorf("unknown direction %q", s)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
