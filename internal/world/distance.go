package world

import "github.com/vovakirdan/mazechase/internal/core"

// Unreachable is the distance of tiles that cannot reach the target.
const Unreachable = -1

// DistanceField holds the shortest walking distance from every grid tile
// to one target tile, following accessible tiles without using portals.
type DistanceField struct {
	target core.Tile
	cols   int
	rows   int
	dist   []int
}

// DistanceField computes the shortest paths to target with a breadth-first search.
func (w *World) DistanceField(target core.Tile) *DistanceField {
	f := &DistanceField{
		target: target,
		cols:   w.m.Cols,
		rows:   w.m.Rows,
		dist:   make([]int, w.m.Cols*w.m.Rows),
	}
	for i := range f.dist {
		f.dist[i] = Unreachable
	}
	if !w.InsideBounds(target) || !w.IsAccessible(target) {
		return f
	}

	queue := make([]core.Tile, 0, 64)
	queue = append(queue, target)
	f.dist[w.m.index(target)] = 0
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		d := f.dist[w.m.index(t)]
		for _, dir := range core.Directions {
			n := t.Plus(dir.Vector())
			if !w.InsideBounds(n) || !w.IsAccessible(n) {
				continue
			}
			if i := w.m.index(n); f.dist[i] == Unreachable {
				f.dist[i] = d + 1
				queue = append(queue, n)
			}
		}
	}
	return f
}

// Target returns the tile all distances lead to.
func (f *DistanceField) Target() core.Tile {
	return f.target
}

// Dist returns the distance from t to the target, or Unreachable.
func (f *DistanceField) Dist(t core.Tile) int {
	if t.X < 0 || t.X >= f.cols || t.Y < 0 || t.Y >= f.rows {
		return Unreachable
	}
	return f.dist[t.Y*f.cols+t.X]
}

// NextDirection returns the direction of the neighbor closest to the target.
// Ties follow the Up, Left, Down, Right priority.
//
// The second result is false when from is the target or cannot reach it; a
// portal tile just outside the grid steps back into the grid.
func (f *DistanceField) NextDirection(from core.Tile) (core.Direction, bool) {
	if from.X < 0 {
		return core.DirRight, true
	}
	if from.X >= f.cols {
		return core.DirLeft, true
	}
	here := f.Dist(from)
	if here <= 0 {
		return core.DirUp, false
	}
	for _, d := range core.Directions {
		if n := f.Dist(from.Plus(d.Vector())); n != Unreachable && n < here {
			return d, true
		}
	}
	return core.DirUp, false
}
