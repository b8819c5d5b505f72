package level

import (
	"math"
	"sort"

	"github.com/vovakirdan/magboots/internal/physics"
)

// DefaultCellSize is the edge of a broad-phase cell in world pixels.
const DefaultCellSize = 128

type cellKey struct {
	X, Y int
}

// grid is a uniform spatial hash over rectangles. Queries return item indices
// in ascending order so callers see items in declaration order.
type grid struct {
	size  float64
	cells map[cellKey][]int
}

func newGrid(size float64) *grid {
	if !(size > 0) {
		size = DefaultCellSize
	}
	return &grid{size: size, cells: make(map[cellKey][]int)}
}

// span returns the inclusive cell range covered by r.
func (g *grid) span(r physics.Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(r.X / g.size))
	y0 = int(math.Floor(r.Y / g.size))
	x1 = int(math.Floor(r.Right() / g.size))
	y1 = int(math.Floor(r.Bottom() / g.size))
	return x0, y0, x1, y1
}

func (g *grid) insert(idx int, r physics.Rect) {
	x0, y0, x1, y1 := g.span(r)
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			k := cellKey{cx, cy}
			g.cells[k] = append(g.cells[k], idx)
		}
	}
}

func (g *grid) query(area physics.Rect) []int {
	if !physics.IsFinite(area.Min()) || !physics.IsFinite(physics.V(area.W, area.H)) {
		return nil
	}

	x0, y0, x1, y1 := g.span(area)
	seen := make(map[int]bool)
	var out []int
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			for _, idx := range g.cells[cellKey{cx, cy}] {
				if !seen[idx] {
					seen[idx] = true
					out = append(out, idx)
				}
			}
		}
	}
	sort.Ints(out)
	return out
}
