package network

import (
	"math"
)

// gridIndex buckets vertex IDs into uniform cells sized to the snapping
// tolerance. Any point within tolerance of a vertex is guaranteed to find
// it in the 3x3 cell neighborhood, which keeps clustering near-linear
// instead of quadratic over endpoints.
type gridIndex struct {
	cell  float64
	cells map[gridKey][]int
}

type gridKey struct {
	ix int64
	iy int64
}

func newGridIndex(tolerance float64) *gridIndex {
	return &gridIndex{
		cell:  tolerance,
		cells: make(map[gridKey][]int),
	}
}

func (g *gridIndex) keyFor(x, y float64) gridKey {
	return gridKey{
		ix: int64(math.Floor(x / g.cell)),
		iy: int64(math.Floor(y / g.cell)),
	}
}

// insert registers a vertex ID at the given coordinate.
func (g *gridIndex) insert(id int, x, y float64) {
	k := g.keyFor(x, y)
	g.cells[k] = append(g.cells[k], id)
}

// neighborhood calls fn for every vertex ID registered in the 3x3 cells
// around the coordinate, in deterministic (cell row-major, insertion)
// order.
func (g *gridIndex) neighborhood(x, y float64, fn func(id int)) {
	center := g.keyFor(x, y)
	for di := int64(-1); di <= 1; di++ {
		for dj := int64(-1); dj <= 1; dj++ {
			k := gridKey{ix: center.ix + di, iy: center.iy + dj}
			for _, id := range g.cells[k] {
				fn(id)
			}
		}
	}
}
