package network

import (
	"github.com/dkelsey/fracmosaic/pkg/geometry"
)

// conflictMargin scales the floating-point stability window for snapping:
// two cluster candidates whose distances to an endpoint differ by less than
// this margin cannot be ordered reliably and are reported as a conflict.
const conflictMargin = 1e-9

// Build constructs the planar graph for one mosaic from raw segments.
//
// Endpoints are clustered in input order, so vertex IDs are deterministic
// across runs: the lowest original input index opens a cluster and supplies
// its canonical coordinate. Segments whose endpoints snap to the same
// vertex are dropped and counted, not fatal. Coincident vertex pairs are
// resolved per the duplicate-edge policy.
func Build(segments []geometry.Segment, opts Options) (*Graph, error) {
	if opts.Tolerance <= 0 {
		return nil, ErrBadTolerance
	}
	policy := opts.DuplicatePolicy
	if policy == "" {
		policy = KeepFirst
	}

	g := &Graph{}
	snap := newSnapper(opts.Tolerance)

	type pair struct{ a, b int }
	byPair := make(map[pair]int, len(segments))

	for _, seg := range segments {
		a, err := snap.vertexFor(seg.A, g)
		if err != nil {
			return nil, err
		}
		b, err := snap.vertexFor(seg.B, g)
		if err != nil {
			return nil, err
		}

		if a == b {
			g.degenerateDropped++
			continue
		}
		if a > b {
			a, b = b, a
		}

		key := pair{a, b}
		if id, ok := byPair[key]; ok {
			g.duplicatesResolved++
			if policy == Merge {
				g.edges[id].Multiplicity++
			}
			continue
		}

		id := len(g.edges)
		g.edges = append(g.edges, Edge{ID: id, A: a, B: b, Multiplicity: 1})
		byPair[key] = id
	}

	g.incident = make([][]int, len(g.vertices))
	for _, e := range g.edges {
		g.incident[e.A] = append(g.incident[e.A], e.ID)
		g.incident[e.B] = append(g.incident[e.B], e.ID)
	}

	return g, nil
}

// snapper assigns endpoints to vertex clusters through the grid index.
type snapper struct {
	tolerance float64
	margin    float64
	index     *gridIndex
}

func newSnapper(tolerance float64) *snapper {
	m := conflictMargin
	if tolerance > 1 {
		m = conflictMargin * tolerance
	}
	return &snapper{
		tolerance: tolerance,
		margin:    m,
		index:     newGridIndex(tolerance),
	}
}

// vertexFor returns the vertex ID for the point, opening a new cluster when
// no existing vertex lies within tolerance. When two candidates sit at
// distances too close to order, the snap is ambiguous and fails with a
// ToleranceConflictError rather than being resolved silently.
func (s *snapper) vertexFor(p geometry.Point, g *Graph) (int, error) {
	best, second := -1, -1
	bestD, secondD := 0.0, 0.0

	s.index.neighborhood(p.X, p.Y, func(id int) {
		d := g.vertices[id].Point().Distance(p)
		if d > s.tolerance {
			return
		}
		switch {
		case best == -1 || d < bestD:
			second, secondD = best, bestD
			best, bestD = id, d
		case second == -1 || d < secondD:
			second, secondD = id, d
		}
	})

	if best >= 0 {
		if second >= 0 && secondD-bestD <= s.margin {
			return 0, &ToleranceConflictError{
				Point:      p,
				CandidateA: g.vertices[best].Point(),
				CandidateB: g.vertices[second].Point(),
				DistanceA:  bestD,
				DistanceB:  secondD,
			}
		}
		return best, nil
	}

	id := len(g.vertices)
	g.vertices = append(g.vertices, Vertex{ID: id, X: p.X, Y: p.Y})
	s.index.insert(id, p.X, p.Y)
	return id, nil
}
