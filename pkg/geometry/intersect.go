package geometry

import (
	"math"
)

// Intersection returns the point where s and t meet, if they meet in a
// single point (crossing or touching, endpoints included). Parallel and
// collinear-overlapping pairs report no intersection since they have no
// unique meeting point.
func (s Segment) Intersection(t Segment) (Point, bool) {
	d1x, d1y := s.B.X-s.A.X, s.B.Y-s.A.Y
	d2x, d2y := t.B.X-t.A.X, t.B.Y-t.A.Y

	den := d1x*d2y - d1y*d2x
	scale := math.Hypot(d1x, d1y) * math.Hypot(d2x, d2y)
	if math.Abs(den) <= 1e-12*scale {
		return Point{}, false
	}

	ex, ey := t.A.X-s.A.X, t.A.Y-s.A.Y
	u := (ex*d2y - ey*d2x) / den // parameter along s
	v := (ex*d1y - ey*d1x) / den // parameter along t
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return Point{}, false
	}

	return Point{X: s.A.X + u*d1x, Y: s.A.Y + u*d1y}, true
}

// ParamAlong returns the normalized position of p projected onto the
// segment, where 0 is A and 1 is B. The caller is expected to pass points
// known to lie on (or very near) the segment.
func (s Segment) ParamAlong(p Point) float64 {
	dx, dy := s.B.X-s.A.X, s.B.Y-s.A.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return 0
	}
	return ((p.X-s.A.X)*dx + (p.Y-s.A.Y)*dy) / l2
}
