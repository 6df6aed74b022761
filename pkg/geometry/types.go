package geometry

import (
	"math"
)

// Point is a location in the mosaic plane. Coordinates are in whatever
// linear unit the caller's data uses; no unit conversion happens anywhere
// in the pipeline.
type Point struct {
	X float64
	Y float64
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Segment is a straight fracture trace piece between two points.
type Segment struct {
	A Point
	B Point
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return s.A.Distance(s.B)
}

// Orientation returns the axial orientation of the segment in degrees,
// normalized into [0, 180). Fracture orientation is axial, not directional,
// so A->B and B->A yield the same value.
func (s Segment) Orientation() float64 {
	return Orientation(s.A, s.B)
}

// LineString is an ordered run of coordinates representing one digitized
// fracture trace.
type LineString struct {
	Coords []Point
}

// Polygon is a closed region whose boundary contributes trace segments.
// The shell and holes are rings; the closing coordinate may be repeated
// or omitted, both forms are accepted.
type Polygon struct {
	Shell []Point
	Holes [][]Point
}

// Collection is the raw geometry input for one mosaic.
type Collection struct {
	Lines    []LineString
	Polygons []Polygon
}

// Empty reports whether the collection carries no features at all.
func (c Collection) Empty() bool {
	return len(c.Lines) == 0 && len(c.Polygons) == 0
}
