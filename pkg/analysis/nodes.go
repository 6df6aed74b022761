package analysis

import (
	"math"
	"sort"

	"github.com/dkelsey/fracmosaic/pkg/geometry"
	"github.com/dkelsey/fracmosaic/pkg/network"
)

// NodeClass is the topological classification of a vertex.
type NodeClass string

const (
	// ClassIsolated is a degree-1 trace endpoint.
	ClassIsolated NodeClass = "I"
	// ClassContinuation is a degree-2 vertex where one trace passes
	// through: the two edges are collinear within the configured threshold.
	ClassContinuation NodeClass = "C"
	// ClassAbutting is a degree-2 vertex where two traces meet at a
	// non-collinear angle.
	ClassAbutting NodeClass = "V"
	// ClassX is a 4-branch crossing with all inter-edge angles near 90.
	ClassX NodeClass = "X"
	// ClassT is a 3-branch junction whose angles are all near 90 or 180:
	// one trace ends against a through-going one.
	ClassT NodeClass = "T"
	// ClassY is any other 3-branch junction.
	ClassY NodeClass = "Y"
	// ClassComplex covers crossings the X/T/Y taxonomy does not fit.
	ClassComplex NodeClass = "#"
)

// NodeMetrics is the per-vertex metric record.
type NodeMetrics struct {
	VertexID int
	Degree   int
	Class    NodeClass
	// Angles are the inter-edge angles around the vertex in degrees,
	// ordered counter-clockwise. They sum to 360 for degree >= 2.
	Angles []float64
	// Crossing marks true intersections (degree >= 3).
	Crossing bool
	// Regular is false when a through-going trace runs across the junction
	// (T junctions and Y junctions with a near-180 angle).
	Regular bool
	// Branches is the effective branch count: degree, minus one when a
	// through-going trace makes the junction irregular.
	Branches int
}

// interEdgeAngles returns the angles between consecutive incident edges
// around the vertex, in degrees. Incident azimuths are sorted so the result
// is independent of edge insertion order.
func interEdgeAngles(g *network.Graph, vertexID int) []float64 {
	edges := g.IncidentEdges(vertexID)
	if len(edges) < 2 {
		return nil
	}
	origin := g.Vertex(vertexID).Point()
	azimuths := make([]float64, 0, len(edges))
	for _, eid := range edges {
		other := g.Vertex(g.OtherEnd(eid, vertexID)).Point()
		azimuths = append(azimuths, geometry.Azimuth(origin, other))
	}
	sort.Float64s(azimuths)

	angles := make([]float64, len(azimuths))
	for i := 0; i < len(azimuths)-1; i++ {
		angles[i] = azimuths[i+1] - azimuths[i]
	}
	angles[len(angles)-1] = 360 - (azimuths[len(azimuths)-1] - azimuths[0])
	return angles
}

func within(angle, target, buffer float64) bool {
	return math.Abs(angle-target) <= buffer
}

func allWithin90(angles []float64, buffer float64) bool {
	for _, a := range angles {
		if !within(a, 90, buffer) {
			return false
		}
	}
	return true
}

func allWithin90or180(angles []float64, buffer float64) bool {
	for _, a := range angles {
		if !within(a, 90, buffer) && !within(a, 180, buffer) {
			return false
		}
	}
	return true
}

func anyWithin180(angles []float64, buffer float64) bool {
	for _, a := range angles {
		if within(a, 180, buffer) {
			return true
		}
	}
	return false
}

// classifyNode derives the per-vertex record. The collinearity threshold
// governs the degree-2 continuation test; the angle buffer governs the
// X/T/Y taxonomy and regularity of crossings.
func classifyNode(g *network.Graph, vertexID int, collinearity, buffer float64) NodeMetrics {
	degree := g.Degree(vertexID)
	angles := interEdgeAngles(g, vertexID)

	m := NodeMetrics{
		VertexID: vertexID,
		Degree:   degree,
		Angles:   angles,
		Regular:  true,
		Branches: degree,
	}

	switch {
	case degree <= 1:
		m.Class = ClassIsolated
	case degree == 2:
		// Through-going when the edges point in nearly opposite directions.
		if within(angles[0], 180, collinearity) || within(angles[1], 180, collinearity) {
			m.Class = ClassContinuation
			m.Branches = 1
		} else {
			m.Class = ClassAbutting
		}
	default:
		m.Crossing = true
		m.Class = classifyCrossing(degree, angles, buffer)
		m.Regular = crossingIsRegular(m.Class, angles, buffer)
		if !m.Regular {
			m.Branches = degree - 1
		}
	}
	return m
}

func classifyCrossing(degree int, angles []float64, buffer float64) NodeClass {
	switch {
	case degree == 4 && allWithin90(angles, buffer):
		return ClassX
	case degree == 3 && allWithin90or180(angles, buffer):
		return ClassT
	case degree == 3:
		return ClassY
	default:
		return ClassComplex
	}
}

// crossingIsRegular reports whether no through-going trace runs across the
// junction. T junctions always have one; Y junctions have one when any of
// their angles is near 180.
func crossingIsRegular(class NodeClass, angles []float64, buffer float64) bool {
	switch class {
	case ClassT:
		return false
	case ClassY:
		return !anyWithin180(angles, buffer)
	default:
		return true
	}
}

func computeNodeMetrics(g *network.Graph, collinearity, buffer float64) []NodeMetrics {
	out := make([]NodeMetrics, 0, g.VertexCount())
	for id := 0; id < g.VertexCount(); id++ {
		out = append(out, classifyNode(g, id, collinearity, buffer))
	}
	return out
}
