// Package network builds the planar graph of a fracture mosaic: it snaps
// segment endpoints into shared vertices within a tolerance, maps segments
// to undirected edges, and resolves degenerate and duplicate edges. The
// resulting graph is immutable and safe for concurrent reads.
package network

import (
	"github.com/dkelsey/fracmosaic/pkg/geometry"
)

// DuplicatePolicy selects how coincident edges (same vertex pair appearing
// more than once) are resolved during the build.
type DuplicatePolicy string

const (
	// KeepFirst keeps the first edge for a vertex pair and drops the rest.
	KeepFirst DuplicatePolicy = "keep-first"
	// Merge keeps one canonical edge per vertex pair and sums multiplicity.
	Merge DuplicatePolicy = "merge"
)

// Options configures a graph build.
type Options struct {
	// Tolerance is the snapping distance. Endpoints closer than this are
	// merged into one vertex. Must be positive.
	Tolerance float64
	// DuplicatePolicy resolves coincident edges. Defaults to KeepFirst.
	DuplicatePolicy DuplicatePolicy
}

// Vertex is a snapped endpoint cluster. The coordinate is the canonical
// point of the cluster: the first endpoint, in input order, that opened it.
type Vertex struct {
	ID int
	X  float64
	Y  float64
}

// Point returns the vertex coordinate as a geometry point.
func (v Vertex) Point() geometry.Point {
	return geometry.Point{X: v.X, Y: v.Y}
}

// Edge is an undirected trace segment between two vertices, normalized so
// that A < B. Multiplicity counts merged coincident segments and is 1
// unless the Merge policy folded duplicates into this edge.
type Edge struct {
	ID           int
	A            int
	B            int
	Multiplicity int
}

// Graph is the frozen planar network of one mosaic. Vertices and edges are
// addressed by their position in flat slices; there are no object cycles,
// so the graph can be read from many goroutines at once.
type Graph struct {
	vertices []Vertex
	edges    []Edge
	incident [][]int // vertex ID -> incident edge IDs, in edge order

	degenerateDropped  int
	duplicatesResolved int
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Vertex returns the vertex with the given ID.
func (g *Graph) Vertex(id int) Vertex { return g.vertices[id] }

// Edge returns the edge with the given ID.
func (g *Graph) Edge(id int) Edge { return g.edges[id] }

// Vertices returns the vertex arena. Treat as read-only.
func (g *Graph) Vertices() []Vertex { return g.vertices }

// Edges returns the edge arena. Treat as read-only.
func (g *Graph) Edges() []Edge { return g.edges }

// Degree returns the number of edges incident to the vertex.
func (g *Graph) Degree(vertexID int) int { return len(g.incident[vertexID]) }

// IncidentEdges returns the IDs of edges meeting at the vertex, in edge
// order. Treat as read-only.
func (g *Graph) IncidentEdges(vertexID int) []int { return g.incident[vertexID] }

// OtherEnd returns the vertex at the far side of the edge from vertexID.
func (g *Graph) OtherEnd(edgeID, vertexID int) int {
	e := g.edges[edgeID]
	if e.A == vertexID {
		return e.B
	}
	return e.A
}

// Segment returns the edge as a geometry segment between its canonical
// vertex coordinates.
func (g *Graph) Segment(edgeID int) geometry.Segment {
	e := g.edges[edgeID]
	return geometry.Segment{A: g.vertices[e.A].Point(), B: g.vertices[e.B].Point()}
}

// DegenerateDropped returns how many input segments collapsed to a single
// vertex after snapping and were skipped.
func (g *Graph) DegenerateDropped() int { return g.degenerateDropped }

// DuplicatesResolved returns how many coincident segments were folded by
// the duplicate-edge policy.
func (g *Graph) DuplicatesResolved() int { return g.duplicatesResolved }
