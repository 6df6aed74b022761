// Package analysis traverses a frozen planar graph and computes the
// per-edge, per-node, and whole-mosaic fracture parameters: trace lengths
// and orientations, junction classification (I/C/V and X/T/Y/#), transect
// spacing, intersection density, connectivity, and junction statistics.
package analysis

import (
	"github.com/dkelsey/fracmosaic/pkg/geometry"
	"github.com/dkelsey/fracmosaic/pkg/network"
)

// Options are the metric-engine knobs. Zero values fall back to defaults.
type Options struct {
	// CollinearityThreshold, in degrees, decides when two edges at a vertex
	// continue the same through-going trace. Default 10.
	CollinearityThreshold float64
	// AzimuthBinWidth, in degrees, sizes the rose-diagram buckets.
	// Default 10.
	AzimuthBinWidth float64
	// AngleBuffer, in degrees, is the half-width around 90 and 180 used by
	// the X/T/Y junction taxonomy. Default 15.
	AngleBuffer float64
}

func (o Options) withDefaults() Options {
	if o.CollinearityThreshold == 0 {
		o.CollinearityThreshold = 10
	}
	if o.AzimuthBinWidth == 0 {
		o.AzimuthBinWidth = 10
	}
	if o.AngleBuffer == 0 {
		o.AngleBuffer = 15
	}
	return o
}

// Input is one mosaic's frozen graph plus the optional sampling inputs.
type Input struct {
	Graph *network.Graph
	// Transect is an optional sampling line for spacing statistics.
	Transect []geometry.Point
	// RegionArea is the analyzed region's area for intersection density.
	// When 0, the bounding box of all vertices is used instead.
	RegionArea float64
}

// Summary holds the whole-mosaic aggregates.
type Summary struct {
	VertexCount int
	EdgeCount   int

	TotalTraceLength float64

	// Crossing statistics. A crossing is a vertex of degree >= 3.
	CrossingCount       int
	ConnectivityIndex   float64 // crossings / total vertices
	IntersectionDensity Stat    // crossings per unit area

	MeanSpacing   Stat
	MedianSpacing Stat

	// Junction statistics over crossing vertices, after the original
	// field convention: effective branch counts and type ratios.
	MeanBranches   Stat
	BranchesStdDev Stat
	RatioX         Stat
	RatioT         Stat
	RatioY         Stat
	RatioComplex   Stat
	Ratio180To90   Stat
	RegularRatio   Stat

	// AzimuthHistogram counts edges per orientation bucket.
	AzimuthHistogram []int

	DegenerateDropped  int
	DuplicatesResolved int
}

// Result is the metric engine's output for one mosaic.
type Result struct {
	Edges   []EdgeMetrics
	Nodes   []NodeMetrics
	Summary Summary
}

// Analyze computes every metric record for one mosaic. It is a pure
// function over the immutable graph, safe to call concurrently for
// different mosaics. A graph without edges fails with ErrDegenerateGraph.
func Analyze(in Input, opts Options) (*Result, error) {
	g := in.Graph
	if g == nil || g.EdgeCount() == 0 {
		return nil, ErrDegenerateGraph
	}
	opts = opts.withDefaults()

	edges := computeEdgeMetrics(g, opts.AzimuthBinWidth)
	nodes := computeNodeMetrics(g, opts.CollinearityThreshold, opts.AngleBuffer)

	s := Summary{
		VertexCount:        g.VertexCount(),
		EdgeCount:          g.EdgeCount(),
		AzimuthHistogram:   make([]int, azimuthBins(opts.AzimuthBinWidth)),
		DegenerateDropped:  g.DegenerateDropped(),
		DuplicatesResolved: g.DuplicatesResolved(),
	}

	for _, e := range edges {
		s.TotalTraceLength += e.Length
		s.AzimuthHistogram[e.AzimuthBin]++
	}

	summarizeCrossings(&s, nodes, opts.AngleBuffer)

	s.ConnectivityIndex = float64(s.CrossingCount) / float64(s.VertexCount)
	s.IntersectionDensity = intersectionDensity(g, s.CrossingCount, in.RegionArea)
	s.MeanSpacing, s.MedianSpacing = transectSpacing(g, in.Transect)

	return &Result{Edges: edges, Nodes: nodes, Summary: s}, nil
}

// summarizeCrossings fills the junction statistics from the crossing nodes.
// Mosaics without crossings leave them all uncomputed.
func summarizeCrossings(s *Summary, nodes []NodeMetrics, buffer float64) {
	var branches []float64
	var near180, near90, regular int
	byClass := make(map[NodeClass]int)

	for _, n := range nodes {
		if !n.Crossing {
			continue
		}
		s.CrossingCount++
		byClass[n.Class]++
		branches = append(branches, float64(n.Branches))
		if n.Regular {
			regular++
		}
		for _, a := range n.Angles {
			if within(a, 180, buffer) {
				near180++
			}
			if within(a, 90, buffer) {
				near90++
			}
		}
	}

	if s.CrossingCount == 0 {
		s.MeanBranches = NotComputed
		s.BranchesStdDev = NotComputed
		s.RatioX, s.RatioT, s.RatioY, s.RatioComplex = NotComputed, NotComputed, NotComputed, NotComputed
		s.Ratio180To90 = NotComputed
		s.RegularRatio = NotComputed
		return
	}

	total := float64(s.CrossingCount)
	s.MeanBranches = Computed(Mean(branches))
	if len(branches) >= 2 {
		s.BranchesStdDev = Computed(StdDev(branches))
	} else {
		s.BranchesStdDev = NotComputed
	}
	s.RatioX = Computed(float64(byClass[ClassX]) / total)
	s.RatioT = Computed(float64(byClass[ClassT]) / total)
	s.RatioY = Computed(float64(byClass[ClassY]) / total)
	s.RatioComplex = Computed(float64(byClass[ClassComplex]) / total)
	s.RegularRatio = Computed(float64(regular) / total)
	if near90 > 0 {
		s.Ratio180To90 = Computed(float64(near180) / float64(near90))
	} else {
		s.Ratio180To90 = NotComputed
	}
}

// intersectionDensity divides crossings by the region area, falling back to
// the vertex bounding box. A zero area (all vertices collinear) leaves the
// density uncomputed.
func intersectionDensity(g *network.Graph, crossings int, regionArea float64) Stat {
	area := regionArea
	if area <= 0 {
		area = boundingBoxArea(g)
	}
	if area <= 0 {
		return NotComputed
	}
	return Computed(float64(crossings) / area)
}

func boundingBoxArea(g *network.Graph) float64 {
	verts := g.Vertices()
	if len(verts) == 0 {
		return 0
	}
	minX, maxX := verts[0].X, verts[0].X
	minY, maxY := verts[0].Y, verts[0].Y
	for _, v := range verts[1:] {
		if v.X < minX {
			minX = v.X
		}
		if v.X > maxX {
			maxX = v.X
		}
		if v.Y < minY {
			minY = v.Y
		}
		if v.Y > maxY {
			maxY = v.Y
		}
	}
	return (maxX - minX) * (maxY - minY)
}
