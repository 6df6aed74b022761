package analysis

import (
	"math"

	"github.com/dkelsey/fracmosaic/pkg/network"
)

// EdgeMetrics is the per-trace metric record: one row per canonical edge.
type EdgeMetrics struct {
	EdgeID       int
	Length       float64
	Orientation  float64 // axial, [0, 180)
	AzimuthBin   int
	Multiplicity int
}

// azimuthBins returns how many buckets a bin width cuts [0, 180) into. The
// last bucket is narrower when the width does not divide 180 evenly.
func azimuthBins(width float64) int {
	return int(math.Ceil(180 / width))
}

// azimuthBin buckets an axial orientation. Orientations sit in [0, 180), so
// the index is always valid for the count azimuthBins returns.
func azimuthBin(orientation, width float64) int {
	bin := int(orientation / width)
	if max := azimuthBins(width) - 1; bin > max {
		bin = max
	}
	return bin
}

func computeEdgeMetrics(g *network.Graph, binWidth float64) []EdgeMetrics {
	out := make([]EdgeMetrics, 0, g.EdgeCount())
	for _, e := range g.Edges() {
		s := g.Segment(e.ID)
		o := s.Orientation()
		out = append(out, EdgeMetrics{
			EdgeID:       e.ID,
			Length:       s.Length(),
			Orientation:  o,
			AzimuthBin:   azimuthBin(o, binWidth),
			Multiplicity: e.Multiplicity,
		})
	}
	return out
}
