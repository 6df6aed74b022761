package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/dkelsey/fracmosaic/pkg/geometry"
	"github.com/dkelsey/fracmosaic/pkg/network"
)

func buildGraph(t *testing.T, segments []geometry.Segment) *network.Graph {
	t.Helper()
	g, err := network.Build(segments, network.Options{Tolerance: 0.01})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}

func seg(ax, ay, bx, by float64) geometry.Segment {
	return geometry.Segment{A: geometry.Point{X: ax, Y: ay}, B: geometry.Point{X: bx, Y: by}}
}

// TestAnalyze_SingleIsolatedSegment tests the canonical smallest mosaic
func TestAnalyze_SingleIsolatedSegment(t *testing.T) {
	g := buildGraph(t, []geometry.Segment{seg(0, 0, 5, 0)})

	res, err := Analyze(Input{Graph: g}, Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if res.Summary.VertexCount != 2 || res.Summary.EdgeCount != 1 {
		t.Fatalf("expected 2 vertices / 1 edge, got %d / %d",
			res.Summary.VertexCount, res.Summary.EdgeCount)
	}
	if res.Edges[0].Length != 5 {
		t.Errorf("edge length = %v, want 5", res.Edges[0].Length)
	}
	for _, n := range res.Nodes {
		if n.Class != ClassIsolated {
			t.Errorf("vertex %d classified %q, want isolated endpoint", n.VertexID, n.Class)
		}
	}
	if res.Summary.CrossingCount != 0 {
		t.Errorf("no crossings expected, got %d", res.Summary.CrossingCount)
	}
	if res.Summary.MeanSpacing.Computed {
		t.Error("spacing without a transect must stay uncomputed")
	}
	if res.Summary.IntersectionDensity.Computed {
		t.Error("density of a single segment (zero-area bounding box) must stay uncomputed")
	}
}

// TestAnalyze_DegenerateGraph tests the zero-edge failure
func TestAnalyze_DegenerateGraph(t *testing.T) {
	g := buildGraph(t, []geometry.Segment{seg(0, 0, 0.001, 0)})
	if g.EdgeCount() != 0 {
		t.Fatalf("setup: expected the segment to collapse, got %d edges", g.EdgeCount())
	}

	_, err := Analyze(Input{Graph: g}, Options{})
	if !errors.Is(err, ErrDegenerateGraph) {
		t.Fatalf("expected ErrDegenerateGraph, got %v", err)
	}
}

// TestAnalyze_CrossJunction tests X classification and crossing aggregates
func TestAnalyze_CrossJunction(t *testing.T) {
	g := buildGraph(t, []geometry.Segment{
		seg(0, 0, 1, 0),
		seg(0, 0, -1, 0),
		seg(0, 0, 0, 1),
		seg(0, 0, 0, -1),
	})

	res, err := Analyze(Input{Graph: g}, Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	center := res.Nodes[0]
	if center.Class != ClassX {
		t.Errorf("center classified %q, want X", center.Class)
	}
	if !center.Regular || center.Branches != 4 {
		t.Errorf("X junction should be regular with 4 branches, got regular=%v branches=%d",
			center.Regular, center.Branches)
	}
	if res.Summary.CrossingCount != 1 {
		t.Errorf("expected 1 crossing, got %d", res.Summary.CrossingCount)
	}
	if got, want := res.Summary.ConnectivityIndex, 0.2; math.Abs(got-want) > 1e-12 {
		t.Errorf("connectivity index = %v, want %v", got, want)
	}
	// Bounding box is 2x2, one crossing.
	if !res.Summary.IntersectionDensity.Computed {
		t.Fatal("density should be computed")
	}
	if got := res.Summary.IntersectionDensity.Value; math.Abs(got-0.25) > 1e-12 {
		t.Errorf("intersection density = %v, want 0.25", got)
	}
}

// TestAnalyze_TJunction tests T classification and irregularity
func TestAnalyze_TJunction(t *testing.T) {
	g := buildGraph(t, []geometry.Segment{
		seg(-1, 0, 0, 0),
		seg(0, 0, 1, 0),
		seg(0, 0, 0, 1),
	})

	res, err := Analyze(Input{Graph: g}, Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	center := res.Nodes[1] // (-1,0) is vertex 0, (0,0) is vertex 1
	if center.Degree != 3 {
		t.Fatalf("center degree = %d, want 3", center.Degree)
	}
	if center.Class != ClassT {
		t.Errorf("center classified %q, want T", center.Class)
	}
	if center.Regular {
		t.Error("T junctions carry a through-going trace and are irregular")
	}
	if center.Branches != 2 {
		t.Errorf("effective branches = %d, want 2", center.Branches)
	}
	if !res.Summary.RatioT.Computed || res.Summary.RatioT.Value != 1 {
		t.Errorf("RatioT = %+v, want computed 1", res.Summary.RatioT)
	}
}

// TestAnalyze_YJunction tests regular and irregular Y junctions
func TestAnalyze_YJunction(t *testing.T) {
	// Three arms at 0, 120, 240 degrees: a regular Y.
	g := buildGraph(t, []geometry.Segment{
		seg(0, 0, 1, 0),
		seg(0, 0, math.Cos(2*math.Pi/3), math.Sin(2*math.Pi/3)),
		seg(0, 0, math.Cos(4*math.Pi/3), math.Sin(4*math.Pi/3)),
	})

	res, err := Analyze(Input{Graph: g}, Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	center := res.Nodes[0]
	if center.Class != ClassY {
		t.Errorf("center classified %q, want Y", center.Class)
	}
	if !center.Regular || center.Branches != 3 {
		t.Errorf("symmetric Y should be regular with 3 branches, got regular=%v branches=%d",
			center.Regular, center.Branches)
	}

	// Arms at 0, 60, 180 degrees: one through-going trace, an irregular Y.
	g2 := buildGraph(t, []geometry.Segment{
		seg(0, 0, 1, 0),
		seg(0, 0, math.Cos(math.Pi/3), math.Sin(math.Pi/3)),
		seg(0, 0, -1, 0),
	})

	res2, err := Analyze(Input{Graph: g2}, Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	center2 := res2.Nodes[0]
	if center2.Class != ClassY {
		t.Errorf("center classified %q, want Y", center2.Class)
	}
	if center2.Regular {
		t.Error("Y with a near-180 angle should be irregular")
	}
	if center2.Branches != 2 {
		t.Errorf("effective branches = %d, want 2", center2.Branches)
	}
}

// TestAnalyze_ContinuationAndAbutment tests the degree-2 split
func TestAnalyze_ContinuationAndAbutment(t *testing.T) {
	// Nearly straight: the middle vertex continues one trace.
	g := buildGraph(t, []geometry.Segment{
		seg(-1, 0, 0, 0),
		seg(0, 0, 1, 0.05),
	})

	res, err := Analyze(Input{Graph: g}, Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	middle := res.Nodes[1]
	if middle.Class != ClassContinuation {
		t.Errorf("near-collinear degree-2 vertex classified %q, want continuation", middle.Class)
	}
	if middle.Branches != 1 {
		t.Errorf("continuation branches = %d, want 1", middle.Branches)
	}

	// A right-angle elbow abuts.
	g2 := buildGraph(t, []geometry.Segment{
		seg(-1, 0, 0, 0),
		seg(0, 0, 0, 1),
	})
	res2, err := Analyze(Input{Graph: g2}, Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if got := res2.Nodes[1].Class; got != ClassAbutting {
		t.Errorf("right-angle degree-2 vertex classified %q, want abutting", got)
	}
}

// TestAnalyze_TransectSpacing tests spacing stats along a sampling line
func TestAnalyze_TransectSpacing(t *testing.T) {
	// Vertical fractures at x = 1, 2, 3, 4.
	var segments []geometry.Segment
	for x := 1.0; x <= 4; x++ {
		segments = append(segments, seg(x, -1, x, 1))
	}
	g := buildGraph(t, segments)

	transect := []geometry.Point{{X: 0, Y: 0}, {X: 5, Y: 0}}
	res, err := Analyze(Input{Graph: g, Transect: transect}, Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if !res.Summary.MeanSpacing.Computed || !res.Summary.MedianSpacing.Computed {
		t.Fatal("spacing should be computed with 4 crossings")
	}
	if got := res.Summary.MeanSpacing.Value; math.Abs(got-1) > 1e-9 {
		t.Errorf("mean spacing = %v, want 1", got)
	}
	if got := res.Summary.MedianSpacing.Value; math.Abs(got-1) > 1e-9 {
		t.Errorf("median spacing = %v, want 1", got)
	}
}

// TestAnalyze_TransectTooFewCrossings tests the under-sampled transect
func TestAnalyze_TransectTooFewCrossings(t *testing.T) {
	g := buildGraph(t, []geometry.Segment{seg(1, -1, 1, 1)})

	transect := []geometry.Point{{X: 0, Y: 0}, {X: 5, Y: 0}}
	res, err := Analyze(Input{Graph: g, Transect: transect}, Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if res.Summary.MeanSpacing.Computed {
		t.Error("one crossing cannot yield a spacing; must stay uncomputed")
	}
}

// TestAnalyze_RegionAreaOverride tests the caller-supplied area
func TestAnalyze_RegionAreaOverride(t *testing.T) {
	g := buildGraph(t, []geometry.Segment{
		seg(0, 0, 1, 0),
		seg(0, 0, -1, 0),
		seg(0, 0, 0, 1),
		seg(0, 0, 0, -1),
	})

	res, err := Analyze(Input{Graph: g, RegionArea: 10}, Options{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if got := res.Summary.IntersectionDensity.Value; math.Abs(got-0.1) > 1e-12 {
		t.Errorf("density with region area 10 = %v, want 0.1", got)
	}
}

// TestAnalyze_AzimuthHistogram tests rose-diagram bucketing
func TestAnalyze_AzimuthHistogram(t *testing.T) {
	g := buildGraph(t, []geometry.Segment{
		seg(0, 0, 1, 0),  // 0 degrees -> bin 0
		seg(0, 5, 0, 6),  // 90 degrees -> bin 9
		seg(5, 0, 6, 1),  // 45 degrees -> bin 4
		seg(9, 9, 10, 9), // 0 degrees -> bin 0
	})

	res, err := Analyze(Input{Graph: g}, Options{AzimuthBinWidth: 10})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	h := res.Summary.AzimuthHistogram
	if len(h) != 18 {
		t.Fatalf("expected 18 bins for width 10, got %d", len(h))
	}
	if h[0] != 2 || h[4] != 1 || h[9] != 1 {
		t.Errorf("unexpected histogram: %v", h)
	}
	total := 0
	for _, c := range h {
		total += c
	}
	if total != res.Summary.EdgeCount {
		t.Errorf("histogram total %d != edge count %d", total, res.Summary.EdgeCount)
	}
}
