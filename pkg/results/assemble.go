package results

import (
	"strconv"
	"strings"

	"github.com/dkelsey/fracmosaic/pkg/analysis"
	"github.com/dkelsey/fracmosaic/pkg/geometry"
)

// Fixed column schemas. Order and naming are part of the output contract.
var (
	// EdgeColumns is the per-trace table schema.
	EdgeColumns = []string{
		"mosaic_id", "edge_id", "length", "orientation_deg", "azimuth_bin", "multiplicity",
	}
	// NodeColumns is the per-vertex table schema.
	NodeColumns = []string{
		"mosaic_id", "vertex_id", "degree", "node_type", "crossing", "regular", "branches", "angles_deg",
	}
	// MosaicColumns is the one-aggregate-row-per-mosaic schema.
	MosaicColumns = []string{
		"mosaic_id", "vertices", "edges", "crossings",
		"total_trace_length", "connectivity_index", "intersection_density",
		"mean_spacing", "median_spacing",
		"mean_branches", "branches_stddev",
		"ratio_x", "ratio_t", "ratio_y", "ratio_other", "ratio_180_90", "regular_ratio",
		"degenerate_dropped", "duplicates_resolved", "skipped_features",
	}
	// FailureColumns is the batch error-summary schema.
	FailureColumns = []string{"mosaic_id", "stage", "error"}
)

// MosaicResult is one mosaic's computed metrics, tagged by source
// identifier, as handed to the aggregator.
type MosaicResult struct {
	MosaicID string
	Analysis *analysis.Result
	// Skipped lists input features rejected during ingestion.
	Skipped []*geometry.FeatureError
}

// Failure is one mosaic the pipeline had to abandon.
type Failure struct {
	MosaicID string
	Stage    string // "ingest", "build", or "analyze"
	Err      error
}

// Tables is the assembled output of a batch.
type Tables struct {
	Edges    *Table
	Nodes    *Table
	Mosaics  *Table
	Failures *Table
}

// Assemble builds the output tables from per-mosaic results and failures.
// It runs once, after all per-mosaic pipelines return; nothing mutates the
// tables concurrently. Every skipped feature and failed mosaic is visible:
// skipped counts appear on the mosaic rows and failures get their own rows.
func Assemble(results []MosaicResult, failures []Failure) Tables {
	t := Tables{
		Edges:    NewTable(EdgeColumns),
		Nodes:    NewTable(NodeColumns),
		Mosaics:  NewTable(MosaicColumns),
		Failures: NewTable(FailureColumns),
	}

	for _, r := range results {
		appendMosaic(&t, r)
	}
	for _, f := range failures {
		t.Failures.mustAppend([]Datum{Text(f.MosaicID), Text(f.Stage), Text(f.Err.Error())})
	}
	return t
}

func appendMosaic(t *Tables, r MosaicResult) {
	for _, e := range r.Analysis.Edges {
		t.Edges.mustAppend([]Datum{
			Text(r.MosaicID),
			Int(e.EdgeID),
			Number(e.Length),
			Number(e.Orientation),
			Int(e.AzimuthBin),
			Int(e.Multiplicity),
		})
	}

	for _, n := range r.Analysis.Nodes {
		t.Nodes.mustAppend([]Datum{
			Text(r.MosaicID),
			Int(n.VertexID),
			Int(n.Degree),
			Text(string(n.Class)),
			Bool(n.Crossing),
			Bool(n.Regular),
			Int(n.Branches),
			Text(formatAngles(n.Angles)),
		})
	}

	s := r.Analysis.Summary
	t.Mosaics.mustAppend([]Datum{
		Text(r.MosaicID),
		Int(s.VertexCount),
		Int(s.EdgeCount),
		Int(s.CrossingCount),
		Number(s.TotalTraceLength),
		Number(s.ConnectivityIndex),
		FromStat(s.IntersectionDensity),
		FromStat(s.MeanSpacing),
		FromStat(s.MedianSpacing),
		FromStat(s.MeanBranches),
		FromStat(s.BranchesStdDev),
		FromStat(s.RatioX),
		FromStat(s.RatioT),
		FromStat(s.RatioY),
		FromStat(s.RatioComplex),
		FromStat(s.Ratio180To90),
		FromStat(s.RegularRatio),
		Int(s.DegenerateDropped),
		Int(s.DuplicatesResolved),
		Int(len(r.Skipped)),
	})
}

func formatAngles(angles []float64) string {
	if len(angles) == 0 {
		return ""
	}
	parts := make([]string, len(angles))
	for i, a := range angles {
		parts[i] = strconv.FormatFloat(a, 'f', 2, 64)
	}
	return strings.Join(parts, ";")
}
