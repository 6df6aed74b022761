package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkelsey/fracmosaic/pkg/analysis"
	"github.com/dkelsey/fracmosaic/pkg/config"
	"github.com/dkelsey/fracmosaic/pkg/geometry"
	"github.com/dkelsey/fracmosaic/pkg/network"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Tolerance = 0.01
	return cfg
}

func line(coords ...geometry.Point) geometry.LineString {
	return geometry.LineString{Coords: coords}
}

func pt(x, y float64) geometry.Point {
	return geometry.Point{X: x, Y: y}
}

// crossMosaic returns a pre-noded collection with one X crossing at the
// origin: both traces pass through the shared coordinate.
func crossMosaic() geometry.Collection {
	return geometry.Collection{Lines: []geometry.LineString{
		line(pt(-1, 0), pt(0, 0), pt(1, 0)),
		line(pt(0, -1), pt(0, 0), pt(0, 1)),
	}}
}

// TestNewRunner_InvalidConfig tests config validation at construction
func TestNewRunner_InvalidConfig(t *testing.T) {
	_, err := NewRunner(config.Default(), nil, nil) // tolerance unset
	require.Error(t, err, "missing tolerance must be rejected")
}

// TestRun_SingleMosaic tests the happy path end to end
func TestRun_SingleMosaic(t *testing.T) {
	runner, err := NewRunner(testConfig(), nil, nil)
	require.NoError(t, err)

	res, err := runner.Run(Request{MosaicID: "cross", Collection: crossMosaic()})
	require.NoError(t, err)

	assert.Equal(t, "cross", res.MosaicID)
	assert.Equal(t, 5, res.Analysis.Summary.VertexCount, "two crossing lines split into 5 vertices")
	assert.Equal(t, 4, res.Analysis.Summary.EdgeCount, "two crossing lines split into 4 edges")
	assert.Empty(t, res.Skipped)
}

// TestRun_SkipsInvalidFeatures tests per-feature error collection
func TestRun_SkipsInvalidFeatures(t *testing.T) {
	runner, err := NewRunner(testConfig(), nil, nil)
	require.NoError(t, err)

	coll := crossMosaic()
	coll.Lines = append(coll.Lines, line()) // empty feature

	res, err := runner.Run(Request{MosaicID: "m", Collection: coll})
	require.NoError(t, err, "invalid features are skipped, not fatal")
	require.Len(t, res.Skipped, 1)
	assert.ErrorIs(t, res.Skipped[0], geometry.ErrInvalidGeometry)
}

// TestRun_BuildFailureStage tests stage tagging of snap conflicts
func TestRun_BuildFailureStage(t *testing.T) {
	cfg := testConfig()
	cfg.Tolerance = 1

	runner, err := NewRunner(cfg, nil, nil)
	require.NoError(t, err)

	coll := geometry.Collection{Lines: []geometry.LineString{
		line(pt(0, 0), pt(5, 5)),
		line(pt(1.5, 0), pt(5, -5)),
		line(pt(0.75, 0), pt(3, 3)), // equidistant between two vertices
	}}

	_, err = runner.Run(Request{MosaicID: "conflict", Collection: coll})
	require.Error(t, err)
	assert.ErrorIs(t, err, network.ErrToleranceConflict)

	var stage *StageError
	require.True(t, errors.As(err, &stage))
	assert.Equal(t, StageBuild, stage.Stage)
}

// TestProcessBatch_IsolatesFailures tests that one bad mosaic never hides
// the others
func TestProcessBatch_IsolatesFailures(t *testing.T) {
	runner, err := NewRunner(testConfig(), nil, nil)
	require.NoError(t, err)

	reqs := []Request{
		{MosaicID: "b-cross", Collection: crossMosaic()},
		{MosaicID: "a-simple", Collection: geometry.Collection{Lines: []geometry.LineString{
			line(pt(0, 0), pt(10, 0)),
		}}},
		{MosaicID: "c-empty", Collection: geometry.Collection{}}, // no edges
	}

	batch := runner.ProcessBatch(reqs)

	require.Len(t, batch.Results, 2, "the two valid mosaics must survive")
	require.Len(t, batch.Failures, 1)

	assert.Equal(t, "a-simple", batch.Results[0].MosaicID, "results sort by mosaic ID")
	assert.Equal(t, "b-cross", batch.Results[1].MosaicID)

	failure := batch.Failures[0]
	assert.Equal(t, "c-empty", failure.MosaicID)
	assert.Equal(t, StageAnalyze, failure.Stage)
	assert.ErrorIs(t, failure.Err, analysis.ErrDegenerateGraph)

	assert.Equal(t, 2, batch.Tables.Mosaics.RowCount())
	assert.Equal(t, 1, batch.Tables.Failures.RowCount())
	assert.NotEmpty(t, batch.RunID)
}

// TestProcessBatch_AssignsIDs tests UUID tagging of anonymous requests
func TestProcessBatch_AssignsIDs(t *testing.T) {
	runner, err := NewRunner(testConfig(), nil, nil)
	require.NoError(t, err)

	batch := runner.ProcessBatch([]Request{{Collection: crossMosaic()}})
	require.Len(t, batch.Results, 1)
	assert.NotEmpty(t, batch.Results[0].MosaicID, "anonymous mosaics get generated IDs")
}

// TestProcessBatch_Parallel tests a wider batch across several workers
func TestProcessBatch_Parallel(t *testing.T) {
	cfg := testConfig()
	cfg.Workers = 4

	runner, err := NewRunner(cfg, nil, nil)
	require.NoError(t, err)

	var reqs []Request
	for i := 0; i < 20; i++ {
		reqs = append(reqs, Request{
			MosaicID:   string(rune('a'+i%26)) + "-mosaic",
			Collection: crossMosaic(),
		})
	}

	batch := runner.ProcessBatch(reqs)
	assert.Len(t, batch.Results, 20)
	assert.Empty(t, batch.Failures)
	assert.Equal(t, 20, batch.Tables.Mosaics.RowCount())

	families, err := runner.Metrics().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families, "pipeline runs must surface telemetry")
}
