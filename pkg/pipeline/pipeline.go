// Package pipeline runs the per-mosaic analysis pass (ingest, build,
// analyze) and fans batches of independent mosaics out on a worker pool.
package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dkelsey/fracmosaic/pkg/analysis"
	"github.com/dkelsey/fracmosaic/pkg/config"
	"github.com/dkelsey/fracmosaic/pkg/geometry"
	"github.com/dkelsey/fracmosaic/pkg/logging"
	"github.com/dkelsey/fracmosaic/pkg/network"
	"github.com/dkelsey/fracmosaic/pkg/telemetry"
)

// Pipeline stage names, as reported in failure summaries and telemetry.
const (
	StageIngest  = "ingest"
	StageBuild   = "build"
	StageAnalyze = "analyze"
)

// Request is one mosaic's input: raw geometries plus optional sampling
// inputs. MosaicID tags all output rows; when empty a UUID is assigned.
type Request struct {
	MosaicID   string
	Collection geometry.Collection
	// Transect is an optional sampling line for spacing statistics.
	Transect []geometry.Point
	// RegionArea optionally overrides the bounding-box area used for
	// intersection density.
	RegionArea float64
}

// Result is one successfully analyzed mosaic.
type Result struct {
	MosaicID string
	Analysis *analysis.Result
	// Skipped lists input features rejected during ingestion.
	Skipped []*geometry.FeatureError
	Elapsed time.Duration
}

// StageError tags a pipeline failure with the stage that produced it.
type StageError struct {
	Stage string
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error {
	return e.Err
}

// Runner executes mosaic pipelines with shared configuration, logging and
// telemetry. It holds no per-mosaic state and is safe for concurrent use.
type Runner struct {
	cfg     config.Config
	logger  logging.Logger
	metrics *telemetry.Registry
}

// NewRunner validates the configuration and returns a runner. A nil logger
// silences logging; a nil registry gets a private one (reachable through
// Metrics).
func NewRunner(cfg config.Config, logger logging.Logger, metrics *telemetry.Registry) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = telemetry.NewRegistry()
	}
	return &Runner{cfg: cfg, logger: logger, metrics: metrics}, nil
}

// Metrics returns the runner's telemetry registry.
func (r *Runner) Metrics() *telemetry.Registry { return r.metrics }

// Run executes the synchronous single-pass pipeline for one mosaic:
// ingest -> build -> analyze. Pure with respect to the request; failures
// carry the stage that produced them.
func (r *Runner) Run(req Request) (*Result, error) {
	started := time.Now()
	log := r.logger.With(logging.Mosaic(req.MosaicID))

	ingestStart := time.Now()
	segments, skipped := geometry.ExtractSegments(req.Collection)
	r.metrics.RecordStage(StageIngest, time.Since(ingestStart))
	r.metrics.RecordIngestion(len(segments), len(skipped))
	if len(skipped) > 0 {
		log.Warn("skipped invalid features", logging.Skipped(len(skipped)))
	}

	buildStart := time.Now()
	graph, err := network.Build(segments, network.Options{
		Tolerance:       r.cfg.Tolerance,
		DuplicatePolicy: r.cfg.DuplicatePolicy(),
	})
	if err != nil {
		return nil, &StageError{Stage: StageBuild, Err: err}
	}
	r.metrics.RecordStage(StageBuild, time.Since(buildStart))
	r.metrics.RecordGraph(graph.VertexCount(), graph.EdgeCount(),
		graph.DegenerateDropped(), graph.DuplicatesResolved())

	analyzeStart := time.Now()
	res, err := analysis.Analyze(
		analysis.Input{Graph: graph, Transect: req.Transect, RegionArea: req.RegionArea},
		analysis.Options{
			CollinearityThreshold: r.cfg.CollinearityThreshold,
			AzimuthBinWidth:       r.cfg.AzimuthBinWidth,
			AngleBuffer:           r.cfg.AngleBuffer,
		},
	)
	if err != nil {
		return nil, &StageError{Stage: StageAnalyze, Err: err}
	}
	r.metrics.RecordStage(StageAnalyze, time.Since(analyzeStart))

	elapsed := time.Since(started)
	log.Info("mosaic analyzed",
		logging.Segments(len(segments)),
		logging.Vertices(graph.VertexCount()),
		logging.Edges(graph.EdgeCount()),
		logging.Duration("elapsed", elapsed),
	)

	return &Result{
		MosaicID: req.MosaicID,
		Analysis: res,
		Skipped:  skipped,
		Elapsed:  elapsed,
	}, nil
}

// ensureID assigns generated identifiers to untagged requests.
func ensureID(reqs []Request) {
	for i := range reqs {
		if reqs[i].MosaicID == "" {
			reqs[i].MosaicID = uuid.NewString()
		}
	}
}
