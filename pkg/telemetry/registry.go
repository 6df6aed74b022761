// Package telemetry instruments the analysis pipeline with Prometheus
// metrics. The library never serves them; callers pull gathered families
// and expose them however they like.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Registry holds all metrics for the analysis core
type Registry struct {
	// Batch metrics
	MosaicsTotal     *prometheus.CounterVec
	PipelineDuration *prometheus.HistogramVec

	// Ingestion metrics
	SegmentsIngested prometheus.Counter
	FeaturesSkipped  prometheus.Counter

	// Network metrics
	GraphVertices      prometheus.Histogram
	GraphEdges         prometheus.Histogram
	DegenerateDropped  prometheus.Counter
	DuplicatesResolved prometheus.Counter

	registry *prometheus.Registry
}

// NewRegistry creates a registry with all pipeline metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.MosaicsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "fracmosaic_mosaics_total",
			Help: "Mosaics processed, by outcome",
		},
		[]string{"status"},
	)

	r.PipelineDuration = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fracmosaic_pipeline_stage_duration_seconds",
			Help:    "Per-stage pipeline duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"stage"},
	)

	r.SegmentsIngested = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "fracmosaic_segments_ingested_total",
			Help: "Raw segments extracted from input features",
		},
	)

	r.FeaturesSkipped = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "fracmosaic_features_skipped_total",
			Help: "Input features rejected during ingestion",
		},
	)

	r.GraphVertices = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fracmosaic_graph_vertices",
			Help:    "Vertices per built graph",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	r.GraphEdges = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fracmosaic_graph_edges",
			Help:    "Edges per built graph",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	r.DegenerateDropped = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "fracmosaic_degenerate_segments_total",
			Help: "Segments dropped because both endpoints snapped together",
		},
	)

	r.DuplicatesResolved = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "fracmosaic_duplicate_edges_total",
			Help: "Coincident edges folded by the duplicate policy",
		},
	)

	return r
}

// RecordMosaic records one finished mosaic pipeline with its outcome.
func (r *Registry) RecordMosaic(status string, duration time.Duration) {
	r.MosaicsTotal.WithLabelValues(status).Inc()
	r.PipelineDuration.WithLabelValues("total").Observe(duration.Seconds())
}

// RecordStage records one pipeline stage's duration.
func (r *Registry) RecordStage(stage string, duration time.Duration) {
	r.PipelineDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordIngestion records segment extraction results for one mosaic.
func (r *Registry) RecordIngestion(segments, skipped int) {
	r.SegmentsIngested.Add(float64(segments))
	r.FeaturesSkipped.Add(float64(skipped))
}

// RecordGraph records the shape of one built graph.
func (r *Registry) RecordGraph(vertices, edges, degenerate, duplicates int) {
	r.GraphVertices.Observe(float64(vertices))
	r.GraphEdges.Observe(float64(edges))
	r.DegenerateDropped.Add(float64(degenerate))
	r.DuplicatesResolved.Add(float64(duplicates))
}

// Gather returns the current metric families for export.
func (r *Registry) Gather() ([]*dto.MetricFamily, error) {
	return r.registry.Gather()
}

// Gatherer exposes the underlying registry for callers wiring their own
// HTTP handler.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
