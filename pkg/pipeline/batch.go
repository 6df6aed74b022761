package pipeline

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dkelsey/fracmosaic/pkg/logging"
	"github.com/dkelsey/fracmosaic/pkg/parallel"
	"github.com/dkelsey/fracmosaic/pkg/results"
)

// BatchResult is the merged outcome of one batch run. Successful mosaics
// and failures are both visible; neither hides the other.
type BatchResult struct {
	RunID    string
	Results  []results.MosaicResult
	Failures []results.Failure
	Tables   results.Tables
}

// ProcessBatch runs every mosaic's pipeline on a worker pool. Mosaics are
// independent, so tasks share nothing; each writes only its own slot and
// the merge happens after the pool drains. One failing mosaic never stops
// the others. Output ordering is deterministic: rows sort by mosaic ID.
func (r *Runner) ProcessBatch(reqs []Request) *BatchResult {
	batch := &BatchResult{RunID: uuid.NewString()}
	log := r.logger.With(logging.String("run_id", batch.RunID))

	work := make([]Request, len(reqs))
	copy(work, reqs)
	ensureID(work)

	outcomes := make([]struct {
		result  *Result
		failure *results.Failure
	}, len(work))

	pool := parallel.NewWorkerPool(r.cfg.Workers)
	for i := range work {
		pool.Submit(func() {
			started := time.Now()
			res, err := r.Run(work[i])
			if err != nil {
				r.metrics.RecordMosaic("failed", time.Since(started))
				outcomes[i].failure = &results.Failure{
					MosaicID: work[i].MosaicID,
					Stage:    failureStage(err),
					Err:      err,
				}
				return
			}
			r.metrics.RecordMosaic("ok", res.Elapsed)
			outcomes[i].result = res
		})
	}
	pool.Close()

	for _, o := range outcomes {
		if o.failure != nil {
			log.Error("mosaic abandoned",
				logging.Mosaic(o.failure.MosaicID),
				logging.Stage(o.failure.Stage),
				logging.Error(o.failure.Err),
			)
			batch.Failures = append(batch.Failures, *o.failure)
			continue
		}
		batch.Results = append(batch.Results, results.MosaicResult{
			MosaicID: o.result.MosaicID,
			Analysis: o.result.Analysis,
			Skipped:  o.result.Skipped,
		})
	}

	sort.Slice(batch.Results, func(i, j int) bool {
		return batch.Results[i].MosaicID < batch.Results[j].MosaicID
	})
	sort.Slice(batch.Failures, func(i, j int) bool {
		return batch.Failures[i].MosaicID < batch.Failures[j].MosaicID
	})

	batch.Tables = results.Assemble(batch.Results, batch.Failures)

	log.Info("batch finished",
		logging.Int("mosaics", len(work)),
		logging.Int("succeeded", len(batch.Results)),
		logging.Int("failed", len(batch.Failures)),
	)
	return batch
}

func failureStage(err error) string {
	if se, ok := err.(*StageError); ok {
		return se.Stage
	}
	return "unknown"
}
