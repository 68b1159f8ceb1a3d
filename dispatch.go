package xcdecode

import (
	"context"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"github.com/timandy/routine"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result is one slot of a dispatched batch: either a decoded field map, or
// an error sentinel if that change failed to decode. A failed slot never
// cancels its siblings, per spec.md §4.5.
type Result struct {
	Fields FieldMap
	Err    error
}

// Dispatcher schedules per-change decode jobs across a worker pool,
// preserving input order in the returned results and synchronizing access
// to the shared Schema's class index.
type Dispatcher struct {
	schema  *Schema
	workers int
	logger  *zap.Logger
}

// NewDispatcher builds a Dispatcher over schema with the given worker count.
// A non-positive count falls back to runtime.GOMAXPROCS(0), per spec.md
// §4.5 ("implementation picks a small default, e.g. hardware parallelism").
// A nil logger disables logging.
func NewDispatcher(s *Schema, workers int, logger *zap.Logger) *Dispatcher {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{schema: s, workers: workers, logger: logger}
}

// DecodeBatch decodes classNames[i]/payloads[i] pairs concurrently and
// returns results in input order, regardless of completion order. The
// schema's class index is the only state shared across jobs; everything
// else is job-local.
func (d *Dispatcher) DecodeBatch(ctx context.Context, classNames []string, payloads [][]byte) ([]Result, error) {
	if len(classNames) != len(payloads) {
		return nil, fmt.Errorf("xcdecode: %d class names but %d payloads", len(classNames), len(payloads))
	}

	batchID := uuid.New()
	logger := d.logger.With(
		zap.String("batch_id", batchID.String()),
		zap.Int("size", len(classNames)),
	)

	results := make([]Result, len(classNames))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)

	for i := range classNames {
		g.Go(func() error {
			fm, err := d.schema.DecodeMessage(classNames[i], payloads[i])
			if err != nil {
				logger.Debug("change failed to decode",
					zap.Int("index", i),
					zap.String("class", classNames[i]),
					zap.Int64("goroutine", routine.Goid()),
					zap.Error(err),
				)
			}
			results[i] = Result{Fields: fm, Err: err}
			// Every job always succeeds from the errgroup's point of view:
			// a decode failure is reported in its own slot, not by
			// cancelling the batch.
			return nil
		})
	}
	_ = g.Wait()

	logger.Info("batch decoded")
	return results, nil
}
