package vecq

import (
	"context"
	"slices"
	"time"

	"github.com/hupe1980/vecq/model"
	"github.com/hupe1980/vecq/quantization"
	"github.com/hupe1980/vecq/similarity"
	"github.com/hupe1980/vecq/sparse"
)

// Engine bundles a quantization strategy, a similarity engine and a sparse
// inverted index behind one instrumented API.
//
// Engine is safe for concurrent use. Train must not run concurrently with
// Quantize on strategies that document that restriction.
type Engine struct {
	strategy         quantization.Strategy
	similarity       *similarity.Engine
	index            *sparse.InvertedIndex
	searchWorkers    int
	batchConcurrency int
	metrics          MetricsCollector
	logger           *Logger
}

// New creates an Engine.
func New(optFns ...Option) *Engine {
	opts := options{
		strategy:         quantization.NewScalarStrategy(),
		searchWorkers:    1,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	simOpts := opts.similarityOptions
	if opts.traceSimilarity {
		logger := opts.logger
		simOpts = append(simOpts, similarity.WithTracer(func(ev similarity.TraceEvent) {
			logger.LogTrace(ev.Op, ev.Plane, ev.Count)
		}))
	}

	return &Engine{
		strategy:         opts.strategy,
		similarity:       similarity.New(simOpts...),
		index:            sparse.NewInvertedIndex(opts.indexOptions...),
		searchWorkers:    opts.searchWorkers,
		batchConcurrency: opts.batchConcurrency,
		metrics:          opts.metricsCollector,
		logger:           opts.logger,
	}
}

// Strategy returns the configured quantization strategy.
func (e *Engine) Strategy() quantization.Strategy { return e.strategy }

// SimilarityEngine returns the underlying similarity engine for bit-plane scores
// (Coalesce, WeightedCosine, ExactDot).
func (e *Engine) SimilarityEngine() *similarity.Engine { return e.similarity }

// Index returns the underlying sparse inverted index.
func (e *Engine) Index() *sparse.InvertedIndex { return e.index }

// Train calibrates the quantization strategy on samples.
func (e *Engine) Train(ctx context.Context, samples [][]float32) error {
	start := time.Now()
	err := translateError(e.strategy.Train(samples))
	e.metrics.RecordTrain(time.Since(start), err)
	e.logger.LogTrain(ctx, len(samples), err)
	return err
}

// Quantize encodes v into the representation selected by target.
func (e *Engine) Quantize(ctx context.Context, v []float32, target quantization.Target) (quantization.Representation, error) {
	start := time.Now()
	rep, err := e.strategy.Quantize(v, target)
	err = translateError(err)
	e.metrics.RecordQuantize(time.Since(start), err)
	e.logger.LogQuantize(ctx, target.Kind.String(), len(v), err)
	if err != nil {
		return nil, err
	}
	return rep, nil
}

// Similarity returns the cosine similarity of two representations of the
// same kind and shape.
func (e *Engine) Similarity(ctx context.Context, a, b quantization.Representation) (float64, error) {
	start := time.Now()
	score, err := e.cosine(a, b)
	e.metrics.RecordSimilarity(time.Since(start), err)

	kind, dim := "unknown", 0
	if a != nil {
		kind, dim = a.Kind().String(), a.Dimension()
	}
	e.logger.LogSimilarity(ctx, kind, dim, err)
	if err != nil {
		return 0, err
	}
	return score, nil
}

func (e *Engine) cosine(a, b quantization.Representation) (float64, error) {
	if a != nil && b != nil && a.Dimension() != b.Dimension() {
		return 0, &ErrDimensionMismatch{
			Expected: a.Dimension(),
			Actual:   b.Dimension(),
			cause:    model.NewValidationError("similarity", "dimension mismatch: %d vs %d", a.Dimension(), b.Dimension()),
		}
	}
	return e.similarity.Cosine(a, b)
}

// Add indexes a sparse vector. On error the index is unchanged.
func (e *Engine) Add(ctx context.Context, v sparse.Vector) error {
	start := time.Now()
	err := translateError(e.index.AddSparseVector(v))
	e.metrics.RecordAdd(time.Since(start), err)
	e.logger.LogAdd(ctx, uint32(v.ID), len(v.Entries), err)
	return err
}

// AddBatch indexes vectors concurrently. All vectors are validated before any
// is added.
func (e *Engine) AddBatch(ctx context.Context, vectors []sparse.Vector) error {
	start := time.Now()
	err := translateError(e.index.AddBatch(ctx, vectors, e.batchConcurrency))
	e.metrics.RecordBatchAdd(len(vectors), time.Since(start), err)
	e.logger.LogBatchAdd(ctx, len(vectors), err)
	return err
}

// Search returns the k best matches for query (k = 0 returns all candidates),
// ordered by descending score with ties broken by ascending ID.
func (e *Engine) Search(ctx context.Context, query sparse.Vector, k int, opts ...sparse.QueryOption) ([]sparse.Result, error) {
	start := time.Now()
	if k < 0 {
		err := ErrInvalidK
		e.metrics.RecordSearch(k, time.Since(start), err)
		e.logger.LogSearch(ctx, k, 0, err)
		return nil, err
	}

	q, err := sparse.NewQuery(query, append(slices.Clip(opts), sparse.WithK(k))...)
	if err != nil {
		e.metrics.RecordSearch(k, time.Since(start), err)
		e.logger.LogSearch(ctx, k, 0, err)
		return nil, err
	}

	var results []sparse.Result
	if e.searchWorkers == 1 {
		results = q.SequentialSearch(e.index)
	} else {
		results, err = q.ParallelSearch(ctx, e.index, e.searchWorkers)
	}
	err = translateError(err)
	e.metrics.RecordSearch(k, time.Since(start), err)
	e.logger.LogSearch(ctx, k, len(results), err)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Stats returns a point-in-time summary of the sparse index.
func (e *Engine) Stats() sparse.Stats {
	return e.index.Stats()
}
