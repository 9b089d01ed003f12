package vecq

import (
	"github.com/hupe1980/vecq/quantization"
	"github.com/hupe1980/vecq/similarity"
	"github.com/hupe1980/vecq/sparse"
)

type options struct {
	strategy          quantization.Strategy
	similarityOptions []similarity.Option
	indexOptions      []sparse.IndexOption
	searchWorkers     int
	batchConcurrency  int
	traceSimilarity   bool
	metricsCollector  MetricsCollector
	logger            *Logger
}

// Option configures an Engine.
type Option func(*options)

// WithStrategy sets the quantization strategy.
//
// If nil is passed, a ScalarStrategy with its default range is used.
func WithStrategy(s quantization.Strategy) Option {
	return func(o *options) {
		if s == nil {
			s = quantization.NewScalarStrategy()
		}
		o.strategy = s
	}
}

// WithSimilarityOptions forwards options to the similarity engine.
func WithSimilarityOptions(opts ...similarity.Option) Option {
	return func(o *options) {
		o.similarityOptions = append(o.similarityOptions, opts...)
	}
}

// WithIndexOptions forwards options to the sparse inverted index.
func WithIndexOptions(opts ...sparse.IndexOption) Option {
	return func(o *options) {
		o.indexOptions = append(o.indexOptions, opts...)
	}
}

// WithSearchWorkers sets the number of goroutines a search may use.
//
// Recommended values:
//   - 1: sequential scan (default)
//   - 0: GOMAXPROCS workers
//   - n > 1: query dimensions are split across n workers
func WithSearchWorkers(n int) Option {
	return func(o *options) {
		o.searchWorkers = n
	}
}

// WithBatchConcurrency sets the number of goroutines used by AddBatch.
// If n <= 0, GOMAXPROCS is used.
func WithBatchConcurrency(n int) Option {
	return func(o *options) {
		o.batchConcurrency = n
	}
}

// WithSimilarityTrace logs every per-plane similarity event at debug level.
func WithSimilarityTrace() Option {
	return func(o *options) {
		o.traceSimilarity = true
	}
}

// WithMetricsCollector sets the metrics collector.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger sets the logger.
//
// If nil is passed, NoopLogger is used.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}
