package vecq

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordAdd is called after each sparse vector add.
	// duration is the total time taken, err is nil if successful.
	RecordAdd(duration time.Duration, err error)

	// RecordBatchAdd is called after each batch add.
	// count is the number of vectors submitted.
	RecordBatchAdd(count int, duration time.Duration, err error)

	// RecordSearch is called after each sparse search.
	// k is the requested result limit (0 for unlimited).
	RecordSearch(k int, duration time.Duration, err error)

	// RecordQuantize is called after each quantization.
	RecordQuantize(duration time.Duration, err error)

	// RecordTrain is called after each strategy training run.
	RecordTrain(duration time.Duration, err error)

	// RecordSimilarity is called after each representation similarity.
	RecordSimilarity(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAdd(time.Duration, error)           {}
func (NoopMetricsCollector) RecordBatchAdd(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordSearch(int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordQuantize(time.Duration, error)      {}
func (NoopMetricsCollector) RecordTrain(time.Duration, error)         {}
func (NoopMetricsCollector) RecordSimilarity(time.Duration, error)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AddCount             atomic.Int64
	AddErrors            atomic.Int64
	AddTotalNanos        atomic.Int64
	BatchAddCount        atomic.Int64
	BatchAddItems        atomic.Int64
	BatchAddErrors       atomic.Int64
	SearchCount          atomic.Int64
	SearchErrors         atomic.Int64
	SearchTotalNanos     atomic.Int64
	QuantizeCount        atomic.Int64
	QuantizeErrors       atomic.Int64
	QuantizeTotalNanos   atomic.Int64
	TrainCount           atomic.Int64
	TrainErrors          atomic.Int64
	SimilarityCount      atomic.Int64
	SimilarityErrors     atomic.Int64
	SimilarityTotalNanos atomic.Int64
}

// RecordAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdd(duration time.Duration, err error) {
	b.AddCount.Add(1)
	b.AddTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.AddErrors.Add(1)
	}
}

// RecordBatchAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatchAdd(count int, _ time.Duration, err error) {
	b.BatchAddCount.Add(1)
	b.BatchAddItems.Add(int64(count))
	if err != nil {
		b.BatchAddErrors.Add(1)
	}
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(_ int, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
	}
}

// RecordQuantize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuantize(duration time.Duration, err error) {
	b.QuantizeCount.Add(1)
	b.QuantizeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.QuantizeErrors.Add(1)
	}
}

// RecordTrain implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTrain(_ time.Duration, err error) {
	b.TrainCount.Add(1)
	if err != nil {
		b.TrainErrors.Add(1)
	}
}

// RecordSimilarity implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSimilarity(duration time.Duration, err error) {
	b.SimilarityCount.Add(1)
	b.SimilarityTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SimilarityErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AddCount:           b.AddCount.Load(),
		AddErrors:          b.AddErrors.Load(),
		AddAvgNanos:        avg(b.AddTotalNanos.Load(), b.AddCount.Load()),
		BatchAddCount:      b.BatchAddCount.Load(),
		BatchAddItems:      b.BatchAddItems.Load(),
		BatchAddErrors:     b.BatchAddErrors.Load(),
		SearchCount:        b.SearchCount.Load(),
		SearchErrors:       b.SearchErrors.Load(),
		SearchAvgNanos:     avg(b.SearchTotalNanos.Load(), b.SearchCount.Load()),
		QuantizeCount:      b.QuantizeCount.Load(),
		QuantizeErrors:     b.QuantizeErrors.Load(),
		QuantizeAvgNanos:   avg(b.QuantizeTotalNanos.Load(), b.QuantizeCount.Load()),
		TrainCount:         b.TrainCount.Load(),
		TrainErrors:        b.TrainErrors.Load(),
		SimilarityCount:    b.SimilarityCount.Load(),
		SimilarityErrors:   b.SimilarityErrors.Load(),
		SimilarityAvgNanos: avg(b.SimilarityTotalNanos.Load(), b.SimilarityCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AddCount           int64
	AddErrors          int64
	AddAvgNanos        int64
	BatchAddCount      int64
	BatchAddItems      int64
	BatchAddErrors     int64
	SearchCount        int64
	SearchErrors       int64
	SearchAvgNanos     int64
	QuantizeCount      int64
	QuantizeErrors     int64
	QuantizeAvgNanos   int64
	TrainCount         int64
	TrainErrors        int64
	SimilarityCount    int64
	SimilarityErrors   int64
	SimilarityAvgNanos int64
}
