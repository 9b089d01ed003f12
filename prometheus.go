package vecq

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector is a MetricsCollector that exports operation counts,
// error counts and latencies to Prometheus.
//
// Every operation is counted in vecq_operations_total{op,status} and observed
// in vecq_operation_duration_seconds{op}. Batch sizes are counted in
// vecq_batch_vectors_total.
type PrometheusCollector struct {
	operations   *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	batchVectors prometheus.Counter
}

// NewPrometheusCollector creates a collector and registers it with reg.
// If reg is nil, prometheus.DefaultRegisterer is used.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &PrometheusCollector{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vecq_operations_total",
				Help: "Total number of vecq operations",
			},
			[]string{"op", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vecq_operation_duration_seconds",
				Help:    "vecq operation latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		batchVectors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "vecq_batch_vectors_total",
				Help: "Total number of vectors submitted through AddBatch",
			},
		),
	}

	for _, col := range []prometheus.Collector{c.operations, c.duration, c.batchVectors} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *PrometheusCollector) record(op string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.operations.WithLabelValues(op, status).Inc()
	c.duration.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordAdd implements MetricsCollector.
func (c *PrometheusCollector) RecordAdd(duration time.Duration, err error) {
	c.record("add", duration, err)
}

// RecordBatchAdd implements MetricsCollector.
func (c *PrometheusCollector) RecordBatchAdd(count int, duration time.Duration, err error) {
	c.batchVectors.Add(float64(count))
	c.record("batch_add", duration, err)
}

// RecordSearch implements MetricsCollector.
func (c *PrometheusCollector) RecordSearch(_ int, duration time.Duration, err error) {
	c.record("search", duration, err)
}

// RecordQuantize implements MetricsCollector.
func (c *PrometheusCollector) RecordQuantize(duration time.Duration, err error) {
	c.record("quantize", duration, err)
}

// RecordTrain implements MetricsCollector.
func (c *PrometheusCollector) RecordTrain(duration time.Duration, err error) {
	c.record("train", duration, err)
}

// RecordSimilarity implements MetricsCollector.
func (c *PrometheusCollector) RecordSimilarity(duration time.Duration, err error) {
	c.record("similarity", duration, err)
}
