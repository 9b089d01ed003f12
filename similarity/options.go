package similarity

import "github.com/hupe1980/vecq/internal/popcount"

const (
	// DefaultAndWeight weights AND popcounts in WeightedCosine.
	DefaultAndWeight = 0.12
	// DefaultOrWeight weights OR popcounts in WeightedCosine.
	DefaultOrWeight = 0.12
)

// TraceEvent describes one plane of a bit-plane similarity computation.
type TraceEvent struct {
	// Op is the score being computed ("coalesce", "weighted_cosine", "exact_dot").
	Op string
	// Plane is the plane index (0 = most significant) or -1 for the final result.
	Plane int
	// Count is the popcount accumulated for the plane.
	Count uint64
}

// Tracer receives trace events. It is called synchronously and must be cheap.
type Tracer func(TraceEvent)

type options struct {
	mode      popcount.Mode
	andWeight float64
	orWeight  float64
	tracer    Tracer
}

// Option configures an Engine.
type Option func(*options)

// WithPopcount selects the population count implementation.
func WithPopcount(mode popcount.Mode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithWeights sets the AND and OR weights used by WeightedCosine.
func WithWeights(andWeight, orWeight float64) Option {
	return func(o *options) {
		o.andWeight = andWeight
		o.orWeight = orWeight
	}
}

// WithTracer installs a hook receiving per-plane trace events.
func WithTracer(t Tracer) Option {
	return func(o *options) {
		o.tracer = t
	}
}
