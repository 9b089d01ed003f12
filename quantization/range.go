package quantization

import (
	"fmt"
	"math"
	"sync"

	"github.com/hupe1980/vecq/model"
)

// DefaultMinSamples is the minimum number of samples RangeStrategy trains on.
const DefaultMinSamples = 1

// RangeStrategy is a stateful scalar quantizer that learns its range from
// training samples.
//
// SubByte codes are spread over the learned [min, max]; FullByte codes are
// computed after mapping the learned range onto [0, 1]. HalfPrecision does not
// depend on training state.
type RangeStrategy struct {
	mu         sync.RWMutex
	min        float32
	max        float32
	minSamples int
	trained    bool
}

// RangeOption configures a RangeStrategy.
type RangeOption func(*RangeStrategy)

// WithMinSamples sets the minimum number of samples accepted by Train.
func WithMinSamples(n int) RangeOption {
	return func(r *RangeStrategy) {
		r.minSamples = n
	}
}

// NewRangeStrategy creates an untrained range strategy.
func NewRangeStrategy(opts ...RangeOption) *RangeStrategy {
	r := &RangeStrategy{minSamples: DefaultMinSamples}
	for _, opt := range opts {
		opt(r)
	}
	if r.minSamples < 1 {
		r.minSamples = 1
	}
	return r
}

// Ensure RangeStrategy implements Strategy.
var _ Strategy = (*RangeStrategy)(nil)

// Train calibrates the quantizer by finding the min/max values across all samples.
// On failure the previous training state is kept.
func (r *RangeStrategy) Train(samples [][]float32) error {
	if len(samples) < r.minSamples {
		return model.NewTrainingError("train", fmt.Sprintf("got %d samples, need %d", len(samples), r.minSamples), ErrInsufficientSamples)
	}

	dim := len(samples[0])
	lo := float32(math.MaxFloat32)
	hi := float32(-math.MaxFloat32)
	for i, vec := range samples {
		if len(vec) != dim {
			return model.NewTrainingError("train", fmt.Sprintf("sample %d has dimension %d, want %d", i, len(vec), dim), nil)
		}
		if err := validateVector("train", vec); err != nil {
			return model.NewTrainingError("train", fmt.Sprintf("sample %d rejected", i), err)
		}
		for _, x := range vec {
			lo = min(lo, x)
			hi = max(hi, x)
		}
	}

	// Handle edge case where all values are the same
	if lo == hi {
		lo, hi = widen(lo)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.min, r.max = lo, hi
	r.trained = true
	return nil
}

// widen turns the constant value x into a non-empty finite range starting at x.
// Beyond 2^24 adding 1 is lost to float32 rounding, so the next representable
// value is used instead. At MaxFloat32 the range extends downwards.
func widen(x float32) (lo, hi float32) {
	if hi = x + 1; hi != x {
		return x, hi
	}
	if hi = math.Nextafter32(x, math.MaxFloat32); hi != x {
		return x, hi
	}
	return math.Nextafter32(x, -math.MaxFloat32), x
}

// Quantize implements Strategy.
func (r *RangeStrategy) Quantize(v []float32, target Target) (Representation, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if err := validateVector("quantize", v); err != nil {
		return nil, err
	}

	if target.Kind == KindHalfPrecision {
		return encodeHalfPrecision(v), nil
	}

	r.mu.RLock()
	lo, hi, trained := r.min, r.max, r.trained
	r.mu.RUnlock()
	if !trained {
		return nil, ErrNotTrained
	}

	if target.Kind == KindFullByte {
		return encodeFullByte(v, lo, hi), nil
	}
	codec, err := NewCodec(target.Resolution, lo, hi)
	if err != nil {
		return nil, err
	}
	return encodeSubByte(codec, v)
}

// Range returns the learned range and whether the strategy has been trained.
func (r *RangeStrategy) Range() (minVal, maxVal float32, trained bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.min, r.max, r.trained
}
