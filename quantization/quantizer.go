package quantization

import (
	"errors"
	"math"

	"github.com/x448/float16"

	"github.com/hupe1980/vecq/internal/bitserial"
	"github.com/hupe1980/vecq/internal/popcount"
)

var (
	// ErrInsufficientSamples is wrapped by the TrainingError returned when a
	// stateful strategy is trained on too few samples.
	ErrInsufficientSamples = errors.New("insufficient samples")
	// ErrNotTrained is returned by Quantize on a stateful strategy that has not been trained.
	ErrNotTrained = errors.New("strategy not trained")
)

// Strategy converts dense vectors into quantized representations.
//
// Stateful strategies must be trained before the first Quantize call. Train
// requires exclusive access; Quantize is read-only and safe for concurrent use.
type Strategy interface {
	// Quantize encodes v into the representation selected by target.
	Quantize(v []float32, target Target) (Representation, error)

	// Train calibrates the strategy on sample vectors (a no-op for stateless strategies).
	Train(samples [][]float32) error
}

const (
	// DefaultMin is the lower bound of the sub-byte range used by ScalarStrategy.
	DefaultMin = -1.0
	// DefaultMax is the upper bound of the sub-byte range used by ScalarStrategy.
	DefaultMax = 1.0
)

// ScalarStrategy is the stateless scalar quantizer.
//
// FullByte assumes components in [0, 1]; SubByte uses a fixed range (by
// default [-1, 1)); HalfPrecision converts every component to binary16.
type ScalarStrategy struct {
	min float32
	max float32
}

// ScalarOption configures a ScalarStrategy.
type ScalarOption func(*ScalarStrategy)

// WithRange sets the sub-byte quantization range [minVal, maxVal).
func WithRange(minVal, maxVal float32) ScalarOption {
	return func(s *ScalarStrategy) {
		s.min = minVal
		s.max = maxVal
	}
}

// NewScalarStrategy creates a new scalar strategy.
func NewScalarStrategy(opts ...ScalarOption) *ScalarStrategy {
	s := &ScalarStrategy{min: DefaultMin, max: DefaultMax}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure ScalarStrategy implements Strategy.
var _ Strategy = (*ScalarStrategy)(nil)

// Quantize implements Strategy.
func (s *ScalarStrategy) Quantize(v []float32, target Target) (Representation, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if err := validateVector("quantize", v); err != nil {
		return nil, err
	}

	switch target.Kind {
	case KindFullByte:
		return encodeFullByte(v, 0, 1), nil
	case KindSubByte:
		codec, err := NewCodec(target.Resolution, s.min, s.max)
		if err != nil {
			return nil, err
		}
		return encodeSubByte(codec, v)
	default:
		return encodeHalfPrecision(v), nil
	}
}

// Train implements Strategy. Scalar quantization doesn't require training.
func (s *ScalarStrategy) Train(_ [][]float32) error {
	return nil
}

// encodeFullByte maps [minVal, maxVal] onto [0, 255] by rounding to nearest.
func encodeFullByte(v []float32, minVal, maxVal float32) *FullByte {
	codes := make([]uint8, len(v))
	scale := 255.0 / (float64(maxVal) - float64(minVal))

	var mag uint64
	for i, x := range v {
		q := math.Round((float64(x) - float64(minVal)) * scale)
		// Clamp so inputs at or past the boundary never wrap.
		if q < 0 {
			q = 0
		} else if q > 255 {
			q = 255
		}
		codes[i] = uint8(q)
		mag += uint64(codes[i]) * uint64(codes[i])
	}
	return &FullByte{Codes: codes, Magnitude: mag}
}

// encodeSubByte packs v into bit planes and derives the exact magnitude from
// the bit-serial self product of the planes.
func encodeSubByte(codec *Codec, v []float32) (*SubByte, error) {
	planes, err := codec.Encode(v)
	if err != nil {
		return nil, err
	}
	return &SubByte{
		Planes:     planes,
		Magnitude:  bitserial.Dot(planes.Planes, planes.Planes, popcount.Count32),
		Normalized: true,
	}, nil
}

func encodeHalfPrecision(v []float32) *HalfPrecision {
	codes := make([]float16.Float16, len(v))
	var mag float32
	for i, x := range v {
		codes[i] = float16.Fromfloat32(x)
		mag += x * x
	}
	return &HalfPrecision{Codes: codes, Magnitude: mag}
}
