package quantization

import (
	"github.com/x448/float16"

	"github.com/hupe1980/vecq/model"
)

// Kind identifies the variant of a quantized representation.
type Kind int

const (
	// KindFullByte stores one 8-bit code per component.
	KindFullByte Kind = iota
	// KindSubByte stores r bit planes.
	KindSubByte
	// KindHalfPrecision stores one IEEE-754 binary16 value per component.
	KindHalfPrecision
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindFullByte:
		return "FullByte"
	case KindSubByte:
		return "SubByte"
	case KindHalfPrecision:
		return "HalfPrecision"
	default:
		return "Unknown"
	}
}

// Target selects the representation produced by Strategy.Quantize.
type Target struct {
	Kind Kind
	// Resolution is the number of bits per component for KindSubByte.
	Resolution uint8
}

// FullByteTarget returns the 8-bit target.
func FullByteTarget() Target { return Target{Kind: KindFullByte} }

// SubByteTarget returns the bit-plane target with r bits per component.
func SubByteTarget(r uint8) Target { return Target{Kind: KindSubByte, Resolution: r} }

// HalfPrecisionTarget returns the binary16 target.
func HalfPrecisionTarget() Target { return Target{Kind: KindHalfPrecision} }

// Validate checks that the target can be produced.
func (t Target) Validate() error {
	switch t.Kind {
	case KindFullByte, KindHalfPrecision:
		return nil
	case KindSubByte:
		if t.Resolution == 0 || t.Resolution > MaxResolution {
			return model.NewValidationError("quantize", "resolution %d outside [1, %d]", t.Resolution, MaxResolution)
		}
		return nil
	default:
		return model.NewValidationError("quantize", "unknown target kind %d", int(t.Kind))
	}
}

// Representation is an immutable quantized vector.
// The concrete type is one of *FullByte, *SubByte or *HalfPrecision.
type Representation interface {
	Kind() Kind
	Dimension() int
}

// FullByte holds 8-bit codes and the exact sum of their squares.
type FullByte struct {
	Codes     []uint8
	Magnitude uint64
}

// Kind implements Representation.
func (*FullByte) Kind() Kind { return KindFullByte }

// Dimension implements Representation.
func (f *FullByte) Dimension() int { return len(f.Codes) }

// SubByte holds r bit planes.
//
// Magnitude is the exact sum of squared codes when Normalized is true. A
// representation built without it (Normalized false) must be treated as
// unnormalized by similarity callers.
type SubByte struct {
	Planes     BitPlanes
	Magnitude  uint64
	Normalized bool
}

// Kind implements Representation.
func (*SubByte) Kind() Kind { return KindSubByte }

// Dimension implements Representation.
func (s *SubByte) Dimension() int { return s.Planes.Dim }

// HalfPrecision holds binary16 codes. Magnitude is the sum of squares of the
// original float32 components, computed before the precision reduction.
type HalfPrecision struct {
	Codes     []float16.Float16
	Magnitude float32
}

// Kind implements Representation.
func (*HalfPrecision) Kind() Kind { return KindHalfPrecision }

// Dimension implements Representation.
func (h *HalfPrecision) Dimension() int { return len(h.Codes) }

// Float32s widens the codes back to float32.
func (h *HalfPrecision) Float32s() []float32 {
	out := make([]float32, len(h.Codes))
	for i, c := range h.Codes {
		out[i] = c.Float32()
	}
	return out
}
