package similarity

import (
	"github.com/hupe1980/vecq/internal/bitserial"
	"github.com/hupe1980/vecq/model"
	"github.com/hupe1980/vecq/quantization"
)

// Cosine returns the cosine similarity of two representations of the same
// kind and shape.
//
// FullByte uses the exact integer dot product of the codes; HalfPrecision
// widens the codes to float32; SubByte uses the exact bit-serial dot product.
// Stored magnitudes are used for normalization. A SubByte operand without a
// magnitude (Normalized false) has it derived from its planes.
func (e *Engine) Cosine(a, b quantization.Representation) (float64, error) {
	if a == nil || b == nil {
		return 0, model.NewValidationError("cosine", "nil representation")
	}
	if a.Kind() != b.Kind() {
		return 0, model.NewValidationError("cosine", "kind mismatch: %s vs %s", a.Kind(), b.Kind())
	}
	if a.Dimension() != b.Dimension() {
		return 0, model.NewValidationError("cosine", "dimension mismatch: %d vs %d", a.Dimension(), b.Dimension())
	}

	switch x := a.(type) {
	case *quantization.FullByte:
		y, ok := b.(*quantization.FullByte)
		if !ok {
			return 0, model.NewValidationError("cosine", "unexpected %T", b)
		}
		var dot uint64
		for i, c := range x.Codes {
			dot += uint64(c) * uint64(y.Codes[i])
		}
		return normalize(float64(dot), float64(x.Magnitude), float64(y.Magnitude)), nil

	case *quantization.HalfPrecision:
		y, ok := b.(*quantization.HalfPrecision)
		if !ok {
			return 0, model.NewValidationError("cosine", "unexpected %T", b)
		}
		var dot float64
		for i, c := range x.Codes {
			dot += float64(c.Float32()) * float64(y.Codes[i].Float32())
		}
		return normalize(dot, float64(x.Magnitude), float64(y.Magnitude)), nil

	case *quantization.SubByte:
		y, ok := b.(*quantization.SubByte)
		if !ok {
			return 0, model.NewValidationError("cosine", "unexpected %T", b)
		}
		dot, err := e.ExactDot(x.Planes, y.Planes)
		if err != nil {
			return 0, err
		}
		return normalize(float64(dot), float64(e.magnitude(x)), float64(e.magnitude(y))), nil

	default:
		return 0, model.NewValidationError("cosine", "unsupported representation %T", a)
	}
}

func (e *Engine) magnitude(s *quantization.SubByte) uint64 {
	if s.Normalized {
		return s.Magnitude
	}
	return bitserial.Dot(s.Planes.Planes, s.Planes.Planes, bitserial.Counter(e.count))
}

// CosineFloat32 returns the cosine similarity of two unquantized vectors.
func CosineFloat32(a, b []float32) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, model.NewValidationError("cosine", "dimension mismatch: %d vs %d", len(a), len(b))
	}
	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	return normalize(dot, magA, magB), nil
}
