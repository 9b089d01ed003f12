// Package quantization turns dense float32 vectors into compact quantized
// representations.
//
// Three representations are supported:
//
//   - FullByte: one 8-bit code per component, round(x*255) for x in [0, 1]
//   - SubByte: r-bit codes (1 <= r <= 8) packed into r bit planes of 32-bit words
//   - HalfPrecision: one IEEE-754 binary16 value per component
//
// # Strategies
//
// A Strategy produces representations from raw vectors:
//
//	s := quantization.NewScalarStrategy()
//	rep, err := s.Quantize(vec, quantization.SubByteTarget(2))
//
// ScalarStrategy is stateless; Train is a no-op. RangeStrategy learns the
// quantization range from samples and must be trained before use:
//
//	rs := quantization.NewRangeStrategy(quantization.WithMinSamples(32))
//	if err := rs.Train(samples); err != nil {
//	    // errors.Is(err, quantization.ErrInsufficientSamples)
//	}
//
// # Bit Planes
//
// The Codec quantizes each component into an r-bit code over [min, max) with
// step (max-min)/2^r and stores bit k of every code in plane k (plane 0 is
// the most significant bit). Component i lives at bit i%32 of word i/32. A
// component at the upper boundary is clamped to the maximum code 2^r-1.
//
// SubByte representations carry the exact magnitude (sum of squared codes),
// computed from the planes with bit-serial multiplication.
package quantization
