// Package similarity computes similarity scores directly on quantized
// representations.
//
// Bit-plane operands are compared with bitwise AND, OR and XOR plus
// table-driven population counts; no per-component floating point multiply
// is performed.
//
// # Scores
//
//   - Coalesce: 1 - weighted XOR popcount / total weighted bits (Hamming style)
//   - WeightedCosine: AND/OR popcounts weighted by plane significance
//   - ExactCosine: exact integer dot products via bit-serial multiplication
//   - Cosine: dispatches on FullByte, SubByte and HalfPrecision representations
//
// # Usage
//
//	eng := similarity.New(similarity.WithPopcount(popcount.ModeAuto))
//	score, err := eng.Cosine(repA, repB)
//
// Operands must share kind, resolution, dimension and word count; any
// mismatch is reported as a model.ValidationError.
//
// # Thread Safety
//
// An Engine is immutable after construction and safe for concurrent use.
package similarity
