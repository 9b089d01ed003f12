// Package vecq provides quantized vector similarity and sparse
// approximate-nearest-neighbor search for Go.
//
// The Engine combines three building blocks:
//
//   - quantization: dense vectors become FullByte, SubByte (bit-plane) or
//     HalfPrecision representations
//   - similarity: cosine and bit-plane scores over those representations,
//     including an exact bit-serial dot product for sub-byte codes
//   - sparse: a concurrent inverted index with sequential and parallel
//     term-at-a-time search
//
// # Quick Start
//
//	ctx := context.Background()
//	eng := vecq.New(vecq.WithLogger(vecq.NewTextLogger(slog.LevelInfo)))
//
//	a, _ := eng.Quantize(ctx, []float32{0.1, 0.9, -0.4}, quantization.SubByteTarget(2))
//	b, _ := eng.Quantize(ctx, []float32{0.2, 0.8, -0.5}, quantization.SubByteTarget(2))
//	score, _ := eng.Similarity(ctx, a, b)
//
// # Sparse Search
//
//	v, _ := sparse.NewVector(1, []sparse.Entry{{Dim: 0, Value: 1}, {Dim: 7, Value: 0.5}})
//	_ = eng.Add(ctx, v)
//
//	q, _ := sparse.NewVector(0, []sparse.Entry{{Dim: 0, Value: 1}})
//	results, _ := eng.Search(ctx, q, 10)
//
// Results are ordered by descending score; ties are broken by ascending ID.
//
// # Trained Strategies
//
// A RangeStrategy learns the sub-byte range from samples:
//
//	eng := vecq.New(vecq.WithStrategy(quantization.NewRangeStrategy()))
//	_ = eng.Train(ctx, samples)
//
// Quantizing before training returns an error matching ErrNotReady.
//
// # Observability
//
// Operations are reported to a MetricsCollector and a slog-based Logger.
// WithSimilarityTrace logs per-plane similarity events at debug level.
package vecq
