// Package testutil provides testing utilities for vecq.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random dense and sparse vectors and for
// computing exact rankings to compare search results against.
//
// # Random Vector Generation
//
//	rng := testutil.NewRNG(seed)
//	vec := make([]float32, 128)
//	rng.FillUniform(vec)                       // uniform [0, 1)
//	records := rng.SparseRecords(100, 10, 1, 4) // dense rows, 1-4 nonzeros each
//
// # Exact Ranking (Ground Truth)
//
//	results := testutil.BruteForceDot(records, query, k)
//
// # Recall Verification
//
//	recall := testutil.ComputeRecall(exact, approx)
package testutil
