package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformVectors(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.UniformVectors(8, 32)

	assert.Equal(t, 8, len(v))
	assert.Equal(t, 32, len(v[0]))
	assert.LessOrEqual(t, v[0][0], float32(1.0))
	assert.GreaterOrEqual(t, v[1][0], float32(0.0))
}

func TestUniformRangeVectors(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.UniformRangeVectors(8, 32)

	assert.Equal(t, 8, len(v))
	assert.Equal(t, 32, len(v[0]))
	assert.LessOrEqual(t, v[0][0], float32(1.0))
	assert.GreaterOrEqual(t, v[1][0], float32(-1.0))
}

func TestUnitVectors(t *testing.T) {
	rng := NewRNG(1)

	for _, vec := range rng.UnitVectors(4, 16) {
		var norm float64
		for _, x := range vec {
			norm += float64(x) * float64(x)
		}
		assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)
	}
}

func TestSparseRecords(t *testing.T) {
	rng := NewRNG(2024)

	records := rng.SparseRecords(50, 10, 1, 4)
	require.Len(t, records, 50)

	for _, rec := range records {
		require.Len(t, rec, 10)
		nnz := 0
		for _, x := range rec {
			if x != 0 {
				nnz++
				assert.Greater(t, x, float32(0))
				assert.LessOrEqual(t, x, float32(1))
			}
		}
		assert.GreaterOrEqual(t, nnz, 1)
		assert.LessOrEqual(t, nnz, 4)
	}
}

func TestPerturbKeepsSparsity(t *testing.T) {
	rng := NewRNG(3)

	rec := []float32{0, 1, 0, 4.9}
	out := rng.Perturb(rec, 0.5)

	assert.Zero(t, out[0])
	assert.Zero(t, out[2])
	assert.Greater(t, out[1], float32(0))
	assert.LessOrEqual(t, out[3], float32(5))
}

func TestBruteForceDot(t *testing.T) {
	records := [][]float32{
		{1, 0},
		{0.5, 1},
		{0, 1},
	}

	got := BruteForceDot(records, []float32{1, 0}, 0)
	assert.Equal(t, []SearchResult{{ID: 0, Score: 1}, {ID: 1, Score: 0.5}}, got)

	got = BruteForceDot(records, []float32{1, 0}, 1)
	assert.Len(t, got, 1)
}

func TestComputeRecall(t *testing.T) {
	truth := []SearchResult{{ID: 1}, {ID: 2}}

	assert.Equal(t, 1.0, ComputeRecall(truth, []SearchResult{{ID: 2}, {ID: 1}}))
	assert.Equal(t, 0.5, ComputeRecall(truth, []SearchResult{{ID: 2}, {ID: 3}}))
	assert.Equal(t, 1.0, ComputeRecall(nil, nil))
	assert.Equal(t, 0.0, ComputeRecall(truth, nil))
}
