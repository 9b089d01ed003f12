package sparse

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecq/core"
	"github.com/hupe1980/vecq/model"
	"github.com/hupe1980/vecq/testutil"
)

func mustVector(t *testing.T, id core.ID, entries ...Entry) Vector {
	t.Helper()
	v, err := NewVector(id, entries)
	require.NoError(t, err)
	return v
}

func TestInvertedIndex_AddSparseVector(t *testing.T) {
	idx := NewInvertedIndex()

	require.NoError(t, idx.AddSparseVector(mustVector(t, 1, Entry{0, 1.0})))
	require.NoError(t, idx.AddSparseVector(mustVector(t, 2, Entry{0, 0.5}, Entry{1, 1.0})))

	assert.Equal(t, []Posting{{ID: 1, Value: 1.0}, {ID: 2, Value: 0.5}}, idx.Postings(0))
	assert.Equal(t, []Posting{{ID: 2, Value: 1.0}}, idx.Postings(1))
	assert.Nil(t, idx.Postings(2))
	assert.Equal(t, []core.Dim{0, 1}, idx.Dimensions())

	assert.True(t, idx.Contains(1))
	assert.True(t, idx.Contains(2))
	assert.False(t, idx.Contains(3))
	assert.Equal(t, 2, idx.Len())
	assert.InDelta(t, 1.0, idx.Norm(1), 1e-9)
	assert.InDelta(t, 1.118034, idx.Norm(2), 1e-6)

	st := idx.Stats()
	assert.Equal(t, 2, st.Vectors)
	assert.Equal(t, 2, st.Dimensions)
	assert.Equal(t, int64(3), st.Postings)
	assert.Equal(t, 2, st.LargestList)
}

func TestInvertedIndex_EmptyVector(t *testing.T) {
	idx := NewInvertedIndex()
	require.NoError(t, idx.AddSparseVector(Vector{ID: 5}))

	assert.True(t, idx.Contains(5))
	assert.Empty(t, idx.Dimensions())
	assert.Zero(t, idx.Norm(5))
}

func TestInvertedIndex_RejectsMalformed(t *testing.T) {
	idx := NewInvertedIndex(WithDimensions(4))
	require.NoError(t, idx.AddSparseVector(mustVector(t, 1, Entry{0, 1})))
	before := idx.Stats()

	tests := []struct {
		name string
		v    Vector
	}{
		{"Unsorted", Vector{ID: 2, Entries: []Entry{{2, 1}, {1, 1}}}},
		{"OutOfRange", Vector{ID: 3, Entries: []Entry{{1, 1}, {4, 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := idx.AddSparseVector(tt.v)
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrIndex))
			assert.True(t, errors.Is(err, model.ErrValidation))

			var ie *model.IndexError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, tt.v.ID, ie.ID)

			assert.Equal(t, before, idx.Stats())
			assert.False(t, idx.Contains(tt.v.ID))
			assert.Nil(t, idx.Postings(2))
		})
	}
}

func TestInvertedIndex_ChunkBoundaries(t *testing.T) {
	idx := NewInvertedIndex(WithShards(1))
	n := 3*chunkSize + 7
	for i := range n {
		require.NoError(t, idx.AddSparseVector(mustVector(t, core.ID(i), Entry{0, float32(i)})))
	}

	postings := idx.Postings(0)
	require.Len(t, postings, n)
	for i, p := range postings {
		assert.Equal(t, core.ID(i), p.ID)
		assert.Equal(t, float32(i), p.Value)
	}
}

func TestInvertedIndex_DuplicateID(t *testing.T) {
	idx := NewInvertedIndex()
	require.NoError(t, idx.AddSparseVector(mustVector(t, 1, Entry{0, 3})))
	require.NoError(t, idx.AddSparseVector(mustVector(t, 1, Entry{1, 4})))

	assert.Equal(t, 1, idx.Len())
	assert.InDelta(t, 5.0, idx.Norm(1), 1e-9)
	assert.Equal(t, int64(2), idx.Stats().Postings)
}

func TestInvertedIndex_ConcurrentAdd(t *testing.T) {
	idx := NewInvertedIndex(WithShards(4))
	rng := testutil.NewRNG(7)
	records := rng.SparseRecords(400, 32, 1, 8)

	var want int64
	vectors := make([]Vector, len(records))
	for i, rec := range records {
		v, err := FromDense(core.ID(i), rec)
		require.NoError(t, err)
		vectors[i] = v
		want += int64(len(v.Entries))
	}

	var wg sync.WaitGroup
	const writers = 8
	for w := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := w; i < len(vectors); i += writers {
				assert.NoError(t, idx.AddSparseVector(vectors[i]))
			}
		}()
	}
	// Readers run against the index while it grows.
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q, err := NewQuery(vectors[0])
			if !assert.NoError(t, err) {
				return
			}
			for range 50 {
				for _, r := range q.SequentialSearch(idx) {
					assert.Less(t, int(r.ID), len(vectors))
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, len(vectors), idx.Len())
	assert.Equal(t, want, idx.Stats().Postings)

	var total int
	for _, d := range idx.Dimensions() {
		total += len(idx.Postings(d))
	}
	assert.Equal(t, int(want), total)
}

func TestInvertedIndex_AddBatch(t *testing.T) {
	rng := testutil.NewRNG(11)
	records := rng.SparseRecords(200, 64, 2, 10)

	vectors := make([]Vector, len(records))
	for i, rec := range records {
		v, err := FromDense(core.ID(i), rec)
		require.NoError(t, err)
		vectors[i] = v
	}

	t.Run("Success", func(t *testing.T) {
		idx := NewInvertedIndex()
		require.NoError(t, idx.AddBatch(context.Background(), vectors, 4))
		assert.Equal(t, len(vectors), idx.Len())
		assert.Equal(t, uint64(len(vectors)), idx.IDs().GetCardinality())
	})

	t.Run("MalformedLeavesIndexEmpty", func(t *testing.T) {
		idx := NewInvertedIndex()
		bad := append([]Vector{}, vectors[:10]...)
		bad = append(bad, Vector{ID: 999, Entries: []Entry{{5, 1}, {5, 2}}})

		err := idx.AddBatch(context.Background(), bad, 4)
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrIndex))
		assert.Zero(t, idx.Len())
		assert.Empty(t, idx.Dimensions())
	})

	t.Run("Canceled", func(t *testing.T) {
		idx := NewInvertedIndex()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := idx.AddBatch(ctx, vectors, 4)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
