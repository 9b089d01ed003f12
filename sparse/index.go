package sparse

import (
	"context"
	"math"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/vecq/core"
	"github.com/hupe1980/vecq/model"
)

// DefaultShards is the default number of dimension shards.
const DefaultShards = 16

type shard struct {
	mu    sync.RWMutex
	lists map[core.Dim]*postingList
}

// InvertedIndex maps dimensions to append-only posting lists.
type InvertedIndex struct {
	shards   []shard
	maxDim   core.Dim
	bounded  bool
	idsMu    sync.RWMutex
	ids      *roaring.Bitmap
	sqNorms  map[core.ID]float64
	postings atomic.Int64
}

// IndexOption configures an InvertedIndex.
type IndexOption func(*InvertedIndex)

// WithShards sets the number of dimension shards (lock stripes).
// If n <= 0, DefaultShards is used.
func WithShards(n int) IndexOption {
	return func(idx *InvertedIndex) {
		if n <= 0 {
			n = DefaultShards
		}
		idx.shards = make([]shard, n)
	}
}

// WithDimensions declares the dimensionality of indexed vectors.
// Entries with Dim >= n are rejected.
func WithDimensions(n core.Dim) IndexOption {
	return func(idx *InvertedIndex) {
		idx.maxDim = n
		idx.bounded = true
	}
}

// NewInvertedIndex creates an empty index.
func NewInvertedIndex(opts ...IndexOption) *InvertedIndex {
	idx := &InvertedIndex{
		shards:  make([]shard, DefaultShards),
		ids:     roaring.New(),
		sqNorms: make(map[core.ID]float64),
	}
	for _, opt := range opts {
		opt(idx)
	}
	for i := range idx.shards {
		idx.shards[i].lists = make(map[core.Dim]*postingList)
	}
	return idx
}

func (idx *InvertedIndex) shardFor(dim core.Dim) *shard {
	return &idx.shards[uint64(dim)%uint64(len(idx.shards))]
}

func (idx *InvertedIndex) list(dim core.Dim) *postingList {
	s := idx.shardFor(dim)
	s.mu.RLock()
	l := s.lists[dim]
	s.mu.RUnlock()
	return l
}

func (idx *InvertedIndex) listOrCreate(dim core.Dim) *postingList {
	if l := idx.list(dim); l != nil {
		return l
	}
	s := idx.shardFor(dim)
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lists[dim]
	if !ok {
		l = &postingList{}
		s.lists[dim] = l
	}
	return l
}

func (idx *InvertedIndex) validate(v Vector) error {
	if err := v.Validate(); err != nil {
		return model.NewIndexError(v.ID, "malformed vector", err)
	}
	if idx.bounded && len(v.Entries) > 0 {
		if last := v.Entries[len(v.Entries)-1].Dim; last >= idx.maxDim {
			return model.NewIndexError(v.ID, "malformed vector",
				model.NewValidationError("sparse vector", "dim %d out of range [0, %d)", last, idx.maxDim))
		}
	}
	return nil
}

// AddSparseVector appends (v.ID, value) to the posting list of every entry's
// dimension. The vector is validated first; on error the index is unchanged.
// Cost is O(len(v.Entries)).
func (idx *InvertedIndex) AddSparseVector(v Vector) error {
	if err := idx.validate(v); err != nil {
		return err
	}
	idx.add(v)
	return nil
}

func (idx *InvertedIndex) add(v Vector) {
	// Norms are registered before postings so a search that sees a posting
	// also sees the norm of its vector.
	idx.idsMu.Lock()
	idx.ids.Add(uint32(v.ID))
	idx.sqNorms[v.ID] += v.SquaredNorm()
	idx.idsMu.Unlock()

	for _, e := range v.Entries {
		idx.listOrCreate(e.Dim).append(Posting{ID: v.ID, Value: e.Value})
	}
	idx.postings.Add(int64(len(v.Entries)))
}

// AddBatch adds vectors using up to concurrency goroutines.
//
// All vectors are validated before anything is added, so a malformed vector
// leaves the index unchanged. Cancelling ctx stops scheduling further
// vectors; vectors already added remain indexed.
func (idx *InvertedIndex) AddBatch(ctx context.Context, vectors []Vector, concurrency int) error {
	for _, v := range vectors {
		if err := idx.validate(v); err != nil {
			return err
		}
	}
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, v := range vectors {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			idx.add(v)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Postings returns a snapshot of the posting list of dim.
func (idx *InvertedIndex) Postings(dim core.Dim) []Posting {
	l := idx.list(dim)
	if l == nil {
		return nil
	}
	return l.snapshot()
}

// Dimensions returns the dimensions that have a posting list, ascending.
func (idx *InvertedIndex) Dimensions() []core.Dim {
	var dims []core.Dim
	for i := range idx.shards {
		s := &idx.shards[i]
		s.mu.RLock()
		for d := range s.lists {
			dims = append(dims, d)
		}
		s.mu.RUnlock()
	}
	slices.Sort(dims)
	return dims
}

// Contains reports whether a vector with id has been added.
func (idx *InvertedIndex) Contains(id core.ID) bool {
	idx.idsMu.RLock()
	defer idx.idsMu.RUnlock()
	return idx.ids.Contains(uint32(id))
}

// Len returns the number of distinct vector IDs added.
func (idx *InvertedIndex) Len() int {
	idx.idsMu.RLock()
	defer idx.idsMu.RUnlock()
	return int(idx.ids.GetCardinality())
}

// IDs returns a copy of the set of added vector IDs.
func (idx *InvertedIndex) IDs() *roaring.Bitmap {
	idx.idsMu.RLock()
	defer idx.idsMu.RUnlock()
	return idx.ids.Clone()
}

// Norm returns the L2 norm of vector id, or 0 if it is unknown.
// Duplicate insertions of an ID accumulate into one norm.
func (idx *InvertedIndex) Norm(id core.ID) float64 {
	idx.idsMu.RLock()
	defer idx.idsMu.RUnlock()
	return math.Sqrt(idx.sqNorms[id])
}

func (idx *InvertedIndex) norms(ids []core.ID) []float64 {
	out := make([]float64, len(ids))
	idx.idsMu.RLock()
	defer idx.idsMu.RUnlock()
	for i, id := range ids {
		out[i] = math.Sqrt(idx.sqNorms[id])
	}
	return out
}

// Stats describes the index contents.
type Stats struct {
	Vectors    int
	Dimensions int
	Postings   int64
	// LargestList is the length of the longest posting list.
	LargestList int
}

// Stats returns a point-in-time summary of the index.
func (idx *InvertedIndex) Stats() Stats {
	st := Stats{Vectors: idx.Len(), Postings: idx.postings.Load()}
	for i := range idx.shards {
		s := &idx.shards[i]
		s.mu.RLock()
		st.Dimensions += len(s.lists)
		for _, l := range s.lists {
			st.LargestList = max(st.LargestList, l.len())
		}
		s.mu.RUnlock()
	}
	return st
}
