package sparse

import (
	"context"
	"math"
	"runtime"
	"slices"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/vecq/core"
)

// Result is a ranked search hit.
type Result struct {
	ID    core.ID
	Score float32
}

// Query is a per-request sparse ANN query. It holds the query vector and its
// configuration and never mutates the index.
type Query struct {
	vector Vector
	k      int
	cosine bool
	filter *roaring.Bitmap
}

// QueryOption configures a Query.
type QueryOption func(*Query)

// WithK limits the result to the k best candidates. k <= 0 returns every
// candidate touched by the query (the default).
func WithK(k int) QueryOption {
	return func(q *Query) {
		q.k = k
	}
}

// WithCosine normalizes scores by the query norm and each candidate's norm.
func WithCosine() QueryOption {
	return func(q *Query) {
		q.cosine = true
	}
}

// WithFilter restricts results to IDs contained in allowed.
// The bitmap must not be modified while searches using it run.
func WithFilter(allowed *roaring.Bitmap) QueryOption {
	return func(q *Query) {
		q.filter = allowed
	}
}

// NewQuery creates a query for v. v must satisfy the Vector invariants
// (strictly ascending dimensions, finite values); a vector built by hand
// that violates them is rejected with a ValidationError.
func NewQuery(v Vector, opts ...QueryOption) (*Query, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	q := &Query{vector: v}
	for _, opt := range opts {
		opt(q)
	}
	return q, nil
}

// Vector returns the query vector.
func (q *Query) Vector() Vector { return q.vector }

// K returns the configured result limit (0 means unlimited).
func (q *Query) K() int { return q.k }

// SequentialSearch scans the posting list of every query dimension and
// returns candidates ordered by descending score, ties broken by ascending ID.
//
// Cost is O(sum of the posting list lengths of the query's dimensions).
func (q *Query) SequentialSearch(idx *InvertedIndex) []Result {
	scores := make(map[core.ID]float64)
	for _, e := range q.vector.Entries {
		q.scan(idx, e, scores)
	}
	return q.finalize(idx, scores)
}

// ParallelSearch distributes the query dimensions over up to workers
// goroutines and merges their partial scores. It ranks like SequentialSearch.
// If workers <= 0, GOMAXPROCS is used.
func (q *Query) ParallelSearch(ctx context.Context, idx *InvertedIndex, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(q.vector.Entries))
	if workers <= 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return q.SequentialSearch(idx), nil
	}

	partials := make([]map[core.ID]float64, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			local := make(map[core.ID]float64)
			for i := w; i < len(q.vector.Entries); i += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				q.scan(idx, q.vector.Entries[i], local)
			}
			partials[w] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	scores := partials[0]
	for _, p := range partials[1:] {
		for id, s := range p {
			scores[id] += s
		}
	}
	return q.finalize(idx, scores), nil
}

func (q *Query) scan(idx *InvertedIndex, e Entry, scores map[core.ID]float64) {
	l := idx.list(e.Dim)
	if l == nil {
		return
	}
	qv := float64(e.Value)
	l.forEach(func(p Posting) {
		if q.filter != nil && !q.filter.Contains(uint32(p.ID)) {
			return
		}
		scores[p.ID] += qv * float64(p.Value)
	})
}

func (q *Query) finalize(idx *InvertedIndex, scores map[core.ID]float64) []Result {
	if len(scores) == 0 {
		return nil
	}

	ids := make([]core.ID, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}

	if q.cosine {
		qNorm := math.Sqrt(q.vector.SquaredNorm())
		for i, n := range idx.norms(ids) {
			if qNorm == 0 || n == 0 {
				scores[ids[i]] = 0
				continue
			}
			scores[ids[i]] /= qNorm * n
		}
	}

	results := make([]Result, len(ids))
	for i, id := range ids {
		results[i] = Result{ID: id, Score: float32(scores[id])}
	}

	if q.k > 0 && q.k < len(results) {
		return topK(results, q.k)
	}
	slices.SortFunc(results, compareResults)
	return results
}

// compareResults orders by descending score, then ascending ID.
func compareResults(a, b Result) int {
	switch {
	case a.Score > b.Score:
		return -1
	case a.Score < b.Score:
		return 1
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	default:
		return 0
	}
}

// resultHeap is a bounded heap whose root is the worst retained result.
type resultHeap []Result

var heapPool = sync.Pool{
	New: func() any {
		h := make(resultHeap, 0, 64)
		return &h
	},
}

// worse reports whether h[i] ranks below h[j].
func (h resultHeap) worse(i, j int) bool {
	return compareResults(h[i], h[j]) > 0
}

func (h *resultHeap) push(r Result) {
	*h = append(*h, r)
	h.up(len(*h) - 1)
}

func (h resultHeap) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !h.worse(j, i) {
			break
		}
		h[i], h[j] = h[j], h[i]
		j = i
	}
}

func (h resultHeap) down(i0, n int) {
	i := i0
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 {
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && h.worse(j2, j1) {
			j = j2 // right child
		}
		if !h.worse(j, i) {
			break
		}
		h[i], h[j] = h[j], h[i]
		i = j
	}
}

func topK(results []Result, k int) []Result {
	h := heapPool.Get().(*resultHeap)
	*h = (*h)[:0]
	defer heapPool.Put(h)

	for _, r := range results {
		if len(*h) < k {
			h.push(r)
		} else if compareResults(r, (*h)[0]) < 0 {
			(*h)[0] = r
			h.down(0, len(*h))
		}
	}

	out := make([]Result, len(*h))
	copy(out, *h)
	slices.SortFunc(out, compareResults)
	return out
}
