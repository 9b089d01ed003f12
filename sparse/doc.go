// Package sparse provides a concurrent inverted index over sparse vectors and
// the query path that ranks indexed vectors against a sparse query.
//
// # Usage
//
//	idx := sparse.NewInvertedIndex()
//	v, _ := sparse.NewVector(1, []sparse.Entry{{Dim: 0, Value: 1}})
//	_ = idx.AddSparseVector(v)
//
//	q, err := sparse.NewQuery(query, sparse.WithK(10))
//	if err != nil {
//	    return err
//	}
//	results := q.SequentialSearch(idx)
//
// Search accumulates query_value * posting_value for every candidate touching
// a query dimension, then orders candidates by descending score with ties
// broken by ascending ID.
//
// # Thread Safety
//
// The index is safe for concurrent writes and reads. Posting lists are
// append-only: an entry is either fully visible to a search or not at all.
// A search is not guaranteed to observe additions that run concurrently
// with it. Inserting the same ID twice produces duplicate postings; avoiding
// that is the caller's responsibility.
package sparse
