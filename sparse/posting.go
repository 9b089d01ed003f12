package sparse

import (
	"sync"
	"sync/atomic"

	"github.com/hupe1980/vecq/core"
)

const (
	chunkBits = 8
	chunkSize = 1 << chunkBits
	chunkMask = chunkSize - 1
)

// Posting is one (vector, value) entry of a dimension's posting list.
type Posting struct {
	ID    core.ID
	Value float32
}

type chunk [chunkSize]Posting

// postingList is an append-only list stored in fixed-size chunks.
//
// Writers are serialized by mu. A posting is written before the length that
// covers it is published, so readers that load the length first never see a
// partially written entry. Chunks are never moved once allocated.
type postingList struct {
	mu     sync.Mutex
	chunks atomic.Pointer[[]*chunk]
	n      atomic.Uint64
}

func (l *postingList) append(p Posting) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := l.n.Load()
	ci := int(n >> chunkBits)

	var dir []*chunk
	if d := l.chunks.Load(); d != nil {
		dir = *d
	}
	if ci == len(dir) {
		grown := make([]*chunk, ci+1)
		copy(grown, dir)
		grown[ci] = new(chunk)
		l.chunks.Store(&grown)
		dir = grown
	}

	dir[ci][n&chunkMask] = p
	l.n.Store(n + 1)
}

// len returns the number of published postings.
func (l *postingList) len() int {
	return int(l.n.Load())
}

// forEach calls fn for every posting published when forEach started.
func (l *postingList) forEach(fn func(Posting)) {
	n := l.n.Load()
	if n == 0 {
		return
	}
	dir := *l.chunks.Load()
	for i := uint64(0); i < n; i++ {
		fn(dir[i>>chunkBits][i&chunkMask])
	}
}

// snapshot returns a copy of the published postings.
func (l *postingList) snapshot() []Posting {
	out := make([]Posting, 0, l.len())
	l.forEach(func(p Posting) {
		out = append(out, p)
	})
	return out
}
