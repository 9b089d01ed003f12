package sparse

import (
	"math"
	"slices"

	"github.com/hupe1980/vecq/core"
	"github.com/hupe1980/vecq/internal/conv"
	"github.com/hupe1980/vecq/model"
)

// Entry is a nonzero component of a sparse vector.
type Entry struct {
	Dim   core.Dim
	Value float32
}

// Vector is a sparse vector. Entries are sorted by strictly ascending Dim.
type Vector struct {
	ID      core.ID
	Entries []Entry
}

// NewVector creates a sparse vector after validating entries.
func NewVector(id core.ID, entries []Entry) (Vector, error) {
	v := Vector{ID: id, Entries: entries}
	if err := v.Validate(); err != nil {
		return Vector{}, err
	}
	return v, nil
}

// NewVectorSorted sorts a copy of entries by dimension and then validates it.
// Duplicate dimensions are still rejected.
func NewVectorSorted(id core.ID, entries []Entry) (Vector, error) {
	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b Entry) int {
		switch {
		case a.Dim < b.Dim:
			return -1
		case a.Dim > b.Dim:
			return 1
		default:
			return 0
		}
	})
	return NewVector(id, sorted)
}

// FromDense builds a sparse vector from the nonzero components of dense.
func FromDense(id core.ID, dense []float32) (Vector, error) {
	entries := make([]Entry, 0, len(dense)/8)
	for i, x := range dense {
		if x == 0 {
			continue
		}
		dim, err := conv.IntToUint32[core.Dim](i)
		if err != nil {
			return Vector{}, err
		}
		entries = append(entries, Entry{Dim: dim, Value: x})
	}
	return NewVector(id, entries)
}

// Validate checks that dimensions are strictly ascending and values are finite.
func (v Vector) Validate() error {
	for i, e := range v.Entries {
		if math.IsNaN(float64(e.Value)) || math.IsInf(float64(e.Value), 0) {
			return model.NewValidationError("sparse vector", "entry %d (dim %d) is not finite", i, e.Dim)
		}
		if i > 0 && e.Dim <= v.Entries[i-1].Dim {
			return model.NewValidationError("sparse vector", "entry %d: dim %d does not follow dim %d", i, e.Dim, v.Entries[i-1].Dim)
		}
	}
	return nil
}

// SquaredNorm returns the sum of squared values.
func (v Vector) SquaredNorm() float64 {
	var sum float64
	for _, e := range v.Entries {
		sum += float64(e.Value) * float64(e.Value)
	}
	return sum
}

// Dense expands v into a dense vector of length dim.
// Entries at or beyond dim are dropped.
func (v Vector) Dense(dim int) []float32 {
	out := make([]float32, dim)
	for _, e := range v.Entries {
		if int(e.Dim) < dim {
			out[e.Dim] = e.Value
		}
	}
	return out
}
