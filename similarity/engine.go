package similarity

import (
	"math"

	"github.com/hupe1980/vecq/internal/bitserial"
	"github.com/hupe1980/vecq/internal/popcount"
	"github.com/hupe1980/vecq/model"
	"github.com/hupe1980/vecq/quantization"
)

// Engine computes similarity scores between quantized representations.
type Engine struct {
	count     popcount.Counter
	mode      popcount.Mode
	andWeight float64
	orWeight  float64
	tracer    Tracer
}

// New creates an Engine. The popcount table is built before New returns.
func New(opts ...Option) *Engine {
	o := options{
		mode:      popcount.ModeTable,
		andWeight: DefaultAndWeight,
		orWeight:  DefaultOrWeight,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{
		count:     popcount.For(o.mode),
		mode:      o.mode,
		andWeight: o.andWeight,
		orWeight:  o.orWeight,
		tracer:    o.tracer,
	}
}

// Mode returns the configured popcount mode.
func (e *Engine) Mode() popcount.Mode { return e.mode }

func (e *Engine) trace(op string, plane int, count uint64) {
	if e.tracer != nil {
		e.tracer(TraceEvent{Op: op, Plane: plane, Count: count})
	}
}

func checkShape(op string, a, b quantization.BitPlanes) error {
	if !a.SameShape(b) {
		return model.NewValidationError(op, "shape mismatch: resolution %d/%d, dimension %d/%d, planes %d/%d, words %d/%d",
			a.Resolution, b.Resolution, a.Dim, b.Dim, len(a.Planes), len(b.Planes), a.Words(), b.Words())
	}
	if len(a.Planes) == 0 || a.Dim == 0 {
		return model.NewValidationError(op, "empty bit planes")
	}
	if len(a.Planes) != int(a.Resolution) {
		return model.NewValidationError(op, "%d planes for resolution %d", len(a.Planes), a.Resolution)
	}
	return nil
}

// Coalesce returns a Hamming-style similarity in [0, 1].
//
// Plane k carries weight 2^(r-1-k). The distance is the weighted XOR popcount
// divided by the largest possible weighted count, Dim * (2^r - 1).
func (e *Engine) Coalesce(a, b quantization.BitPlanes) (float64, error) {
	if err := checkShape("coalesce", a, b); err != nil {
		return 0, err
	}

	r := len(a.Planes)
	var weighted uint64
	for k := range r {
		var planeCount uint64
		pa, pb := a.Planes[k], b.Planes[k]
		for w := range pa {
			planeCount += uint64(e.count(pa[w] ^ pb[w]))
		}
		e.trace("coalesce", k, planeCount)
		weighted += planeCount << (r - 1 - k)
	}
	e.trace("coalesce", -1, weighted)

	total := uint64(a.Dim) * ((uint64(1) << r) - 1)
	return 1 - float64(weighted)/float64(total), nil
}

// WeightedCosine returns the approximate cosine built from AND/OR popcounts.
//
// Every plane's popcounts are shifted left by the plane's bit significance.
// Each magnitude is andWeight*selfAND + orWeight*selfOR; since x&x and x|x
// both equal x this is (andWeight+orWeight) times the self popcount. The dot
// term uses the AND popcount with the same combined weight, so the score lies
// in [0, 1]: identical codes score 1 and disjoint codes score 0. The score is
// 0 when either magnitude is not positive.
func (e *Engine) WeightedCosine(a, b quantization.BitPlanes) (float64, error) {
	if err := checkShape("weighted cosine", a, b); err != nil {
		return 0, err
	}

	r := len(a.Planes)
	var andCount, selfA, selfB uint64
	for k := range r {
		shift := r - 1 - k
		var and, sa, sb uint64
		pa, pb := a.Planes[k], b.Planes[k]
		for w := range pa {
			and += uint64(e.count(pa[w] & pb[w]))
			sa += uint64(e.count(pa[w]))
			sb += uint64(e.count(pb[w]))
		}
		e.trace("weighted_cosine", k, and)
		andCount += and << shift
		selfA += sa << shift
		selfB += sb << shift
	}

	weight := e.andWeight + e.orWeight
	dot := weight * float64(andCount)
	magA := weight * float64(selfA)
	magB := weight * float64(selfB)
	if magA <= 0 || magB <= 0 {
		return 0, nil
	}
	return dot / math.Sqrt(magA*magB), nil
}

// ExactDot returns the exact sum of code_a[i] * code_b[i] computed with
// bit-serial multiplication and popcounts.
func (e *Engine) ExactDot(a, b quantization.BitPlanes) (uint64, error) {
	if err := checkShape("exact dot", a, b); err != nil {
		return 0, err
	}
	dot := bitserial.Dot(a.Planes, b.Planes, bitserial.Counter(e.count))
	e.trace("exact_dot", -1, dot)
	return dot, nil
}

// ExactCosine returns the cosine of the code vectors of a and b. Products
// and magnitudes are exact integers; 0 is returned when either code vector
// is all zeros.
func (e *Engine) ExactCosine(a, b quantization.BitPlanes) (float64, error) {
	dot, err := e.ExactDot(a, b)
	if err != nil {
		return 0, err
	}
	magA := bitserial.Dot(a.Planes, a.Planes, bitserial.Counter(e.count))
	magB := bitserial.Dot(b.Planes, b.Planes, bitserial.Counter(e.count))
	return normalize(float64(dot), float64(magA), float64(magB)), nil
}

func normalize(dot, magA, magB float64) float64 {
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / math.Sqrt(magA*magB)
}
