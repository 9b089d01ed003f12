package quantization

import (
	"math"

	"github.com/hupe1980/vecq/model"
)

const (
	// WordBits is the width of a bit plane word.
	WordBits = 32
	// MaxResolution is the widest sub-byte code supported by the codec.
	MaxResolution = 8
)

// BitPlanes is a bit-plane encoded vector.
//
// Plane k holds bit k of every component's code, with k = 0 being the most
// significant bit. Component i occupies bit (i mod 32) of word (i div 32) in
// every plane. When Dim is not a multiple of 32 the final word holds the
// remaining components at its low bit offsets and its unused high bits are
// zero.
type BitPlanes struct {
	Resolution uint8
	Dim        int
	Planes     [][]uint32
}

// WordsFor returns the number of words per plane for a vector of dim components.
func WordsFor(dim int) int {
	return (dim + WordBits - 1) / WordBits
}

// Words returns the number of words per plane.
func (p BitPlanes) Words() int {
	if len(p.Planes) == 0 {
		return 0
	}
	return len(p.Planes[0])
}

// Code returns the code of component i.
func (p BitPlanes) Code(i int) uint8 {
	word, bit := i/WordBits, uint(i%WordBits)
	var code uint8
	for _, plane := range p.Planes {
		code = code<<1 | uint8((plane[word]>>bit)&1)
	}
	return code
}

// Codes returns the codes of all components.
func (p BitPlanes) Codes() []uint8 {
	codes := make([]uint8, p.Dim)
	for i := range codes {
		codes[i] = p.Code(i)
	}
	return codes
}

// SameShape reports whether p and o have equal resolution, dimension, plane
// count and word count.
func (p BitPlanes) SameShape(o BitPlanes) bool {
	if p.Resolution != o.Resolution || p.Dim != o.Dim || len(p.Planes) != len(o.Planes) {
		return false
	}
	for k := range p.Planes {
		if len(p.Planes[k]) != len(o.Planes[k]) {
			return false
		}
	}
	return true
}

// Codec uniformly quantizes components into r-bit codes over [min, max)
// and packs them into r bit planes.
type Codec struct {
	resolution uint8
	min        float32
	max        float32
	step       float64
	maxCode    uint32
}

// NewCodec creates a codec with 2^resolution buckets of width (max-min)/2^resolution.
func NewCodec(resolution uint8, minVal, maxVal float32) (*Codec, error) {
	if resolution == 0 || resolution > MaxResolution {
		return nil, model.NewValidationError("codec", "resolution %d outside [1, %d]", resolution, MaxResolution)
	}
	if !isFinite(minVal) || !isFinite(maxVal) || maxVal <= minVal {
		return nil, model.NewValidationError("codec", "invalid range [%g, %g)", minVal, maxVal)
	}
	buckets := uint32(1) << resolution
	return &Codec{
		resolution: resolution,
		min:        minVal,
		max:        maxVal,
		step:       (float64(maxVal) - float64(minVal)) / float64(buckets),
		maxCode:    buckets - 1,
	}, nil
}

// Resolution returns the number of bits per code.
func (c *Codec) Resolution() uint8 { return c.resolution }

// Min returns the inclusive lower bound of the range.
func (c *Codec) Min() float32 { return c.min }

// Max returns the exclusive upper bound of the range.
func (c *Codec) Max() float32 { return c.max }

// Step returns the bucket width.
func (c *Codec) Step() float32 { return float32(c.step) }

// Quantize returns the code of x.
// Values below min map to 0; values at or above max map to 2^r-1.
func (c *Codec) Quantize(x float32) uint8 {
	if x <= c.min {
		return 0
	}
	if x >= c.max {
		return uint8(c.maxCode)
	}
	code := math.Floor((float64(x) - float64(c.min)) / c.step)
	if code >= float64(c.maxCode) {
		return uint8(c.maxCode)
	}
	return uint8(code)
}

// Encode quantizes v and packs the codes into bit planes.
func (c *Codec) Encode(v []float32) (BitPlanes, error) {
	if err := validateVector("codec encode", v); err != nil {
		return BitPlanes{}, err
	}

	r := int(c.resolution)
	words := WordsFor(len(v))
	backing := make([]uint32, r*words)
	planes := make([][]uint32, r)
	for k := range planes {
		planes[k] = backing[k*words : (k+1)*words : (k+1)*words]
	}

	for i, x := range v {
		code := c.Quantize(x)
		word, bit := i/WordBits, uint(i%WordBits)
		for k := range r {
			// Plane 0 receives the most significant bit.
			planes[k][word] |= uint32((code>>(r-1-k))&1) << bit
		}
	}

	return BitPlanes{Resolution: c.resolution, Dim: len(v), Planes: planes}, nil
}

// Decode reconstructs each component as the lower bound of its bucket.
// Every reconstructed value lies within one step of the encoded input.
func (c *Codec) Decode(p BitPlanes) ([]float32, error) {
	if p.Resolution != c.resolution || len(p.Planes) != int(c.resolution) {
		return nil, model.NewValidationError("codec decode", "resolution %d does not match codec resolution %d", p.Resolution, c.resolution)
	}
	if p.Dim < 0 {
		return nil, model.NewValidationError("codec decode", "negative dimension %d", p.Dim)
	}
	want := WordsFor(p.Dim)
	for k, plane := range p.Planes {
		if len(plane) != want {
			return nil, model.NewValidationError("codec decode", "plane %d has %d words, want %d for %d components", k, len(plane), want, p.Dim)
		}
	}

	out := make([]float32, p.Dim)
	for i := range out {
		out[i] = float32(float64(c.min) + float64(p.Code(i))*c.step)
	}
	return out, nil
}

func isFinite(x float32) bool {
	return !math.IsNaN(float64(x)) && !math.IsInf(float64(x), 0)
}

func validateVector(op string, v []float32) error {
	if len(v) == 0 {
		return model.NewValidationError(op, "empty vector")
	}
	for i, x := range v {
		if !isFinite(x) {
			return model.NewValidationError(op, "component %d is not finite (%g)", i, x)
		}
	}
	return nil
}
