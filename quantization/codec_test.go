package quantization

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecq/model"
	"github.com/hupe1980/vecq/testutil"
)

func TestCodec_Resolution2Layout(t *testing.T) {
	codec, err := NewCodec(2, -1, 1)
	require.NoError(t, err)

	// Codes cycle 0, 1, 2, 3 (binary 00, 01, 10, 11).
	vec := make([]float32, 32)
	for i := range vec {
		vec[i] = []float32{-1, -0.5, 0, 0.5}[i%4]
	}

	planes, err := codec.Encode(vec)
	require.NoError(t, err)
	require.Len(t, planes.Planes, 2)
	require.Len(t, planes.Planes[0], 1)
	require.Len(t, planes.Planes[1], 1)

	// MSB plane is set for codes 2 and 3, LSB plane for codes 1 and 3.
	assert.Equal(t, uint32(0xCCCCCCCC), planes.Planes[0][0])
	assert.Equal(t, uint32(0xAAAAAAAA), planes.Planes[1][0])

	for i := range vec {
		assert.Equal(t, uint8(i%4), planes.Code(i))
	}
}

func TestCodec_BoundaryClamp(t *testing.T) {
	for r := uint8(1); r <= MaxResolution; r++ {
		codec, err := NewCodec(r, -1, 1)
		require.NoError(t, err)

		maxCode := uint8((1 << r) - 1)
		assert.Equal(t, maxCode, codec.Quantize(1), "resolution %d", r)
		assert.Equal(t, maxCode, codec.Quantize(math.Nextafter32(1, 0)), "resolution %d", r)
		assert.Equal(t, maxCode, codec.Quantize(5), "resolution %d", r)
		assert.Equal(t, uint8(0), codec.Quantize(-1), "resolution %d", r)
		assert.Equal(t, uint8(0), codec.Quantize(-7), "resolution %d", r)
	}
}

func TestCodec_PartialWordZeroFill(t *testing.T) {
	codec, err := NewCodec(3, -1, 1)
	require.NoError(t, err)

	// All components at the top bucket: every used bit is set.
	vec := make([]float32, 37)
	for i := range vec {
		vec[i] = 1
	}

	planes, err := codec.Encode(vec)
	require.NoError(t, err)
	require.Equal(t, 2, planes.Words())

	for k, plane := range planes.Planes {
		assert.Equal(t, uint32(0xFFFFFFFF), plane[0], "plane %d", k)
		// 5 trailing components occupy the low bits, the rest is zero.
		assert.Equal(t, uint32(0x1F), plane[1], "plane %d", k)
	}
}

func TestCodec_RoundTripWithinStep(t *testing.T) {
	rng := testutil.NewRNG(7)
	for r := uint8(1); r <= MaxResolution; r++ {
		codec, err := NewCodec(r, -1, 1)
		require.NoError(t, err)

		vec := make([]float32, 100)
		rng.FillUniformRange(vec, -1, 1)
		vec[0] = 1 // upper boundary

		planes, err := codec.Encode(vec)
		require.NoError(t, err)
		decoded, err := codec.Decode(planes)
		require.NoError(t, err)

		step := codec.Step()
		for i := range vec {
			diff := vec[i] - decoded[i]
			assert.GreaterOrEqual(t, diff, float32(-1e-6), "resolution %d component %d", r, i)
			assert.LessOrEqual(t, diff, step+1e-6, "resolution %d component %d", r, i)
			assert.Less(t, int(planes.Code(i)), 1<<r)
		}
	}
}

func TestCodec_InvalidArguments(t *testing.T) {
	_, err := NewCodec(0, -1, 1)
	assert.True(t, errors.Is(err, model.ErrValidation))

	_, err = NewCodec(9, -1, 1)
	assert.True(t, errors.Is(err, model.ErrValidation))

	_, err = NewCodec(2, 1, 1)
	assert.True(t, errors.Is(err, model.ErrValidation))

	codec, err := NewCodec(2, -1, 1)
	require.NoError(t, err)

	_, err = codec.Encode(nil)
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = codec.Encode([]float32{0, float32(math.NaN())})
	assert.ErrorIs(t, err, model.ErrValidation)

	other, err := NewCodec(3, -1, 1)
	require.NoError(t, err)
	planes, err := other.Encode([]float32{0.1, 0.2})
	require.NoError(t, err)
	_, err = codec.Decode(planes)
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestCodec_DecodeRaggedPlanes(t *testing.T) {
	codec, err := NewCodec(2, -1, 1)
	require.NoError(t, err)

	planes, err := codec.Encode(make([]float32, 40))
	require.NoError(t, err)
	require.Equal(t, 2, planes.Words())

	tests := []struct {
		name   string
		planes BitPlanes
	}{
		{"ShortLSBPlane", BitPlanes{Resolution: 2, Dim: 40, Planes: [][]uint32{planes.Planes[0], planes.Planes[1][:1]}}},
		{"EmptyLSBPlane", BitPlanes{Resolution: 2, Dim: 40, Planes: [][]uint32{planes.Planes[0], nil}}},
		{"NegativeDim", BitPlanes{Resolution: 2, Dim: -5, Planes: [][]uint32{nil, nil}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, err := codec.Decode(tt.planes)
				assert.ErrorIs(t, err, model.ErrValidation)
			})
		})
	}
}

func TestBitPlanes_SameShape(t *testing.T) {
	codec, err := NewCodec(2, -1, 1)
	require.NoError(t, err)

	a, err := codec.Encode(make([]float32, 40))
	require.NoError(t, err)
	b, err := codec.Encode(make([]float32, 40))
	require.NoError(t, err)
	c, err := codec.Encode(make([]float32, 20))
	require.NoError(t, err)

	assert.True(t, a.SameShape(b))
	assert.False(t, a.SameShape(c))
}
