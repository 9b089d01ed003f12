package quantization

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecq/model"
)

func TestScalarStrategy_FullByte(t *testing.T) {
	s := NewScalarStrategy()

	rep, err := s.Quantize([]float32{0, 0.5, 1, 0.999999}, FullByteTarget())
	require.NoError(t, err)

	fb, ok := rep.(*FullByte)
	require.True(t, ok)
	assert.Equal(t, KindFullByte, fb.Kind())
	assert.Equal(t, 4, fb.Dimension())
	assert.Equal(t, []uint8{0, 128, 255, 255}, fb.Codes)
	assert.Equal(t, uint64(128*128+255*255+255*255), fb.Magnitude)
}

func TestScalarStrategy_FullByteClampsOutOfRange(t *testing.T) {
	s := NewScalarStrategy()

	rep, err := s.Quantize([]float32{-0.3, 1.7}, FullByteTarget())
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 255}, rep.(*FullByte).Codes)
}

func TestScalarStrategy_FullByteMagnitudeDoesNotOverflow(t *testing.T) {
	s := NewScalarStrategy()

	vec := make([]float32, 100_000)
	for i := range vec {
		vec[i] = 1
	}
	rep, err := s.Quantize(vec, FullByteTarget())
	require.NoError(t, err)
	assert.Equal(t, uint64(100_000)*255*255, rep.(*FullByte).Magnitude)
}

func TestScalarStrategy_SubByte(t *testing.T) {
	s := NewScalarStrategy()

	vec := make([]float32, 32)
	for i := range vec {
		vec[i] = []float32{-1, -0.5, 0, 0.5}[i%4]
	}

	rep, err := s.Quantize(vec, SubByteTarget(2))
	require.NoError(t, err)

	sb, ok := rep.(*SubByte)
	require.True(t, ok)
	assert.Equal(t, KindSubByte, sb.Kind())
	assert.Equal(t, 32, sb.Dimension())
	require.Len(t, sb.Planes.Planes, 2)
	assert.Equal(t, 1, sb.Planes.Words())

	// Each group of four holds codes 0..3: 0 + 1 + 4 + 9 = 14.
	assert.True(t, sb.Normalized)
	assert.Equal(t, uint64(8*14), sb.Magnitude)
}

func TestScalarStrategy_SubByteMagnitudeMatchesCodes(t *testing.T) {
	s := NewScalarStrategy(WithRange(0, 1))

	vec := make([]float32, 77)
	for i := range vec {
		vec[i] = float32(i%13) / 13
	}

	for r := uint8(1); r <= MaxResolution; r++ {
		rep, err := s.Quantize(vec, SubByteTarget(r))
		require.NoError(t, err)
		sb := rep.(*SubByte)

		var want uint64
		for _, c := range sb.Planes.Codes() {
			want += uint64(c) * uint64(c)
		}
		assert.Equal(t, want, sb.Magnitude, "resolution %d", r)
	}
}

func TestScalarStrategy_HalfPrecision(t *testing.T) {
	s := NewScalarStrategy()

	vec := []float32{1, 0.5, -2, 0.1}
	rep, err := s.Quantize(vec, HalfPrecisionTarget())
	require.NoError(t, err)

	hp, ok := rep.(*HalfPrecision)
	require.True(t, ok)
	assert.Equal(t, KindHalfPrecision, hp.Kind())
	assert.Equal(t, 4, hp.Dimension())

	// Magnitude uses the original precision.
	assert.InDelta(t, 5.26, hp.Magnitude, 1e-5)

	decoded := hp.Float32s()
	assert.Equal(t, float32(1), decoded[0])
	assert.Equal(t, float32(0.5), decoded[1])
	assert.Equal(t, float32(-2), decoded[2])
	assert.InDelta(t, 0.1, decoded[3], 1e-3)
}

func TestScalarStrategy_ValidationErrors(t *testing.T) {
	s := NewScalarStrategy()

	tests := []struct {
		name   string
		vec    []float32
		target Target
	}{
		{"empty", nil, FullByteTarget()},
		{"nan", []float32{0, float32(math.NaN())}, FullByteTarget()},
		{"inf", []float32{float32(math.Inf(1))}, HalfPrecisionTarget()},
		{"resolution zero", []float32{0.1}, SubByteTarget(0)},
		{"resolution too wide", []float32{0.1}, SubByteTarget(9)},
		{"unknown kind", []float32{0.1}, Target{Kind: Kind(42)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := s.Quantize(tt.vec, tt.target)
			assert.Nil(t, rep)
			assert.True(t, errors.Is(err, model.ErrValidation), "got %v", err)

			var ve *model.ValidationError
			assert.True(t, errors.As(err, &ve))
		})
	}
}

func TestScalarStrategy_TrainIsNoop(t *testing.T) {
	s := NewScalarStrategy()
	assert.NoError(t, s.Train(nil))
}

func TestScalarStrategy_ConcurrentQuantize(t *testing.T) {
	s := NewScalarStrategy()
	vec := []float32{0.1, 0.2, 0.3, 0.4, 0.5}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				_, err := s.Quantize(vec, SubByteTarget(3))
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "FullByte", KindFullByte.String())
	assert.Equal(t, "SubByte", KindSubByte.String())
	assert.Equal(t, "HalfPrecision", KindHalfPrecision.String())
	assert.Equal(t, "Unknown", Kind(9).String())
}
