package popcount

import (
	"math/bits"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableMatchesReference(t *testing.T) {
	tbl := Lookup()
	for v := range TableSize {
		if int(tbl[v]) != bits.OnesCount16(uint16(v)) {
			t.Fatalf("table[%#x] = %d, want %d", v, tbl[v], bits.OnesCount16(uint16(v)))
		}
	}
}

func TestLookupBuiltOnce(t *testing.T) {
	var wg sync.WaitGroup
	tables := make([]*Table, 16)
	for i := range tables {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tables[i] = Lookup()
		}(i)
	}
	wg.Wait()

	for _, tbl := range tables {
		require.Same(t, tables[0], tbl)
	}
}

func TestCount32(t *testing.T) {
	tests := []struct {
		in   uint32
		want int
	}{
		{0, 0},
		{1, 1},
		{0xFFFF, 16},
		{0xFFFF0000, 16},
		{0xFFFFFFFF, 32},
		{0x80000001, 2},
		{0x55555555, 16},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Count32(tt.in), "Count32(%#x)", tt.in)
	}
}

func TestCount64(t *testing.T) {
	assert.Equal(t, 64, Count64(^uint64(0)))
	assert.Equal(t, 3, Count64(1|1<<31|1<<63))
	assert.Equal(t, bits.OnesCount64(0x0123456789ABCDEF), Count64(0x0123456789ABCDEF))
}

func TestWords32(t *testing.T) {
	assert.Equal(t, 0, Words32(nil))
	assert.Equal(t, 33, Words32([]uint32{0xFFFFFFFF, 1}))
}

func TestForModes(t *testing.T) {
	for _, mode := range []Mode{ModeTable, ModeNative, ModeAuto} {
		c := For(mode)
		for _, w := range []uint32{0, 7, 0xDEADBEEF, 0xFFFFFFFF} {
			assert.Equal(t, bits.OnesCount32(w), c(w), "mode %s word %#x", mode, w)
		}
	}
	assert.Equal(t, "unknown", Mode(42).String())
}
