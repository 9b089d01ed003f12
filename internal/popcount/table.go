package popcount

import "sync"

// TableSize is the number of entries in the lookup table.
const TableSize = 1 << 16

// nibble holds the population count of every 4-bit value.
var nibble = [16]uint8{0, 1, 1, 2, 1, 2, 2, 3, 1, 2, 2, 3, 2, 3, 3, 4}

// Table is the immutable 16-bit lookup table.
type Table [TableSize]uint8

var table = sync.OnceValue(func() *Table {
	t := new(Table)
	for v := range TableSize {
		t[v] = nibble[v&0xf] + nibble[(v>>4)&0xf] + nibble[(v>>8)&0xf] + nibble[(v>>12)&0xf]
	}
	return t
})

// Lookup returns the shared table, building it on first use.
func Lookup() *Table {
	return table()
}

// Count16 returns the number of set bits in v.
func Count16(v uint16) int {
	return int(table()[v])
}

// Count32 returns the number of set bits in w using two table probes.
func Count32(w uint32) int {
	t := table()
	return int(t[w>>16]) + int(t[w&0xffff])
}

// Count64 returns the number of set bits in w using four table probes.
func Count64(w uint64) int {
	t := table()
	return int(t[w&0xffff]) + int(t[(w>>16)&0xffff]) + int(t[(w>>32)&0xffff]) + int(t[w>>48])
}

// Words32 returns the total number of set bits in words.
func Words32(words []uint32) int {
	t := table()
	n := 0
	for _, w := range words {
		n += int(t[w>>16]) + int(t[w&0xffff])
	}
	return n
}
