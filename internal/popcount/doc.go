// Package popcount provides table-driven population counts.
//
// The lookup table maps every 16-bit pattern to its number of set bits. It is
// built lazily exactly once per process and is read-only afterwards, so it can
// be shared by any number of goroutines without synchronization.
//
// A 32-bit word is counted with two table probes:
//
//	n := popcount.Count32(w) // table[w>>16] + table[w&0xffff]
//
// Counter selects between the table and the hardware instruction exposed by
// math/bits. Auto picks the hardware path when golang.org/x/sys/cpu reports
// native support.
package popcount
