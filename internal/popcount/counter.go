package popcount

import (
	"math/bits"
	"runtime"

	"golang.org/x/sys/cpu"
)

// Mode selects the population count implementation.
type Mode int

const (
	// ModeTable uses the 16-bit lookup table.
	ModeTable Mode = iota
	// ModeNative uses math/bits, which compiles to POPCNT/CNT where available.
	ModeNative
	// ModeAuto uses ModeNative when the CPU has a popcount instruction.
	ModeAuto
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeTable:
		return "table"
	case ModeNative:
		return "native"
	case ModeAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// Counter counts set bits in 32-bit words.
type Counter func(w uint32) int

// HasNative reports whether the CPU exposes a hardware popcount instruction.
func HasNative() bool {
	switch runtime.GOARCH {
	case "amd64", "386":
		return cpu.X86.HasPOPCNT
	case "arm64":
		return cpu.ARM64.HasASIMD
	default:
		return false
	}
}

// For returns the Counter for mode. The table is built eagerly for ModeTable
// so the first similarity call does not pay for it.
func For(mode Mode) Counter {
	switch mode {
	case ModeNative:
		return native
	case ModeAuto:
		if HasNative() {
			return native
		}
	}
	table()
	return Count32
}

func native(w uint32) int {
	return bits.OnesCount32(w)
}
