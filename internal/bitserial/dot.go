package bitserial

// Counter counts set bits in a 32-bit word.
type Counter func(w uint32) int

// Dot returns the exact sum over all lanes of code_a * code_b.
//
// a and b are bit plane sets ordered most significant plane first, as stored
// by the quantization codec. Both must have the same number of planes and the
// same number of words per plane; unused lanes must be zero.
func Dot(a, b [][]uint32, count Counter) uint64 {
	r := len(a)
	if r == 0 || len(b) != r {
		return 0
	}
	words := len(a[0])

	var dot uint64
	switch r {
	case 1:
		for w := range words {
			dot += uint64(count(a[0][w] & b[0][w]))
		}
	case 2:
		for w := range words {
			p := Multiply2(a[0][w], a[1][w], b[0][w], b[1][w])
			for k, plane := range p {
				dot += uint64(count(plane)) << k
			}
		}
	case 3:
		for w := range words {
			p := Multiply3(a[0][w], a[1][w], a[2][w], b[0][w], b[1][w], b[2][w])
			for k, plane := range p {
				dot += uint64(count(plane)) << k
			}
		}
	default:
		as := make([]uint32, r)
		bs := make([]uint32, r)
		for w := range words {
			for j := range r {
				as[j] = a[r-1-j][w]
				bs[j] = b[r-1-j][w]
			}
			for k, plane := range Multiply(as, bs) {
				dot += uint64(count(plane)) << k
			}
		}
	}
	return dot
}
