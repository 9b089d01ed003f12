package bitserial

// MaxBits is the widest operand supported by Multiply.
const MaxBits = 8

// HalfAdd adds two bit planes lane-wise.
func HalfAdd(x, y uint32) (sum, carry uint32) {
	return x ^ y, x & y
}

// FullAdd adds three bit planes lane-wise.
func FullAdd(x, y, z uint32) (sum, carry uint32) {
	t := x ^ y
	return t ^ z, (x & y) | (t & z)
}

// Multiply2 multiplies 2-bit operands (a1 a0) and (b1 b0) in all 32 lanes.
//
// The partial products are p0 = a0&b0, p1 = a0&b1 + a1&b0 and p2 = a1&b1.
// The result planes are returned least significant first; lane i of the
// result equals (2*a1+a0)*(2*b1+b0) for lane i of the inputs.
func Multiply2(a1, a0, b1, b0 uint32) [4]uint32 {
	p0 := a0 & b0
	s1, c1 := HalfAdd(a0&b1, a1&b0)
	s2, c2 := HalfAdd(a1&b1, c1)
	return [4]uint32{p0, s1, s2, c2}
}

// Multiply3 multiplies 3-bit operands (a2 a1 a0) and (b2 b1 b0) in all 32 lanes.
//
// The five partial-product columns p0..p4 hold 1, 2, 3, 2 and 1 terms. They
// are reduced column by column, carrying into the next one. The result planes
// are returned least significant first.
func Multiply3(a2, a1, a0, b2, b1, b0 uint32) [6]uint32 {
	p0 := a0 & b0

	s1, c1 := HalfAdd(a0&b1, a1&b0)

	t2, c2a := FullAdd(a0&b2, a1&b1, a2&b0)
	s2, c2b := HalfAdd(t2, c1)

	t3, c3a := FullAdd(a1&b2, a2&b1, c2a)
	s3, c3b := HalfAdd(t3, c2b)

	s4, c4 := FullAdd(a2&b2, c3a, c3b)

	return [6]uint32{p0, s1, s2, s3, s4, c4}
}

// Multiply multiplies operands of arbitrary width (up to MaxBits each).
// a and b hold bit planes least significant first. The product has
// len(a)+len(b) planes, least significant first.
func Multiply(a, b []uint32) []uint32 {
	width := len(a) + len(b)
	if len(a) == 0 || len(b) == 0 {
		return make([]uint32, width)
	}

	// One spare column absorbs the final carry, which is always zero.
	columns := make([][]uint32, width+1)
	for i, ai := range a {
		for j, bj := range b {
			columns[i+j] = append(columns[i+j], ai&bj)
		}
	}

	out := make([]uint32, width)
	for c := range width {
		col := columns[c]
		for len(col) > 1 {
			var s, carry uint32
			if len(col) >= 3 {
				s, carry = FullAdd(col[0], col[1], col[2])
				col = append(col[3:], s)
			} else {
				s, carry = HalfAdd(col[0], col[1])
				col = append(col[2:], s)
			}
			columns[c+1] = append(columns[c+1], carry)
		}
		if len(col) == 1 {
			out[c] = col[0]
		}
	}
	return out
}
