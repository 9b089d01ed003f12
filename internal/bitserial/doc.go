// Package bitserial implements exact bit-sliced multiplication of packed
// quantization codes.
//
// Operands are given as bit planes: one uint32 per bit of significance, where
// lane i of every plane belongs to component i. Multiplying two operands
// produces the bit planes of the 32 per-lane products at once using only AND,
// XOR and OR. Partial products are grouped by column and reduced with half and
// full adders, so carries are propagated and every lane holds the exact
// product a*b, never an approximation.
//
// A dot product over packed codes then reduces to population counts:
//
//	sum(a[i]*b[i]) = sum over k of popcount(product plane k) << k
package bitserial
