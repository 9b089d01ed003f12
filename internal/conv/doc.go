// Package conv provides checked integer conversions into the fixed-width
// identifier types used by vecq.
//
// Use cases:
//   - Converting dense positions (int) into sparse dimensions
//   - Converting caller-supplied counts or row numbers into vector IDs
//
// For conversions that are provably safe by domain constraints, use direct
// type casts instead.
package conv
