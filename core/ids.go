package core

// ID identifies a vector in a sparse index.
// It is strictly 32-bit, allowing for max 4 Billion vectors per index.
type ID uint32

// MaxID is the maximum possible value for an ID.
const MaxID = ^ID(0)

// Dim is a dimension (column) of a sparse vector.
type Dim uint32
