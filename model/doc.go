// Package model defines the error taxonomy shared by the quantization,
// similarity and sparse packages.
//
// # Error Kinds
//
//   - ValidationError: empty vectors, non-finite components, out-of-range
//     parameters and shape mismatches between similarity operands
//   - TrainingError: insufficient or invalid samples for stateful strategies
//   - IndexError: rejected insertions into a sparse inverted index
//
// Every typed error matches its sentinel through errors.Is:
//
//	if errors.Is(err, model.ErrValidation) {
//	    // caller supplied bad input
//	}
package model
