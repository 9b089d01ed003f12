package conv

import (
	"math"

	"github.com/hupe1980/vecq/model"
)

// IntToUint32 converts v to any uint32-based type, rejecting negative and
// oversized values with a ValidationError.
func IntToUint32[T ~uint32](v int) (T, error) {
	if v < 0 {
		return 0, model.NewValidationError("convert", "%d cannot be converted to uint32 (negative)", v)
	}
	// On 64-bit systems, int can exceed uint32 max; on 32-bit, this is always false
	if uint64(v) > math.MaxUint32 {
		return 0, model.NewValidationError("convert", "%d cannot be converted to uint32 (too large)", v)
	}
	return T(v), nil
}
