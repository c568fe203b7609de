// Package conv provides bounds-checked integer conversions for binary
// framing. Counts and offsets read from snapshot bytes are untrusted;
// these helpers turn a bad cast into an error instead of a wrapped
// value.
package conv

import (
	"fmt"
	"math"
)

// IntToUint32 converts int to uint32, rejecting negatives and overflow.
func IntToUint32(v int) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("cannot convert negative %d to uint32", v)
	}
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("%d overflows uint32", v)
	}
	return uint32(v), nil
}

// IntToUint64 converts int to uint64, rejecting negatives.
func IntToUint64(v int) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("cannot convert negative %d to uint64", v)
	}
	return uint64(v), nil
}

// Uint64ToInt converts uint64 to int, rejecting overflow.
func Uint64ToInt(v uint64) (int, error) {
	if v > uint64(math.MaxInt) {
		return 0, fmt.Errorf("%d overflows int", v)
	}
	return int(v), nil
}

// Uint32ToInt converts uint32 to int, rejecting overflow on 32-bit
// platforms.
func Uint32ToInt(v uint32) (int, error) {
	if uint64(v) > uint64(math.MaxInt) {
		return 0, fmt.Errorf("%d overflows int", v)
	}
	return int(v), nil
}
