package vector

import (
	"errors"
	"fmt"
)

// ErrBadData is returned when raw input cannot form whole 3-vectors.
var ErrBadData = errors.New("data length must be a multiple of 3")

// ErrShapeMismatch indicates two batches that cannot be broadcast together.
//
// Batches broadcast when their lengths are equal or one of them is 1.
type ErrShapeMismatch struct {
	Left  int
	Right int
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("shape mismatch: cannot broadcast %d against %d vectors", e.Left, e.Right)
}
