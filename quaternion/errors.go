package quaternion

import (
	"errors"
	"fmt"
)

// ErrZeroNorm is returned when a quaternion with zero norm is normalized.
var ErrZeroNorm = errors.New("quaternion has zero norm")

// ErrBadData is returned when raw input cannot form whole quaternions.
var ErrBadData = errors.New("data length must be a multiple of 4")

// ErrShapeMismatch indicates two batches that cannot be broadcast together.
type ErrShapeMismatch struct {
	Left  int
	Right int
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("shape mismatch: cannot broadcast %d against %d rotations", e.Left, e.Right)
}

// ErrImproperMatrix indicates a matrix that is not a proper rotation
// (not orthogonal, or with determinant -1).
type ErrImproperMatrix struct {
	Det float64
}

func (e *ErrImproperMatrix) Error() string {
	return fmt.Sprintf("matrix is not a proper rotation (det %.6f)", e.Det)
}
