package orientation

import (
	"math"

	"github.com/hexark/orient/quaternion"
	"github.com/hexark/orient/symmetry"
)

// equivalenceTolerance is the reduced angle below which two orientations
// are considered the same, in radians.
const equivalenceTolerance = 1e-6

// Orientation is a batch of rotations interpreted modulo a crystal
// symmetry group.
type Orientation struct {
	rot   *quaternion.Rotation
	group *symmetry.Group
}

// New wraps a rotation batch with a symmetry group. A nil group means
// triclinic "1" (no symmetry).
func New(rot *quaternion.Rotation, group *symmetry.Group) *Orientation {
	if group == nil {
		group = symmetry.C1
	}
	return &Orientation{rot: rot.Clone(), group: group}
}

// Len returns the number of orientations in the batch.
func (o *Orientation) Len() int { return o.rot.Len() }

// Rotation returns a copy of the underlying rotations. Attaching symmetry
// never changes the quaternion values.
func (o *Orientation) Rotation() *quaternion.Rotation { return o.rot.Clone() }

// Group returns the attached symmetry group.
func (o *Orientation) Group() *symmetry.Group { return o.group }

// Get returns orientation i as a single-element batch.
func (o *Orientation) Get(i int) *Orientation {
	return &Orientation{rot: o.rot.Get(i), group: o.group}
}

// Angle returns the symmetry-reduced rotation angle of each orientation:
// the minimum rotation angle over the coset {g·q : g ∈ G}. It is never
// larger than the raw quaternion angle.
func (o *Orientation) Angle() []float64 {
	ops := o.group.Rotations()
	out := make([]float64, o.Len())
	for i := range out {
		out[i] = reducedAngle(ops, o.rot.Get(i))
	}
	return out
}

func reducedAngle(ops *quaternion.Rotation, q *quaternion.Rotation) float64 {
	coset := ops.OuterMul(q)
	m := math.Pi
	for _, a := range coset.Angle() {
		if a < m {
			m = a
		}
	}
	return m
}

// AngleWith returns the misorientation angle between each broadcast pair,
// reduced over the symmetry group: min over g of angle(g · q1⁻¹ · q2).
func (o *Orientation) AngleWith(other *Orientation) ([]float64, error) {
	mis, err := o.rot.Conj().Mul(other.rot)
	if err != nil {
		return nil, err
	}
	ops := o.group.Rotations()
	out := make([]float64, mis.Len())
	for i := range out {
		out[i] = reducedAngle(ops, mis.Get(i))
	}
	return out, nil
}

// Equivalent reports, per broadcast pair, whether the two orientations are
// related by a symmetry operation.
func (o *Orientation) Equivalent(other *Orientation) ([]bool, error) {
	angles, err := o.AngleWith(other)
	if err != nil {
		return nil, err
	}
	out := make([]bool, len(angles))
	for i, a := range angles {
		out[i] = a < equivalenceTolerance
	}
	return out, nil
}

// InFundamentalZone reports, per orientation, whether the rotation is the
// minimal-angle representative of its coset. Exactly one member of each
// coset interior satisfies this, which is what grid sampling filters on.
func (o *Orientation) InFundamentalZone() []bool {
	ops := o.group.Rotations()
	raw := o.rot.Angle()
	out := make([]bool, o.Len())
	for i := range out {
		out[i] = raw[i] <= reducedAngle(ops, o.rot.Get(i))+equivalenceTolerance
	}
	return out
}

// Reduce maps each orientation to the minimal-angle representative of its
// coset, canonical under symmetry.
func (o *Orientation) Reduce() *Orientation {
	ops := o.group.Rotations()
	reduced := quaternion.Identity(0)
	for i := 0; i < o.Len(); i++ {
		coset := ops.OuterMul(o.rot.Get(i))
		angles := coset.Angle()
		best := 0
		for j, a := range angles {
			if a < angles[best] {
				best = j
			}
		}
		reduced = reduced.Concat(coset.Select([]int{best}))
	}
	return &Orientation{rot: reduced, group: o.group}
}
