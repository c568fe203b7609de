package symmetry

import (
	"errors"
	"fmt"
	"math"

	"github.com/hexark/orient/quaternion"
	"github.com/hexark/orient/vector"
)

// ErrUnknownGroup is returned when a point-group symbol does not resolve.
var ErrUnknownGroup = errors.New("unknown point group")

// ErrSpaceGroupRange indicates a space-group number outside 1-230.
type ErrSpaceGroupRange struct {
	Number int
}

func (e *ErrSpaceGroupRange) Error() string {
	return fmt.Sprintf("space group number %d outside 1-230", e.Number)
}

// Group is a finite ordered set of proper rotations leaving a crystal
// lattice invariant. Groups are immutable; the package-level groups are
// safe for concurrent use.
type Group struct {
	name string
	rots *quaternion.Rotation
}

// Name returns the group's Schoenflies-style name (e.g. "m-3m" resolves to
// the group named "432").
func (g *Group) Name() string { return g.name }

// Size returns the number of rotations in the group, the order of the group.
func (g *Group) Size() int { return g.rots.Len() }

// Rotations returns a copy of the group's rotations.
func (g *Group) Rotations() *quaternion.Rotation { return g.rots.Clone() }

// Contains reports whether q (a single rotation) is a group operation,
// within rounding tolerance.
func (g *Group) Contains(q *quaternion.Rotation) bool {
	angles, err := g.rots.AngleWith(q)
	if err != nil {
		return false
	}
	for _, a := range angles {
		if a < 1e-6 {
			return true
		}
	}
	return false
}

// Orbit applies every group operation to every vector: the full symmetry
// orbit, flattened with the operation index varying slowest.
func (g *Group) Orbit(v *vector.Vector3d) *vector.Vector3d {
	return g.rots.Outer(v)
}

// SymmetriseOptions controls Symmetrise.
type SymmetriseOptions struct {
	// Unique deduplicates the orbit of each input vector to distinct
	// directions (within rounding tolerance) before concatenation.
	Unique bool
}

// SymmetriseResult carries the orbit of a vector batch under a group.
type SymmetriseResult struct {
	// Vectors holds the (optionally deduplicated) orbit members, grouped by
	// input vector.
	Vectors *vector.Vector3d
	// Multiplicity[i] is the number of distinct orbit members of input i.
	// Only populated when Unique was requested.
	Multiplicity []int
	// Index[j] is the input vector index that produced output j.
	Index []int
}

// Symmetrise returns the symmetry-equivalent vectors of each input.
//
// Without Unique, the result holds Size()*v.Len() vectors ordered with the
// group operation varying slowest, matching Orbit. With Unique, the orbit
// of each input is reduced to its distinct members and results are grouped
// per input vector, so Multiplicity[i] members of input i appear
// consecutively.
func (g *Group) Symmetrise(v *vector.Vector3d, opts SymmetriseOptions) *SymmetriseResult {
	n := v.Len()
	order := g.Size()

	if !opts.Unique {
		idx := make([]int, order*n)
		for i := range idx {
			idx[i] = i % n
		}
		return &SymmetriseResult{Vectors: g.Orbit(v), Index: idx}
	}

	out := vector.New(0)
	mult := make([]int, n)
	var idx []int
	for i := 0; i < n; i++ {
		orbit := g.Orbit(v.Select([]int{i}))
		uniq, _ := orbit.Unique(vector.UniqueOptions{})
		out = out.Concat(uniq)
		mult[i] = uniq.Len()
		for k := 0; k < uniq.Len(); k++ {
			idx = append(idx, i)
		}
	}
	return &SymmetriseResult{Vectors: out, Multiplicity: mult, Index: idx}
}

// Multiplicity returns the number of distinct orbit members per input vector.
func (g *Group) Multiplicity(v *vector.Vector3d) []int {
	return g.Symmetrise(v, SymmetriseOptions{Unique: true}).Multiplicity
}

// ReducedAngle returns, per broadcast pair, the minimum angle between a and
// any symmetry-equivalent of b. It is never larger than the raw angle.
func (g *Group) ReducedAngle(a, b *vector.Vector3d) ([]float64, error) {
	n := a.Len()
	if b.Len() != n && a.Len() != 1 && b.Len() != 1 {
		return nil, &vector.ErrShapeMismatch{Left: a.Len(), Right: b.Len()}
	}
	if b.Len() > n {
		n = b.Len()
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		ai := i
		if a.Len() == 1 {
			ai = 0
		}
		bi := i
		if b.Len() == 1 {
			bi = 0
		}
		orbit := g.Orbit(b.Select([]int{bi}))
		angles, err := a.Select([]int{ai}).AngleWith(orbit)
		if err != nil {
			return nil, err
		}
		m := math.Pi
		for _, ang := range angles {
			if ang < m {
				m = ang
			}
		}
		out[i] = m
	}
	return out, nil
}
