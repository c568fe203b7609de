package miller

import (
	"errors"
	"fmt"
	"math"

	"github.com/hexark/orient/phase"
	"github.com/hexark/orient/symmetry"
	"github.com/hexark/orient/vector"
)

// Format identifies the coordinate convention of a Miller batch.
type Format string

// Coordinate formats.
const (
	XYZ  Format = "xyz"
	UVW  Format = "uvw"
	UVTW Format = "UVTW"
	HKL  Format = "hkl"
	HKIL Format = "hkil"
)

// zeroSumTolerance bounds the allowed violation of the 4-index zero-sum
// convention on input.
const zeroSumTolerance = 1e-4

var (
	// ErrNoLattice is returned when lattice coordinates are used with a
	// phase that has no lattice attached.
	ErrNoLattice = errors.New("phase has no lattice")
	// ErrZeroSum is returned when the first three components of a 4-index
	// input do not sum to zero.
	ErrZeroSum = errors.New("first three Miller-Bravais indices must sum to zero")
)

// ErrBadFormat indicates an unrecognized coordinate format.
type ErrBadFormat struct {
	Format Format
}

func (e *ErrBadFormat) Error() string {
	return fmt.Sprintf("unknown coordinate format %q", e.Format)
}

// Miller is a batch of crystal lattice vectors expressed relative to a
// phase. The canonical storage is Cartesian.
type Miller struct {
	vec    *vector.Vector3d
	phase  *phase.Phase
	format Format
}

// FromXYZ wraps Cartesian vectors. The phase supplies symmetry context.
func FromXYZ(p *phase.Phase, v *vector.Vector3d) *Miller {
	return &Miller{vec: v.Clone(), phase: p, format: XYZ}
}

// FromUVW builds direct lattice vectors from uvw index triplets.
func FromUVW(p *phase.Phase, uvw [][3]float64) (*Miller, error) {
	if p.Lattice() == nil {
		return nil, ErrNoLattice
	}
	v := vector.New(len(uvw))
	for i, idx := range uvw {
		v.SetRow(i, p.Lattice().CartesianFromDirect(idx))
	}
	return &Miller{vec: v, phase: p, format: UVW}, nil
}

// FromUVTW builds direct lattice vectors from 4-index Weber symbols.
func FromUVTW(p *phase.Phase, uvtw [][4]float64) (*Miller, error) {
	uvw := make([][3]float64, len(uvtw))
	for i, idx := range uvtw {
		if math.Abs(idx[0]+idx[1]+idx[2]) > zeroSumTolerance {
			return nil, ErrZeroSum
		}
		uvw[i] = weberToUVW(idx)
	}
	m, err := FromUVW(p, uvw)
	if err != nil {
		return nil, err
	}
	m.format = UVTW
	return m, nil
}

// FromHKL builds reciprocal lattice vectors (plane normals) from hkl
// index triplets.
func FromHKL(p *phase.Phase, hkl [][3]float64) (*Miller, error) {
	if p.Lattice() == nil {
		return nil, ErrNoLattice
	}
	v := vector.New(len(hkl))
	for i, idx := range hkl {
		v.SetRow(i, p.Lattice().CartesianFromReciprocal(idx))
	}
	return &Miller{vec: v, phase: p, format: HKL}, nil
}

// FromHKIL builds reciprocal lattice vectors from 4-index Miller-Bravais
// quartets.
func FromHKIL(p *phase.Phase, hkil [][4]float64) (*Miller, error) {
	hkl := make([][3]float64, len(hkil))
	for i, idx := range hkil {
		if math.Abs(idx[0]+idx[1]+idx[2]) > zeroSumTolerance {
			return nil, ErrZeroSum
		}
		hkl[i] = [3]float64{idx[0], idx[1], idx[3]}
	}
	m, err := FromHKL(p, hkl)
	if err != nil {
		return nil, err
	}
	m.format = HKIL
	return m, nil
}

// Len returns the number of vectors in the batch.
func (m *Miller) Len() int { return m.vec.Len() }

// Phase returns the attached phase.
func (m *Miller) Phase() *phase.Phase { return m.phase }

// Format returns the coordinate format.
func (m *Miller) Format() Format { return m.format }

// Vector returns a copy of the canonical Cartesian vectors.
func (m *Miller) Vector() *vector.Vector3d { return m.vec.Clone() }

// WithFormat returns the same vectors re-expressed under another format.
// This never changes the Cartesian data.
func (m *Miller) WithFormat(f Format) (*Miller, error) {
	switch f {
	case XYZ, UVW, UVTW, HKL, HKIL:
		return &Miller{vec: m.vec.Clone(), phase: m.phase, format: f}, nil
	default:
		return nil, &ErrBadFormat{Format: f}
	}
}

// UVWs returns the direct lattice coordinates of each vector.
func (m *Miller) UVWs() [][3]float64 {
	out := make([][3]float64, m.Len())
	for i := range out {
		out[i] = m.phase.Lattice().DirectFromCartesian(m.vec.Row(i))
	}
	return out
}

// UVTWs returns the 4-index Weber symbols of each vector.
func (m *Miller) UVTWs() [][4]float64 {
	uvw := m.UVWs()
	out := make([][4]float64, len(uvw))
	for i, idx := range uvw {
		out[i] = uvwToWeber(idx)
	}
	return out
}

// HKLs returns the reciprocal lattice coordinates of each vector.
func (m *Miller) HKLs() [][3]float64 {
	out := make([][3]float64, m.Len())
	for i := range out {
		out[i] = m.phase.Lattice().ReciprocalFromCartesian(m.vec.Row(i))
	}
	return out
}

// HKILs returns the 4-index Miller-Bravais coordinates of each vector.
func (m *Miller) HKILs() [][4]float64 {
	hkl := m.HKLs()
	out := make([][4]float64, len(hkl))
	for i, idx := range hkl {
		out[i] = [4]float64{idx[0], idx[1], -(idx[0] + idx[1]), idx[2]}
	}
	return out
}

// Coordinates returns the coordinates of each vector in the batch's
// format: 3 columns for xyz/uvw/hkl, 4 for UVTW/hkil.
func (m *Miller) Coordinates() [][]float64 {
	switch m.format {
	case UVW:
		return widen3(m.UVWs())
	case UVTW:
		return widen4(m.UVTWs())
	case HKL:
		return widen3(m.HKLs())
	case HKIL:
		return widen4(m.HKILs())
	default:
		return widen3(toRows(m.vec))
	}
}

func toRows(v *vector.Vector3d) [][3]float64 { return v.Rows() }

func widen3(rows [][3]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = []float64{r[0], r[1], r[2]}
	}
	return out
}

func widen4(rows [][4]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = []float64{r[0], r[1], r[2], r[3]}
	}
	return out
}

// DeGraef convention Weber symbols.
func uvwToWeber(uvw [3]float64) [4]float64 {
	u, v, w := uvw[0], uvw[1], uvw[2]
	return [4]float64{(2*u - v) / 3, (2*v - u) / 3, -(u + v) / 3, w}
}

func weberToUVW(uvtw [4]float64) [3]float64 {
	U, V, W := uvtw[0], uvtw[1], uvtw[3]
	return [3]float64{2*U + V, U + 2*V, W}
}

// Length returns the length of each vector: in lattice units for direct
// formats, inverse lattice units for reciprocal formats, and the plain
// Cartesian norm for xyz.
func (m *Miller) Length() []float64 {
	switch m.format {
	case UVW, UVTW:
		out := make([]float64, m.Len())
		for i, idx := range m.UVWs() {
			out[i] = m.phase.Lattice().Norm(idx)
		}
		return out
	case HKL, HKIL:
		out := make([]float64, m.Len())
		for i, idx := range m.HKLs() {
			out[i] = m.phase.Lattice().RNorm(idx)
		}
		return out
	default:
		return m.vec.Norm()
	}
}

// Unit returns unit vectors in the same format.
func (m *Miller) Unit() *Miller {
	return &Miller{vec: m.vec.Unit(), phase: m.phase, format: m.format}
}

// Cross returns the pairwise cross products. Crossing direct vectors
// yields reciprocal ones (the common plane) and vice versa (the zone
// axis), so the result format flips space.
func (m *Miller) Cross(o *Miller) (*Miller, error) {
	v, err := m.vec.Cross(o.vec)
	if err != nil {
		return nil, err
	}
	flipped := map[Format]Format{UVW: HKL, HKL: UVW, UVTW: HKIL, HKIL: UVTW, XYZ: XYZ}
	return &Miller{vec: v, phase: m.phase, format: flipped[m.format]}, nil
}

// AngleOptions controls AngleWith.
type AngleOptions struct {
	// UseSymmetry minimizes each angle over the symmetry orbit of the
	// second vector.
	UseSymmetry bool
}

// AngleWith returns the angle between each broadcast pair in [0, π].
// With UseSymmetry, the minimum angle to any symmetry-equivalent of the
// second vector is returned instead; it is never larger than the raw
// angle.
func (m *Miller) AngleWith(o *Miller, opts AngleOptions) ([]float64, error) {
	if !opts.UseSymmetry {
		return m.vec.AngleWith(o.vec)
	}
	return m.group().ReducedAngle(m.vec, o.vec)
}

func (m *Miller) group() *symmetry.Group {
	if g := m.phase.PointGroup(); g != nil {
		return g
	}
	return symmetry.C1
}

// SymmetriseOptions controls Symmetrise.
type SymmetriseOptions struct {
	// Unique deduplicates each vector's orbit to distinct directions.
	Unique bool
}

// SymmetriseResult carries the symmetry orbit of a Miller batch.
type SymmetriseResult struct {
	// Vectors holds the orbit members, in the source batch's format.
	Vectors *Miller
	// Multiplicity[i] counts the distinct orbit members of input i; only
	// populated when Unique was requested.
	Multiplicity []int
	// Index[j] is the input index that produced output j.
	Index []int
}

// Symmetrise returns the vectors symmetrically equivalent to each input
// under the phase's point group.
func (m *Miller) Symmetrise(opts SymmetriseOptions) *SymmetriseResult {
	res := m.group().Symmetrise(m.vec, symmetry.SymmetriseOptions{Unique: opts.Unique})
	return &SymmetriseResult{
		Vectors:      &Miller{vec: res.Vectors, phase: m.phase, format: m.format},
		Multiplicity: res.Multiplicity,
		Index:        res.Index,
	}
}

// Multiplicity returns the number of symmetrically equivalent directions
// per vector.
func (m *Miller) Multiplicity() []int {
	return m.group().Multiplicity(m.vec)
}

// UniqueOptions controls Unique.
type UniqueOptions struct {
	// UseSymmetry collapses vectors related by a point-group operation.
	UseSymmetry bool
}

// Unique returns the distinct vectors of the batch in first-seen order
// and the index of each survivor's first occurrence.
func (m *Miller) Unique(opts UniqueOptions) (*Miller, []int) {
	if !opts.UseSymmetry {
		v, idx := m.vec.Unique(vector.UniqueOptions{})
		return &Miller{vec: v, phase: m.phase, format: m.format}, idx
	}

	// Two vectors are symmetry-equivalent iff their orbits coincide as
	// sets; the sorted quantized orbit is a canonical signature.
	seen := make(map[string]struct{}, m.Len())
	keep := make([]int, 0, m.Len())
	for i := 0; i < m.Len(); i++ {
		orbit := m.group().Orbit(m.vec.Select([]int{i}))
		sig := orbitSignature(orbit)
		if _, ok := seen[sig]; ok {
			continue
		}
		seen[sig] = struct{}{}
		keep = append(keep, i)
	}
	return &Miller{vec: m.vec.Select(keep), phase: m.phase, format: m.format}, keep
}
