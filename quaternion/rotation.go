package quaternion

import (
	"math"

	"github.com/hexark/orient/vector"
)

// tolerance used for uniqueness quantization and validity checks.
const tolerance = 1e-7

// Rotation is an ordered batch of unit quaternions representing proper
// rotations. Components are stored scalar-first (a, b, c, d).
//
// Rotation is not safe for concurrent mutation.
type Rotation struct {
	data []float64
}

// Identity returns a batch of n identity rotations.
func Identity(n int) *Rotation {
	r := &Rotation{data: make([]float64, 4*n)}
	for i := 0; i < n; i++ {
		r.data[4*i] = 1
	}
	return r
}

// New builds a single rotation from quaternion components, normalizing them.
func New(a, b, c, d float64) (*Rotation, error) {
	return FromComponents([]float64{a}, []float64{b}, []float64{c}, []float64{d})
}

// FromComponents builds a batch from parallel component slices, normalizing
// each quaternion. All slices must have equal length.
func FromComponents(a, b, c, d []float64) (*Rotation, error) {
	n := len(a)
	if len(b) != n || len(c) != n || len(d) != n {
		return nil, &ErrShapeMismatch{Left: n, Right: max3(len(b), len(c), len(d))}
	}
	r := &Rotation{data: make([]float64, 4*n)}
	for i := 0; i < n; i++ {
		norm := math.Sqrt(a[i]*a[i] + b[i]*b[i] + c[i]*c[i] + d[i]*d[i])
		if norm == 0 {
			return nil, ErrZeroNorm
		}
		r.data[4*i] = a[i] / norm
		r.data[4*i+1] = b[i] / norm
		r.data[4*i+2] = c[i] / norm
		r.data[4*i+3] = d[i] / norm
	}
	return r, nil
}

// FromFlat builds a batch from a flat abcd slice, normalizing each
// quaternion. The slice is not retained.
func FromFlat(abcd []float64) (*Rotation, error) {
	if len(abcd)%4 != 0 {
		return nil, ErrBadData
	}
	n := len(abcd) / 4
	a := make([]float64, n)
	b := make([]float64, n)
	c := make([]float64, n)
	d := make([]float64, n)
	for i := 0; i < n; i++ {
		a[i] = abcd[4*i]
		b[i] = abcd[4*i+1]
		c[i] = abcd[4*i+2]
		d[i] = abcd[4*i+3]
	}
	return FromComponents(a, b, c, d)
}

func max3(a, b, c int) int {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}

// Len returns the number of rotations in the batch.
func (r *Rotation) Len() int { return len(r.data) / 4 }

// At returns the quaternion components of rotation i.
func (r *Rotation) At(i int) (a, b, c, d float64) {
	return r.data[4*i], r.data[4*i+1], r.data[4*i+2], r.data[4*i+3]
}

// Get returns rotation i as a single-element batch.
func (r *Rotation) Get(i int) *Rotation {
	out := &Rotation{data: make([]float64, 4)}
	copy(out.data, r.data[4*i:4*i+4])
	return out
}

// A returns the scalar components.
func (r *Rotation) A() []float64 { return r.component(0) }

// B returns the first vector components.
func (r *Rotation) B() []float64 { return r.component(1) }

// C returns the second vector components.
func (r *Rotation) C() []float64 { return r.component(2) }

// D returns the third vector components.
func (r *Rotation) D() []float64 { return r.component(3) }

// Flat returns a copy of the abcd components as one contiguous slice,
// the layout FromFlat accepts.
func (r *Rotation) Flat() []float64 {
	out := make([]float64, len(r.data))
	copy(out, r.data)
	return out
}

func (r *Rotation) component(k int) []float64 {
	out := make([]float64, r.Len())
	for i := range out {
		out[i] = r.data[4*i+k]
	}
	return out
}

// Clone returns a deep copy of the batch.
func (r *Rotation) Clone() *Rotation {
	data := make([]float64, len(r.data))
	copy(data, r.data)
	return &Rotation{data: data}
}

// Concat returns a new batch holding the rotations of r followed by those of o.
func (r *Rotation) Concat(o *Rotation) *Rotation {
	data := make([]float64, 0, len(r.data)+len(o.data))
	data = append(data, r.data...)
	data = append(data, o.data...)
	return &Rotation{data: data}
}

// Select returns the rotations at the given indices, in order.
func (r *Rotation) Select(idx []int) *Rotation {
	out := &Rotation{data: make([]float64, 4*len(idx))}
	for i, j := range idx {
		copy(out.data[4*i:4*i+4], r.data[4*j:4*j+4])
	}
	return out
}

func broadcastLen(n, m int) (int, error) {
	switch {
	case n == m:
		return n, nil
	case n == 1:
		return m, nil
	case m == 1:
		return n, nil
	default:
		return 0, &ErrShapeMismatch{Left: n, Right: m}
	}
}

func (r *Rotation) pick(i int) (a, b, c, d float64) {
	if r.Len() == 1 {
		return r.At(0)
	}
	return r.At(i)
}

// Mul composes rotations pairwise: out[i] = r[i] * o[i], with singleton
// broadcasting. Composition is non-commutative.
func (r *Rotation) Mul(o *Rotation) (*Rotation, error) {
	n, err := broadcastLen(r.Len(), o.Len())
	if err != nil {
		return nil, err
	}
	out := &Rotation{data: make([]float64, 4*n)}
	for i := 0; i < n; i++ {
		a1, b1, c1, d1 := r.pick(i)
		a2, b2, c2, d2 := o.pick(i)
		out.data[4*i] = a1*a2 - b1*b2 - c1*c2 - d1*d2
		out.data[4*i+1] = a1*b2 + b1*a2 + c1*d2 - d1*c2
		out.data[4*i+2] = a1*c2 - b1*d2 + c1*a2 + d1*b2
		out.data[4*i+3] = a1*d2 + b1*c2 - c1*b2 + d1*a2
	}
	return out, nil
}

// OuterMul returns all pairwise compositions r[i] * o[j], flattened
// row-major (i varies slowest).
func (r *Rotation) OuterMul(o *Rotation) *Rotation {
	n, m := r.Len(), o.Len()
	out := &Rotation{data: make([]float64, 4*n*m)}
	for i := 0; i < n; i++ {
		a1, b1, c1, d1 := r.At(i)
		for j := 0; j < m; j++ {
			a2, b2, c2, d2 := o.At(j)
			k := 4 * (i*m + j)
			out.data[k] = a1*a2 - b1*b2 - c1*c2 - d1*d2
			out.data[k+1] = a1*b2 + b1*a2 + c1*d2 - d1*c2
			out.data[k+2] = a1*c2 - b1*d2 + c1*a2 + d1*b2
			out.data[k+3] = a1*d2 + b1*c2 - c1*b2 + d1*a2
		}
	}
	return out
}

// Conj returns the conjugate of each quaternion, the inverse rotation.
func (r *Rotation) Conj() *Rotation {
	out := r.Clone()
	for i := 0; i < out.Len(); i++ {
		out.data[4*i+1] = -out.data[4*i+1]
		out.data[4*i+2] = -out.data[4*i+2]
		out.data[4*i+3] = -out.data[4*i+3]
	}
	return out
}

// Inverse is an alias for Conj; unit quaternions invert by conjugation.
func (r *Rotation) Inverse() *Rotation { return r.Conj() }

// Rotate applies each rotation to the broadcast-matched vector: out[i] =
// r[i] v[i] r[i]*.
func (r *Rotation) Rotate(v *vector.Vector3d) (*vector.Vector3d, error) {
	n, err := broadcastLen(r.Len(), v.Len())
	if err != nil {
		return nil, &ErrShapeMismatch{Left: r.Len(), Right: v.Len()}
	}
	out := vector.New(n)
	for i := 0; i < n; i++ {
		a, b, c, d := r.pick(i)
		var row [3]float64
		if v.Len() == 1 {
			row = v.Row(0)
		} else {
			row = v.Row(i)
		}
		out.SetRow(i, rotateRow(a, b, c, d, row))
	}
	return out, nil
}

// Outer applies every rotation to every vector, flattened row-major with
// the rotation index varying slowest. The result has Len() == r.Len() *
// v.Len().
func (r *Rotation) Outer(v *vector.Vector3d) *vector.Vector3d {
	n, m := r.Len(), v.Len()
	out := vector.New(n * m)
	for i := 0; i < n; i++ {
		a, b, c, d := r.At(i)
		for j := 0; j < m; j++ {
			out.SetRow(i*m+j, rotateRow(a, b, c, d, v.Row(j)))
		}
	}
	return out
}

func rotateRow(a, b, c, d float64, v [3]float64) [3]float64 {
	x, y, z := v[0], v[1], v[2]
	return [3]float64{
		(a*a+b*b-c*c-d*d)*x + 2*(b*c-a*d)*y + 2*(b*d+a*c)*z,
		2*(b*c+a*d)*x + (a*a-b*b+c*c-d*d)*y + 2*(c*d-a*b)*z,
		2*(b*d-a*c)*x + 2*(c*d+a*b)*y + (a*a-b*b-c*c+d*d)*z,
	}
}

// Angle returns the rotation angle of each quaternion in [0, π].
func (r *Rotation) Angle() []float64 {
	out := make([]float64, r.Len())
	for i := range out {
		a, _, _, _ := r.At(i)
		out[i] = 2 * math.Acos(clamp(math.Abs(a), 0, 1))
	}
	return out
}

// Axis returns the rotation axis of each quaternion as unit vectors. The
// identity rotation reports the +z axis.
func (r *Rotation) Axis() *vector.Vector3d {
	out := vector.New(r.Len())
	for i := 0; i < r.Len(); i++ {
		a, b, c, d := r.At(i)
		if a < 0 {
			b, c, d = -b, -c, -d
		}
		n := math.Sqrt(b*b + c*c + d*d)
		if n < tolerance {
			out.SetRow(i, [3]float64{0, 0, 1})
			continue
		}
		out.SetRow(i, [3]float64{b / n, c / n, d / n})
	}
	return out
}

// Dot returns the pairwise quaternion dot products with broadcasting.
func (r *Rotation) Dot(o *Rotation) ([]float64, error) {
	n, err := broadcastLen(r.Len(), o.Len())
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		a1, b1, c1, d1 := r.pick(i)
		a2, b2, c2, d2 := o.pick(i)
		out[i] = a1*a2 + b1*b2 + c1*c2 + d1*d2
	}
	return out, nil
}

// AngleWith returns the misorientation angle between each broadcast pair,
// 2*acos(|q1 · q2|), in [0, π].
func (r *Rotation) AngleWith(o *Rotation) ([]float64, error) {
	dots, err := r.Dot(o)
	if err != nil {
		return nil, err
	}
	for i, dot := range dots {
		dots[i] = 2 * math.Acos(clamp(math.Abs(dot), 0, 1))
	}
	return dots, nil
}

// Unique returns the distinct rotations of the batch in first-seen order
// and, for each returned rotation, the index of its first occurrence.
// The quaternions q and -q collapse to one representative.
func (r *Rotation) Unique() (*Rotation, []int) {
	seen := make(map[[4]int64]struct{}, r.Len())
	keep := make([]int, 0, r.Len())
	for i := 0; i < r.Len(); i++ {
		k := quantize(canonical(r.At(i)))
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keep = append(keep, i)
	}
	return r.Select(keep), keep
}

// canonical flips the quaternion sign so the first component larger than
// the comparison tolerance is positive.
func canonical(a, b, c, d float64) (float64, float64, float64, float64) {
	for _, x := range [4]float64{a, b, c, d} {
		if x > tolerance {
			return a, b, c, d
		}
		if x < -tolerance {
			return -a, -b, -c, -d
		}
	}
	return a, b, c, d
}

func quantize(a, b, c, d float64) [4]int64 {
	return [4]int64{
		int64(math.Round(a / tolerance)),
		int64(math.Round(b / tolerance)),
		int64(math.Round(c / tolerance)),
		int64(math.Round(d / tolerance)),
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
