package vector

import (
	"math"
)

// tolerance used when quantizing coordinates for uniqueness comparisons.
// Chosen to match single-precision display rounding used upstream of most
// EBSD pipelines.
const tolerance = 1e-7

// Vector3d is an ordered batch of 3D Cartesian vectors.
//
// The zero value is an empty batch. Vector3d is not safe for concurrent
// mutation.
type Vector3d struct {
	data []float64
}

// New returns a batch of n zero vectors.
func New(n int) *Vector3d {
	return &Vector3d{data: make([]float64, 3*n)}
}

// Ones returns a batch of n vectors with every component set to one.
func Ones(n int) *Vector3d {
	v := New(n)
	for i := range v.data {
		v.data[i] = 1
	}
	return v
}

// Single returns a batch holding one vector.
func Single(x, y, z float64) *Vector3d {
	return &Vector3d{data: []float64{x, y, z}}
}

// FromSlice wraps a flat xyz slice as a batch. The slice is copied.
func FromSlice(xyz []float64) (*Vector3d, error) {
	if len(xyz)%3 != 0 {
		return nil, ErrBadData
	}
	data := make([]float64, len(xyz))
	copy(data, xyz)
	return &Vector3d{data: data}, nil
}

// FromRows builds a batch from per-vector rows.
func FromRows(rows [][3]float64) *Vector3d {
	v := New(len(rows))
	for i, r := range rows {
		v.data[3*i] = r[0]
		v.data[3*i+1] = r[1]
		v.data[3*i+2] = r[2]
	}
	return v
}

// FromPolar builds unit vectors from spherical coordinates. The azimuth is
// measured from +x in the xy plane, the polar angle from +z. Both are in
// radians and must have equal length.
func FromPolar(azimuth, polar []float64) (*Vector3d, error) {
	if len(azimuth) != len(polar) {
		return nil, &ErrShapeMismatch{Left: len(azimuth), Right: len(polar)}
	}
	v := New(len(azimuth))
	for i := range azimuth {
		sp := math.Sin(polar[i])
		v.data[3*i] = math.Cos(azimuth[i]) * sp
		v.data[3*i+1] = math.Sin(azimuth[i]) * sp
		v.data[3*i+2] = math.Cos(polar[i])
	}
	return v, nil
}

// Len returns the number of vectors in the batch.
func (v *Vector3d) Len() int { return len(v.data) / 3 }

// Row returns vector i.
func (v *Vector3d) Row(i int) [3]float64 {
	return [3]float64{v.data[3*i], v.data[3*i+1], v.data[3*i+2]}
}

// SetRow overwrites vector i.
func (v *Vector3d) SetRow(i int, r [3]float64) {
	v.data[3*i] = r[0]
	v.data[3*i+1] = r[1]
	v.data[3*i+2] = r[2]
}

// Rows returns a copy of the batch as per-vector rows.
func (v *Vector3d) Rows() [][3]float64 {
	rows := make([][3]float64, v.Len())
	for i := range rows {
		rows[i] = v.Row(i)
	}
	return rows
}

// Flat returns a copy of the underlying flat xyz slice.
func (v *Vector3d) Flat() []float64 {
	out := make([]float64, len(v.data))
	copy(out, v.data)
	return out
}

// X returns the x components.
func (v *Vector3d) X() []float64 { return v.component(0) }

// Y returns the y components.
func (v *Vector3d) Y() []float64 { return v.component(1) }

// Z returns the z components.
func (v *Vector3d) Z() []float64 { return v.component(2) }

func (v *Vector3d) component(k int) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.data[3*i+k]
	}
	return out
}

// Clone returns a deep copy of the batch.
func (v *Vector3d) Clone() *Vector3d {
	data := make([]float64, len(v.data))
	copy(data, v.data)
	return &Vector3d{data: data}
}

// Concat returns a new batch holding the vectors of v followed by those of o.
func (v *Vector3d) Concat(o *Vector3d) *Vector3d {
	data := make([]float64, 0, len(v.data)+len(o.data))
	data = append(data, v.data...)
	data = append(data, o.data...)
	return &Vector3d{data: data}
}

// Select returns the vectors at the given indices, in order.
func (v *Vector3d) Select(idx []int) *Vector3d {
	out := New(len(idx))
	for i, j := range idx {
		out.SetRow(i, v.Row(j))
	}
	return out
}

// broadcastLen resolves the output length of a binary elementwise operation.
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

func pick(v *Vector3d, i int) [3]float64 {
	if v.Len() == 1 {
		return v.Row(0)
	}
	return v.Row(i)
}

// Dot returns the elementwise dot products of two broadcastable batches.
func (v *Vector3d) Dot(o *Vector3d) ([]float64, error) {
	n, err := broadcastLen(v.Len(), o.Len())
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		a, b := pick(v, i), pick(o, i)
		out[i] = a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
	}
	return out, nil
}

// DotOuter returns the full n×m table of dot products.
func (v *Vector3d) DotOuter(o *Vector3d) [][]float64 {
	out := make([][]float64, v.Len())
	for i := range out {
		a := v.Row(i)
		row := make([]float64, o.Len())
		for j := range row {
			b := o.Row(j)
			row[j] = a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
		}
		out[i] = row
	}
	return out
}

// Cross returns the elementwise cross products of two broadcastable batches.
func (v *Vector3d) Cross(o *Vector3d) (*Vector3d, error) {
	n, err := broadcastLen(v.Len(), o.Len())
	if err != nil {
		return nil, err
	}
	out := New(n)
	for i := 0; i < n; i++ {
		a, b := pick(v, i), pick(o, i)
		out.SetRow(i, [3]float64{
			a[1]*b[2] - a[2]*b[1],
			a[2]*b[0] - a[0]*b[2],
			a[0]*b[1] - a[1]*b[0],
		})
	}
	return out, nil
}

// Add returns the elementwise sums of two broadcastable batches.
func (v *Vector3d) Add(o *Vector3d) (*Vector3d, error) {
	return v.zipped(o, func(a, b float64) float64 { return a + b })
}

// Sub returns the elementwise differences of two broadcastable batches.
func (v *Vector3d) Sub(o *Vector3d) (*Vector3d, error) {
	return v.zipped(o, func(a, b float64) float64 { return a - b })
}

func (v *Vector3d) zipped(o *Vector3d, f func(a, b float64) float64) (*Vector3d, error) {
	n, err := broadcastLen(v.Len(), o.Len())
	if err != nil {
		return nil, err
	}
	out := New(n)
	for i := 0; i < n; i++ {
		a, b := pick(v, i), pick(o, i)
		out.SetRow(i, [3]float64{f(a[0], b[0]), f(a[1], b[1]), f(a[2], b[2])})
	}
	return out, nil
}

// Scale returns the batch with every component multiplied by s.
func (v *Vector3d) Scale(s float64) *Vector3d {
	out := New(v.Len())
	for i, x := range v.data {
		out.data[i] = x * s
	}
	return out
}

// Neg returns the batch with every vector negated.
func (v *Vector3d) Neg() *Vector3d { return v.Scale(-1) }

// Norm returns the Euclidean norm of each vector.
func (v *Vector3d) Norm() []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		r := v.Row(i)
		out[i] = math.Sqrt(r[0]*r[0] + r[1]*r[1] + r[2]*r[2])
	}
	return out
}

// Unit returns unit vectors. Zero vectors are left as zero.
func (v *Vector3d) Unit() *Vector3d {
	out := v.Clone()
	for i := 0; i < out.Len(); i++ {
		r := out.Row(i)
		n := math.Sqrt(r[0]*r[0] + r[1]*r[1] + r[2]*r[2])
		if n == 0 {
			continue
		}
		out.SetRow(i, [3]float64{r[0] / n, r[1] / n, r[2] / n})
	}
	return out
}

// Mean returns the arithmetic mean of the batch as a single vector.
func (v *Vector3d) Mean() *Vector3d {
	n := v.Len()
	if n == 0 {
		return New(0)
	}
	var sx, sy, sz float64
	for i := 0; i < n; i++ {
		r := v.Row(i)
		sx += r[0]
		sy += r[1]
		sz += r[2]
	}
	fn := float64(n)
	return Single(sx/fn, sy/fn, sz/fn)
}

// AngleWith returns the angle in [0, π] between each broadcast pair.
func (v *Vector3d) AngleWith(o *Vector3d) ([]float64, error) {
	n, err := broadcastLen(v.Len(), o.Len())
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		a, b := pick(v, i), pick(o, i)
		out[i] = angleBetween(a, b)
	}
	return out, nil
}

func angleBetween(a, b [3]float64) float64 {
	na := math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
	nb := math.Sqrt(b[0]*b[0] + b[1]*b[1] + b[2]*b[2])
	if na == 0 || nb == 0 {
		return 0
	}
	c := (a[0]*b[0] + a[1]*b[1] + a[2]*b[2]) / (na * nb)
	return math.Acos(clamp(c, -1, 1))
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

// Azimuth returns the azimuthal spherical coordinate of each vector,
// measured from +x in the xy plane, in (-π, π].
func (v *Vector3d) Azimuth() []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		r := v.Row(i)
		out[i] = math.Atan2(r[1], r[0])
	}
	return out
}

// Polar returns the polar spherical coordinate of each vector, measured
// from +z, in [0, π]. Zero vectors report 0.
func (v *Vector3d) Polar() []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		r := v.Row(i)
		n := math.Sqrt(r[0]*r[0] + r[1]*r[1] + r[2]*r[2])
		if n == 0 {
			continue
		}
		out[i] = math.Acos(clamp(r[2]/n, -1, 1))
	}
	return out
}

// UniqueOptions controls Unique.
type UniqueOptions struct {
	// IgnoreSign treats v and -v as the same direction.
	IgnoreSign bool
}

// Unique returns the distinct vectors of the batch in first-seen order and,
// for each returned vector, the index of its first occurrence.
//
// Comparison quantizes coordinates, so values within rounding error of each
// other collapse to one representative.
func (v *Vector3d) Unique(opts UniqueOptions) (*Vector3d, []int) {
	seen := make(map[[3]int64]struct{}, v.Len())
	keep := make([]int, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		r := v.Row(i)
		if opts.IgnoreSign {
			r = canonicalSign(r)
		}
		k := quantize(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keep = append(keep, i)
	}
	return v.Select(keep), keep
}

func quantize(r [3]float64) [3]int64 {
	var k [3]int64
	for i, x := range r {
		q := math.Round(x / tolerance)
		if q == 0 {
			q = 0 // normalize -0
		}
		k[i] = int64(q)
	}
	return k
}

// canonicalSign flips a vector so its first component larger than the
// comparison tolerance is positive.
func canonicalSign(r [3]float64) [3]float64 {
	for _, x := range r {
		if x > tolerance {
			return r
		}
		if x < -tolerance {
			return [3]float64{-r[0], -r[1], -r[2]}
		}
	}
	return r
}
