package quaternion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexark/orient/vector"
)

func TestNewNormalizes(t *testing.T) {
	r, err := New(2, 0, 0, 0)
	require.NoError(t, err)
	a, b, c, d := r.At(0)
	assert.Equal(t, 1.0, a)
	assert.Equal(t, 0.0, b+c+d)

	_, err = New(0, 0, 0, 0)
	assert.ErrorIs(t, err, ErrZeroNorm)
}

func TestMul(t *testing.T) {
	// Two quarter turns about z compose to a half turn about z.
	z := vector.Single(0, 0, 1)
	quarter, err := FromAxisAngle(z, []float64{math.Pi / 2})
	require.NoError(t, err)

	half, err := quarter.Mul(quarter)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, half.Angle()[0], 1e-12)

	rotated, err := half.Rotate(vector.Single(1, 0, 0))
	require.NoError(t, err)
	got := rotated.Row(0)
	assert.InDelta(t, -1, got[0], 1e-12)
	assert.InDelta(t, 0, got[1], 1e-12)
	assert.InDelta(t, 0, got[2], 1e-12)
}

func TestMulNonCommutative(t *testing.T) {
	qx, err := FromAxisAngle(vector.Single(1, 0, 0), []float64{math.Pi / 2})
	require.NoError(t, err)
	qz, err := FromAxisAngle(vector.Single(0, 0, 1), []float64{math.Pi / 2})
	require.NoError(t, err)

	xz, err := qx.Mul(qz)
	require.NoError(t, err)
	zx, err := qz.Mul(qx)
	require.NoError(t, err)

	angle, err := xz.AngleWith(zx)
	require.NoError(t, err)
	assert.Greater(t, angle[0], 0.1)
}

func TestConjInverts(t *testing.T) {
	q, err := FromAxisAngle(vector.Single(1, 2, 3), []float64{0.7})
	require.NoError(t, err)

	id, err := q.Mul(q.Conj())
	require.NoError(t, err)
	assert.InDelta(t, 0, id.Angle()[0], 1e-12)

	// Rotation then inverse rotation restores the vector.
	v := vector.Single(0.3, -1.2, 2.5)
	rotated, err := q.Rotate(v)
	require.NoError(t, err)
	back, err := q.Conj().Rotate(rotated)
	require.NoError(t, err)
	want, got := v.Row(0), back.Row(0)
	for k := 0; k < 3; k++ {
		assert.InDelta(t, want[k], got[k], 1e-12)
	}
}

func TestRotatePreservesNorm(t *testing.T) {
	q, err := FromAxisAngle(vector.Single(1, 1, 0), []float64{1.1})
	require.NoError(t, err)
	v := vector.FromRows([][3]float64{{1, 2, 3}, {-4, 0, 1}})

	rotated, err := q.Rotate(v)
	require.NoError(t, err)
	for i, n := range v.Norm() {
		assert.InDelta(t, n, rotated.Norm()[i], 1e-12)
	}
}

func TestEulerRoundTrip(t *testing.T) {
	angles := [][3]float64{
		{0, 0, 0},
		{0.3, 0.7, 1.1},
		{2.1, 1.4, 0.2},
		{5.9, 3.0, 4.4},
	}
	r := FromEuler(angles)
	back := FromEuler(r.ToEuler())

	// Round-tripped Euler angles must describe the same rotations.
	diff, err := r.AngleWith(back)
	require.NoError(t, err)
	for _, a := range diff {
		assert.InDelta(t, 0, a, 1e-9)
	}
}

func TestEulerAgainstAxisAngle(t *testing.T) {
	// (phi1, 0, 0) is a rotation by phi1 about z.
	r := FromEuler([][3]float64{{1.2, 0, 0}})
	q, err := FromAxisAngle(vector.Single(0, 0, 1), []float64{1.2})
	require.NoError(t, err)

	a, err := r.AngleWith(q)
	require.NoError(t, err)
	assert.InDelta(t, 0, a[0], 1e-12)

	// (0, Phi, 0) is a rotation by Phi about x.
	r = FromEuler([][3]float64{{0, 0.8, 0}})
	q, err = FromAxisAngle(vector.Single(1, 0, 0), []float64{0.8})
	require.NoError(t, err)
	a, err = r.AngleWith(q)
	require.NoError(t, err)
	assert.InDelta(t, 0, a[0], 1e-12)
}

func TestMatrixRoundTrip(t *testing.T) {
	q, err := FromAxisAngle(vector.Single(1, -2, 0.5), []float64{0.9})
	require.NoError(t, err)

	m := q.ToMatrix()[0]
	back, err := FromMatrix(m)
	require.NoError(t, err)

	a, err := q.AngleWith(back)
	require.NoError(t, err)
	assert.InDelta(t, 0, a[0], 1e-9)
}

func TestFromMatrixRejectsImproper(t *testing.T) {
	// Reflection through the xy plane: determinant -1.
	_, err := FromMatrix([9]float64{1, 0, 0, 0, 1, 0, 0, 0, -1})
	var im *ErrImproperMatrix
	require.ErrorAs(t, err, &im)
	assert.InDelta(t, -1, im.Det, 1e-12)

	// Not orthogonal.
	_, err = FromMatrix([9]float64{1, 0.5, 0, 0, 1, 0, 0, 0, 1})
	assert.Error(t, err)
}

func TestAngle(t *testing.T) {
	q, err := FromAxisAngle(vector.Single(0, 1, 0), []float64{2.0})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, q.Angle()[0], 1e-12)

	// q and -q have the same angle.
	a, b, c, d := q.At(0)
	neg, err := New(-a, -b, -c, -d)
	require.NoError(t, err)
	assert.InDelta(t, q.Angle()[0], neg.Angle()[0], 1e-12)
}

func TestUniqueIgnoresSign(t *testing.T) {
	q, err := FromAxisAngle(vector.Single(0, 0, 1), []float64{1.0})
	require.NoError(t, err)
	a, b, c, d := q.At(0)
	neg, err := New(-a, -b, -c, -d)
	require.NoError(t, err)

	both := q.Concat(neg).Concat(Identity(1))
	u, idx := both.Unique()
	assert.Equal(t, 2, u.Len())
	assert.Equal(t, []int{0, 2}, idx)
}

func TestOuter(t *testing.T) {
	qs := Identity(1).Concat(mustAxisAngle(t, 0, 0, 1, math.Pi/2))
	v := vector.FromRows([][3]float64{{1, 0, 0}, {0, 1, 0}})

	out := qs.Outer(v)
	require.Equal(t, 4, out.Len())
	// Identity leaves vectors unchanged.
	assert.Equal(t, [3]float64{1, 0, 0}, out.Row(0))
	// Quarter turn about z maps x to y.
	got := out.Row(2)
	assert.InDelta(t, 0, got[0], 1e-12)
	assert.InDelta(t, 1, got[1], 1e-12)
}

func mustAxisAngle(t *testing.T, x, y, z, angle float64) *Rotation {
	t.Helper()
	q, err := FromAxisAngle(vector.Single(x, y, z), []float64{angle})
	require.NoError(t, err)
	return q
}
