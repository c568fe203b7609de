package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcast(t *testing.T) {
	t.Run("ElementwiseDot", func(t *testing.T) {
		a := FromRows([][3]float64{{1, 0, 0}, {0, 2, 0}})
		b := FromRows([][3]float64{{1, 0, 0}, {0, 1, 1}})

		d, err := a.Dot(b)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2}, d)
	})

	t.Run("SingletonBroadcast", func(t *testing.T) {
		a := FromRows([][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}})
		b := Single(1, 1, 1)

		d, err := a.Dot(b)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 1, 1}, d)
	})

	t.Run("ShapeMismatch", func(t *testing.T) {
		a := New(2)
		b := New(3)

		_, err := a.Dot(b)
		var sm *ErrShapeMismatch
		require.ErrorAs(t, err, &sm)
		assert.Equal(t, 2, sm.Left)
		assert.Equal(t, 3, sm.Right)
	})
}

func TestZerosAndOnes(t *testing.T) {
	z := New(2)
	assert.Equal(t, [3]float64{0, 0, 0}, z.Row(0))
	assert.Equal(t, [3]float64{0, 0, 0}, z.Row(1))

	o := Ones(2)
	assert.Equal(t, [3]float64{1, 1, 1}, o.Row(0))
	assert.Equal(t, [3]float64{1, 1, 1}, o.Row(1))
	assert.Equal(t, 2, o.Len())
}

func TestCross(t *testing.T) {
	a := Single(1, 0, 0)
	b := Single(0, 1, 0)

	c, err := a.Cross(b)
	require.NoError(t, err)
	assert.Equal(t, [3]float64{0, 0, 1}, c.Row(0))

	// Anti-commutative.
	c2, err := b.Cross(a)
	require.NoError(t, err)
	assert.Equal(t, [3]float64{0, 0, -1}, c2.Row(0))
}

func TestNormAndUnit(t *testing.T) {
	v := FromRows([][3]float64{{3, 4, 0}, {0, 0, 0}})

	n := v.Norm()
	assert.InDelta(t, 5.0, n[0], 1e-12)
	assert.Equal(t, 0.0, n[1])

	u := v.Unit()
	assert.InDelta(t, 1.0, u.Norm()[0], 1e-12)
	// Zero vector stays zero instead of becoming NaN.
	assert.Equal(t, [3]float64{0, 0, 0}, u.Row(1))
}

func TestAngleWith(t *testing.T) {
	a := Single(1, 0, 0)

	angles, err := a.AngleWith(Single(0, 1, 0))
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, angles[0], 1e-12)

	angles, err = a.AngleWith(Single(-1, 0, 0))
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, angles[0], 1e-12)

	// Parallel vectors with rounding noise must clamp, not NaN.
	angles, err = a.AngleWith(Single(1+1e-16, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 0.0, angles[0])
}

func TestSpherical(t *testing.T) {
	v := FromRows([][3]float64{{0, 0, 1}, {1, 1, 0}})

	polar := v.Polar()
	assert.InDelta(t, 0.0, polar[0], 1e-12)
	assert.InDelta(t, math.Pi/2, polar[1], 1e-12)

	az := v.Azimuth()
	assert.InDelta(t, math.Pi/4, az[1], 1e-12)

	back, err := FromPolar(az, polar)
	require.NoError(t, err)
	unit := v.Unit()
	for i := 0; i < v.Len(); i++ {
		want, got := unit.Row(i), back.Row(i)
		for k := 0; k < 3; k++ {
			assert.InDelta(t, want[k], got[k], 1e-12)
		}
	}
}

func TestUnique(t *testing.T) {
	t.Run("ExactDuplicates", func(t *testing.T) {
		v := FromRows([][3]float64{{1, 0, 0}, {0, 1, 0}, {1, 0, 0}})

		u, idx := v.Unique(UniqueOptions{})
		assert.Equal(t, 2, u.Len())
		assert.Equal(t, []int{0, 1}, idx)
	})

	t.Run("RoundingNoise", func(t *testing.T) {
		v := FromRows([][3]float64{{1, 0, 0}, {1 + 1e-12, -1e-13, 0}})

		u, _ := v.Unique(UniqueOptions{})
		assert.Equal(t, 1, u.Len())
	})

	t.Run("IgnoreSign", func(t *testing.T) {
		v := FromRows([][3]float64{{1, 0, 0}, {-1, 0, 0}, {0, 0, -1}, {0, 0, 1}})

		u, _ := v.Unique(UniqueOptions{IgnoreSign: true})
		assert.Equal(t, 2, u.Len())
	})
}

func TestMean(t *testing.T) {
	v := FromRows([][3]float64{{1, 0, 0}, {0, 1, 0}})
	m := v.Mean()
	require.Equal(t, 1, m.Len())
	assert.Equal(t, [3]float64{0.5, 0.5, 0}, m.Row(0))
}

func TestFromSlice(t *testing.T) {
	_, err := FromSlice([]float64{1, 2})
	assert.ErrorIs(t, err, ErrBadData)

	v, err := FromSlice([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, [3]float64{4, 5, 6}, v.Row(1))
}

func TestSelectAndConcat(t *testing.T) {
	v := FromRows([][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}})

	s := v.Select([]int{2, 0})
	assert.Equal(t, [3]float64{0, 0, 1}, s.Row(0))
	assert.Equal(t, [3]float64{1, 0, 0}, s.Row(1))

	c := s.Concat(v)
	assert.Equal(t, 5, c.Len())
}
