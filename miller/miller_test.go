package miller

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexark/orient/lattice"
	"github.com/hexark/orient/phase"
	"github.com/hexark/orient/vector"
)

func cartesianTriplet() *vector.Vector3d {
	return vector.Single(0.123, 0.4, 0.5)
}

func cubicPhase(t *testing.T, a float64) *phase.Phase {
	t.Helper()
	l, err := lattice.Cubic(a)
	require.NoError(t, err)
	p, err := phase.New("cubic", "m-3m", phase.WithLattice(l))
	require.NoError(t, err)
	return p
}

func hexPhase(t *testing.T) *phase.Phase {
	t.Helper()
	l, err := lattice.Hexagonal(3.21, 5.21)
	require.NoError(t, err)
	p, err := phase.New("hex", "6/mmm", phase.WithLattice(l))
	require.NoError(t, err)
	return p
}

func TestConstructorsRequireLattice(t *testing.T) {
	p, err := phase.New("bare", "m-3m")
	require.NoError(t, err)
	_, err = FromUVW(p, [][3]float64{{1, 0, 0}})
	assert.ErrorIs(t, err, ErrNoLattice)
	_, err = FromHKL(p, [][3]float64{{1, 0, 0}})
	assert.ErrorIs(t, err, ErrNoLattice)
}

func TestZeroSumValidation(t *testing.T) {
	p := hexPhase(t)
	_, err := FromHKIL(p, [][4]float64{{1, 0, 0, 0}})
	assert.ErrorIs(t, err, ErrZeroSum)
	_, err = FromUVTW(p, [][4]float64{{1, 1, 0, 2}})
	assert.ErrorIs(t, err, ErrZeroSum)

	m, err := FromHKIL(p, [][4]float64{{1, 0, -1, 0}})
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())
}

func TestCoordinateRoundTrips(t *testing.T) {
	p := hexPhase(t)

	t.Run("uvw", func(t *testing.T) {
		m, err := FromUVW(p, [][3]float64{{1, 1, 0}, {2, -1, 3}})
		require.NoError(t, err)
		got := m.UVWs()
		for i, want := range [][3]float64{{1, 1, 0}, {2, -1, 3}} {
			for j := range want {
				assert.InDelta(t, want[j], got[i][j], 1e-12)
			}
		}
	})

	t.Run("weber symbols", func(t *testing.T) {
		m, err := FromUVW(p, [][3]float64{{1, 1, 0}})
		require.NoError(t, err)
		uvtw := m.UVTWs()[0]
		assert.InDelta(t, 1.0/3, uvtw[0], 1e-12)
		assert.InDelta(t, 1.0/3, uvtw[1], 1e-12)
		assert.InDelta(t, -2.0/3, uvtw[2], 1e-12)
		assert.InDelta(t, 0, uvtw[3], 1e-12)

		back, err := FromUVTW(p, [][4]float64{uvtw})
		require.NoError(t, err)
		got := back.UVWs()[0]
		for j, want := range [3]float64{1, 1, 0} {
			assert.InDelta(t, want, got[j], 1e-12)
		}
	})

	t.Run("hkil", func(t *testing.T) {
		m, err := FromHKL(p, [][3]float64{{1, 2, 3}})
		require.NoError(t, err)
		hkil := m.HKILs()[0]
		assert.InDelta(t, 1, hkil[0], 1e-12)
		assert.InDelta(t, 2, hkil[1], 1e-12)
		assert.InDelta(t, -3, hkil[2], 1e-12)
		assert.InDelta(t, 3, hkil[3], 1e-12)
	})
}

func TestCubicDirectEqualsReciprocal(t *testing.T) {
	p := cubicPhase(t, 1)
	m, err := FromUVW(p, [][3]float64{{1, 1, 1}})
	require.NoError(t, err)
	hkl := m.HKLs()[0]
	for j := range hkl {
		assert.InDelta(t, 1, hkl[j], 1e-12)
	}
}

func TestLength(t *testing.T) {
	p := cubicPhase(t, 2)

	direct, err := FromUVW(p, [][3]float64{{1, 0, 0}})
	require.NoError(t, err)
	assert.InDelta(t, 2, direct.Length()[0], 1e-12)

	recip, err := FromHKL(p, [][3]float64{{1, 0, 0}})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, recip.Length()[0], 1e-12)
}

func TestCrossFlipsSpace(t *testing.T) {
	p := cubicPhase(t, 1)
	a, err := FromUVW(p, [][3]float64{{1, 0, 0}})
	require.NoError(t, err)
	b, err := FromUVW(p, [][3]float64{{0, 1, 0}})
	require.NoError(t, err)

	c, err := a.Cross(b)
	require.NoError(t, err)
	assert.Equal(t, HKL, c.Format())
	hkl := c.HKLs()[0]
	assert.InDelta(t, 0, hkl[0], 1e-12)
	assert.InDelta(t, 0, hkl[1], 1e-12)
	assert.InDelta(t, 1, hkl[2], 1e-12)
}

func TestAngleWith(t *testing.T) {
	p := cubicPhase(t, 1)
	a, err := FromUVW(p, [][3]float64{{1, 0, 0}})
	require.NoError(t, err)
	b, err := FromUVW(p, [][3]float64{{0, 1, 0}})
	require.NoError(t, err)

	raw, err := a.AngleWith(b, AngleOptions{})
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, raw[0], 1e-12)

	// [100] and [010] are equivalent under m-3m.
	reduced, err := a.AngleWith(b, AngleOptions{UseSymmetry: true})
	require.NoError(t, err)
	assert.InDelta(t, 0, reduced[0], 1e-9)
}

func TestSymmetriseAndMultiplicity(t *testing.T) {
	p := cubicPhase(t, 1)
	m, err := FromUVW(p, [][3]float64{{1, 0, 0}, {1, 1, 1}})
	require.NoError(t, err)

	res := m.Symmetrise(SymmetriseOptions{Unique: true})
	assert.Equal(t, []int{6, 8}, res.Multiplicity)
	assert.Equal(t, 14, res.Vectors.Len())
	assert.Equal(t, UVW, res.Vectors.Format())

	assert.Equal(t, []int{6, 8}, m.Multiplicity())
}

func TestUnique(t *testing.T) {
	p := cubicPhase(t, 1)
	m, err := FromUVW(p, [][3]float64{{1, 0, 0}, {0, 1, 0}, {1, 1, 1}})
	require.NoError(t, err)

	plain, idx := m.Unique(UniqueOptions{})
	assert.Equal(t, 3, plain.Len())
	assert.Equal(t, []int{0, 1, 2}, idx)

	sym, idx := m.Unique(UniqueOptions{UseSymmetry: true})
	assert.Equal(t, 2, sym.Len())
	assert.Equal(t, []int{0, 2}, idx)
}

func TestRound(t *testing.T) {
	p := hexPhase(t)

	t.Run("low integer recovery", func(t *testing.T) {
		m, err := FromUVW(p, [][3]float64{{0.3, 0.2, 0.1}})
		require.NoError(t, err)
		r, err := m.Round(RoundOptions{})
		require.NoError(t, err)
		got := r.UVWs()[0]
		for j, want := range [3]float64{3, 2, 1} {
			assert.InDelta(t, want, got[j], 1e-9)
		}
	})

	t.Run("integers are fixed points", func(t *testing.T) {
		m, err := FromHKL(p, [][3]float64{{1, -2, 3}})
		require.NoError(t, err)
		r, err := m.Round(RoundOptions{})
		require.NoError(t, err)
		got := r.HKLs()[0]
		for j, want := range [3]float64{1, -2, 3} {
			assert.InDelta(t, want, got[j], 1e-9)
		}
	})

	t.Run("four index", func(t *testing.T) {
		m, err := FromUVTW(p, [][4]float64{{1.0 / 3, 1.0 / 3, -2.0 / 3, 0}})
		require.NoError(t, err)
		r, err := m.Round(RoundOptions{})
		require.NoError(t, err)
		got := r.UVTWs()[0]
		for j, want := range [4]float64{1, 1, -2, 0} {
			assert.InDelta(t, want, got[j], 1e-9)
		}
	})

	t.Run("cartesian unchanged", func(t *testing.T) {
		m := FromXYZ(p, cartesianTriplet())
		r, err := m.Round(RoundOptions{})
		require.NoError(t, err)
		assert.InDelta(t, 0.123, r.Vector().Row(0)[0], 1e-12)
	})
}

func TestFromHighestIndices(t *testing.T) {
	p := cubicPhase(t, 1)
	m, err := FromHighestIndices(p, HKL, [3]int{1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, 26, m.Len())

	_, err = FromHighestIndices(p, HKL, [3]int{0, 1, 1})
	assert.Error(t, err)
}

func TestFromMinDSpacing(t *testing.T) {
	p := cubicPhase(t, 1)
	m, err := FromMinDSpacing(p, 0.5)
	require.NoError(t, err)
	require.NotZero(t, m.Len())

	l := p.Lattice()
	for _, hkl := range m.HKLs() {
		d := l.DSpacing([3]float64{
			math.Round(hkl[0]), math.Round(hkl[1]), math.Round(hkl[2]),
		})
		assert.GreaterOrEqual(t, d, 0.5-1e-9)
	}

	// (1 1 1) has d = 1/sqrt(3) > 0.5 and must be present, (2 1 0) has
	// d = 1/sqrt(5) < 0.5 and must not.
	found111, found210 := false, false
	for _, hkl := range m.HKLs() {
		h, k, l := math.Round(hkl[0]), math.Round(hkl[1]), math.Round(hkl[2])
		if h == 1 && k == 1 && l == 1 {
			found111 = true
		}
		if h == 2 && k == 1 && l == 0 {
			found210 = true
		}
	}
	assert.True(t, found111)
	assert.False(t, found210)
}

func TestFromMinDSpacingRejectsBadInput(t *testing.T) {
	p := cubicPhase(t, 1)
	_, err := FromMinDSpacing(p, 0)
	assert.Error(t, err)
}
