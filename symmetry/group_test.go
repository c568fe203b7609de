package symmetry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexark/orient/quaternion"
	"github.com/hexark/orient/vector"
)

func TestGroupOrders(t *testing.T) {
	want := map[*Group]int{
		C1: 1, C2: 2, C3: 3, C4: 4, C6: 6,
		D2: 4, D3: 6, D4: 8, D6: 12,
		T: 12, O: 24,
	}
	for g, order := range want {
		assert.Equal(t, order, g.Size(), "group %s", g.Name())
	}
}

func TestGroupClosure(t *testing.T) {
	for _, g := range Groups() {
		rots := g.Rotations()
		products := rots.OuterMul(rots)
		closed, _ := rots.Concat(products).Unique()
		assert.Equal(t, g.Size(), closed.Len(), "group %s not closed", g.Name())
	}
}

func TestFromName(t *testing.T) {
	cases := map[string]*Group{
		"1":     C1,
		"-1":    C1,
		"m":     C2,
		"mmm":   D2,
		"4/mmm": D4,
		"m3m":   O, // dash-insensitive
		"m-3m":  O,
		"43":    O, // alias
		"432":   O,
		"-43m":  T,
		"6/mmm": D6,
		"-3m":   D3,
	}
	for name, want := range cases {
		g, err := FromName(name)
		require.NoError(t, err, name)
		assert.Same(t, want, g, name)
	}

	_, err := FromName("bogus")
	assert.ErrorIs(t, err, ErrUnknownGroup)
}

func TestFromSpaceGroup(t *testing.T) {
	cases := map[int]*Group{
		1:   C1,
		15:  C2,
		62:  D2,  // Pnma
		139: D4,  // I4/mmm
		167: D3,  // R-3c
		186: C6,  // P6_3mc
		194: D6,  // P6_3/mmc
		225: O,   // Fm-3m
		227: O,   // Fd-3m
		198: T,   // P2_13
	}
	for n, want := range cases {
		g, err := FromSpaceGroup(n)
		require.NoError(t, err, n)
		assert.Same(t, want, g, "space group %d", n)
	}

	var rng *ErrSpaceGroupRange
	_, err := FromSpaceGroup(0)
	require.ErrorAs(t, err, &rng)
	_, err = FromSpaceGroup(231)
	assert.Error(t, err)
}

func TestOrbitCubic100(t *testing.T) {
	// [100] under the cubic rotation group has exactly the 6 <100>
	// directions.
	v := vector.Single(1, 0, 0)
	res := O.Symmetrise(v, SymmetriseOptions{Unique: true})

	assert.Equal(t, 6, res.Vectors.Len())
	assert.Equal(t, []int{6}, res.Multiplicity)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0}, res.Index)

	// Every orbit member is an axis direction.
	for _, row := range res.Vectors.Rows() {
		var nonZero int
		for _, x := range row {
			if math.Abs(x) > 1e-9 {
				nonZero++
				assert.InDelta(t, 1, math.Abs(x), 1e-9)
			}
		}
		assert.Equal(t, 1, nonZero)
	}
}

func TestOrbitCubic111(t *testing.T) {
	res := O.Symmetrise(vector.Single(1, 1, 1), SymmetriseOptions{Unique: true})
	assert.Equal(t, 8, res.Vectors.Len())

	res = O.Symmetrise(vector.Single(1, 1, 0), SymmetriseOptions{Unique: true})
	assert.Equal(t, 12, res.Vectors.Len())
}

func TestSymmetriseWithoutUnique(t *testing.T) {
	v := vector.FromRows([][3]float64{{1, 0, 0}, {0, 0, 1}})
	res := C4.Symmetrise(v, SymmetriseOptions{})

	assert.Equal(t, C4.Size()*v.Len(), res.Vectors.Len())
	assert.Equal(t, []int{0, 1, 0, 1, 0, 1, 0, 1}, res.Index)
	assert.Nil(t, res.Multiplicity)
}

func TestMultiplicity(t *testing.T) {
	// [001] lies on the 4-fold axis of C4: orbit size 1.
	v := vector.FromRows([][3]float64{{0, 0, 1}, {1, 0, 0}})
	assert.Equal(t, []int{1, 4}, C4.Multiplicity(v))
}

func TestReducedAngle(t *testing.T) {
	a := vector.Single(1, 0, 0)
	b := vector.Single(0, 1, 0)

	raw, err := a.AngleWith(b)
	require.NoError(t, err)
	reduced, err := O.ReducedAngle(a, b)
	require.NoError(t, err)

	// [010] is symmetry-equivalent to [100] under the cubic group.
	assert.InDelta(t, math.Pi/2, raw[0], 1e-12)
	assert.InDelta(t, 0, reduced[0], 1e-9)
	assert.LessOrEqual(t, reduced[0], raw[0])
}

func TestReducedAngleNeverExceedsRaw(t *testing.T) {
	a := vector.FromRows([][3]float64{{1, 0.2, 0.1}, {0.3, 0.9, 0.1}})
	b := vector.FromRows([][3]float64{{0.1, 0.8, 0.4}, {1, 1, 1}})

	raw, err := a.AngleWith(b)
	require.NoError(t, err)
	for _, g := range Groups() {
		reduced, err := g.ReducedAngle(a, b)
		require.NoError(t, err)
		for i := range reduced {
			assert.LessOrEqual(t, reduced[i], raw[i]+1e-12, "group %s", g.Name())
			assert.GreaterOrEqual(t, reduced[i], 0.0)
		}
	}
}

func TestContains(t *testing.T) {
	quarter, err := quaternion.FromAxisAngle(vector.Single(0, 0, 1), []float64{math.Pi / 2})
	require.NoError(t, err)

	assert.True(t, C4.Contains(quarter))
	assert.False(t, C3.Contains(quarter))
	assert.True(t, O.Contains(quarter))
}
