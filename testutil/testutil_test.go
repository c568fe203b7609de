package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNGDeterminism(t *testing.T) {
	a := NewRNG(42).Rotations(10)
	b := NewRNG(42).Rotations(10)
	assert.Equal(t, a.Flat(), b.Flat())

	r := NewRNG(42)
	first := r.Rotations(10)
	r.Reset()
	assert.Equal(t, first.Flat(), r.Rotations(10).Flat())
	assert.Equal(t, int64(42), r.Seed())
}

func TestRotationsAreUnit(t *testing.T) {
	rot := NewRNG(1).Rotations(100)
	require.Equal(t, 100, rot.Len())
	for i := 0; i < rot.Len(); i++ {
		a, b, c, d := rot.At(i)
		assert.InDelta(t, 1.0, a*a+b*b+c*c+d*d, 1e-12)
	}
}

func TestUnitVectorsAreUnit(t *testing.T) {
	v := NewRNG(1).UnitVectors(100)
	require.Equal(t, 100, v.Len())
	for _, n := range v.Norm() {
		assert.InDelta(t, 1.0, n, 1e-12)
	}
}

func TestEulersInRange(t *testing.T) {
	for _, e := range NewRNG(7).Eulers(50) {
		assert.GreaterOrEqual(t, e[0], 0.0)
		assert.Less(t, e[0], 2*math.Pi)
		assert.GreaterOrEqual(t, e[1], 0.0)
		assert.LessOrEqual(t, e[1], math.Pi)
		assert.GreaterOrEqual(t, e[2], 0.0)
		assert.Less(t, e[2], 2*math.Pi)
	}
}

func TestPhaseIDs(t *testing.T) {
	ids := NewRNG(3).PhaseIDs(200, []int{0, 1, -1})
	require.Len(t, ids, 200)
	for _, id := range ids {
		assert.Contains(t, []int{0, 1, -1}, id)
	}
}
