package lattice

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidation(t *testing.T) {
	var ic *ErrInvalidCell

	_, err := New(0, 1, 1, 90, 90, 90)
	require.ErrorAs(t, err, &ic)

	_, err = New(1, 1, 1, 90, 180, 90)
	require.ErrorAs(t, err, &ic)

	// alpha+beta+gamma geometrically impossible.
	_, err = New(1, 1, 1, 170, 170, 170)
	assert.Error(t, err)
}

func TestCubic(t *testing.T) {
	l, err := Cubic(4.05) // aluminium
	require.NoError(t, err)

	assert.InDelta(t, 4.05*4.05*4.05, l.Volume(), 1e-9)
	assert.InDelta(t, 4.05, l.Norm([3]float64{1, 0, 0}), 1e-12)
	assert.InDelta(t, 4.05*math.Sqrt(3), l.Norm([3]float64{1, 1, 1}), 1e-9)
	assert.InDelta(t, 4.05/math.Sqrt(2), l.DSpacing([3]float64{1, 1, 0}), 1e-9)

	// Cubic metric is diagonal a².
	g := l.MetricTensor()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 4.05 * 4.05
			}
			assert.InDelta(t, want, g[i][j], 1e-9)
		}
	}
}

func TestHexagonal(t *testing.T) {
	l, err := Hexagonal(3.21, 5.21) // magnesium
	require.NoError(t, err)

	// Hexagonal cell volume: sqrt(3)/2 a² c.
	assert.InDelta(t, math.Sqrt(3)/2*3.21*3.21*5.21, l.Volume(), 1e-9)

	// The angle between a1 [100] and a2 [010] is 120 degrees.
	assert.InDelta(t, 2*math.Pi/3, l.AngleDirect([3]float64{1, 0, 0}, [3]float64{0, 1, 0}), 1e-12)

	// Plane normals (100) and (010) are 60 degrees apart in reciprocal
	// space.
	assert.InDelta(t, math.Pi/3, l.AngleReciprocal([3]float64{1, 0, 0}, [3]float64{0, 1, 0}), 1e-12)
}

func TestRoundTrips(t *testing.T) {
	l, err := New(2.1, 3.3, 4.7, 77, 98, 111) // triclinic
	require.NoError(t, err)

	uvw := [3]float64{1, -2, 3}
	back := l.DirectFromCartesian(l.CartesianFromDirect(uvw))
	for k := 0; k < 3; k++ {
		assert.InDelta(t, uvw[k], back[k], 1e-9)
	}

	hkl := [3]float64{-1, 4, 2}
	back = l.ReciprocalFromCartesian(l.CartesianFromReciprocal(hkl))
	for k := 0; k < 3; k++ {
		assert.InDelta(t, hkl[k], back[k], 1e-9)
	}
}

func TestMetricConsistency(t *testing.T) {
	l, err := Monoclinic(5.2, 3.1, 7.4, 103)
	require.NoError(t, err)

	// |uvw|² through the metric tensor equals the Cartesian norm squared.
	g := l.MetricTensor()
	uvw := [3]float64{2, 1, -1}
	var q float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			q += uvw[i] * g[i][j] * uvw[j]
		}
	}
	n := l.Norm(uvw)
	assert.InDelta(t, n*n, q, 1e-9)

	// Direct and reciprocal metrics are inverses.
	gr := l.ReciprocalMetricTensor()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += g[i][k] * gr[k][j]
			}
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, s, 1e-9)
		}
	}
}

func TestRhombohedral(t *testing.T) {
	l, err := Rhombohedral(5.43, 55.3)
	require.NoError(t, err)
	a, b, c := l.ABC()
	assert.Equal(t, a, b)
	assert.Equal(t, b, c)
	al, be, ga := l.Angles()
	assert.InDelta(t, 55.3, al, 1e-9)
	assert.InDelta(t, 55.3, be, 1e-9)
	assert.InDelta(t, 55.3, ga, 1e-9)
}
