package sampling

import (
	"fmt"
	"math"

	"github.com/hexark/orient/orientation"
	"github.com/hexark/orient/quaternion"
	"github.com/hexark/orient/symmetry"
)

// ErrBadResolution indicates a non-positive or unusably coarse grid
// resolution.
type ErrBadResolution struct {
	Resolution float64
}

func (e *ErrBadResolution) Error() string {
	return fmt.Sprintf("grid resolution must lie in (0, 2π], got %v", e.Resolution)
}

// numSteps converts an angular resolution in radians to a step count
// covering a full turn.
func numSteps(resolution float64) (int, error) {
	if resolution <= 0 || resolution > 2*math.Pi {
		return 0, &ErrBadResolution{Resolution: resolution}
	}
	n := int(math.Ceil(2 * math.Pi / resolution))
	if n < 2 {
		n = 2
	}
	return n, nil
}

// UniformSO3Options controls UniformSO3.
type UniformSO3Options struct {
	// MaxAngle, when positive, drops rotations whose angle exceeds it.
	MaxAngle float64
}

// UniformSO3 returns a deterministic grid of rotations approximately
// uniform with respect to the Haar measure on SO(3), built from a
// three-parameter lattice (Shoemake's construction with evenly spaced
// parameters instead of random draws). The resolution is the target
// angular spacing in radians. Duplicate rotations are removed.
func UniformSO3(resolution float64, opts UniformSO3Options) (*quaternion.Rotation, error) {
	n, err := numSteps(resolution)
	if err != nil {
		return nil, err
	}

	// u1 includes both endpoints; u2 and u3 parameterize circles, so
	// their endpoint would duplicate the start.
	total := n * n * n
	a := make([]float64, 0, total)
	b := make([]float64, 0, total)
	c := make([]float64, 0, total)
	d := make([]float64, 0, total)
	for i := 0; i < n; i++ {
		u1 := float64(i) / float64(n-1)
		s1, s2 := math.Sqrt(1-u1), math.Sqrt(u1)
		for j := 0; j < n; j++ {
			t2 := 2 * math.Pi * float64(j) / float64(n)
			for k := 0; k < n; k++ {
				t3 := 2 * math.Pi * float64(k) / float64(n)
				a = append(a, s1*math.Sin(t2))
				b = append(b, s1*math.Cos(t2))
				c = append(c, s2*math.Sin(t3))
				d = append(d, s2*math.Cos(t3))
			}
		}
	}

	rot, err := quaternion.FromComponents(a, b, c, d)
	if err != nil {
		return nil, err
	}
	rot, _ = rot.Unique()
	if opts.MaxAngle > 0 {
		rot = filterByAngle(rot, opts.MaxAngle)
	}
	return rot, nil
}

// UniformSO3Euler returns the legacy Euler-angle grid: the two rotation
// angles are spaced evenly over the full turn and the tilt is drawn
// through an arccosine so the grid follows the Haar measure. Coarser
// and less isotropic than UniformSO3; kept for reproducing older
// results.
func UniformSO3Euler(resolution float64) (*quaternion.Rotation, error) {
	n, err := numSteps(resolution)
	if err != nil {
		return nil, err
	}

	angles := make([][3]float64, 0, n*n*n)
	for i := 0; i < n; i++ {
		phi1 := 2 * math.Pi * float64(i) / float64(n)
		for j := 0; j < n; j++ {
			cosPhi := 1 - 2*float64(j)/float64(n)
			phi := math.Acos(clamp(cosPhi, -1, 1))
			for k := 0; k < n; k++ {
				phi2 := 2 * math.Pi * float64(k) / float64(n)
				angles = append(angles, [3]float64{phi1, phi, phi2})
			}
		}
	}

	rot := quaternion.FromEuler(angles)
	rot, _ = rot.Unique()
	return rot, nil
}

// FundamentalZone keeps the rotations lying in the fundamental zone of
// the group, i.e. those of minimal angle within their symmetry coset.
func FundamentalZone(rot *quaternion.Rotation, group *symmetry.Group) *quaternion.Rotation {
	in := orientation.New(rot, group).InFundamentalZone()
	keep := make([]int, 0, rot.Len())
	for i, ok := range in {
		if ok {
			keep = append(keep, i)
		}
	}
	return rot.Select(keep)
}

// LocalGrid returns a grid of rotations within `width` radians of the
// center rotation: a uniform grid around the identity is trimmed to the
// requested misorientation width and composed with the center.
func LocalGrid(resolution float64, center *quaternion.Rotation, width float64) (*quaternion.Rotation, error) {
	if width <= 0 || width > math.Pi {
		return nil, fmt.Errorf("grid width must lie in (0, π], got %v", width)
	}
	grid, err := UniformSO3(resolution, UniformSO3Options{MaxAngle: width})
	if err != nil {
		return nil, err
	}
	if center == nil {
		return grid, nil
	}
	return center.Mul(grid)
}

func filterByAngle(rot *quaternion.Rotation, maxAngle float64) *quaternion.Rotation {
	angles := rot.Angle()
	keep := make([]int, 0, rot.Len())
	for i, a := range angles {
		if a <= maxAngle+1e-12 {
			keep = append(keep, i)
		}
	}
	return rot.Select(keep)
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
