package quaternion

import (
	"math"

	"github.com/hexark/orient/vector"
)

// FromEuler builds rotations from Bunge Euler angle triplets
// (phi1, Phi, phi2) in radians, composing intrinsic Z-X-Z in the
// crystal-to-lab direction.
func FromEuler(angles [][3]float64) *Rotation {
	r := &Rotation{data: make([]float64, 4*len(angles))}
	for i, e := range angles {
		half1 := (e[0] + e[2]) / 2
		half2 := (e[0] - e[2]) / 2
		cp, sp := math.Cos(e[1]/2), math.Sin(e[1]/2)
		r.data[4*i] = cp * math.Cos(half1)
		r.data[4*i+1] = sp * math.Cos(half2)
		r.data[4*i+2] = sp * math.Sin(half2)
		r.data[4*i+3] = cp * math.Sin(half1)
	}
	return r
}

// ToEuler returns the Bunge Euler angles (phi1, Phi, phi2) of each
// rotation in radians, with phi1 and phi2 wrapped into [0, 2π) and Phi in
// [0, π]. At the gimbal degeneracies (Phi == 0 or π) phi2 is reported as 0.
func (r *Rotation) ToEuler() [][3]float64 {
	out := make([][3]float64, r.Len())
	for i := range out {
		a, b, c, d := r.At(i)
		phi := 2 * math.Atan2(math.Hypot(b, c), math.Hypot(a, d))
		var phi1, phi2 float64
		switch {
		case math.Hypot(b, c) < tolerance: // Phi ~ 0: only phi1+phi2 defined
			phi1 = 2 * math.Atan2(d, a)
		case math.Hypot(a, d) < tolerance: // Phi ~ π: only phi1-phi2 defined
			phi1 = 2 * math.Atan2(c, b)
		default:
			sum := math.Atan2(d, a)
			diff := math.Atan2(c, b)
			phi1 = sum + diff
			phi2 = sum - diff
		}
		out[i] = [3]float64{wrap2Pi(phi1), phi, wrap2Pi(phi2)}
	}
	return out
}

func wrap2Pi(x float64) float64 {
	x = math.Mod(x, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}
	return x
}

// FromAxisAngle builds rotations about the given unit axes by the given
// angles in radians. Axes and angles broadcast against each other.
func FromAxisAngle(axes *vector.Vector3d, angles []float64) (*Rotation, error) {
	n, err := broadcastLen(axes.Len(), len(angles))
	if err != nil {
		return nil, err
	}
	unit := axes.Unit()
	r := &Rotation{data: make([]float64, 4*n)}
	for i := 0; i < n; i++ {
		var ax [3]float64
		if unit.Len() == 1 {
			ax = unit.Row(0)
		} else {
			ax = unit.Row(i)
		}
		t := angles[0]
		if len(angles) > 1 {
			t = angles[i]
		}
		ct, st := math.Cos(t/2), math.Sin(t/2)
		r.data[4*i] = ct
		r.data[4*i+1] = st * ax[0]
		r.data[4*i+2] = st * ax[1]
		r.data[4*i+3] = st * ax[2]
	}
	return r, nil
}

// FromMatrix builds a single rotation from a row-major 3x3 proper rotation
// matrix.
func FromMatrix(m [9]float64) (*Rotation, error) {
	det := m[0]*(m[4]*m[8]-m[5]*m[7]) - m[1]*(m[3]*m[8]-m[5]*m[6]) + m[2]*(m[3]*m[7]-m[4]*m[6])
	if math.Abs(det-1) > 1e-6 || !isOrthogonal(m) {
		return nil, &ErrImproperMatrix{Det: det}
	}

	// Shepperd's method: pick the largest diagonal combination for stability.
	tr := m[0] + m[4] + m[8]
	var a, b, c, d float64
	switch {
	case tr > m[0] && tr > m[4] && tr > m[8]:
		s := math.Sqrt(tr+1) * 2
		a = s / 4
		b = (m[7] - m[5]) / s
		c = (m[2] - m[6]) / s
		d = (m[3] - m[1]) / s
	case m[0] > m[4] && m[0] > m[8]:
		s := math.Sqrt(1+m[0]-m[4]-m[8]) * 2
		a = (m[7] - m[5]) / s
		b = s / 4
		c = (m[1] + m[3]) / s
		d = (m[2] + m[6]) / s
	case m[4] > m[8]:
		s := math.Sqrt(1+m[4]-m[0]-m[8]) * 2
		a = (m[2] - m[6]) / s
		b = (m[1] + m[3]) / s
		c = s / 4
		d = (m[5] + m[7]) / s
	default:
		s := math.Sqrt(1+m[8]-m[0]-m[4]) * 2
		a = (m[3] - m[1]) / s
		b = (m[2] + m[6]) / s
		c = (m[5] + m[7]) / s
		d = s / 4
	}
	return New(a, b, c, d)
}

func isOrthogonal(m [9]float64) bool {
	// Check R Rᵀ == I row by row.
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			dot := m[3*i]*m[3*j] + m[3*i+1]*m[3*j+1] + m[3*i+2]*m[3*j+2]
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(dot-want) > 1e-6 {
				return false
			}
		}
	}
	return true
}

// ToMatrix returns the row-major 3x3 rotation matrix of each rotation.
func (r *Rotation) ToMatrix() [][9]float64 {
	out := make([][9]float64, r.Len())
	for i := range out {
		a, b, c, d := r.At(i)
		out[i] = [9]float64{
			a*a + b*b - c*c - d*d, 2 * (b*c - a*d), 2 * (b*d + a*c),
			2 * (b*c + a*d), a*a - b*b + c*c - d*d, 2 * (c*d - a*b),
			2 * (b*d - a*c), 2 * (c*d + a*b), a*a - b*b - c*c + d*d,
		}
	}
	return out
}
