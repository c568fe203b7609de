package lattice

import (
	"fmt"
	"math"
)

// ErrInvalidCell indicates lattice parameters that do not define a valid
// unit cell.
type ErrInvalidCell struct {
	Reason string
}

func (e *ErrInvalidCell) Error() string {
	return fmt.Sprintf("invalid unit cell: %s", e.Reason)
}

// Lattice is an immutable crystal lattice defined by its six parameters.
// Angles are stored in radians; constructors take degrees.
type Lattice struct {
	a, b, c             float64
	alpha, beta, gamma  float64
	dsm, rsm            [3][3]float64 // direct/reciprocal structure matrices
	volume              float64
}

// New returns a lattice with cell lengths a, b, c and cell angles alpha,
// beta, gamma in degrees.
func New(a, b, c, alpha, beta, gamma float64) (*Lattice, error) {
	if a <= 0 || b <= 0 || c <= 0 {
		return nil, &ErrInvalidCell{Reason: "cell lengths must be positive"}
	}
	for _, ang := range []float64{alpha, beta, gamma} {
		if ang <= 0 || ang >= 180 {
			return nil, &ErrInvalidCell{Reason: "cell angles must be in (0, 180) degrees"}
		}
	}
	l := &Lattice{
		a: a, b: b, c: c,
		alpha: alpha * math.Pi / 180,
		beta:  beta * math.Pi / 180,
		gamma: gamma * math.Pi / 180,
	}
	ca, cb, cg := math.Cos(l.alpha), math.Cos(l.beta), math.Cos(l.gamma)
	sg := math.Sin(l.gamma)
	arg := 1 - ca*ca - cb*cb - cg*cg + 2*ca*cb*cg
	if arg <= 0 {
		return nil, &ErrInvalidCell{Reason: "cell angles are degenerate"}
	}
	l.volume = a * b * c * math.Sqrt(arg)

	// Direct structure matrix, DeGraef convention: a along x, b in the
	// xy plane.
	l.dsm = [3][3]float64{
		{a, b * cg, c * cb},
		{0, b * sg, -c * (cb*cg - ca) / sg},
		{0, 0, l.volume / (a * b * sg)},
	}
	l.rsm = invTranspose(l.dsm)
	return l, nil
}

// Cubic returns a cubic lattice with cell length a.
func Cubic(a float64) (*Lattice, error) { return New(a, a, a, 90, 90, 90) }

// Hexagonal returns a hexagonal lattice with cell lengths a and c.
func Hexagonal(a, c float64) (*Lattice, error) { return New(a, a, c, 90, 90, 120) }

// Tetragonal returns a tetragonal lattice with cell lengths a and c.
func Tetragonal(a, c float64) (*Lattice, error) { return New(a, a, c, 90, 90, 90) }

// Orthorhombic returns an orthorhombic lattice.
func Orthorhombic(a, b, c float64) (*Lattice, error) { return New(a, b, c, 90, 90, 90) }

// Monoclinic returns a monoclinic lattice with the unique angle beta in
// degrees.
func Monoclinic(a, b, c, beta float64) (*Lattice, error) { return New(a, b, c, 90, beta, 90) }

// Rhombohedral returns a rhombohedral lattice with cell length a and cell
// angle alpha in degrees.
func Rhombohedral(a, alpha float64) (*Lattice, error) { return New(a, a, a, alpha, alpha, alpha) }

// Triclinic places no constraints on the cell; it is New under the
// conventional name.
func Triclinic(a, b, c, alpha, beta, gamma float64) (*Lattice, error) {
	return New(a, b, c, alpha, beta, gamma)
}

// ABC returns the cell lengths.
func (l *Lattice) ABC() (a, b, c float64) { return l.a, l.b, l.c }

// Angles returns the cell angles in degrees.
func (l *Lattice) Angles() (alpha, beta, gamma float64) {
	const deg = 180 / math.Pi
	return l.alpha * deg, l.beta * deg, l.gamma * deg
}

// Volume returns the unit-cell volume.
func (l *Lattice) Volume() float64 { return l.volume }

// DirectStructureMatrix returns the matrix mapping direct lattice
// coordinates (uvw) to Cartesian coordinates.
func (l *Lattice) DirectStructureMatrix() [3][3]float64 { return l.dsm }

// ReciprocalStructureMatrix returns the matrix mapping reciprocal lattice
// coordinates (hkl) to Cartesian coordinates. It is the inverse transpose
// of the direct structure matrix.
func (l *Lattice) ReciprocalStructureMatrix() [3][3]float64 { return l.rsm }

// MetricTensor returns the direct metric tensor G = AᵀA with A the direct
// structure matrix.
func (l *Lattice) MetricTensor() [3][3]float64 { return gram(l.dsm) }

// ReciprocalMetricTensor returns the reciprocal metric tensor, the inverse
// of the direct metric tensor.
func (l *Lattice) ReciprocalMetricTensor() [3][3]float64 { return gram(l.rsm) }

// CartesianFromDirect maps direct lattice coordinates to Cartesian.
func (l *Lattice) CartesianFromDirect(uvw [3]float64) [3]float64 { return mulVec(l.dsm, uvw) }

// DirectFromCartesian maps Cartesian coordinates to direct lattice
// coordinates.
func (l *Lattice) DirectFromCartesian(xyz [3]float64) [3]float64 { return mulVecT(l.rsm, xyz) }

// CartesianFromReciprocal maps reciprocal lattice coordinates to Cartesian.
func (l *Lattice) CartesianFromReciprocal(hkl [3]float64) [3]float64 { return mulVec(l.rsm, hkl) }

// ReciprocalFromCartesian maps Cartesian coordinates to reciprocal lattice
// coordinates.
func (l *Lattice) ReciprocalFromCartesian(xyz [3]float64) [3]float64 { return mulVecT(l.dsm, xyz) }

// Norm returns the length of a direct lattice vector in lattice units.
func (l *Lattice) Norm(uvw [3]float64) float64 {
	return norm3(l.CartesianFromDirect(uvw))
}

// RNorm returns the length of a reciprocal lattice vector in inverse
// lattice units.
func (l *Lattice) RNorm(hkl [3]float64) float64 {
	return norm3(l.CartesianFromReciprocal(hkl))
}

// DSpacing returns the interplanar spacing of the (hkl) plane family,
// 1/|g_hkl|.
func (l *Lattice) DSpacing(hkl [3]float64) float64 {
	return 1 / l.RNorm(hkl)
}

// AngleDirect returns the angle between two direct lattice vectors in
// radians.
func (l *Lattice) AngleDirect(uvw1, uvw2 [3]float64) float64 {
	return angle3(l.CartesianFromDirect(uvw1), l.CartesianFromDirect(uvw2))
}

// AngleReciprocal returns the angle between two plane normals in radians.
func (l *Lattice) AngleReciprocal(hkl1, hkl2 [3]float64) float64 {
	return angle3(l.CartesianFromReciprocal(hkl1), l.CartesianFromReciprocal(hkl2))
}

func gram(m [3][3]float64) [3][3]float64 {
	var g [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				g[i][j] += m[k][i] * m[k][j]
			}
		}
	}
	return g
}

func mulVec(m [3][3]float64, v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// mulVecT multiplies by the transpose: out = mᵀ v.
func mulVecT(m [3][3]float64, v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[1][0]*v[1] + m[2][0]*v[2],
		m[0][1]*v[0] + m[1][1]*v[1] + m[2][1]*v[2],
		m[0][2]*v[0] + m[1][2]*v[1] + m[2][2]*v[2],
	}
}

func invTranspose(m [3][3]float64) [3][3]float64 {
	det := m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
	// Cofactor matrix over det is the inverse transpose.
	var out [3][3]float64
	out[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) / det
	out[0][1] = -(m[1][0]*m[2][2] - m[1][2]*m[2][0]) / det
	out[0][2] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) / det
	out[1][0] = -(m[0][1]*m[2][2] - m[0][2]*m[2][1]) / det
	out[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) / det
	out[1][2] = -(m[0][0]*m[2][1] - m[0][1]*m[2][0]) / det
	out[2][0] = (m[0][1]*m[1][2] - m[0][2]*m[1][1]) / det
	out[2][1] = -(m[0][0]*m[1][2] - m[0][2]*m[1][0]) / det
	out[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) / det
	return out
}

func norm3(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func angle3(a, b [3]float64) float64 {
	c := (a[0]*b[0] + a[1]*b[1] + a[2]*b[2]) / (norm3(a) * norm3(b))
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c)
}
