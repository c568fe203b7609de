// Package vector provides a homogeneous batch container for 3D Cartesian
// vectors and the elementwise operations crystallographic analysis is built
// on: dot and cross products, norms, angles, spherical coordinates, and
// direction-aware deduplication.
//
// A Vector3d holds n vectors in a single flat float64 slice (3 components
// per vector). Binary operations broadcast: operands must either have the
// same length or one of them must hold a single vector.
//
//	a := vector.FromRows([][3]float64{{1, 0, 0}, {0, 1, 0}})
//	b := vector.Single(0, 0, 1)
//	cross, _ := a.Cross(b)
//	angles, _ := a.AngleWith(b)
//
// Operations preserve batch length except explicit reductions such as
// AngleWith (one scalar per pair) and Mean (a single vector).
package vector
