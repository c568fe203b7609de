// Package miller implements direct and reciprocal crystal lattice vectors.
//
// A Miller batch ties Cartesian vectors to a phase's lattice and symmetry
// and to a coordinate format: direct indices (uvw, or 4-index Weber
// symbols UVTW for hexagonal and trigonal lattices) or reciprocal indices
// (hkl, or 4-index Miller-Bravais hkil). The Cartesian representation is
// canonical; format conversions re-express the same vectors, with one
// exception: Round perturbs each vector to the nearest low-integer-index
// direction.
//
//	phase, _ := phase.New("silicon", "m-3m", phase.WithLattice(lat))
//	m, _ := miller.FromUVW(phase, [][3]float64{{1, 0, 0}})
//	orbit := m.Symmetrise(miller.SymmetriseOptions{Unique: true})
//
// The 4-index forms keep the invariant that their first three components
// sum to zero; constructors reject input violating it.
package miller
