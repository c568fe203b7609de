// Package lattice models crystal lattices through their metric.
//
// A Lattice is defined by the six lattice parameters (a, b, c in length
// units, alpha, beta, gamma in degrees). From these it derives the direct
// structure matrix (DeGraef convention), its reciprocal counterpart, the
// metric tensors, the cell volume, and norms and spacings in direct and
// reciprocal space. These matrices are what map integer lattice
// coordinates onto Cartesian vectors.
package lattice
