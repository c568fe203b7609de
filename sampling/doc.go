// Package sampling generates deterministic grids of rotations over SO(3).
//
// Grids are built from low-discrepancy parameter lattices rather than
// random draws, so the same arguments always produce the same rotations.
// The three-uniform method gives near-uniform coverage with respect to
// the Haar measure; the Euler method is a simpler legacy construction
// kept for comparison. Grids can be restricted to the fundamental zone
// of a point group or to a neighborhood of a center rotation.
package sampling
