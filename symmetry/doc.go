// Package symmetry provides the finite rotation groups of crystallography.
//
// A Group is an ordered set of proper rotations. The 11 proper rotation
// groups (C1, C2, C3, C4, C6, D2, D3, D4, D6, T, O) are generated once at
// package init by closing their generator sets under composition. The 32
// crystallographic point-group symbols resolve to the proper rotation group
// of their Laue class, the convention used when analysing EBSD orientation
// data, and space-group numbers 1-230 resolve the same way.
//
//	g, _ := symmetry.FromName("m-3m") // -> O, 24 rotations
//	orbit := g.Orbit(v)               // {g·v : g ∈ G}
//
// Symmetrise computes the orbit of a vector batch with optional
// deduplication, multiplicity counting, and origin-index reporting.
package symmetry
