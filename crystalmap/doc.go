// Package crystalmap holds per-point orientation scan data.
//
// A CrystalMap is a set of equal-length columns over scan points: one
// rotation, one phase ID and one spatial coordinate pair per point,
// plus named float64 property columns, with an attached PhaseList
// resolving phase IDs to symmetry and lattice information.
//
// Selections (by phase, by index state, by slice or mask) are cheap
// views: they share column storage with the source map and carry a
// roaring bitmap of the selected flat indices. Reads through a view see
// the shared data, and property writes through a view update the source
// columns. DeepCopy materializes a view into independent storage.
package crystalmap
