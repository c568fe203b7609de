// Package phase describes the crystallographic phases of a map.
//
// A Phase carries a name, a point group, an optional space-group number, a
// lattice, and a plotting color. A PhaseList is an ordered mapping from
// integer phase IDs to phases, with unique names and the reserved ID -1
// for scan points that could not be indexed.
//
// Setting a space group recomputes the point group as the space group's
// rotational subgroup. Setting a point group that disagrees with the
// current space group clears the space group; the clear is logged at warn
// level rather than raised, matching established EBSD tooling behavior.
package phase
