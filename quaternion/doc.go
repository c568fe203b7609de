// Package quaternion implements batches of unit quaternions representing
// proper rotations.
//
// A Rotation holds n quaternions (scalar part first: a, b, c, d) in a flat
// float64 slice, mirroring the batch layout of package vector. Composition
// is quaternion multiplication, the inverse of a unit quaternion is its
// conjugate, and rotations act on vectors by conjugation.
//
// The quaternions q and -q describe the same rotation; Unique and the
// canonicalization helpers treat them as one.
//
// Euler angle conversions use the Bunge convention (intrinsic Z-X-Z,
// crystal-to-lab), the de facto standard for EBSD orientation data.
package quaternion
