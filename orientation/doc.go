// Package orientation couples rotations with a crystal symmetry group.
//
// An Orientation wraps a quaternion.Rotation batch and a symmetry.Group
// without changing the underlying quaternion values; only comparisons
// change: two orientations related by a group operation are equivalent,
// and angles are reduced to the minimum over the symmetry orbit.
package orientation
