// Package orient provides quaternion-based analysis of crystal
// orientations and crystallographic textures.
//
// The building blocks live in subpackages: batches of unit quaternions
// (quaternion), three-dimensional vectors (vector), the 11 proper
// crystallographic point groups (symmetry), direct and reciprocal
// lattices (miller, lattice), phase descriptions (phase) and spatially
// resolved orientation maps (crystalmap).
//
// # Quick Start
//
// Describe a phase and reduce a misorientation to its fundamental zone:
//
//	ferrite, _ := phase.FromSpaceGroup("ferrite", 229)
//	rot := quaternion.FromEuler([][3]float64{{1.2, 0.4, 2.1}})
//	o := orientation.New(rot, ferrite.PointGroup())
//	reduced := o.Reduce()
//
// # Persistence
//
// Crystal maps are saved as compressed snapshots to any BlobStore
// (local directory, in-memory, S3 or MinIO):
//
//	ctx := context.Background()
//	store, _ := blobstore.NewLocalStore("./data")
//	_ = orient.Save(ctx, store, "scan.snap", m, orient.WithCompression(snapshot.CompressionZstd))
//	m2, _ := orient.Load(ctx, store, "scan.snap")
//
// # Key Features
//
//   - Batched quaternion algebra with symmetry-aware misorientation angles
//   - All 32 crystallographic point groups mapped onto their proper subgroups
//   - Miller index conversion across uvw, UVTW, hkl and hkil frames
//   - Deterministic uniform sampling of the rotation space
//   - Columnar crystal maps with composable phase and region selections
//   - Compressed snapshots on local disk, S3 or MinIO
package orient
