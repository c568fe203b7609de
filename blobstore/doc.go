// Package blobstore abstracts where crystal map snapshots live.
//
// A BlobStore holds immutable named blobs. The in-memory store backs
// tests, the local store maps files read-only from disk, and the s3 and
// minio subpackages talk to object storage. Snapshot writers stream
// through WritableBlob handles so large maps never need a second full
// copy in memory.
package blobstore
