// Package s3 stores snapshots in Amazon S3.
//
// Store implements blobstore.BlobStore over a bucket prefix; uploads
// stream through the AWS transfer manager. CommitStore layers a
// DynamoDB-backed CURRENT pointer on top so multiple writers can
// publish versioned snapshot manifests without losing commits.
package s3
