package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hexark/orient/blobstore"
)

// CurrentKey is the reserved blob name holding the path of the latest
// committed snapshot manifest.
const CurrentKey = "CURRENT"

// ErrConcurrentCommit is returned when another writer committed a new
// snapshot version first.
var ErrConcurrentCommit = errors.New("concurrent snapshot commit detected")

// DDBClient is the subset of the DynamoDB API the commit store needs.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// CommitStore is an S3 blob store with a DynamoDB commit log for the
// CURRENT pointer. S3 has no compare-and-swap, so the pointer to the
// latest snapshot manifest lives in a DynamoDB table instead: each
// commit writes a new (scan_uri, version) item with a conditional put,
// and a losing writer gets ErrConcurrentCommit rather than silently
// overwriting.
//
// Table schema: partition key scan_uri (S), sort key version (N), plus
// a manifest_path (S) attribute.
type CommitStore struct {
	blobs   *Store
	ddb     DDBClient
	table   string
	scanURI string
}

// NewCommitStore layers a DynamoDB commit log over an S3 store. scanURI
// identifies the snapshot lineage, e.g. "s3://bucket/scans/sample-42".
func NewCommitStore(blobs *Store, ddb DDBClient, table, scanURI string) *CommitStore {
	return &CommitStore{blobs: blobs, ddb: ddb, table: table, scanURI: scanURI}
}

// Open reads a blob. Opening CURRENT resolves the latest committed
// manifest path from DynamoDB.
func (s *CommitStore) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	if name != CurrentKey {
		return s.blobs.Open(ctx, name)
	}
	version, manifestPath, err := s.latestVersion(ctx)
	if err != nil {
		return nil, err
	}
	if version == 0 {
		return nil, blobstore.ErrNotFound
	}
	return &pointerBlob{content: []byte(manifestPath)}, nil
}

// Put writes a blob. Writing CURRENT commits a new version through the
// DynamoDB conditional write.
func (s *CommitStore) Put(ctx context.Context, name string, data []byte) error {
	if name == CurrentKey {
		return s.commit(ctx, string(data))
	}
	return s.blobs.Put(ctx, name, data)
}

// Create streams a new blob to S3. CURRENT cannot be streamed.
func (s *CommitStore) Create(ctx context.Context, name string) (blobstore.WritableBlob, error) {
	if name == CurrentKey {
		return nil, fmt.Errorf("%s must be written with Put", CurrentKey)
	}
	return s.blobs.Create(ctx, name)
}

// Delete removes a blob from S3. Commit log entries are kept.
func (s *CommitStore) Delete(ctx context.Context, name string) error {
	return s.blobs.Delete(ctx, name)
}

// List lists S3 blobs with the prefix.
func (s *CommitStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.blobs.List(ctx, prefix)
}

// latestVersion returns the newest committed version and its manifest
// path, or version 0 when nothing has been committed.
func (s *CommitStore) latestVersion(ctx context.Context) (uint64, string, error) {
	resp, err := s.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("scan_uri = :uri"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uri": &types.AttributeValueMemberS{Value: s.scanURI},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", fmt.Errorf("query commit log: %w", err)
	}
	if len(resp.Items) == 0 {
		return 0, "", nil
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("commit log item missing version")
	}
	pathAttr, ok := item["manifest_path"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("commit log item missing manifest_path")
	}

	var version uint64
	if _, err := fmt.Sscanf(versionAttr.Value, "%d", &version); err != nil {
		return 0, "", fmt.Errorf("parse commit version: %w", err)
	}
	return version, pathAttr.Value, nil
}

// commit writes the next version with a conditional put so exactly one
// writer wins each version number.
func (s *CommitStore) commit(ctx context.Context, manifestPath string) error {
	current, _, err := s.latestVersion(ctx)
	if err != nil {
		return err
	}

	_, err = s.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]types.AttributeValue{
			"scan_uri":      &types.AttributeValueMemberS{Value: s.scanURI},
			"version":       &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", current+1)},
			"manifest_path": &types.AttributeValueMemberS{Value: manifestPath},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var cond *types.ConditionalCheckFailedException
		if errors.As(err, &cond) {
			return ErrConcurrentCommit
		}
		return fmt.Errorf("commit snapshot version: %w", err)
	}
	return nil
}

// pointerBlob serves the resolved CURRENT content from memory.
type pointerBlob struct {
	content []byte
}

func (b *pointerBlob) Size() int64 { return int64(len(b.content)) }

func (b *pointerBlob) Close() error { return nil }

func (b *pointerBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	if off >= int64(len(b.content)) {
		return 0, io.EOF
	}
	n := copy(p, b.content[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *pointerBlob) ReadRange(_ context.Context, off, length int64) (io.ReadCloser, error) {
	if off >= int64(len(b.content)) {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}
	end := off + length
	if end > int64(len(b.content)) {
		end = int64(len(b.content))
	}
	return io.NopCloser(bytes.NewReader(b.content[off:end])), nil
}
