// Package blob stores raw DNA report documents behind a portable bucket API.
package blob

import (
	"context"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// bucket driver
	_ "gocloud.dev/blob/gcsblob"  // gs:// bucket driver
	"gocloud.dev/gcerrors"

	"aevum/config"
	"aevum/internal/domain/service"
	"aevum/internal/errors"
)

// bucketDocumentStore implements service.DocumentStore on top of a
// gocloud.dev bucket, so local file storage and GCS share one code path.
type bucketDocumentStore struct {
	bucket *blob.Bucket
}

// StoreParams holds dependencies for the document store, injected by Fx.
type StoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
}

// NewDocumentStore opens the configured bucket URL. The bucket is closed
// on shutdown through the Fx lifecycle.
func NewDocumentStore(params StoreParams) (service.DocumentStore, error) {
	cfg := params.Config
	if cfg.Documents == nil || cfg.Documents.BucketURL == "" {
		return nil, errors.New("documents bucket url must be provided")
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.Documents.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %q", cfg.Documents.BucketURL)
	}

	store := &bucketDocumentStore{bucket: bucket}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return store.Close()
		},
	})

	return store, nil
}

var _ service.DocumentStore = (*bucketDocumentStore)(nil)

// Put stores a document under the given key.
func (s *bucketDocumentStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	opts := &blob.WriterOptions{ContentType: contentType}
	if err := s.bucket.WriteAll(ctx, key, data, opts); err != nil {
		return errors.Wrapf(err, "failed to write document %q", key)
	}
	return nil
}

// Get retrieves a document by key.
func (s *bucketDocumentStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read document %q", key)
	}
	return data, nil
}

// Delete removes a document by key. Deleting a missing key is not an error.
func (s *bucketDocumentStore) Delete(ctx context.Context, key string) error {
	err := s.bucket.Delete(ctx, key)
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrapf(err, "failed to delete document %q", key)
	}
	return nil
}

// Close releases the underlying bucket.
func (s *bucketDocumentStore) Close() error {
	return s.bucket.Close()
}
