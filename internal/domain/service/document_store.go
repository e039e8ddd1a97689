package service

import "context"

// DocumentStore defines the interface for storing and retrieving raw report documents.
type DocumentStore interface {
	// Put stores a document under the given key.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Get retrieves a document by key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a document by key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
