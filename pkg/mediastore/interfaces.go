package mediastore

import (
	"context"
	"io"
	"time"
)

// BlobStore defines the interface for storage backends. Every call maps to a
// network operation against the external store; implementations do not cache
// or retry.
type BlobStore interface {
	// List returns every stored object with its metadata. Order is
	// storage-defined and not guaranteed sorted.
	List(ctx context.Context) ([]BlobInfo, error)

	// Upload writes object content at key, overwriting any existing object
	// (last-writer-wins, no conflict detection).
	Upload(ctx context.Context, key string, reader io.Reader, opts UploadOptions) error

	// SetMetadata replaces the entire metadata set for the object. It is not
	// a merge: callers must resend every key they want kept. Returns
	// ErrObjectNotFound if the object is absent.
	SetMetadata(ctx context.Context, key string, metadata map[string]string) error

	// Delete removes the object. Returns ErrObjectNotFound if the object is
	// absent at call time.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is stored at key.
	Exists(ctx context.Context, key string) (bool, error)

	// SignReadURL returns a credential-bearing URL granting read-only access
	// to key, valid from issuance until issuance+ttl.
	SignReadURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// UploadOptions carries optional parameters for an upload.
type UploadOptions struct {
	// ContentType is stored with the object so signed read URLs serve the
	// right Content-Type. Empty means the backend default.
	ContentType string
}
