package mediastore

import "context"

// Service is the media catalog: the operations the HTTP layer exposes to the
// admin UI. Concurrent requests are independent; no cross-request ordering or
// atomicity is guaranteed (two racing deletes of the same key may leave one
// caller with ErrObjectNotFound, which is accepted behavior).
type Service interface {
	// ListCatalog lists every stored object as a MediaRecord, deriving the
	// folder and attaching a freshly signed read URL per record. Ordering is
	// whatever the backend reports.
	ListCatalog(ctx context.Context) ([]MediaRecord, error)

	// Upload stores media bytes at the requested key, overwriting any
	// existing object there.
	Upload(ctx context.Context, req UploadRequest) error

	// UpdateMetadata replaces the full metadata set of an existing object.
	UpdateMetadata(ctx context.Context, req UpdateMetadataRequest) error

	// Delete removes an object. Deleting an absent key returns
	// ErrObjectNotFound, never a silent success.
	Delete(ctx context.Context, id string) error
}
