package mediastore

import (
	"context"
	"fmt"
	"time"
)

// service implements the Service interface
type service struct {
	store  BlobStore
	urlTTL time.Duration
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithBlobStore sets the storage backend for the service
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.store = store
	}
}

// WithSignedURLTTL sets how long minted read URLs stay valid.
func WithSignedURLTTL(ttl time.Duration) Option {
	return func(s *service) {
		s.urlTTL = ttl
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		urlTTL: DefaultSignedURLTTL,
	}

	for _, option := range options {
		option(s)
	}

	if s.store == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if s.urlTTL <= 0 {
		return nil, fmt.Errorf("signed URL TTL must be positive")
	}

	return s, nil
}

func (s *service) ListCatalog(ctx context.Context) ([]MediaRecord, error) {
	blobs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}

	records := make([]MediaRecord, 0, len(blobs))
	for _, blob := range blobs {
		url, err := s.store.SignReadURL(ctx, blob.Key, s.urlTTL)
		if err != nil {
			return nil, fmt.Errorf("sign read url for %q: %w", blob.Key, err)
		}

		metadata := blob.Metadata
		if metadata == nil {
			metadata = map[string]string{}
		}

		records = append(records, MediaRecord{
			ID:       blob.Key,
			Folder:   FolderOf(blob.Key),
			URL:      url,
			Metadata: metadata,
		})
	}

	return records, nil
}

func (s *service) Upload(ctx context.Context, req UploadRequest) error {
	key, err := NormalizeKey(req.Key)
	if err != nil {
		return err
	}
	if req.Body == nil {
		return &ValidationError{Field: "file", Reason: "must not be empty"}
	}

	if err := s.store.Upload(ctx, key, req.Body, UploadOptions{ContentType: req.ContentType}); err != nil {
		return fmt.Errorf("upload %q: %w", key, err)
	}
	return nil
}

// UpdateMetadata replaces the whole metadata set. Callers wanting to keep an
// existing key must resend it; merge semantics were considered and rejected
// to keep the listing round-trip exact.
func (s *service) UpdateMetadata(ctx context.Context, req UpdateMetadataRequest) error {
	key, err := NormalizeKey(req.ID)
	if err != nil {
		return err
	}
	if req.Metadata == nil {
		return &ValidationError{Field: "metadata", Reason: "must be a key-value object"}
	}

	if err := s.store.SetMetadata(ctx, key, req.Metadata); err != nil {
		return fmt.Errorf("set metadata on %q: %w", key, err)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	key, err := NormalizeKey(id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
