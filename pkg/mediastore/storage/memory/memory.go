package memory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/epiframe/media-admin/pkg/mediastore"
)

// ErrURLExpired indicates a signed URL was presented after its expiry.
var ErrURLExpired = errors.New("signed url expired")

// Backend is an in-memory implementation of the mediastore.BlobStore
// interface, used by tests and the dev server. Signed URLs are fake
// memory:// URLs carrying a token and expiry that the backend itself can
// validate.
type Backend struct {
	mu          sync.RWMutex
	objects     map[string][]byte
	metadata    map[string]map[string]string
	contentType map[string]string
	tokens      map[string]time.Time
	now         func() time.Time
}

// Option configures the backend.
type Option func(*Backend)

// WithClock overrides the time source, letting tests control URL expiry.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) {
		b.now = now
	}
}

// New creates a new in-memory storage backend
func New(opts ...Option) *Backend {
	b := &Backend{
		objects:     make(map[string][]byte),
		metadata:    make(map[string]map[string]string),
		contentType: make(map[string]string),
		tokens:      make(map[string]time.Time),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var _ mediastore.BlobStore = (*Backend)(nil)

// List returns every stored object. Map iteration gives the unsorted,
// storage-defined order the contract allows.
func (b *Backend) List(ctx context.Context) ([]mediastore.BlobInfo, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	infos := make([]mediastore.BlobInfo, 0, len(b.objects))
	for key, data := range b.objects {
		infos = append(infos, mediastore.BlobInfo{
			Key:      key,
			Size:     int64(len(data)),
			Metadata: copyMetadata(b.metadata[key]),
		})
	}
	return infos, nil
}

// Upload stores object content, overwriting any existing object at key.
func (b *Backend) Upload(ctx context.Context, key string, reader io.Reader, opts mediastore.UploadOptions) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.objects[key] = data
	contentType := opts.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	b.contentType[key] = contentType
	if _, exists := b.metadata[key]; !exists {
		b.metadata[key] = map[string]string{}
	}
	return nil
}

// SetMetadata replaces the full metadata set for the object.
func (b *Backend) SetMetadata(ctx context.Context, key string, metadata map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[key]; !exists {
		return fmt.Errorf("blob %q: %w", key, mediastore.ErrObjectNotFound)
	}
	b.metadata[key] = copyMetadata(metadata)
	return nil
}

// Delete removes the object, failing when it is absent.
func (b *Backend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[key]; !exists {
		return fmt.Errorf("blob %q: %w", key, mediastore.ErrObjectNotFound)
	}
	delete(b.objects, key)
	delete(b.metadata, key)
	delete(b.contentType, key)
	return nil
}

// Exists reports whether an object is stored at key.
func (b *Backend) Exists(ctx context.Context, key string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, exists := b.objects[key]
	return exists, nil
}

// SignReadURL mints a memory:// URL with a one-off token valid until
// now+ttl.
func (b *Backend) SignReadURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[key]; !exists {
		return "", fmt.Errorf("blob %q: %w", key, mediastore.ErrObjectNotFound)
	}

	token := uuid.NewString()
	expires := b.now().Add(ttl)
	b.tokens[token] = expires

	q := url.Values{}
	q.Set("token", token)
	q.Set("expires", strconv.FormatInt(expires.Unix(), 10))
	return fmt.Sprintf("memory://%s?%s", key, q.Encode()), nil
}

// ContentTypeOf reports the stored content type for an object, or false when
// the object is absent.
func (b *Backend) ContentTypeOf(key string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ct, ok := b.contentType[key]
	return ct, ok
}

// ValidateReadURL checks a previously minted URL at the given instant. A URL
// presented at or after its expiry is rejected.
func (b *Backend) ValidateReadURL(rawURL string, at time.Time) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("malformed signed url: %w", err)
	}

	token := parsed.Query().Get("token")

	b.mu.RLock()
	expires, ok := b.tokens[token]
	b.mu.RUnlock()

	if !ok {
		return errors.New("unknown signed url token")
	}
	if !at.Before(expires) {
		return ErrURLExpired
	}
	return nil
}

func copyMetadata(metadata map[string]string) map[string]string {
	out := make(map[string]string, len(metadata))
	for k, v := range metadata {
		out[k] = v
	}
	return out
}
