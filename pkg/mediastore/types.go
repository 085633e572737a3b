package mediastore

import (
	"strings"
	"time"
)

// Folder names recognized by the catalog. Splash media is shown once at
// device startup; photos and videos make up the main rotation.
const (
	FolderSplash = "splash"
	FolderPhotos = "photos"
	FolderVideos = "videos"
)

// MetadataKeyContents is the blob metadata key holding the comma-separated
// list of free-text tags shown as searchable terms on the device.
const MetadataKeyContents = "contents"

// DefaultSignedURLTTL is how long read URLs minted during a listing stay
// valid unless configured otherwise.
const DefaultSignedURLTTL = time.Hour

// MediaRecord is one catalog entry per stored object. ID is the full storage
// key and doubles as the display name; it never changes after upload. Folder
// is derived from ID at listing time and URL is re-signed on every listing,
// so neither is ever persisted.
type MediaRecord struct {
	ID       string            `json:"id"`
	Folder   string            `json:"folder"`
	URL      string            `json:"url"`
	Metadata map[string]string `json:"metadata"`
}

// BlobInfo is a raw listing entry as reported by a storage backend.
type BlobInfo struct {
	Key       string
	Size      int64
	UpdatedAt time.Time
	Metadata  map[string]string
}

// FolderOf derives the folder classification from a storage key: the prefix
// before the first path separator. A key without a separator has no folder
// and is treated as main (non-splash) content.
func FolderOf(key string) string {
	if i := strings.IndexByte(key, '/'); i >= 0 {
		return key[:i]
	}
	return ""
}
