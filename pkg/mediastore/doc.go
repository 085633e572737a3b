// Package mediastore provides the media catalog for a picture-frame admin
// service: listing stored media with short-lived signed read URLs, uploading
// new media into well-known folders, tagging media through blob metadata, and
// deleting media.
//
// The package is a thin layer over a pluggable BlobStore. Implementations for
// S3-compatible services and an in-memory store are provided under
// subpackages. All state lives in the blob store; the service itself is
// stateless between calls, and derived attributes (folder classification,
// search terms) are recomputed on every listing rather than persisted.
package mediastore
