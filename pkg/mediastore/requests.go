package mediastore

import "io"

// Request DTOs

// UploadRequest contains parameters for storing a new media object.
type UploadRequest struct {
	Key         string
	Body        io.Reader
	ContentType string
}

// UpdateMetadataRequest contains parameters for replacing an object's
// metadata set.
type UpdateMetadataRequest struct {
	ID       string
	Metadata map[string]string
}
