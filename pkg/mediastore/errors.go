package mediastore

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrObjectNotFound indicates the target object is absent from storage.
	ErrObjectNotFound = errors.New("object does not exist")

	// ErrUnsupportedMediaType indicates an upload was rejected because its
	// MIME type is outside the image/* and video/mp4 whitelist.
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)

// ValidationError represents a bad or missing request field, detected at the
// service boundary before any storage call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError represents a failure from the external blob store. Failures
// are never retried or cached; they surface directly to the caller.
type StorageError struct {
	Bucket string
	Key    string
	Op     string
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s on bucket %s: %v", e.Op, e.Key, e.Bucket, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
