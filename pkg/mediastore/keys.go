package mediastore

import (
	"path"
	"strings"
)

// NormalizeKey validates a storage key before it reaches the blob store.
// Keys are relative, slash-separated paths; traversal sequences, absolute
// paths, backslashes and redundant separators are rejected rather than
// silently rewritten, so the key a caller sends is the key that gets stored.
func NormalizeKey(key string) (string, error) {
	if key == "" {
		return "", &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if strings.HasPrefix(key, "/") {
		return "", &ValidationError{Field: "id", Reason: "must not start with a path separator"}
	}
	if strings.Contains(key, "\\") {
		return "", &ValidationError{Field: "id", Reason: "must not contain backslashes"}
	}

	cleaned := path.Clean(key)
	if cleaned != key || cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", &ValidationError{Field: "id", Reason: "must be a clean relative path without traversal"}
	}

	return cleaned, nil
}
