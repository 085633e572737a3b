package mediastore

import (
	"fmt"
	"mime"
	"strings"
)

// Partition splits records into splash media and everything else. Every
// record lands in exactly one of the two slices.
func Partition(records []MediaRecord) (splash, main []MediaRecord) {
	for _, r := range records {
		if r.Folder == FolderSplash {
			splash = append(splash, r)
		} else {
			main = append(main, r)
		}
	}
	return splash, main
}

// ExtractSearchTerms collects the distinct trimmed tags across all records'
// "contents" metadata, in first-seen order. Whitespace-only fragments are
// dropped.
func ExtractSearchTerms(records []MediaRecord) []string {
	seen := make(map[string]struct{})
	var terms []string
	for _, r := range records {
		contents, ok := r.Metadata[MetadataKeyContents]
		if !ok {
			continue
		}
		for _, raw := range strings.Split(contents, ",") {
			term := strings.TrimSpace(raw)
			if term == "" {
				continue
			}
			if _, dup := seen[term]; dup {
				continue
			}
			seen[term] = struct{}{}
			terms = append(terms, term)
		}
	}
	return terms
}

// ClassifyUpload determines the storage key for an upload. Images go to
// "splash/" when targeting the splash rotation and "photos/" otherwise;
// video/mp4 always goes to "videos/" regardless of the target; anything else
// is rejected with ErrUnsupportedMediaType. The filename is lower-cased
// before concatenation and the resulting key is normalized.
func ClassifyUpload(filename, mimeType string, splashTarget bool) (string, error) {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMediaType, mimeType)
	}

	var folder string
	switch {
	case strings.HasPrefix(mediaType, "image/"):
		folder = FolderPhotos
		if splashTarget {
			folder = FolderSplash
		}
	case mediaType == "video/mp4":
		folder = FolderVideos
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMediaType, mediaType)
	}

	return NormalizeKey(folder + "/" + strings.ToLower(filename))
}
