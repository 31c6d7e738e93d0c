package storage

import (
	"fmt"
	"strings"
)

// ParseURI splits an object-storage URI of the form
// gs://bucket/prefix or s3://bucket/prefix into bucket and prefix.
// The prefix may be empty (whole-bucket copy).
func ParseURI(uri string) (bucket, prefix string, err error) {
	var rest string
	switch {
	case strings.HasPrefix(uri, "gs://"):
		rest = strings.TrimPrefix(uri, "gs://")
	case strings.HasPrefix(uri, "s3://"):
		rest = strings.TrimPrefix(uri, "s3://")
	default:
		return "", "", fmt.Errorf("unsupported object storage URI %q (want gs:// or s3://)", uri)
	}

	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("object storage URI %q has no bucket", uri)
	}

	return bucket, strings.Trim(prefix, "/"), nil
}
