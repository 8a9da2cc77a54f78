package pagemark

import "context"

// ConvertService is the system's single capability: fetch the resource
// behind a raw URL and return its Markdown rendition.
type ConvertService interface {
	// Convert resolves the raw URL, acquires the content and transforms it
	// to Markdown. The result is newline-terminated. It surfaces EINVALID
	// for unusable input, EUNAVAILABLE when acquisition fails on all paths
	// and EUNPROCESSABLE when fetched content cannot be transformed.
	Convert(ctx context.Context, rawURL string) (string, error)
}
