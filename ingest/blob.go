package ingest

import (
	"context"
	"net/url"
	"path"
	"strings"
)

// BlobStore persists uploaded image bytes under generated keys. Keys
// are flat filenames with no path separators so they survive a round
// trip through a servable URL.
type BlobStore interface {
	// Write stores data under key, overwriting any previous content.
	Write(ctx context.Context, key string, data []byte, contentType string) error
	// Read returns the stored bytes for key.
	Read(ctx context.Context, key string) ([]byte, error)
	// Delete removes the blob for key. A missing blob is reported via
	// fs.ErrNotExist so callers can treat it as already released.
	Delete(ctx context.Context, key string) error
	// URL returns a servable URL for key.
	URL(ctx context.Context, key string) (string, error)
	// List returns every stored key.
	List(ctx context.Context) ([]string, error)
}

// KeyFromURL extracts the storage key from a servable image URL. Items
// store the full URL, so releasing the blob on delete needs the key
// back. Works for both the local /uploads/ form and S3 object URLs.
func KeyFromURL(imageURL string) string {
	if imageURL == "" {
		return ""
	}
	if u, err := url.Parse(imageURL); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	if i := strings.LastIndex(imageURL, "/"); i >= 0 {
		return imageURL[i+1:]
	}
	return imageURL
}
