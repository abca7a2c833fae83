package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"time"
)

// HEICWarning is surfaced when a HEIC upload could not be transcoded.
// The upload still succeeds; the original file is kept.
const HEICWarning = "HEIC files may not display properly in web browsers. Consider converting to JPEG before uploading."

// ErrEmptyFile is returned when an upload carries no bytes
var ErrEmptyFile = errors.New("uploaded file is empty")

// Result is the outcome of one ingestion. Warning is empty except for
// the transcode-failed soft-failure path.
type Result struct {
	Key     string
	URL     string
	Warning string
}

// Pipeline normalizes uploaded images and persists them to a BlobStore.
// HEIC uploads are transcoded to JPEG through a chain of codecs; other
// formats are stored unchanged.
type Pipeline struct {
	store  BlobStore
	codecs []Transcoder
	now    func() time.Time
}

// NewPipeline builds a pipeline over the given store and codec chain
func NewPipeline(store BlobStore, codecs []Transcoder) *Pipeline {
	return &Pipeline{store: store, codecs: codecs, now: time.Now}
}

// IsHEIC reports whether an upload should be treated as HEIC: either
// the declared MIME type says so or the filename carries a .heic
// extension, case-insensitive. The filename is only trusted for
// extension sniffing.
func IsHEIC(originalFilename, declaredMimeType string) bool {
	if declaredMimeType == "image/heic" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(originalFilename), ".heic")
}

// Ingest stores one uploaded image and returns its servable URL.
//
// Non-HEIC files are stored as-is under a fresh time-based key. HEIC
// files are transcoded to JPEG by the first codec that succeeds, the
// original is discarded, and the .jpg takes the original key's stem.
// When every codec fails the original HEIC is kept and the result
// carries a warning; this is a soft failure, not an error. Keys are
// generation-time based, so re-ingesting identical bytes yields a new
// key.
func (p *Pipeline) Ingest(ctx context.Context, fileBytes []byte, originalFilename, declaredMimeType string) (*Result, error) {
	if len(fileBytes) == 0 {
		return nil, ErrEmptyFile
	}

	ext := strings.ToLower(filepath.Ext(originalFilename))
	key := fmt.Sprintf("%d%s", p.now().UnixNano(), ext)

	contentType := declaredMimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := p.store.Write(ctx, key, fileBytes, contentType); err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	if !IsHEIC(originalFilename, declaredMimeType) {
		url, err := p.store.URL(ctx, key)
		if err != nil {
			return nil, err
		}
		return &Result{Key: key, URL: url}, nil
	}

	jpegKey := strings.TrimSuffix(key, ext) + ".jpg"
	jpegBytes, codecErr := p.transcode(fileBytes)
	if codecErr != nil {
		log.Printf("All HEIC codecs failed for %s: %v", originalFilename, codecErr)
		url, err := p.store.URL(ctx, key)
		if err != nil {
			return nil, err
		}
		return &Result{Key: key, URL: url, Warning: HEICWarning}, nil
	}

	if err := p.store.Write(ctx, jpegKey, jpegBytes, "image/jpeg"); err != nil {
		return nil, fmt.Errorf("failed to store transcoded image: %w", err)
	}
	if err := p.store.Delete(ctx, key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Failed to remove original HEIC %s: %v", key, err)
	}

	url, err := p.store.URL(ctx, jpegKey)
	if err != nil {
		return nil, err
	}
	return &Result{Key: jpegKey, URL: url}, nil
}

// transcode runs the codec chain in order and returns the first success
func (p *Pipeline) transcode(src []byte) ([]byte, error) {
	var lastErr error
	for _, codec := range p.codecs {
		out, err := codec.Transcode(src)
		if err == nil {
			return out, nil
		}
		log.Printf("HEIC codec %s failed: %v", codec.Name(), err)
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("no codecs configured")
	}
	return nil, lastErr
}

// ConvertStored transcodes any .heic blobs still sitting in the store,
// replacing each with a .jpg under the same stem. Used by the backfill
// endpoint for files uploaded before transcoding worked.
func (p *Pipeline) ConvertStored(ctx context.Context) (converted, failed int, err error) {
	keys, err := p.store.List(ctx)
	if err != nil {
		return 0, 0, err
	}
	for _, key := range keys {
		if !strings.HasSuffix(strings.ToLower(key), ".heic") {
			continue
		}
		src, err := p.store.Read(ctx, key)
		if err != nil {
			log.Printf("Failed to read stored HEIC %s: %v", key, err)
			failed++
			continue
		}
		jpegBytes, err := p.transcode(src)
		if err != nil {
			log.Printf("Failed to convert stored HEIC %s: %v", key, err)
			failed++
			continue
		}
		jpegKey := strings.TrimSuffix(key, filepath.Ext(key)) + ".jpg"
		if err := p.store.Write(ctx, jpegKey, jpegBytes, "image/jpeg"); err != nil {
			log.Printf("Failed to store converted %s: %v", jpegKey, err)
			failed++
			continue
		}
		if err := p.store.Delete(ctx, key); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("Failed to remove original HEIC %s: %v", key, err)
		}
		converted++
	}
	return converted, failed, nil
}

// ReleaseBlob deletes the blob behind a servable image URL. A blob that
// is already gone is treated as released.
func ReleaseBlob(ctx context.Context, store BlobStore, imageURL string) error {
	key := KeyFromURL(imageURL)
	if key == "" {
		return nil
	}
	if err := store.Delete(ctx, key); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("File not found for %s, nothing to release", key)
			return nil
		}
		return err
	}
	return nil
}
