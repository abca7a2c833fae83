package ingest

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCodec struct {
	name string
	out  []byte
	err  error
}

func (c stubCodec) Name() string { return c.name }

func (c stubCodec) Transcode([]byte) ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.out, nil
}

func newTestPipeline(t *testing.T, codecs ...Transcoder) (*Pipeline, *LocalStore) {
	t.Helper()
	store, err := NewLocalStore(t.TempDir(), "http://localhost:5003")
	require.NoError(t, err)
	p := NewPipeline(store, codecs)
	// Deterministic, strictly increasing clock so keys never collide
	var tick int64
	p.now = func() time.Time {
		tick++
		return time.Unix(0, 1700000000000000000+tick)
	}
	return p, store
}

func storedFiles(t *testing.T, store *LocalStore) []string {
	t.Helper()
	keys, err := store.List(context.Background())
	require.NoError(t, err)
	return keys
}

func TestIngestNonHEICStoresUnchanged(t *testing.T) {
	p, store := newTestPipeline(t)
	data := []byte("jpeg-bytes")

	result, err := p.Ingest(context.Background(), data, "photo.JPG", "image/jpeg")
	require.NoError(t, err)

	assert.Empty(t, result.Warning)
	assert.True(t, strings.HasSuffix(result.Key, ".jpg"))
	assert.Equal(t, "http://localhost:5003/uploads/"+result.Key, result.URL)

	keys := storedFiles(t, store)
	require.Len(t, keys, 1)
	stored, err := store.Read(context.Background(), keys[0])
	require.NoError(t, err)
	assert.Equal(t, data, stored)
}

func TestIngestEmptyFileFails(t *testing.T) {
	p, _ := newTestPipeline(t)
	_, err := p.Ingest(context.Background(), nil, "photo.jpg", "image/jpeg")
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestIngestHEICTranscodedByPrimary(t *testing.T) {
	jpegOut := []byte("transcoded-jpeg")
	p, store := newTestPipeline(t,
		stubCodec{name: "primary", out: jpegOut},
		stubCodec{name: "fallback", err: errors.New("should not be called")},
	)

	result, err := p.Ingest(context.Background(), []byte("heic-bytes"), "IMG_0001.HEIC", "image/heic")
	require.NoError(t, err)

	assert.Empty(t, result.Warning)
	assert.True(t, strings.HasSuffix(result.Key, ".jpg"))

	// Original HEIC must be gone; only the JPEG remains
	keys := storedFiles(t, store)
	require.Len(t, keys, 1)
	assert.Equal(t, result.Key, keys[0])
	stored, err := store.Read(context.Background(), result.Key)
	require.NoError(t, err)
	assert.Equal(t, jpegOut, stored)
}

func TestIngestHEICFallbackSucceedsWithoutWarning(t *testing.T) {
	jpegOut := []byte("fallback-jpeg")
	p, store := newTestPipeline(t,
		stubCodec{name: "primary", err: errors.New("decode failed")},
		stubCodec{name: "fallback", out: jpegOut},
	)

	result, err := p.Ingest(context.Background(), []byte("heic-bytes"), "img.heic", "image/heic")
	require.NoError(t, err)

	assert.Empty(t, result.Warning)
	keys := storedFiles(t, store)
	require.Len(t, keys, 1)
	stored, err := store.Read(context.Background(), result.Key)
	require.NoError(t, err)
	assert.Equal(t, jpegOut, stored)
}

func TestIngestHEICBothCodecsFailIsSoftFailure(t *testing.T) {
	p, store := newTestPipeline(t,
		stubCodec{name: "primary", err: errors.New("decode failed")},
		stubCodec{name: "fallback", err: errors.New("also failed")},
	)

	original := []byte("heic-bytes")
	result, err := p.Ingest(context.Background(), original, "img.heic", "image/heic")
	require.NoError(t, err, "double codec failure must not fail the ingestion")

	assert.Equal(t, HEICWarning, result.Warning)
	assert.True(t, strings.HasSuffix(result.Key, ".heic"))

	// The original file is kept and still readable
	stored, err := store.Read(context.Background(), result.Key)
	require.NoError(t, err)
	assert.Equal(t, original, stored)
}

func TestIngestDetectionByMimeAndExtension(t *testing.T) {
	assert.True(t, IsHEIC("img.heic", "application/octet-stream"))
	assert.True(t, IsHEIC("IMG.HEIC", ""))
	assert.True(t, IsHEIC("whatever.bin", "image/heic"))
	assert.False(t, IsHEIC("img.jpeg", "image/jpeg"))
	assert.False(t, IsHEIC("heic.jpg", "image/jpeg"))
}

func TestIngestSameBytesGetDistinctKeys(t *testing.T) {
	p, store := newTestPipeline(t)
	data := []byte("same-bytes")

	first, err := p.Ingest(context.Background(), data, "a.jpg", "image/jpeg")
	require.NoError(t, err)
	second, err := p.Ingest(context.Background(), data, "a.jpg", "image/jpeg")
	require.NoError(t, err)

	assert.NotEqual(t, first.Key, second.Key)
	assert.Len(t, storedFiles(t, store), 2)
}

func TestConvertStoredBackfillsHEICFiles(t *testing.T) {
	p, store := newTestPipeline(t, stubCodec{name: "primary", out: []byte("jpeg")})
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "old.heic", []byte("heic"), "image/heic"))
	require.NoError(t, store.Write(ctx, "keep.jpg", []byte("jpeg"), "image/jpeg"))

	converted, failed, err := p.ConvertStored(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, converted)
	assert.Equal(t, 0, failed)

	keys := storedFiles(t, store)
	assert.ElementsMatch(t, []string{"old.jpg", "keep.jpg"}, keys)
}

func TestConvertStoredCountsFailures(t *testing.T) {
	p, store := newTestPipeline(t, stubCodec{name: "primary", err: errors.New("nope")})
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "stuck.heic", []byte("heic"), "image/heic"))

	converted, failed, err := p.ConvertStored(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, converted)
	assert.Equal(t, 1, failed)

	// The unconvertible file stays put
	assert.Equal(t, []string{"stuck.heic"}, storedFiles(t, store))
}

func TestLocalStoreDeleteMissingReportsNotExist(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "http://localhost:5003")
	require.NoError(t, err)

	err = store.Delete(context.Background(), "never-written.jpg")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReleaseBlobToleratesMissingFile(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "http://localhost:5003")
	require.NoError(t, err)

	err = ReleaseBlob(context.Background(), store, "http://localhost:5003/uploads/gone.jpg")
	assert.NoError(t, err)
}

func TestReleaseBlobDeletesExistingFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "http://localhost:5003")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "img.jpg", []byte("data"), "image/jpeg"))
	require.NoError(t, ReleaseBlob(ctx, store, "http://localhost:5003/uploads/img.jpg"))

	_, err = os.Stat(filepath.Join(dir, "img.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestKeyFromURL(t *testing.T) {
	assert.Equal(t, "123.jpg", KeyFromURL("http://localhost:5003/uploads/123.jpg"))
	assert.Equal(t, "123.jpg", KeyFromURL("https://bucket.s3.us-east-1.amazonaws.com/123.jpg"))
	assert.Equal(t, "123.jpg", KeyFromURL("123.jpg"))
	assert.Equal(t, "", KeyFromURL(""))
}
