package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStore keeps blobs as files in a single directory served by the
// /uploads/ static route.
type LocalStore struct {
	Dir     string
	BaseURL string
}

// NewLocalStore creates the upload directory if needed
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &LocalStore{Dir: dir, BaseURL: baseURL}, nil
}

func (s *LocalStore) Write(_ context.Context, key string, data []byte, _ string) error {
	if err := os.WriteFile(filepath.Join(s.Dir, key), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *LocalStore) Read(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, key))
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(s.Dir, key))
	if err != nil && os.IsNotExist(err) {
		return fs.ErrNotExist
	}
	return err
}

func (s *LocalStore) URL(_ context.Context, key string) (string, error) {
	return fmt.Sprintf("%s/uploads/%s", s.BaseURL, key), nil
}

func (s *LocalStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, e := range entries {
		if !e.IsDir() {
			keys = append(keys, e.Name())
		}
	}
	return keys, nil
}
