// Package image stores product images on the local filesystem. The key
// returned by Save is the generated filename; URLs are served by the file
// handler mounted in cmd/server.
package image

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: baseURL}, nil
}

func (s *DiskStore) Save(ctx context.Context, filename string, r io.Reader) (string, string, error) {
	key := uuid.NewString() + filepath.Ext(filename)

	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", "", fmt.Errorf("write image: %w", err)
	}
	return path.Join(s.baseURL, key), key, nil
}

func (s *DiskStore) Delete(ctx context.Context, key string) error {
	// Keys are generated names, never caller paths.
	err := os.Remove(filepath.Join(s.dir, filepath.Base(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}
