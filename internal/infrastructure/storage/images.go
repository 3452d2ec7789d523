package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/chouchef/chouchef-api/internal/core/domain"
)

// ImageStore keeps uploaded images as flat files under a single directory.
type ImageStore struct {
	fs afero.Fs
}

// NewImageStore roots the store at dir on the OS filesystem, creating the
// directory when needed.
func NewImageStore(dir string) (*ImageStore, error) {
	return newImageStoreAt(afero.NewOsFs(), dir)
}

func newImageStoreAt(base afero.Fs, dir string) (*ImageStore, error) {
	if err := base.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return NewImageStoreFs(afero.NewBasePathFs(base, dir)), nil
}

func NewImageStoreFs(fs afero.Fs) *ImageStore {
	return &ImageStore{fs: fs}
}

// Save writes r under the base name of name and returns that stored name.
func (s *ImageStore) Save(name string, r io.Reader) (string, error) {
	clean, err := cleanName(name)
	if err != nil {
		return "", err
	}

	f, err := s.fs.Create(clean)
	if err != nil {
		return "", fmt.Errorf("create image: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(clean)
		return "", fmt.Errorf("write image: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close image: %w", err)
	}
	return clean, nil
}

func (s *ImageStore) Open(name string) (io.ReadCloser, error) {
	clean, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	f, err := s.fs.Open(clean)
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrImageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}

	if info, err := f.Stat(); err == nil && info.IsDir() {
		_ = f.Close()
		return nil, domain.ErrImageNotFound
	}
	return f, nil
}

// cleanName keeps only the final path element so names can never leave the
// image directory.
func cleanName(name string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == ".." || base == "/" || strings.TrimSpace(base) == "" {
		return "", domain.ErrInvalidImageName
	}
	return base, nil
}
