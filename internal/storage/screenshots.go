package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ScreenshotStorage stores manual-payment proof uploads.
type ScreenshotStorage interface {
	// Save writes the uploaded file and returns the stored filename.
	Save(ctx context.Context, orderID, originalName string, file io.Reader) (string, error)
}

type diskScreenshotStore struct {
	dir string
}

// NewDiskScreenshotStore stores screenshots under dir, which is created on
// first use.
func NewDiskScreenshotStore(dir string) ScreenshotStorage {
	return &diskScreenshotStore{dir: dir}
}

func (s *diskScreenshotStore) Save(_ context.Context, orderID, originalName string, file io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create uploads dir: %w", err)
	}

	// random name so colliding or hostile upload names can't overwrite anything
	name := orderID + "_" + uuid.NewString() + filepath.Ext(originalName)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create screenshot file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to write screenshot: %w", err)
	}
	return name, nil
}
