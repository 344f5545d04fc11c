package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Local stores media files in a directory on disk. Files are served straight
// from the directory by the HTTP layer under /uploads/.
type Local struct {
	dir    string
	logger *zap.Logger
}

// NewLocal creates the uploads directory if needed and returns a local store.
func NewLocal(dir string, logger *zap.Logger) (*Local, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir, logger: logger}, nil
}

// Dir returns the uploads directory.
func (l *Local) Dir() string { return l.dir }

// Save writes the upload under a generated filename and returns it.
func (l *Local) Save(_ context.Context, originalName, _ string, body io.Reader, _ int64) (string, error) {
	name := MediaFilename(originalName)
	dst, err := os.Create(filepath.Join(l.dir, name))
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, body); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write media file: %w", err)
	}
	l.logger.Debug("media stored", zap.String("file", name))
	return name, nil
}

// Delete removes a stored file. A file already gone is treated as deleted.
func (l *Local) Delete(_ context.Context, storedName string) error {
	// Re-sanitize so a stored name from a hand-edited collection file cannot
	// point outside the uploads directory.
	name := filepath.Base(storedName)
	if err := os.Remove(filepath.Join(l.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove media file: %w", err)
	}
	return nil
}
