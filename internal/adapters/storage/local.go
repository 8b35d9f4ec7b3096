// internal/adapters/storage/local.go
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ammerola/parts-be/internal/core/ports"
)

// LocalArchive keeps uploaded files on the local filesystem. Used in
// development when no bucket is configured.
type LocalArchive struct {
	basePath string
	now      func() time.Time
	logger   *slog.Logger
}

var _ ports.FileArchive = (*LocalArchive)(nil)

// NewLocalArchive creates an archive rooted at basePath
func NewLocalArchive(basePath string, logger *slog.Logger) *LocalArchive {
	return &LocalArchive{
		basePath: basePath,
		now:      time.Now,
		logger:   logger.With(slog.String("storage", "local")),
	}
}

// Archive writes data below basePath and returns the relative key
func (l *LocalArchive) Archive(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := archiveKey("", l.now().UTC(), name)
	full := filepath.Join(l.basePath, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write archive file: %w", err)
	}

	l.logger.DebugContext(ctx, "file archived", slog.String("path", full))
	return key, nil
}
