// internal/core/ports/archive.go
package ports

import "context"

// FileArchive keeps a copy of uploaded files.
type FileArchive interface {
	// Archive stores data under a key derived from name and returns the key.
	Archive(ctx context.Context, name string, data []byte) (string, error)
}
