// Package storage keeps uploaded anúncio media. The default backend writes
// files to a local uploads directory served by the HTTP layer; an S3 backend
// stores objects remotely and hands out pre-signed GET URLs instead.
package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// MaxMediaSize is the maximum accepted upload size (50MB).
const MaxMediaSize = 50 * 1024 * 1024

// Media stores uploaded anúncio assets under generated filenames.
type Media interface {
	// Save stores the upload and returns the generated stored filename.
	Save(ctx context.Context, originalName, contentType string, body io.Reader, size int64) (string, error)
	// Delete removes a stored file. Deleting a missing file is not an error.
	Delete(ctx context.Context, storedName string) error
}

// MediaFilename builds a collision-resistant stored name for an upload:
// a random prefix joined to the sanitized original base name.
func MediaFilename(originalName string) string {
	return uuid.NewString() + "_" + sanitizeFilename(originalName)
}

// sanitizeFilename strips path components and reduces the name to a safe
// character set, mirroring what the web client expects to see back in URLs.
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	s := strings.Trim(b.String(), "._")
	if s == "" {
		return "arquivo"
	}
	return s
}
