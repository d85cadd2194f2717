package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("media file not found")
	ErrInvalidKey = errors.New("invalid media key")
)

// Storage keeps uploaded media such as resolucion attachments
type Storage interface {
	// Save writes r under key and returns the public URL of the file.
	Save(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	// Open reads the file stored under key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the file stored under key. Missing files are not an error.
	Delete(ctx context.Context, key string) error
	// URL is the public URL of key.
	URL(key string) string
	// KeyFromURL recovers the key from a URL returned by Save.
	KeyFromURL(url string) (string, bool)
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// GenerateKey builds a unique key for an upload under prefix
func GenerateKey(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.Trim(unsafeChars.ReplaceAllString(base, "_"), "_")
	if len(base) > 60 {
		base = base[:60]
	}
	if base == "" {
		base = "archivo"
	}
	return fmt.Sprintf("%s/%s_%s%s", strings.Trim(prefix, "/"), uuid.New().String()[:8], base, ext)
}

// cleanKey rejects absolute keys and keys escaping the media root.
func cleanKey(key string) (string, error) {
	key = filepath.ToSlash(filepath.Clean("/" + key))[1:]
	if key == "" || key == "." || strings.HasPrefix(key, "../") {
		return "", ErrInvalidKey
	}
	return key, nil
}
