// Package staging holds uploaded audio between receipt and transcription.
package staging

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Store keeps short-lived uploads addressed by generated keys.
type Store interface {
	// Stage persists r and returns its key; the key keeps the filename extension.
	Stage(ctx context.Context, filename string, r io.Reader, size int64) (string, error)
	// Open reads a staged object back.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Remove deletes a staged object; removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// ErrBadKey is returned for keys that were not produced by Stage.
var ErrBadKey = errors.New("staging: bad key")

// newKey returns a random key with the lower-cased extension of filename, if it is plain.
func newKey(filename string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) < 2 || len(ext) > 6 || strings.IndexFunc(ext[1:], notAlnum) >= 0 {
		ext = ""
	}
	return id + ext, nil
}

func notAlnum(r rune) bool {
	return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
}

func checkKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return ErrBadKey
	}
	return nil
}
