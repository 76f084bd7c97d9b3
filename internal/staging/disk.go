package staging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Disk stages uploads in a local directory.
type Disk struct{ dir string }

var _ Store = (*Disk)(nil)

// NewDisk creates dir if needed.
func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	return &Disk{dir: dir}, nil
}

// Stage writes r to a new file under the staging directory.
func (d *Disk) Stage(_ context.Context, filename string, r io.Reader, _ int64) (key string, err error) {
	key, err = newKey(filename)
	if err != nil {
		return "", err
	}
	path := filepath.Join(d.dir, key)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	if _, err = io.Copy(f, r); err != nil {
		return "", err
	}
	return key, nil
}

// Open opens a staged file for reading.
func (d *Disk) Open(_ context.Context, key string) (io.ReadCloser, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(d.dir, key))
}

// Remove deletes a staged file.
func (d *Disk) Remove(_ context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(d.dir, key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
