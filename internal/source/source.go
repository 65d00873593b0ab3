package source

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vk/aftersort/internal/fileid"
)

// ErrNotFound is returned when an identity does not name an existing file.
// It wraps fs.ErrNotExist so both sentinels match.
var ErrNotFound = fmt.Errorf("source file not found: %w", fs.ErrNotExist)

// Source opens files by identity.
type Source interface {
	// Open returns the content of the file. It returns an error matching
	// ErrNotFound when the file does not exist.
	Open(id fileid.Identity) (io.ReadCloser, error)
}

// Disk is a Source backed by the operating system's file system.
type Disk struct{}

// NewDisk creates a new disk-backed Source.
func NewDisk() *Disk {
	return &Disk{}
}

// Open opens the identity as a path relative to the working directory.
func (d *Disk) Open(id fileid.Identity) (io.ReadCloser, error) {
	f, err := os.Open(filepath.FromSlash(string(id)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to open %s: %w", id, err)
	}
	info, err := f.Stat()
	if err == nil && info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, id)
	}
	return f, nil
}
