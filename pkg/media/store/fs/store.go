// Package fs provides a filesystem-backed media blob store.
package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/chirpnet/chirpd/pkg/media/store"
	"github.com/chirpnet/chirpd/pkg/models"
)

// Store is a filesystem-backed implementation of store.Store.
// Each media record gets its own directory under the root, named by the
// record id, with the payload stored as a single file inside it.
type Store struct {
	mu       sync.RWMutex
	root     string
	dirMode  os.FileMode
	fileMode os.FileMode
	closed   bool
}

// Config holds configuration for the filesystem media store.
type Config struct {
	// Root is the media root directory. Record directories are created
	// directly under it.
	Root string

	// CreateDir creates the root directory if it doesn't exist.
	CreateDir bool

	// DirMode is the permission mode for created directories.
	// Default: 0755
	DirMode os.FileMode

	// FileMode is the permission mode for created files.
	// Default: 0644
	FileMode os.FileMode
}

// DefaultConfig returns the default configuration.
func DefaultConfig(root string) Config {
	return Config{
		Root:      root,
		CreateDir: true,
		DirMode:   0755,
		FileMode:  0644,
	}
}

// New creates a new filesystem media store with the given configuration.
func New(cfg Config) (*Store, error) {
	if cfg.Root == "" {
		return nil, errors.New("media root is required")
	}

	if cfg.DirMode == 0 {
		cfg.DirMode = 0755
	}
	if cfg.FileMode == 0 {
		cfg.FileMode = 0644
	}

	// Create the root directory if requested
	if cfg.CreateDir {
		if err := os.MkdirAll(cfg.Root, cfg.DirMode); err != nil {
			return nil, err
		}
	}

	// Verify the root exists and is a directory
	info, err := os.Stat(cfg.Root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New("media root is not a directory")
	}

	return &Store{
		root:     cfg.Root,
		dirMode:  cfg.DirMode,
		fileMode: cfg.FileMode,
	}, nil
}

// Prepare creates the record's directory under the root and returns the
// absolute destination path for its payload.
func (s *Store) Prepare(record *models.Media) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", store.ErrStoreClosed
	}

	dir := filepath.Join(s.root, strconv.FormatInt(record.ID, 10))
	if err := os.Mkdir(dir, s.dirMode); err != nil && !errors.Is(err, fs.ErrExist) {
		return "", err
	}

	return filepath.Abs(filepath.Join(dir, record.Name))
}

// Write stores the payload at the destination prepared for the record.
// The record's directory must already exist.
func (s *Store) Write(ctx context.Context, record *models.Media, data []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return store.ErrStoreClosed
	}

	f, err := os.OpenFile(record.File, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, s.fileMode)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Close marks the store closed. Operations already holding the lock
// complete first.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Compile-time interface check
var _ store.Store = (*Store)(nil)
