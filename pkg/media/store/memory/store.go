// Package memory provides an in-memory media blob store for tests and
// ephemeral runs.
package memory

import (
	"context"
	"path"
	"strconv"
	"sync"

	"github.com/chirpnet/chirpd/pkg/media/store"
	"github.com/chirpnet/chirpd/pkg/models"
)

// Store is an in-memory implementation of store.Store. Payloads live in a
// map keyed by the prepared location; nothing touches disk.
type Store struct {
	mu     sync.RWMutex
	root   string
	blobs  map[string][]byte
	closed bool
}

// New creates a new in-memory media store. The root only namespaces the
// locations Prepare hands out.
func New(root string) *Store {
	return &Store{
		root:  root,
		blobs: make(map[string][]byte),
	}
}

// Prepare returns the virtual location for the record.
func (s *Store) Prepare(record *models.Media) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", store.ErrStoreClosed
	}

	return path.Join(s.root, strconv.FormatInt(record.ID, 10), record.Name), nil
}

// Write stores a copy of the payload under the record's location.
func (s *Store) Write(ctx context.Context, record *models.Media, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return store.ErrStoreClosed
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	s.blobs[record.File] = buf
	return nil
}

// Get returns the payload stored under a location.
func (s *Store) Get(location string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[location]
	return data, ok
}

// Len returns the number of stored payloads.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.blobs)
}

// Close marks the store closed and drops all payloads.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.blobs = nil
	return nil
}

// Compile-time interface check
var _ store.Store = (*Store)(nil)
