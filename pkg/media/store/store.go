// Package store provides the media blob store interface for payload
// persistence.
package store

import (
	"context"
	"errors"

	"github.com/chirpnet/chirpd/pkg/models"
)

// Common errors returned by Store implementations.
var (
	// ErrStoreClosed is returned when operations are attempted on a closed store.
	ErrStoreClosed = errors.New("store is closed")
)

// Store defines the interface for media payload storage backends.
//
// The upload orchestrator calls Prepare once per record to allocate a
// destination, which it persists in the record's File column. The write
// worker later calls Write with the fully resolved payload. Prepare never
// touches payload bytes; Write never allocates destinations.
type Store interface {
	// Prepare allocates the destination for a media record and returns
	// the location to persist as the record's file path.
	Prepare(record *models.Media) (string, error)

	// Write persists the payload at the location prepared for the
	// record. Write creates no directories.
	Write(ctx context.Context, record *models.Media, data []byte) error

	// Close releases any resources held by the store.
	Close() error
}
