// Package s3 provides an S3-backed media blob store using the AWS SDK v2.
// It works against AWS as well as S3-compatible endpoints such as MinIO or
// Localstack.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/chirpnet/chirpd/pkg/media/store"
	"github.com/chirpnet/chirpd/pkg/models"
)

// Store is an S3-backed implementation of store.Store. Each media payload
// is stored as a single object keyed by `<prefix><id>/<name>`.
type Store struct {
	mu        sync.RWMutex
	client    *s3.Client
	bucket    string
	keyPrefix string
	closed    bool
}

// Config holds configuration for the S3 media store.
type Config struct {
	// Bucket is the S3 bucket holding media payloads.
	Bucket string

	// Region is the AWS region. Falls back to the SDK's default chain
	// when empty.
	Region string

	// Endpoint overrides the S3 endpoint, for S3-compatible services.
	Endpoint string

	// KeyPrefix is prepended to every object key.
	KeyPrefix string

	// MaxRetries caps the SDK retry attempts. 0 keeps the SDK default.
	MaxRetries int

	// ForcePathStyle switches to path-style addressing, required by most
	// S3-compatible services.
	ForcePathStyle bool
}

// New creates a new S3 media store with an already configured client.
func New(client *s3.Client, cfg Config) *Store {
	prefix := cfg.KeyPrefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	return &Store{
		client:    client,
		bucket:    cfg.Bucket,
		keyPrefix: prefix,
	}
}

// NewFromConfig creates a new S3 media store, building the client from the
// default AWS credential chain plus the given configuration.
func NewFromConfig(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket is required")
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.MaxRetries > 0 {
		opts = append(opts, awsconfig.WithRetryMaxAttempts(cfg.MaxRetries))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		if cfg.ForcePathStyle {
			o.UsePathStyle = true
		}
	})

	return New(client, cfg), nil
}

// Prepare returns the object key for the record. S3 has no directories,
// so nothing is allocated up front.
func (s *Store) Prepare(record *models.Media) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", store.ErrStoreClosed
	}

	return s.keyPrefix + strconv.FormatInt(record.ID, 10) + "/" + record.Name, nil
}

// Write uploads the payload under the record's object key.
func (s *Store) Write(ctx context.Context, record *models.Media, data []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return store.ErrStoreClosed
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(record.File),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %q: %w", record.File, err)
	}
	return nil
}

// Close marks the store closed. The underlying client needs no teardown.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// Compile-time interface check
var _ store.Store = (*Store)(nil)
