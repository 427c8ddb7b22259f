package config

import (
	"context"
	"fmt"

	mediastore "github.com/chirpnet/chirpd/pkg/media/store"
	blobfs "github.com/chirpnet/chirpd/pkg/media/store/fs"
	blobmemory "github.com/chirpnet/chirpd/pkg/media/store/memory"
	blobs3 "github.com/chirpnet/chirpd/pkg/media/store/s3"
)

// CreateBlobStore creates a media blob store instance from configuration.
//
// The store type is selected by media.store.type:
//   - "fs" (default): files under the media root directory
//   - "memory": in-memory, for tests and ephemeral runs
//   - "s3": S3-compatible object storage
func CreateBlobStore(ctx context.Context, cfg MediaConfig) (mediastore.Store, error) {
	switch cfg.Store.Type {
	case "fs", "":
		return createFSBlobStore(cfg)
	case "memory":
		return blobmemory.New(cfg.Root), nil
	case "s3":
		return createS3BlobStore(ctx, cfg.Store.S3)
	default:
		return nil, fmt.Errorf("unknown media store type: %q", cfg.Store.Type)
	}
}

// createFSBlobStore creates a filesystem-backed media store rooted at the
// media root directory.
func createFSBlobStore(cfg MediaConfig) (mediastore.Store, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("fs media store requires media root to be set")
	}

	// Build config - fs.New() applies defaults for zero values
	fsCfg := blobfs.Config{
		Root:      cfg.Root,
		CreateDir: true,
	}

	return blobfs.New(fsCfg)
}

// createS3BlobStore creates an S3-backed media store.
func createS3BlobStore(ctx context.Context, cfg S3Config) (mediastore.Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 media store requires bucket to be set")
	}

	s3Cfg := blobs3.Config{
		Bucket:         cfg.Bucket,
		Region:         cfg.Region,
		Endpoint:       cfg.Endpoint,
		KeyPrefix:      cfg.KeyPrefix,
		MaxRetries:     cfg.MaxRetries,
		ForcePathStyle: cfg.ForcePathStyle,
	}

	return blobs3.NewFromConfig(ctx, s3Cfg)
}
