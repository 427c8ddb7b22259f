package media

import (
	"context"
	"fmt"

	"github.com/chirpnet/chirpd/internal/logger"
	"github.com/chirpnet/chirpd/internal/telemetry"
	"github.com/chirpnet/chirpd/pkg/media/store"
	"github.com/chirpnet/chirpd/pkg/models"
)

// MediaStore is the subset of the database store the media service needs.
type MediaStore interface {
	// CreateMedia persists new media records and back-fills their ids.
	CreateMedia(ctx context.Context, media []*models.Media) error

	// UpdateMediaFiles persists the file paths of the given records.
	UpdateMediaFiles(ctx context.Context, media []*models.Media) error
}

// Service orchestrates media uploads: it creates the database records,
// assigns destination paths and hands the batch to the pipeline.
type Service struct {
	store    MediaStore
	blobs    store.Store
	pipeline *Pipeline
}

// NewService creates a media service backed by the given database store,
// blob store and pipeline.
func NewService(db MediaStore, blobs store.Store, pipeline *Pipeline) *Service {
	return &Service{
		store:    db,
		blobs:    blobs,
		pipeline: pipeline,
	}
}

// Pipeline returns the service's pipeline, for lifecycle and status use.
func (s *Service) Pipeline() *Pipeline {
	return s.pipeline
}

// SaveUploads accepts a batch of uploads for asynchronous persistence.
//
// For each upload it creates a media record named by the sanitized
// filename, assigns and persists the destination path derived from the
// record id, then submits the whole batch to the pipeline. The created
// records are returned as soon as the batch is queued; the file content is
// written in the background and is not guaranteed to be on storage when
// this call returns.
//
// release, if non-nil, runs exactly once: by the pipeline after the batch
// content has been resolved, or here when the batch is refused.
//
// Returns ErrPipelineStopped once the pipeline has been stopped.
func (s *Service) SaveUploads(ctx context.Context, uploads []Upload, release func()) (records []*models.Media, err error) {
	ctx, span := telemetry.StartPipelineSpan(ctx, "submit",
		telemetry.BatchSize(len(uploads)))
	defer span.End()

	defer func() {
		if err != nil {
			telemetry.RecordError(ctx, err)
			if release != nil {
				release()
			}
		}
	}()

	if s.pipeline.Stopped() {
		logger.Error("Queue is closed")
		return nil, ErrPipelineStopped
	}

	records = make([]*models.Media, len(uploads))
	for i, upload := range uploads {
		records[i] = &models.Media{Name: SanitizeFilename(upload.Name())}
	}

	if err := s.store.CreateMedia(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to create media records: %w", err)
	}

	// Destination paths are derived from the fresh ids and persisted
	// before enqueueing. The pipeline only ever reads the records.
	for _, record := range records {
		loc, err := s.blobs.Prepare(record)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare destination for media %d: %w", record.ID, err)
		}
		record.File = loc
	}

	if err := s.store.UpdateMediaFiles(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to persist media paths: %w", err)
	}

	if err := s.pipeline.Submit(ctx, records, uploads, release); err != nil {
		return nil, err
	}

	logger.Debug("Upload batch queued", "files", len(records))

	return records, nil
}
