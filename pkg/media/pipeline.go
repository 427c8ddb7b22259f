// Package media implements asynchronous persistence of uploaded media files.
//
// The Service accepts validated uploads, creates their database records and
// destination paths synchronously, then hands the batch to the Pipeline.
// The pipeline resolves upload content and writes it to the blob store in
// the background, decoupling disk latency from HTTP request handling. The
// HTTP caller is told "accepted for processing", never "written".
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chirpnet/chirpd/internal/logger"
	"github.com/chirpnet/chirpd/internal/telemetry"
	"github.com/chirpnet/chirpd/pkg/media/store"
	"github.com/chirpnet/chirpd/pkg/models"
)

const (
	// DefaultReadQueueSize bounds pending upload batches.
	DefaultReadQueueSize = 10000

	// DefaultWriteQueueSize bounds pending resolved payloads. Sized larger
	// than the read queue because every batch fans out into one entry per
	// file.
	DefaultWriteQueueSize = 100000

	// DefaultStopTimeout bounds how long Stop waits for each worker.
	DefaultStopTimeout = 10 * time.Second
)

// ErrPipelineStopped is returned by Submit once Stop has been called.
var ErrPipelineStopped = errors.New("queue is closed")

// readJob pairs freshly created media records with their upload handles,
// aligned by position. A job with stop set carries no payload and only
// unblocks the read worker during shutdown.
type readJob struct {
	stop    bool
	records []*models.Media
	uploads []Upload
	release func()
}

// writeJob pairs one media record with its resolved payload.
type writeJob struct {
	stop   bool
	record *models.Media
	data   []byte
}

// PipelineConfig holds configuration for the upload pipeline.
type PipelineConfig struct {
	// ReadQueueSize is the capacity of the batch queue. Submit blocks
	// while it is full.
	// Default: 10000
	ReadQueueSize int

	// WriteQueueSize is the capacity of the resolved payload queue.
	// Default: 100000
	WriteQueueSize int

	// StopTimeout is how long Stop waits for each worker before
	// abandoning it.
	// Default: 10s
	StopTimeout time.Duration
}

// DefaultPipelineConfig returns sensible defaults.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		ReadQueueSize:  DefaultReadQueueSize,
		WriteQueueSize: DefaultWriteQueueSize,
		StopTimeout:    DefaultStopTimeout,
	}
}

// Pipeline moves uploaded file content into the blob store in the
// background.
//
// Two workers run between two bounded queues. The read worker resolves all
// uploads of one batch concurrently, then forwards one write job per file,
// preserving the batch order. The write worker performs the blocking blob
// writes one at a time, isolated so storage latency never stalls request
// handling. The pipeline never mutates records: ids, names and destination
// paths are assigned and persisted before a batch is submitted.
type Pipeline struct {
	blobs   store.Store
	metrics PipelineMetrics

	readQueue  chan readJob
	writeQueue chan writeJob

	stopTimeout time.Duration

	started atomic.Bool
	stopped atomic.Bool

	readDone  chan struct{}
	writeDone chan struct{}
}

// NewPipeline creates a pipeline writing into blobs. metrics may be nil,
// which disables collection.
func NewPipeline(blobs store.Store, metrics PipelineMetrics, cfg PipelineConfig) *Pipeline {
	if cfg.ReadQueueSize <= 0 {
		cfg.ReadQueueSize = DefaultReadQueueSize
	}
	if cfg.WriteQueueSize <= 0 {
		cfg.WriteQueueSize = DefaultWriteQueueSize
	}
	if cfg.StopTimeout <= 0 {
		cfg.StopTimeout = DefaultStopTimeout
	}

	return &Pipeline{
		blobs:       blobs,
		metrics:     metrics,
		readQueue:   make(chan readJob, cfg.ReadQueueSize),
		writeQueue:  make(chan writeJob, cfg.WriteQueueSize),
		stopTimeout: cfg.StopTimeout,
		readDone:    make(chan struct{}),
		writeDone:   make(chan struct{}),
	}
}

// Start launches both workers. Calling Start twice is a no-op.
func (p *Pipeline) Start() {
	if !p.started.CompareAndSwap(false, true) {
		return
	}

	logger.Info("Starting media pipeline",
		"read_queue_size", cap(p.readQueue),
		"write_queue_size", cap(p.writeQueue))

	go p.readWorker()
	go p.writeWorker()
}

// Stop flips the stop flag, unblocks both workers and waits up to the
// configured timeout for each to exit. A worker stuck past the timeout is
// abandoned; its unwritten jobs are lost. Stop is safe to call during
// active traffic and never blocks indefinitely. Calling Stop twice is a
// no-op.
func (p *Pipeline) Stop() {
	if !p.stopped.CompareAndSwap(false, true) {
		return
	}

	if !p.started.Load() {
		// Never started. The flag alone makes Submit refuse.
		return
	}

	logger.Info("Stopping media pipeline",
		"pending_reads", len(p.readQueue),
		"pending_writes", len(p.writeQueue))

	// Stop jobs unblock workers waiting on an empty queue. Sent without
	// blocking: a worker busy on a non-empty queue sees the flag at the
	// top of its loop instead.
	select {
	case p.readQueue <- readJob{stop: true}:
	default:
	}
	select {
	case p.writeQueue <- writeJob{stop: true}:
	default:
	}

	p.waitWorker(p.readDone, "read")
	p.waitWorker(p.writeDone, "write")

	logger.Info("Media pipeline stopped")
}

// Stopped reports whether Stop has been called.
func (p *Pipeline) Stopped() bool {
	return p.stopped.Load()
}

// QueueDepths returns the number of queued batches and payloads.
func (p *Pipeline) QueueDepths() (read, write int) {
	return len(p.readQueue), len(p.writeQueue)
}

// Submit enqueues one batch of records with their uploads, aligned by
// position. The call blocks while the read queue is full; ctx aborts the
// wait. release, if non-nil, runs exactly once after the batch content has
// been resolved (or the batch dropped) and is meant to free temporary
// upload resources such as multipart form spill files.
//
// Returns ErrPipelineStopped after Stop has been called. A submission
// racing Stop is either enqueued or refused, never silently dropped.
func (p *Pipeline) Submit(ctx context.Context, records []*models.Media, uploads []Upload, release func()) error {
	if p.stopped.Load() {
		return ErrPipelineStopped
	}

	if len(records) != len(uploads) {
		return fmt.Errorf("records and uploads length mismatch: %d != %d", len(records), len(uploads))
	}

	job := readJob{records: records, uploads: uploads, release: release}

	select {
	case p.readQueue <- job:
	case <-ctx.Done():
		return ctx.Err()
	}

	recordSubmit(p.metrics, len(records))
	recordQueueDepth(p.metrics, len(p.readQueue), len(p.writeQueue))

	return nil
}

// waitWorker waits for one worker to exit, bounded by the stop timeout.
func (p *Pipeline) waitWorker(done <-chan struct{}, name string) {
	select {
	case <-done:
	case <-time.After(p.stopTimeout):
		logger.Warn("Worker did not stop in time, abandoning it",
			"worker", name,
			"timeout", p.stopTimeout)
	}
}

// readWorker pulls one batch at a time and resolves all of its uploads
// concurrently. A single failed read drops the whole batch: the error is
// logged and the worker moves on. The uploader is never notified, its
// response was sent when the batch was accepted.
func (p *Pipeline) readWorker() {
	defer close(p.readDone)

	logger.Debug("Read worker started")

	for !p.stopped.Load() {
		job := <-p.readQueue
		if job.stop {
			continue
		}

		p.resolveBatch(job)
	}

	logger.Debug("Read worker stopped")
}

// resolveBatch reads every upload of the batch concurrently, waits for all
// of them, then forwards the payloads to the write queue in batch order.
func (p *Pipeline) resolveBatch(job readJob) {
	ctx, span := telemetry.StartPipelineSpan(context.Background(), "read",
		telemetry.BatchSize(len(job.uploads)))
	defer span.End()

	start := time.Now()
	payloads := make([][]byte, len(job.uploads))

	var g errgroup.Group
	for i, upload := range job.uploads {
		g.Go(func() error {
			data, err := readUpload(upload)
			if err != nil {
				return fmt.Errorf("failed to read upload %q: %w", upload.Name(), err)
			}
			payloads[i] = data
			return nil
		})
	}

	err := g.Wait()

	if job.release != nil {
		job.release()
	}

	if err != nil {
		telemetry.RecordError(ctx, err)
		recordReadFailure(p.metrics)
		logger.Error("Dropping upload batch, read failed",
			"batch_size", len(job.uploads),
			"error", err)
		return
	}

	var total int64
	for _, data := range payloads {
		total += int64(len(data))
	}
	observeResolve(p.metrics, len(payloads), total, time.Since(start))

	for i, record := range job.records {
		p.writeQueue <- writeJob{record: record, data: payloads[i]}
	}
	recordQueueDepth(p.metrics, len(p.readQueue), len(p.writeQueue))
}

// readUpload resolves the full content of one upload.
func readUpload(upload Upload) ([]byte, error) {
	f, err := upload.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

// writeWorker drains the write queue one payload at a time. Writes are
// blocking storage operations, isolated here so they never stall request
// handling or batch resolution. A failed write drops that payload and
// keeps the worker alive; the error surfaces only through logging.
func (p *Pipeline) writeWorker() {
	defer close(p.writeDone)

	logger.Debug("Write worker started")

	for !p.stopped.Load() {
		job := <-p.writeQueue
		if job.stop {
			continue
		}

		p.writeBlob(job)
	}

	logger.Debug("Write worker stopped")
}

// writeBlob performs one blob store write.
func (p *Pipeline) writeBlob(job writeJob) {
	// Fresh context per write, the originating request is long gone.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	ctx, span := telemetry.StartPipelineSpan(ctx, "write",
		telemetry.MediaID(job.record.ID),
		telemetry.StorageKey(job.record.File))
	defer span.End()

	start := time.Now()

	if err := p.blobs.Write(ctx, job.record, job.data); err != nil {
		telemetry.RecordError(ctx, err)
		recordWriteFailure(p.metrics)
		logger.Error("Dropping media payload, write failed",
			"media_id", job.record.ID,
			"file", job.record.File,
			"error", err)
		return
	}

	observeWrite(p.metrics, int64(len(job.data)), time.Since(start))
	logger.Debug("Media payload written",
		"media_id", job.record.ID,
		"file", job.record.File,
		"bytes", len(job.data))
}
