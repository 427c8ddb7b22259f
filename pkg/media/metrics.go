package media

import (
	"time"
)

// PipelineMetrics provides observability for the upload pipeline.
//
// Implementations can use this interface to collect metrics about queue
// utilization, batch resolution and blob writes. This is optional - if not
// provided, metrics collection is skipped.
//
// Example implementations:
//   - Prometheus metrics
//   - In-memory counters for testing
type PipelineMetrics interface {
	// RecordSubmit records a batch accepted into the read queue
	RecordSubmit(files int)

	// RecordQueueDepth records the current depth of both queues
	RecordQueueDepth(read, write int)

	// ObserveResolve records the concurrent content resolution of one batch
	ObserveResolve(files int, bytes int64, duration time.Duration)

	// ObserveWrite records a single blob store write
	ObserveWrite(bytes int64, duration time.Duration)

	// RecordReadFailure records a batch dropped because a read failed
	RecordReadFailure()

	// RecordWriteFailure records a payload dropped because a write failed
	RecordWriteFailure()
}

// recordSubmit guards against a nil metrics implementation.
func recordSubmit(m PipelineMetrics, files int) {
	if m != nil {
		m.RecordSubmit(files)
	}
}

func recordQueueDepth(m PipelineMetrics, read, write int) {
	if m != nil {
		m.RecordQueueDepth(read, write)
	}
}

func observeResolve(m PipelineMetrics, files int, bytes int64, duration time.Duration) {
	if m != nil {
		m.ObserveResolve(files, bytes, duration)
	}
}

func observeWrite(m PipelineMetrics, bytes int64, duration time.Duration) {
	if m != nil {
		m.ObserveWrite(bytes, duration)
	}
}

func recordReadFailure(m PipelineMetrics) {
	if m != nil {
		m.RecordReadFailure()
	}
}

func recordWriteFailure(m PipelineMetrics) {
	if m != nil {
		m.RecordWriteFailure()
	}
}
