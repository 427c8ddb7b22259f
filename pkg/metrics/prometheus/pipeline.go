// Package prometheus contains the Prometheus implementations of the metrics
// interfaces declared next to their consumers.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/chirpnet/chirpd/pkg/media"
	"github.com/chirpnet/chirpd/pkg/metrics"
)

// pipelineMetrics is the Prometheus implementation of media.PipelineMetrics.
type pipelineMetrics struct {
	submittedBatches prometheus.Counter
	submittedFiles   prometheus.Counter
	readQueueDepth   prometheus.Gauge
	writeQueueDepth  prometheus.Gauge
	batchFiles       prometheus.Histogram
	resolveDuration  prometheus.Histogram
	resolveBytes     prometheus.Histogram
	writeDuration    prometheus.Histogram
	writeBytes       prometheus.Histogram
	readFailures     prometheus.Counter
	writeFailures    prometheus.Counter
}

// NewPipelineMetrics creates a new Prometheus-backed PipelineMetrics
// instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewPipelineMetrics() media.PipelineMetrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	return &pipelineMetrics{
		submittedBatches: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "chirpd_pipeline_submitted_batches_total",
				Help: "Total number of upload batches accepted into the read queue",
			},
		),
		submittedFiles: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "chirpd_pipeline_submitted_files_total",
				Help: "Total number of files accepted across all batches",
			},
		),
		readQueueDepth: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "chirpd_pipeline_read_queue_depth",
				Help: "Current number of batches waiting in the read queue",
			},
		),
		writeQueueDepth: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "chirpd_pipeline_write_queue_depth",
				Help: "Current number of payloads waiting in the write queue",
			},
		),
		batchFiles: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name: "chirpd_pipeline_batch_files",
				Help: "Distribution of files per resolved batch",
				Buckets: []float64{
					1,  // single file - the common case
					2,  // 2 files
					5,  // 5 files
					10, // 10 files
					20, // 20 files
				},
			},
		),
		resolveDuration: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name: "chirpd_pipeline_resolve_duration_milliseconds",
				Help: "Duration of concurrent batch content resolution in milliseconds",
				Buckets: []float64{
					1,    // 1ms - tiny uploads
					10,   // 10ms
					50,   // 50ms
					100,  // 100ms
					500,  // 500ms
					1000, // 1s - large batches
					5000, // 5s
				},
			},
		),
		resolveBytes: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name: "chirpd_pipeline_resolve_bytes",
				Help: "Distribution of total bytes resolved per batch",
				Buckets: []float64{
					4096,     // 4KB
					65536,    // 64KB
					262144,   // 256KB
					1048576,  // 1MB
					6291456,  // 6MB - single file upload limit
					20971520, // 20MB - multi-file batches
				},
			},
		),
		writeDuration: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name: "chirpd_pipeline_write_duration_milliseconds",
				Help: "Duration of single blob store writes in milliseconds",
				Buckets: []float64{
					1,    // 1ms - local disk
					5,    // 5ms
					10,   // 10ms
					50,   // 50ms
					100,  // 100ms - object storage
					500,  // 500ms
					1000, // 1s
					5000, // 5s
				},
			},
		),
		writeBytes: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name: "chirpd_pipeline_write_bytes",
				Help: "Distribution of bytes written per payload",
				Buckets: []float64{
					4096,    // 4KB
					65536,   // 64KB
					262144,  // 256KB
					1048576, // 1MB
					6291456, // 6MB - single file upload limit
				},
			},
		),
		readFailures: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "chirpd_pipeline_read_failures_total",
				Help: "Total number of batches dropped because an upload read failed",
			},
		),
		writeFailures: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "chirpd_pipeline_write_failures_total",
				Help: "Total number of payloads dropped because the blob write failed",
			},
		),
	}
}

func (m *pipelineMetrics) RecordSubmit(files int) {
	if m == nil {
		return
	}

	m.submittedBatches.Inc()
	m.submittedFiles.Add(float64(files))
}

func (m *pipelineMetrics) RecordQueueDepth(read, write int) {
	if m == nil {
		return
	}

	m.readQueueDepth.Set(float64(read))
	m.writeQueueDepth.Set(float64(write))
}

func (m *pipelineMetrics) ObserveResolve(files int, bytes int64, duration time.Duration) {
	if m == nil {
		return
	}

	m.batchFiles.Observe(float64(files))
	m.resolveDuration.Observe(duration.Seconds() * 1000)

	if bytes > 0 {
		m.resolveBytes.Observe(float64(bytes))
	}
}

func (m *pipelineMetrics) ObserveWrite(bytes int64, duration time.Duration) {
	if m == nil {
		return
	}

	m.writeDuration.Observe(duration.Seconds() * 1000)

	if bytes > 0 {
		m.writeBytes.Observe(float64(bytes))
	}
}

func (m *pipelineMetrics) RecordReadFailure() {
	if m == nil {
		return
	}

	m.readFailures.Inc()
}

func (m *pipelineMetrics) RecordWriteFailure() {
	if m == nil {
		return
	}

	m.writeFailures.Inc()
}
