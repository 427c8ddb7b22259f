package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Common attribute keys for API and pipeline operations.
// These follow OpenTelemetry semantic conventions where applicable.
// Domain-specific keys use "tweet.", "media." and "pipeline." prefixes.
const (
	// ========================================================================
	// Client attributes
	// ========================================================================
	AttrClientIP   = "client.ip"
	AttrClientAddr = "client.address"

	// ========================================================================
	// HTTP attributes
	// ========================================================================
	AttrHTTPMethod = "http.request.method"
	AttrHTTPRoute  = "http.route"
	AttrHTTPStatus = "http.response.status_code"

	// ========================================================================
	// Domain attributes
	// ========================================================================
	AttrUserID        = "user.id"
	AttrUsername      = "user.name"
	AttrTweetID       = "tweet.id"
	AttrMediaID       = "media.id"
	AttrMediaFilename = "media.filename"
	AttrMediaSize     = "media.size"

	// ========================================================================
	// Pipeline attributes
	// ========================================================================
	AttrQueue      = "pipeline.queue"
	AttrQueueDepth = "pipeline.queue_depth"
	AttrBatchSize  = "pipeline.batch_size"

	// ========================================================================
	// Storage backend attributes
	// ========================================================================
	AttrStoreType = "store.type"
	AttrBucket    = "storage.bucket"
	AttrKey       = "storage.key"
	AttrRegion    = "storage.region"
	AttrDBTable   = "db.collection.name"
)

// Span names for operations.
// Format: <component>.<operation>
const (
	// Root span for API request processing
	SpanHTTPRequest = "http.request"

	// Pipeline spans
	SpanPipelineSubmit = "pipeline.submit"
	SpanPipelineRead   = "pipeline.read"
	SpanPipelineWrite  = "pipeline.write"

	// Blob store spans
	SpanBlobPrepare = "blob.prepare"
	SpanBlobWrite   = "blob.write"

	// Database spans
	SpanStoreQuery  = "store.query"
	SpanStoreCreate = "store.create"
	SpanStoreUpdate = "store.update"
	SpanStoreDelete = "store.delete"
)

// ClientIP returns an attribute for client IP address
func ClientIP(ip string) attribute.KeyValue {
	return attribute.String(AttrClientIP, ip)
}

// ClientAddr returns an attribute for full client address
func ClientAddr(addr string) attribute.KeyValue {
	return attribute.String(AttrClientAddr, addr)
}

// HTTPMethod returns an attribute for the HTTP request method
func HTTPMethod(method string) attribute.KeyValue {
	return attribute.String(AttrHTTPMethod, method)
}

// HTTPRoute returns an attribute for the matched route pattern
func HTTPRoute(route string) attribute.KeyValue {
	return attribute.String(AttrHTTPRoute, route)
}

// HTTPStatus returns an attribute for the HTTP response status code
func HTTPStatus(status int) attribute.KeyValue {
	return attribute.Int(AttrHTTPStatus, status)
}

// UserID returns an attribute for user ID
func UserID(id int64) attribute.KeyValue {
	return attribute.Int64(AttrUserID, id)
}

// Username returns an attribute for username
func Username(name string) attribute.KeyValue {
	return attribute.String(AttrUsername, name)
}

// TweetID returns an attribute for tweet ID
func TweetID(id int64) attribute.KeyValue {
	return attribute.Int64(AttrTweetID, id)
}

// MediaID returns an attribute for media ID
func MediaID(id int64) attribute.KeyValue {
	return attribute.Int64(AttrMediaID, id)
}

// MediaFilename returns an attribute for the stored media filename
func MediaFilename(name string) attribute.KeyValue {
	return attribute.String(AttrMediaFilename, name)
}

// MediaSize returns an attribute for media payload size in bytes
func MediaSize(size int64) attribute.KeyValue {
	return attribute.Int64(AttrMediaSize, size)
}

// Queue returns an attribute for pipeline queue name
func Queue(name string) attribute.KeyValue {
	return attribute.String(AttrQueue, name)
}

// QueueDepth returns an attribute for pipeline queue depth
func QueueDepth(depth int) attribute.KeyValue {
	return attribute.Int(AttrQueueDepth, depth)
}

// BatchSize returns an attribute for pipeline batch size
func BatchSize(n int) attribute.KeyValue {
	return attribute.Int(AttrBatchSize, n)
}

// StoreType returns an attribute for blob store type
func StoreType(t string) attribute.KeyValue {
	return attribute.String(AttrStoreType, t)
}

// Bucket returns an attribute for S3 bucket name
func Bucket(name string) attribute.KeyValue {
	return attribute.String(AttrBucket, name)
}

// StorageKey returns an attribute for S3 object key
func StorageKey(key string) attribute.KeyValue {
	return attribute.String(AttrKey, key)
}

// Region returns an attribute for cloud region
func Region(region string) attribute.KeyValue {
	return attribute.String(AttrRegion, region)
}

// DBTable returns an attribute for database table name
func DBTable(table string) attribute.KeyValue {
	return attribute.String(AttrDBTable, table)
}

// StartHTTPSpan starts a span for an incoming API request.
// This is a convenience function that sets common attributes.
func StartHTTPSpan(ctx context.Context, method, route string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		HTTPMethod(method),
		HTTPRoute(route),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, SpanHTTPRequest, trace.WithAttributes(allAttrs...))
}

// StartPipelineSpan starts a span for a media pipeline stage.
func StartPipelineSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return StartSpan(ctx, "pipeline."+operation, trace.WithAttributes(attrs...))
}

// StartBlobSpan starts a span for a blob store operation.
func StartBlobSpan(ctx context.Context, operation string, storeType string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		StoreType(storeType),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, "blob."+operation, trace.WithAttributes(allAttrs...))
}

// StartStoreSpan starts a span for a database store operation.
func StartStoreSpan(ctx context.Context, operation string, table string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		DBTable(table),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, "store."+operation, trace.WithAttributes(allAttrs...))
}
