package logger

import (
	"context"
	"log/slog"
)

// Standard field keys for structured logging.
// Use these keys consistently across all log statements so log lines stay
// queryable after aggregation.
const (
	// Distributed tracing
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// HTTP request
	KeyRequestID = "request_id" // Request ID assigned by the router middleware
	KeyMethod    = "method"     // HTTP method
	KeyPath      = "path"       // Request path
	KeyStatus    = "status"     // HTTP status code
	KeyClientIP  = "client_ip"  // Client IP address
	KeyUserAgent = "user_agent" // Client user agent

	// Domain entities
	KeyUserID   = "user_id"  // Authenticated or referenced user ID
	KeyTweetID  = "tweet_id" // Tweet ID
	KeyMediaID  = "media_id" // Media record ID
	KeyFilename = "filename" // Sanitized upload filename
	KeySize     = "size"     // Payload size in bytes

	// Media pipeline
	KeyQueue      = "queue"       // Pipeline queue name: read, write
	KeyQueueDepth = "queue_depth" // Jobs currently buffered in a queue
	KeyBatchSize  = "batch_size"  // Uploads in a batch job

	// Blob storage
	KeyStoreType = "store_type" // Blob store backend: fs, memory, s3
	KeyBucket    = "bucket"     // S3 bucket name
	KeyKey       = "key"        // Object key in cloud storage
	KeyRegion    = "region"     // Cloud region

	// Operation metadata
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
	KeyAttempt    = "attempt"     // Retry attempt number
)

// TraceID returns a slog.Attr for an OpenTelemetry trace ID
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID returns a slog.Attr for an OpenTelemetry span ID
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// RequestID returns a slog.Attr for the request ID
func RequestID(id string) slog.Attr {
	return slog.String(KeyRequestID, id)
}

// Method returns a slog.Attr for the HTTP method
func Method(m string) slog.Attr {
	return slog.String(KeyMethod, m)
}

// Path returns a slog.Attr for the request path
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// Status returns a slog.Attr for the HTTP status code
func Status(code int) slog.Attr {
	return slog.Int(KeyStatus, code)
}

// ClientIP returns a slog.Attr for the client IP address
func ClientIP(addr string) slog.Attr {
	return slog.String(KeyClientIP, addr)
}

// UserID returns a slog.Attr for a user ID
func UserID(id int64) slog.Attr {
	return slog.Int64(KeyUserID, id)
}

// TweetID returns a slog.Attr for a tweet ID
func TweetID(id int64) slog.Attr {
	return slog.Int64(KeyTweetID, id)
}

// MediaID returns a slog.Attr for a media record ID
func MediaID(id int64) slog.Attr {
	return slog.Int64(KeyMediaID, id)
}

// Filename returns a slog.Attr for a sanitized upload filename
func Filename(name string) slog.Attr {
	return slog.String(KeyFilename, name)
}

// Size returns a slog.Attr for a payload size in bytes
func Size(n int64) slog.Attr {
	return slog.Int64(KeySize, n)
}

// Queue returns a slog.Attr naming a pipeline queue
func Queue(name string) slog.Attr {
	return slog.String(KeyQueue, name)
}

// QueueDepth returns a slog.Attr for the jobs buffered in a queue
func QueueDepth(n int) slog.Attr {
	return slog.Int(KeyQueueDepth, n)
}

// BatchSize returns a slog.Attr for the uploads in a batch job
func BatchSize(n int) slog.Attr {
	return slog.Int(KeyBatchSize, n)
}

// StoreType returns a slog.Attr for the blob store backend
func StoreType(t string) slog.Attr {
	return slog.String(KeyStoreType, t)
}

// Bucket returns a slog.Attr for an S3 bucket name
func Bucket(name string) slog.Attr {
	return slog.String(KeyBucket, name)
}

// Key returns a slog.Attr for an object key in cloud storage
func Key(k string) slog.Attr {
	return slog.String(KeyKey, k)
}

// Region returns a slog.Attr for a cloud region
func Region(r string) slog.Attr {
	return slog.String(KeyRegion, r)
}

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Attempt returns a slog.Attr for a retry attempt number
func Attempt(n int) slog.Attr {
	return slog.Int(KeyAttempt, n)
}

// appendContextFields appends the populated LogContext fields from ctx to
// args so the *Ctx logging functions emit them as regular attributes.
func appendContextFields(ctx context.Context, args []any) []any {
	lc := FromContext(ctx)
	if lc == nil {
		return args
	}

	if lc.RequestID != "" {
		args = append(args, RequestID(lc.RequestID))
	}
	if lc.Method != "" {
		args = append(args, Method(lc.Method))
	}
	if lc.Path != "" {
		args = append(args, Path(lc.Path))
	}
	if lc.ClientIP != "" {
		args = append(args, ClientIP(lc.ClientIP))
	}
	if lc.UserID != 0 {
		args = append(args, UserID(lc.UserID))
	}
	if lc.TraceID != "" {
		args = append(args, TraceID(lc.TraceID))
	}
	if lc.SpanID != "" {
		args = append(args, SpanID(lc.SpanID))
	}
	return args
}
