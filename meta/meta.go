// Package meta carries stream and subscription metadata through context.
package meta

import (
	"context"

	"github.com/spf13/cast"
)

// ContextKey is a type for keys used in context values for metadata.
type ContextKey string

const (
	// TraceID correlates every log entry produced on behalf of one subscription.
	TraceID ContextKey = "trace_id"

	// SubscriptionID identifies a single flux subscription.
	SubscriptionID ContextKey = "subscription_id"

	// StreamName is the human readable name given to a stream by its creator.
	StreamName ContextKey = "stream_name"

	// TaskName is the name a producer task was submitted to the scheduler with.
	TaskName ContextKey = "task_name"

	// ServiceName identifies the name of current running service.
	ServiceName ContextKey = "service_name"

	// ServiceVersion indicates the version of the service.
	ServiceVersion ContextKey = "service_version"
)

//nolint:gochecknoglobals // fixed lookup order for extraction
var knownKeys = []ContextKey{
	TraceID,
	SubscriptionID,
	StreamName,
	TaskName,
	ServiceName,
	ServiceVersion,
}

// InjectMetaToContext adds metadata from the provided map to the context.
// Empty values are skipped.
func InjectMetaToContext(ctx context.Context, data map[ContextKey]string) context.Context {
	for k, v := range data {
		if v != "" {
			ctx = context.WithValue(ctx, k, v) //nolint:fatcontext // allow due to finite number of keys
		}
	}
	return ctx
}

// ExtractMetaFromContext extracts all known metadata from the provided context.
// Values that are not strings are rendered with cast, values that render empty are dropped.
func ExtractMetaFromContext(ctx context.Context) map[ContextKey]string {
	data := make(map[ContextKey]string)
	if ctx == nil {
		return data
	}
	for _, k := range knownKeys {
		raw := ctx.Value(k)
		if raw == nil {
			continue
		}
		v, err := cast.ToStringE(raw)
		if err != nil || v == "" {
			continue
		}
		data[k] = v
	}
	return data
}
