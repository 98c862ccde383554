package logging

import (
	"context"
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// traceIDKey is the context key for the invocation trace ID.
type traceIDKey struct{}

// NewTraceID generates a new ULID trace ID. ULIDs are lexicographically
// sortable, so trace IDs in an aggregated log file sort by invocation time.
func NewTraceID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

// ContextWithTraceID attaches a trace ID to ctx.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext returns the trace ID attached to ctx, or "".
func TraceIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GetOrGenerateTraceID returns the trace ID attached to ctx, generating a
// fresh one when none is present.
func GetOrGenerateTraceID(ctx context.Context) string {
	if id := TraceIDFromContext(ctx); id != "" {
		return id
	}
	return NewTraceID()
}
