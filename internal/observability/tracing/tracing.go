package tracing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type traceIDKey struct{}

// InjectTraceID starts a new trace with a random id.
func InjectTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, uuid.New().String())
}

// WithTraceID starts a trace with the given id. log.Ctx of the returned
// context tags every line with it.
func WithTraceID(ctx context.Context, id string) context.Context {
	ctx = context.WithValue(ctx, traceIDKey{}, id)
	logger := log.With().Str("traceId", id).Logger()
	return logger.WithContext(ctx)
}

// TraceID returns the id of the trace ctx belongs to, or "" outside of one.
func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}
