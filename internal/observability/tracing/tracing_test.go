package tracing_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rewardstack/staking-engine/internal/observability/tracing"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestWithTraceID(t *testing.T) {
	var buf bytes.Buffer
	original := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() {
		log.Logger = original
	})

	ctx := tracing.WithTraceID(context.Background(), "request-1")
	log.Ctx(ctx).Info().Msg("hello")

	assert.Contains(t, buf.String(), `"traceId":"request-1"`)
}

func TestInjectTraceIDIsUnique(t *testing.T) {
	var buf bytes.Buffer
	original := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() {
		log.Logger = original
	})

	log.Ctx(tracing.InjectTraceID(context.Background())).Info().Msg("first")
	log.Ctx(tracing.InjectTraceID(context.Background())).Info().Msg("second")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	assert.Len(t, lines, 2)
	assert.NotEqual(t, string(lines[0][:40]), string(lines[1][:40]))
}

func TestTraceID(t *testing.T) {
	assert.Empty(t, tracing.TraceID(context.Background()))

	ctx := tracing.WithTraceID(context.Background(), "run-7")
	assert.Equal(t, "run-7", tracing.TraceID(ctx))

	assert.NotEmpty(t, tracing.TraceID(tracing.InjectTraceID(context.Background())))
}
