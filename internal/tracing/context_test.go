package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// TestNewRequestContext_StampsIDs tests that both IDs are generated
func TestNewRequestContext_StampsIDs(t *testing.T) {
	ctx := NewRequestContext(context.Background())

	assert.NotEmpty(t, GetTraceID(ctx))
	assert.NotEmpty(t, GetRunID(ctx))
}

// TestNewRunID_Unique tests that run IDs do not collide
func TestNewRunID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewRunID()
		assert.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate run ID: %s", id)
		seen[id] = true
	}
}

// TestGetters_EmptyContext tests that getters return empty strings on a bare context
func TestGetters_EmptyContext(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, GetTraceID(ctx))
	assert.Empty(t, GetRunID(ctx))
	assert.Empty(t, GetAgent(ctx))
}

// TestLoggerFromContext_CarriesFields tests that tracing fields appear in log output
func TestLoggerFromContext_CarriesFields(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	ctx := WithTraceID(context.Background(), "trace-1")
	ctx = WithRunID(ctx, "run-1")
	ctx = WithAgent(ctx, "cars")

	logger := LoggerFromContext(ctx, base)
	logger.Info().Msg("hello")

	out := buf.String()
	assert.Contains(t, out, `"trace_id":"trace-1"`)
	assert.Contains(t, out, `"run_id":"run-1"`)
	assert.Contains(t, out, `"agent":"cars"`)
}
