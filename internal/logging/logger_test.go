package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInitRejectsBadInput(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, InitWithWriter(&buf, "loud", FormatJSON))
	assert.Error(t, InitWithWriter(&buf, "info", "xml"))
}

func TestWithContextAddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitWithWriter(&buf, "debug", FormatJSON))

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	Info(ctx).Str("command", "park").Msg("handled")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "handled", entry["message"])
	assert.Equal(t, "park", entry["command"])
	assert.Equal(t, span.SpanContext().TraceID().String(), entry["traceId"])
	assert.Equal(t, span.SpanContext().SpanID().String(), entry["spanId"])
}

func TestLevelFiltersEvents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitWithWriter(&buf, "warn", FormatJSON))

	Debug(context.Background()).Msg("dropped")
	Info(context.Background()).Msg("dropped")
	assert.Empty(t, buf.String())

	Warn(context.Background()).Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}
