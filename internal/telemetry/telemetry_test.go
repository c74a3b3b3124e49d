package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewRecordsSpansAndMetricsWithoutExporters(t *testing.T) {
	ctx := context.Background()
	spans := tracetest.NewSpanRecorder()
	reader := sdkmetric.NewManualReader()

	p, err := New(ctx, Config{ServiceName: "telemetry-test", Environment: "test"},
		WithSpanProcessor(spans),
		WithMetricReader(reader),
		WithoutGlobal(),
	)
	require.NoError(t, err)

	_, span := p.Tracer().Start(ctx, "unit")
	span.End()

	counter, err := p.Meter().Int64Counter("unit_total")
	require.NoError(t, err)
	counter.Add(ctx, 3)

	ended := spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "unit", ended[0].Name())

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)
	sum := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
	assert.Equal(t, int64(3), sum.DataPoints[0].Value)

	service, ok := rm.Resource.Set().Value("service.name")
	require.True(t, ok)
	assert.Equal(t, "telemetry-test", service.AsString())

	assert.NoError(t, p.Shutdown(ctx))
}

func TestNewInstallsGlobalsByDefault(t *testing.T) {
	ctx := context.Background()
	p, err := New(ctx, Config{ServiceName: "telemetry-test"})
	require.NoError(t, err)
	defer p.Shutdown(ctx)

	assert.Same(t, p.tracerProvider, otel.GetTracerProvider())
}

func TestNewWithExportersEnabled(t *testing.T) {
	ctx := context.Background()

	p, err := New(ctx, Config{
		ServiceName:    "telemetry-test",
		Enabled:        true,
		Endpoint:       "http://127.0.0.1:4318/",
		ExportInterval: time.Minute,
	}, WithoutGlobal())
	require.NoError(t, err)

	// Nothing was recorded, so shutting down does not need a collector.
	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	_ = p.Shutdown(shutdownCtx)
}
