package parking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/base-14/examples/go/parking-lot/internal/telemetry"
)

type testTelemetry struct {
	provider *telemetry.Provider
	spans    *tracetest.SpanRecorder
	reader   *sdkmetric.ManualReader
}

func newTestTelemetry(t *testing.T) *testTelemetry {
	t.Helper()

	spans := tracetest.NewSpanRecorder()
	reader := sdkmetric.NewManualReader()

	provider, err := telemetry.New(context.Background(),
		telemetry.Config{ServiceName: "parking-lot-test", Environment: "test"},
		telemetry.WithSpanProcessor(spans),
		telemetry.WithMetricReader(reader),
		telemetry.WithoutGlobal(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, provider.Shutdown(context.Background()))
	})

	return &testTelemetry{provider: provider, spans: spans, reader: reader}
}

func newTestLot(t *testing.T) (*InstrumentedParkingLot, *testTelemetry) {
	t.Helper()

	tt := newTestTelemetry(t)
	lot, err := NewInstrumentedParkingLot(tt.provider)
	require.NoError(t, err)
	return lot, tt
}

func (tt *testTelemetry) spanNames() []string {
	var names []string
	for _, s := range tt.spans.Ended() {
		names = append(names, s.Name())
	}
	return names
}

// sum adds up every data point of an int64 sum instrument.
func (tt *testTelemetry) sum(t *testing.T, name string) int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, tt.reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			data, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			for _, dp := range data.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}
