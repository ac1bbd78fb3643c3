package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/viant/mcp-registry/mcp/registry"
)

func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, scope := range rm.ScopeMetrics {
		for i := range scope.Metrics {
			if scope.Metrics[i].Name == name {
				return &scope.Metrics[i]
			}
		}
	}
	return nil
}

func TestObserver_ObserveCall(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	observer, err := NewObserver(mp.Meter("test"), tp.Tracer("test"))
	require.NoError(t, err)

	ctx := context.Background()
	observer.ObserveCall(ctx, registry.Observation{CallID: "1", Tool: "echo", Outcome: registry.OutcomeSuccess, Stage: registry.StageDone, Duration: 20 * time.Millisecond})
	observer.ObserveCall(ctx, registry.Observation{CallID: "2", Tool: "echo", Outcome: registry.OutcomeDenied, Stage: registry.StageAuthorize, Err: errors.New("denied")})

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	invocations := findMetric(&rm, "mcp_registry.tool.invocations")
	require.NotNil(t, invocations)
	sum, ok := invocations.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var total int64
	for _, point := range sum.DataPoints {
		total += point.Value
	}
	assert.EqualValues(t, 2, total)

	latency := findMetric(&rm, "mcp_registry.tool.latency")
	require.NotNil(t, latency)
	_, ok = latency.Data.(metricdata.Histogram[float64])
	assert.True(t, ok)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "tool.call", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Equal(t, 20*time.Millisecond, spans[0].EndTime().Sub(spans[0].StartTime()), "span covers the call")
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "denied", spans[1].Status().Description)
}

func TestObserver_Nil(t *testing.T) {
	var observer *Observer
	assert.NotPanics(t, func() {
		observer.ObserveCall(context.Background(), registry.Observation{Tool: "echo"})
	})
	global, err := NewGlobalObserver()
	require.NoError(t, err)
	assert.NotPanics(t, func() {
		global.ObserveCall(context.Background(), registry.Observation{Tool: "echo"})
	})
}
