// Package telemetry records tool calls into OpenTelemetry.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/viant/mcp-registry/mcp/registry"
)

const instrumentation = "github.com/viant/mcp-registry"

// Observer implements registry.Observer with a counter, a latency histogram
// and one span per call.
type Observer struct {
	tracer      trace.Tracer
	invocations metric.Int64Counter
	latency     metric.Float64Histogram
}

// NewObserver creates an observer bound to meter and tracer.
func NewObserver(meter metric.Meter, tracer trace.Tracer) (*Observer, error) {
	invocations, err := meter.Int64Counter(
		"mcp_registry.tool.invocations",
		metric.WithDescription("Number of tool invocations"),
	)
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram(
		"mcp_registry.tool.latency",
		metric.WithDescription("Tool latency in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	return &Observer{tracer: tracer, invocations: invocations, latency: latency}, nil
}

// NewGlobalObserver creates an observer from the global otel providers.
func NewGlobalObserver() (*Observer, error) {
	return NewObserver(otel.Meter(instrumentation), otel.Tracer(instrumentation))
}

// ObserveCall implements registry.Observer
func (o *Observer) ObserveCall(ctx context.Context, observation registry.Observation) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("tool_name", observation.Tool),
		attribute.String("outcome", string(observation.Outcome)),
		attribute.String("stage", string(observation.Stage)),
	}
	options := metric.WithAttributes(attrs...)
	o.invocations.Add(ctx, 1, options)
	o.latency.Record(ctx, observation.Duration.Seconds(), options)

	if o.tracer == nil {
		return
	}
	// the call has finished; the span is backdated to cover it
	end := time.Now()
	_, span := o.tracer.Start(ctx, "tool.call",
		trace.WithTimestamp(end.Add(-observation.Duration)),
		trace.WithAttributes(append(attrs, attribute.String("call_id", observation.CallID))...))
	if observation.Err != nil {
		span.RecordError(observation.Err)
		span.SetStatus(codes.Error, string(observation.Outcome))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(end))
}
