package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "dealermate-server"

// Standard attribute keys
const (
	AttrRequestID  = "request_id"
	AttrUserID     = "user_id"
	AttrDealID     = "deal.id"
	AttrIntent     = "assist.intent"
	AttrMessage    = "assist.message"
	AttrToolName   = "tool.name"
	AttrToolStatus = "tool.status"
	AttrUpstream   = "tool.upstream"
)

// GetTracer returns the shared tracer.
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// ToolAttributes returns common attributes for tool call spans.
func ToolAttributes(toolName, upstream string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.String(AttrToolName, toolName)}
	if upstream != "" {
		attrs = append(attrs, attribute.String(AttrUpstream, upstream))
	}
	return attrs
}

// StartToolSpan starts a client span around one tool invocation.
func StartToolSpan(ctx context.Context, toolName, upstream string) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "tool.call",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(ToolAttributes(toolName, upstream)...),
	)
}

// StartAssistSpan starts a span for one assist invocation.
func StartAssistSpan(ctx context.Context, userID string) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "assist.execute",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String(AttrUserID, userID)),
	)
}

// RecordError marks the span as failed.
func RecordError(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
