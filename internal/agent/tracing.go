// Tracing instrumentation for agent steps.
package agent

import (
	"context"

	"github.com/vinayprograms/agentkit/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lexpipe/lexpipe/internal/conversation"
)

// startStepSpan starts a span for one agent step's model call.
func startStepSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	tracer := telemetry.GetTracer()
	ctx, span := tracer.StartSpan(ctx, "agent.step")
	span.SetAttributes(
		attribute.String("agent.name", name),
	)
	return ctx, span
}

// endStepSpan ends the step span with reply info.
func endStepSpan(span trace.Span, reply conversation.Message, err error) {
	if err != nil {
		span.RecordError(err)
	} else {
		span.SetAttributes(attribute.Int("agent.tool_calls", len(reply.ToolCalls)))
	}
	span.End()
}
