package operations

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"grantcli/internal/infrastructure"
)

const (
	TracerName = "grantcli.operations"
)

// StepTracer provides OpenTelemetry instrumentation for plan execution. A nil
// *StepTracer is valid and records nothing.
type StepTracer struct {
	tracer          trace.Tracer
	businessMetrics *infrastructure.BusinessMetrics
}

// NewStepTracer creates a tracer backed by the given providers
func NewStepTracer(providers *infrastructure.OTelProviders) (*StepTracer, error) {
	businessMetrics, err := infrastructure.CreateBusinessMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	tracer := providers.Tracer
	if providers.TracerProvider != nil {
		tracer = providers.TracerProvider.Tracer(TracerName)
	}

	return &StepTracer{
		tracer:          tracer,
		businessMetrics: businessMetrics,
	}, nil
}

// NewStepTracerWith wires an explicit tracer and metrics; either may be nil
func NewStepTracerWith(tracer trace.Tracer, metrics *infrastructure.BusinessMetrics) *StepTracer {
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}
	return &StepTracer{tracer: tracer, businessMetrics: metrics}
}

// Metrics returns the business metrics the tracer records into
func (st *StepTracer) Metrics() *infrastructure.BusinessMetrics {
	if st == nil {
		return nil
	}
	return st.businessMetrics
}

// StartRun opens the span covering a whole cleaning run
func (st *StepTracer) StartRun(ctx context.Context, runID, input string) (context.Context, trace.Span) {
	if st == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return st.tracer.Start(ctx, "clean.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("run.input", input),
		),
	)
}

// EndRun closes the run span and records run metrics
func (st *StepTracer) EndRun(ctx context.Context, span trace.Span, rows int, duration time.Duration, err error) {
	if st == nil {
		return
	}
	span.SetAttributes(attribute.Int("run.rows", rows))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()

	infrastructure.RecordRunMetrics(ctx, st.businessMetrics, rows, duration, err)
}

// StartStep opens a span for one step's pass over the rows
func (st *StepTracer) StartStep(ctx context.Context, step Step, rows int) (context.Context, trace.Span) {
	if st == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return st.tracer.Start(ctx, "clean.step."+step.ID(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("step.id", step.ID()),
			attribute.StringSlice("step.inputs", step.Inputs()),
			attribute.StringSlice("step.outputs", step.Outputs()),
			attribute.Int("step.rows", rows),
		),
	)
}

// EndStep closes a step span and records its duration
func (st *StepTracer) EndStep(ctx context.Context, span trace.Span, step Step, duration time.Duration) {
	if st == nil {
		return
	}
	span.SetStatus(codes.Ok, "")
	span.End()

	infrastructure.RecordStepMetrics(ctx, st.businessMetrics, step.ID(), duration, true)
}
