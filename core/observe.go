package core

import (
	"context"
	"time"
)

// Metrics receives one observation per validated request.
type Metrics interface {
	ObserveOutcome(source SourceKind, reason FailureReason, duration time.Duration)
}

// Tracer starts a span around validation.
type Tracer interface {
	StartSpan(ctx context.Context, operationName string) (context.Context, Span)
}

// Span is the subset of a tracing span used by Core.
type Span interface {
	Finish()
	SetTag(key string, value any)
}

// NoopMetrics is a default metrics implementation that does nothing.
type NoopMetrics struct{}

func (NoopMetrics) ObserveOutcome(SourceKind, FailureReason, time.Duration) {}

// NoopTracer is a default tracer that does nothing.
type NoopTracer struct{}

func (NoopTracer) StartSpan(ctx context.Context, _ string) (context.Context, Span) {
	return ctx, NoopSpan{}
}

type NoopSpan struct{}

func (NoopSpan) Finish()            {}
func (NoopSpan) SetTag(string, any) {}
