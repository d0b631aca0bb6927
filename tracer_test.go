package jwtauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestOpenTelemetryTracer(t *testing.T) {
	tracer := NewOpenTelemetryTracer(noop.NewTracerProvider().Tracer("test"))

	ctx, span := tracer.StartSpan(context.Background(), "jwtauth.validate")
	assert.NotNil(t, ctx)

	_, ok := span.(*OpenTelemetrySpan)
	assert.True(t, ok, "Should return an OpenTelemetrySpan")

	// these should not panic
	span.SetTag("token.source", "header")
	span.SetTag("authenticated", true)
	span.SetTag("attempt", 1)
	span.SetTag("duration", 1.5)
	span.Finish()
}
