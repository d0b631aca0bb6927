package core

import (
	"context"
	"time"
)

// Validator turns a TokenSource into an Outcome. Implementations must be
// pure and safe for concurrent use.
type Validator interface {
	Validate(src TokenSource) Outcome
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(src TokenSource) Outcome

// Validate calls f(src).
func (f ValidatorFunc) Validate(src TokenSource) Outcome {
	return f(src)
}

// Logger defines an optional logging interface for the core middleware.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Core is the framework-agnostic validation engine.
// It contains the core logic for token validation without any dependency
// on specific transport protocols (HTTP, gRPC, etc.).
type Core struct {
	validator Validator
	logger    Logger
	metrics   Metrics
	tracer    Tracer
}

// Check validates src and returns the Outcome.
//
//   - An absent source is rejected with NoCredential without running the
//     validator, and logged at debug level only.
//   - Any other rejection is logged as a warning with its reason code.
//
// Check never returns an error; rejections are part of the Outcome.
func (c *Core) Check(ctx context.Context, src TokenSource) Outcome {
	_, span := c.tracer.StartSpan(ctx, "jwtauth.validate")
	defer span.Finish()
	span.SetTag("token.source", src.Kind.String())

	start := time.Now()
	outcome := Rejected(NoCredential, nil)
	if src.Present() {
		outcome = c.validator.Validate(src)
	}
	duration := time.Since(start)

	reason := outcome.Reason()
	span.SetTag("auth.reason", reason.Code())
	c.metrics.ObserveOutcome(src.Kind, reason, duration)

	switch {
	case outcome.Authenticated():
		if c.logger != nil {
			c.logger.Debug("token validated successfully",
				"source", src.Kind.String(),
				"duration", duration)
		}
	case reason == NoCredential:
		if c.logger != nil {
			c.logger.Debug("no credentials provided")
		}
	default:
		if c.logger != nil {
			c.logger.Warn("token rejected",
				"source", src.Kind.String(),
				"reason", reason.Code(),
				"error", outcome.Err(),
				"duration", duration)
		}
	}

	return outcome
}
