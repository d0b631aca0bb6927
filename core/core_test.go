package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger is a mock implementation of Logger for testing.
type mockLogger struct {
	debugCalls []logCall
	infoCalls  []logCall
	warnCalls  []logCall
	errorCalls []logCall
}

type logCall struct {
	msg  string
	args []any
}

func (m *mockLogger) Debug(msg string, args ...any) {
	m.debugCalls = append(m.debugCalls, logCall{msg, args})
}

func (m *mockLogger) Info(msg string, args ...any) {
	m.infoCalls = append(m.infoCalls, logCall{msg, args})
}

func (m *mockLogger) Warn(msg string, args ...any) {
	m.warnCalls = append(m.warnCalls, logCall{msg, args})
}

func (m *mockLogger) Error(msg string, args ...any) {
	m.errorCalls = append(m.errorCalls, logCall{msg, args})
}

type observation struct {
	source SourceKind
	reason FailureReason
}

type mockMetrics struct {
	observations []observation
}

func (m *mockMetrics) ObserveOutcome(source SourceKind, reason FailureReason, _ time.Duration) {
	m.observations = append(m.observations, observation{source, reason})
}

type mockSpan struct {
	name     string
	tags     map[string]any
	finished bool
}

func (s *mockSpan) Finish()                    { s.finished = true }
func (s *mockSpan) SetTag(key string, val any) { s.tags[key] = val }

type mockTracer struct {
	spans []*mockSpan
}

func (m *mockTracer) StartSpan(ctx context.Context, name string) (context.Context, Span) {
	span := &mockSpan{name: name, tags: map[string]any{}}
	m.spans = append(m.spans, span)
	return ctx, span
}

func staticValidator(o Outcome) Validator {
	return ValidatorFunc(func(TokenSource) Outcome { return o })
}

func TestNew(t *testing.T) {
	validator := staticValidator(Authenticated(&Principal{}))

	t.Run("successful creation with required options", func(t *testing.T) {
		c, err := New(WithValidator(validator))
		require.NoError(t, err)
		assert.NotNil(t, c)
		assert.Nil(t, c.logger)
		assert.IsType(t, NoopMetrics{}, c.metrics)
		assert.IsType(t, NoopTracer{}, c.tracer)
	})

	t.Run("successful creation with all options", func(t *testing.T) {
		c, err := New(
			WithValidator(validator),
			WithLogger(&mockLogger{}),
			WithMetrics(&mockMetrics{}),
			WithTracer(&mockTracer{}),
		)
		require.NoError(t, err)
		assert.NotNil(t, c.logger)
	})

	t.Run("error when validator is missing", func(t *testing.T) {
		c, err := New()
		assert.Error(t, err)
		assert.Nil(t, c)
		assert.Contains(t, err.Error(), "validator is required")
	})

	for name, opt := range map[string]Option{
		"validator": WithValidator(nil),
		"logger":    WithLogger(nil),
		"metrics":   WithMetrics(nil),
		"tracer":    WithTracer(nil),
	} {
		t.Run("error when "+name+" is nil", func(t *testing.T) {
			c, err := New(WithValidator(validator), opt)
			assert.Error(t, err)
			assert.Nil(t, c)
			assert.Contains(t, err.Error(), name+" cannot be nil")
		})
	}
}

func TestCore_Check(t *testing.T) {
	principal := &Principal{Claims: map[string]any{"sub": "user-42"}, Source: SourceHeader}

	t.Run("it returns the authenticated outcome", func(t *testing.T) {
		logger := &mockLogger{}
		metrics := &mockMetrics{}
		tracer := &mockTracer{}
		c, err := New(
			WithValidator(staticValidator(Authenticated(principal))),
			WithLogger(logger),
			WithMetrics(metrics),
			WithTracer(tracer),
		)
		require.NoError(t, err)

		outcome := c.Check(context.Background(), FromHeader("token"))

		got, ok := outcome.Principal()
		require.True(t, ok)
		assert.Same(t, principal, got)
		assert.Len(t, logger.debugCalls, 1)
		assert.Empty(t, logger.warnCalls)
		assert.Equal(t, []observation{{SourceHeader, ReasonNone}}, metrics.observations)
		require.Len(t, tracer.spans, 1)
		assert.Equal(t, "jwtauth.validate", tracer.spans[0].name)
		assert.True(t, tracer.spans[0].finished)
		assert.Equal(t, "header", tracer.spans[0].tags["token.source"])
		assert.Equal(t, "none", tracer.spans[0].tags["auth.reason"])
	})

	t.Run("it does not log a missing credential as a problem", func(t *testing.T) {
		logger := &mockLogger{}
		metrics := &mockMetrics{}
		c, err := New(
			WithValidator(staticValidator(Rejected(NoCredential, nil))),
			WithLogger(logger),
			WithMetrics(metrics),
		)
		require.NoError(t, err)

		outcome := c.Check(context.Background(), Absent)

		assert.Equal(t, NoCredential, outcome.Reason())
		assert.Len(t, logger.debugCalls, 1)
		assert.Empty(t, logger.warnCalls)
		assert.Empty(t, logger.errorCalls)
		assert.Equal(t, []observation{{SourceAbsent, NoCredential}}, metrics.observations)
	})

	t.Run("it warns about rejected tokens", func(t *testing.T) {
		logger := &mockLogger{}
		c, err := New(
			WithValidator(staticValidator(Rejected(BadSignature, errors.New("boom")))),
			WithLogger(logger),
		)
		require.NoError(t, err)

		outcome := c.Check(context.Background(), FromCookie("token"))

		assert.Equal(t, BadSignature, outcome.Reason())
		require.Len(t, logger.warnCalls, 1)
		assert.Equal(t, "token rejected", logger.warnCalls[0].msg)
		assert.Contains(t, logger.warnCalls[0].args, "invalid_signature")
		assert.Contains(t, logger.warnCalls[0].args, "cookie")
	})

	t.Run("it does not run the validator for an absent token", func(t *testing.T) {
		calls := 0
		c, err := New(WithValidator(ValidatorFunc(func(src TokenSource) Outcome {
			calls++
			return Authenticated(&Principal{})
		})))
		require.NoError(t, err)

		outcome := c.Check(context.Background(), Absent)

		assert.Zero(t, calls)
		assert.Equal(t, NoCredential, outcome.Reason())
		assert.ErrorIs(t, outcome.Err(), ErrJWTMissing)
	})

	t.Run("it runs the validator exactly once", func(t *testing.T) {
		calls := 0
		c, err := New(WithValidator(ValidatorFunc(func(src TokenSource) Outcome {
			calls++
			assert.Equal(t, "token", src.Token)
			return Rejected(Expired, nil)
		})))
		require.NoError(t, err)

		outcome := c.Check(context.Background(), FromHeader("token"))

		assert.Equal(t, 1, calls)
		assert.Equal(t, Expired, outcome.Reason())
	})
}
