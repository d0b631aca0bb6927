package jwtauth

import (
	"errors"
	"net/http"

	"github.com/resume-platform/jwtauth/core"
)

// Option configures the Middleware.
// Returns error for validation failures.
type Option func(*Middleware) error

// WithValidator sets the validator used to check tokens (REQUIRED).
// *validator.Validator satisfies core.Validator.
//
// Example:
//
//	v, err := validator.New(
//	    validator.WithIssuer("api.example"),
//	    validator.WithAudience("web.example"),
//	    validator.WithSigningKey(key),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	mw, err := jwtauth.New(
//	    jwtauth.WithValidator(v),
//	)
func WithValidator(v core.Validator) Option {
	return func(m *Middleware) error {
		if v == nil {
			return ErrValidatorNil
		}
		m.validator = v
		return nil
	}
}

// WithValidateOnOptions sets whether OPTIONS requests should have their JWT validated.
//
// Default: false (CORS preflight requests pass through)
func WithValidateOnOptions(value bool) Option {
	return func(m *Middleware) error {
		m.validateOnOptions = value
		return nil
	}
}

// WithErrorHandler sets the handler called when RequireAuth denies a request.
// See the ErrorHandler type for more information.
//
// Default: NewErrorHandler with the configured cookie name
func WithErrorHandler(h ErrorHandler) Option {
	return func(m *Middleware) error {
		if h == nil {
			return ErrErrorHandlerNil
		}
		m.errorHandler = h
		return nil
	}
}

// WithTokenLocator sets the function that finds the JWT in the request.
// It overrides WithCookieName.
//
// Default: HeaderOrCookie(DefaultCookieName)
func WithTokenLocator(l TokenLocator) Option {
	return func(m *Middleware) error {
		if l == nil {
			return ErrTokenLocatorNil
		}
		m.tokenLocator = l
		return nil
	}
}

// WithCookieName sets the cookie consulted after the Authorization header.
//
// Default: DefaultCookieName
func WithCookieName(name string) Option {
	return func(m *Middleware) error {
		if name == "" {
			return ErrCookieNameEmpty
		}
		m.cookieName = name
		return nil
	}
}

// WithExclusionUrls configures URL patterns to exclude from JWT validation.
// URLs can be full URLs or just paths.
func WithExclusionUrls(exclusions []string) Option {
	return func(m *Middleware) error {
		if len(exclusions) == 0 {
			return ErrExclusionUrlsEmpty
		}
		m.exclusionURLHandler = func(r *http.Request) bool {
			requestFullURL := r.URL.String()
			requestPath := r.URL.Path

			for _, exclusion := range exclusions {
				if requestFullURL == exclusion || requestPath == exclusion {
					return true
				}
			}
			return false
		}
		return nil
	}
}

// WithLogger sets an optional logger for the middleware.
// The logger will be used throughout the validation flow in both middleware and core.
//
// The logger interface is compatible with log/slog.Logger; NewLogrusLogger,
// NewZapLogger and NewZerologLogger adapt the other common loggers.
func WithLogger(logger Logger) Option {
	return func(m *Middleware) error {
		if logger == nil {
			return ErrLoggerNil
		}
		m.logger = logger
		return nil
	}
}

// WithMetrics records one observation per validated request.
func WithMetrics(metrics core.Metrics) Option {
	return func(m *Middleware) error {
		if metrics == nil {
			return ErrMetricsNil
		}
		m.metrics = metrics
		return nil
	}
}

// WithTracer wraps each validation in a span.
func WithTracer(tracer core.Tracer) Option {
	return func(m *Middleware) error {
		if tracer == nil {
			return ErrTracerNil
		}
		m.tracer = tracer
		return nil
	}
}

// Sentinel errors for configuration validation
var (
	ErrValidatorNil       = errors.New("validator cannot be nil (use WithValidator)")
	ErrErrorHandlerNil    = errors.New("errorHandler cannot be nil")
	ErrTokenLocatorNil    = errors.New("tokenLocator cannot be nil")
	ErrCookieNameEmpty    = errors.New("cookie name cannot be empty")
	ErrExclusionUrlsEmpty = errors.New("exclusion URLs list cannot be empty")
	ErrLoggerNil          = errors.New("logger cannot be nil")
	ErrMetricsNil         = errors.New("metrics cannot be nil")
	ErrTracerNil          = errors.New("tracer cannot be nil")
)
