package jwtauth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/resume-platform/jwtauth/core"
)

// Middleware authenticates incoming HTTP requests from a bearer token carried
// in the Authorization header or the auth cookie.
type Middleware struct {
	core                *core.Core
	errorHandler        ErrorHandler
	tokenLocator        TokenLocator
	validateOnOptions   bool
	exclusionURLHandler ExclusionURLHandler
	logger              Logger

	// Temporary fields used during construction
	validator  core.Validator
	cookieName string
	metrics    core.Metrics
	tracer     core.Tracer
}

// Logger defines an optional logging interface compatible with log/slog.
// This is the same interface used by core for consistent logging across the stack.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ExclusionURLHandler is a function that takes in a http.Request and returns
// true if the request should be excluded from JWT validation.
type ExclusionURLHandler func(r *http.Request) bool

// New constructs a new Middleware instance with the supplied options.
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
//	mw, err := jwtauth.New(jwtauth.WithValidator(v))
//	if err != nil {
//	    log.Fatalf("failed to create middleware: %v", err)
//	}
func New(opts ...Option) (*Middleware, error) {
	m := &Middleware{
		cookieName: DefaultCookieName,
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("invalid middleware configuration: %w", err)
	}

	m.applyDefaults()

	if err := m.createCore(); err != nil {
		return nil, fmt.Errorf("failed to create core: %w", err)
	}

	return m, nil
}

// validate ensures all required fields are set
func (m *Middleware) validate() error {
	if m.validator == nil {
		return ErrValidatorNil
	}
	return nil
}

// applyDefaults sets default values for optional fields
func (m *Middleware) applyDefaults() {
	if m.errorHandler == nil {
		m.errorHandler = NewErrorHandler(m.cookieName)
	}
	if m.tokenLocator == nil {
		m.tokenLocator = HeaderOrCookie(m.cookieName)
	}
}

// createCore creates the core.Core instance with the configured options
func (m *Middleware) createCore() error {
	coreOpts := []core.Option{core.WithValidator(m.validator)}
	if m.logger != nil {
		coreOpts = append(coreOpts, core.WithLogger(m.logger))
	}
	if m.metrics != nil {
		coreOpts = append(coreOpts, core.WithMetrics(m.metrics))
	}
	if m.tracer != nil {
		coreOpts = append(coreOpts, core.WithTracer(m.tracer))
	}

	coreInstance, err := core.New(coreOpts...)
	if err != nil {
		return err
	}
	m.core = coreInstance
	return nil
}

// Check locates the token in r and validates it. It never fails; the
// returned Outcome is either Authenticated or carries the failure reason.
func (m *Middleware) Check(r *http.Request) core.Outcome {
	return m.core.Check(r.Context(), m.tokenLocator(r))
}

// Authenticate attaches the validation Outcome of every request to its
// context and always calls next. Handlers decide what an anonymous request
// may do using PrincipalFrom or IsAuthenticated.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.Excluded(r) {
			next.ServeHTTP(w, r)
			return
		}

		outcome := m.Check(r)
		next.ServeHTTP(w, r.WithContext(core.WithOutcome(r.Context(), outcome)))
	})
}

// RequireAuth calls next only for authenticated requests. Everything else is
// handed to the ErrorHandler with the rejection error.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.Excluded(r) {
			next.ServeHTTP(w, r)
			return
		}

		outcome, ok := core.OutcomeFrom(r.Context())
		if !ok {
			outcome = m.Check(r)
			r = r.WithContext(core.WithOutcome(r.Context(), outcome))
		}

		if !outcome.Authenticated() {
			if m.logger != nil {
				m.logger.Debug("request denied",
					"method", r.Method,
					"path", r.URL.Path,
					"reason", outcome.Reason().Code())
			}
			m.errorHandler(w, r, outcome.Err())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// HandleError writes err with the configured ErrorHandler.
func (m *Middleware) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	m.errorHandler(w, r, err)
}

// Excluded reports whether r bypasses validation, either because its URL is
// in the exclusion list or because it is an OPTIONS request and
// WithValidateOnOptions is off.
func (m *Middleware) Excluded(r *http.Request) bool {
	if m.exclusionURLHandler != nil && m.exclusionURLHandler(r) {
		if m.logger != nil {
			m.logger.Debug("skipping JWT validation for excluded URL",
				"method", r.Method,
				"path", r.URL.Path)
		}
		return true
	}
	if !m.validateOnOptions && r.Method == http.MethodOptions {
		if m.logger != nil {
			m.logger.Debug("skipping JWT validation for OPTIONS request")
		}
		return true
	}
	return false
}

// PrincipalFrom returns the authenticated principal stored in ctx by
// Authenticate or RequireAuth.
//
// Example:
//
//	p, err := jwtauth.PrincipalFrom(r.Context())
//	if err != nil {
//	    http.Error(w, "unauthorized", http.StatusUnauthorized)
//	    return
//	}
//	fmt.Println(p.Subject())
func PrincipalFrom(ctx context.Context) (*core.Principal, error) {
	return core.PrincipalFrom(ctx)
}

// MustPrincipalFrom retrieves the principal from the context or panics.
// Use only behind RequireAuth.
func MustPrincipalFrom(ctx context.Context) *core.Principal {
	p, err := core.PrincipalFrom(ctx)
	if err != nil {
		panic(err)
	}
	return p
}

// IsAuthenticated reports whether the request context carries an
// authenticated principal.
func IsAuthenticated(ctx context.Context) bool {
	return core.IsAuthenticated(ctx)
}
