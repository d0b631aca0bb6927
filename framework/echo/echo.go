// Package jwtecho adapts jwtauth.Middleware to Echo.
package jwtecho

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/resume-platform/jwtauth"
	"github.com/resume-platform/jwtauth/core"
)

// DefaultOutcomeKey is the echo.Context key the outcome is stored under.
const DefaultOutcomeKey = "jwtauth.outcome"

var (
	ErrMissingOutcome = errors.New("no authentication outcome found in context")
	ErrInvalidOutcome = errors.New("invalid authentication outcome type")
)

// echoMiddlewareConfig holds all configuration for the middleware
type echoMiddlewareConfig struct {
	errorHandler func(echo.Context, error) error
	contextKey   string
}

func newConfig(mw *jwtauth.Middleware, opts []Option) *echoMiddlewareConfig {
	config := &echoMiddlewareConfig{
		errorHandler: func(c echo.Context, err error) error {
			mw.HandleError(c.Response(), c.Request(), err)
			return nil
		},
		contextKey: DefaultOutcomeKey,
	}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// Authenticate validates the request token and stores the outcome. The next
// handler is always called.
func Authenticate(mw *jwtauth.Middleware, opts ...Option) echo.MiddlewareFunc {
	config := newConfig(mw, opts)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !mw.Excluded(c.Request()) {
				storeOutcome(c, config.contextKey, mw.Check(c.Request()))
			}
			return next(c)
		}
	}
}

// RequireAuth calls next only for authenticated requests.
func RequireAuth(mw *jwtauth.Middleware, opts ...Option) echo.MiddlewareFunc {
	config := newConfig(mw, opts)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if mw.Excluded(c.Request()) {
				return next(c)
			}

			outcome, ok := c.Get(config.contextKey).(core.Outcome)
			if !ok {
				outcome = mw.Check(c.Request())
				storeOutcome(c, config.contextKey, outcome)
			}

			if !outcome.Authenticated() {
				return config.errorHandler(c, outcome.Err())
			}
			return next(c)
		}
	}
}

func storeOutcome(c echo.Context, key string, outcome core.Outcome) {
	c.Set(key, outcome)
	c.SetRequest(c.Request().WithContext(core.WithOutcome(c.Request().Context(), outcome)))
}

func getOutcome(c echo.Context, key string) (core.Outcome, error) {
	value := c.Get(key)
	if value == nil {
		return core.Outcome{}, ErrMissingOutcome
	}
	outcome, ok := value.(core.Outcome)
	if !ok {
		return core.Outcome{}, ErrInvalidOutcome
	}
	return outcome, nil
}

// GetPrincipal returns the authenticated principal stored under
// DefaultOutcomeKey.
func GetPrincipal(c echo.Context) (*core.Principal, error) {
	return GetPrincipalWithKey(c, DefaultOutcomeKey)
}

// GetPrincipalWithKey is GetPrincipal for middleware configured with
// WithContextKey.
func GetPrincipalWithKey(c echo.Context, contextKey string) (*core.Principal, error) {
	outcome, err := getOutcome(c, contextKey)
	if err != nil {
		return nil, err
	}
	p, ok := outcome.Principal()
	if !ok {
		return nil, core.ErrPrincipalNotFound
	}
	return p, nil
}
