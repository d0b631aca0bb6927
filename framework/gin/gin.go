// Package jwtgin adapts jwtauth.Middleware to Gin.
package jwtgin

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/resume-platform/jwtauth"
	"github.com/resume-platform/jwtauth/core"
)

// DefaultOutcomeKey is the gin.Context key the outcome is stored under.
const DefaultOutcomeKey = "jwtauth.outcome"

var (
	ErrMissingOutcome = errors.New("no authentication outcome found in context")
	ErrInvalidOutcome = errors.New("invalid authentication outcome type")
)

type ginMiddlewareConfig struct {
	errorHandler func(*gin.Context, error)
	contextKey   string
}

func newConfig(mw *jwtauth.Middleware, opts []Option) *ginMiddlewareConfig {
	config := &ginMiddlewareConfig{
		errorHandler: func(c *gin.Context, err error) {
			mw.HandleError(c.Writer, c.Request, err)
		},
		contextKey: DefaultOutcomeKey,
	}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// Authenticate validates the request token, stores the outcome in both the
// gin.Context and the request context, and always continues the chain.
func Authenticate(mw *jwtauth.Middleware, opts ...Option) gin.HandlerFunc {
	config := newConfig(mw, opts)

	return func(c *gin.Context) {
		if !mw.Excluded(c.Request) {
			storeOutcome(c, config.contextKey, mw.Check(c.Request))
		}
		c.Next()
	}
}

// RequireAuth aborts the chain unless the request is authenticated. It
// reuses an outcome stored by Authenticate when there is one.
func RequireAuth(mw *jwtauth.Middleware, opts ...Option) gin.HandlerFunc {
	config := newConfig(mw, opts)

	return func(c *gin.Context) {
		if mw.Excluded(c.Request) {
			c.Next()
			return
		}

		outcome, err := getOutcome(c, config.contextKey)
		if err != nil {
			outcome = mw.Check(c.Request)
			storeOutcome(c, config.contextKey, outcome)
		}

		if !outcome.Authenticated() {
			config.errorHandler(c, outcome.Err())
			c.Abort()
			return
		}

		c.Next()
	}
}

func storeOutcome(c *gin.Context, key string, outcome core.Outcome) {
	c.Set(key, outcome)
	c.Request = c.Request.WithContext(core.WithOutcome(c.Request.Context(), outcome))
}

func getOutcome(c *gin.Context, key string) (core.Outcome, error) {
	value, exists := c.Get(key)
	if !exists {
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
func GetPrincipal(c *gin.Context) (*core.Principal, error) {
	return GetPrincipalWithKey(c, DefaultOutcomeKey)
}

// GetPrincipalWithKey is GetPrincipal for middleware configured with
// WithContextKey.
func GetPrincipalWithKey(c *gin.Context, contextKey string) (*core.Principal, error) {
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
