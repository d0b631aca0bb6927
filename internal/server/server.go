// Package server wires the HTTP surface of the web API: CORS, request IDs,
// access logs, authentication and the routes.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jub0bs/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/resume-platform/jwtauth"
	jwtgin "github.com/resume-platform/jwtauth/framework/gin"
	"github.com/resume-platform/jwtauth/internal/config"
)

// RequestIDHeader is echoed back on every response.
const RequestIDHeader = "X-Request-ID"

type Server struct {
	handler http.Handler
	srv     *http.Server
	log     logrus.FieldLogger
}

// New builds the router. gatherer backs the /metrics endpoint.
func New(cfg *config.Config, mw *jwtauth.Middleware, gatherer prometheus.Gatherer, log logrus.FieldLogger) (*Server, error) {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestID(), accessLog(log), jwtgin.Authenticate(mw))

	engine.GET("/health", health)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := engine.Group("/api")
	api.GET("/session", session)
	api.GET("/me", jwtgin.RequireAuth(mw), me)

	corsMw, err := newCORS(cfg.CORS.AllowedOrigins)
	if err != nil {
		return nil, fmt.Errorf("invalid CORS configuration: %w", err)
	}
	handler := corsMw.Wrap(engine)

	return &Server{
		handler: handler,
		srv: &http.Server{
			Addr:              cfg.HTTP.Addr(),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}, nil
}

// Handler returns the root handler, CORS included.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe blocks until the server stops. A graceful Shutdown is not
// reported as an error.
func (s *Server) ListenAndServe() error {
	s.log.WithField("addr", s.srv.Addr).Info("starting server")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// newCORS allows the configured origins with credentials, any common
// method and the headers browsers send with bearer tokens.
func newCORS(origins []string) (*cors.Middleware, error) {
	return cors.NewMiddleware(cors.Config{
		Origins:         origins,
		Credentialed:    true,
		Methods:         []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		RequestHeaders:  []string{"Authorization", "Content-Type", RequestIDHeader},
		ResponseHeaders: []string{RequestIDHeader},
		ExtraConfig: cors.ExtraConfig{
			DangerouslyTolerateInsecureOrigins: hasInsecureOrigin(origins),
		},
	})
}

func hasInsecureOrigin(origins []string) bool {
	for _, origin := range origins {
		if u, err := url.Parse(origin); err == nil && u.Scheme == "http" {
			return true
		}
	}
	return false
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(RequestIDHeader, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func accessLog(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start),
			"request_id": c.GetString(RequestIDHeader),
		})
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request served")
		}
	}
}
