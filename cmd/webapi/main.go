// Command webapi serves the resume platform API behind bearer-token
// authentication.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"

	"github.com/resume-platform/jwtauth"
	"github.com/resume-platform/jwtauth/internal/config"
	"github.com/resume-platform/jwtauth/internal/logging"
	"github.com/resume-platform/jwtauth/internal/server"
	"github.com/resume-platform/jwtauth/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "webapi:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, closeLogs, err := logging.New(cfg.Logging, os.Stdout)
	if err != nil {
		return err
	}
	defer func() { _ = closeLogs() }()

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	v, err := validator.New(
		validator.WithIssuer(cfg.JWT.Issuer),
		validator.WithAudience(cfg.JWT.Audience),
		validator.WithSigningKey([]byte(cfg.JWT.SignKey)),
		validator.WithAllowedClockSkew(cfg.JWT.ClockSkew),
	)
	if err != nil {
		log.WithError(err).Error("cannot build token validator")
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := jwtauth.NewPrometheusMetrics(reg)
	if err != nil {
		return err
	}

	mw, err := jwtauth.New(
		jwtauth.WithValidator(v),
		jwtauth.WithCookieName(cfg.JWT.CookieName),
		jwtauth.WithLogger(jwtauth.NewLogrusLogger(log)),
		jwtauth.WithMetrics(metrics),
		jwtauth.WithTracer(jwtauth.NewOpenTelemetryTracer(otel.Tracer("github.com/resume-platform/jwtauth"))),
	)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, mw, reg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.WithField("timeout", cfg.HTTP.ShutdownTimeout).Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
