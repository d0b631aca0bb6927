package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"

	"github.com/resume-platform/jwtauth/core"
)

// JWTInterceptor provides JWT validation for gRPC servers.
type JWTInterceptor struct {
	core                *core.Core
	tokenLocator        TokenLocator
	errorHandler        ErrorHandler
	excludedMethods     map[string]bool
	credentialsOptional bool
	logger              Logger

	// accumulated during construction
	coreOpts     []core.Option
	hasValidator bool
}

// New creates a new gRPC JWT interceptor with the provided options.
// WithValidator option is required.
func New(opts ...Option) (*JWTInterceptor, error) {
	interceptor := &JWTInterceptor{
		tokenLocator:    MetadataOrCookie(DefaultCookieName),
		errorHandler:    DefaultErrorHandler,
		excludedMethods: make(map[string]bool),
	}

	for _, opt := range opts {
		if err := opt(interceptor); err != nil {
			return nil, err
		}
	}

	if !interceptor.hasValidator {
		return nil, errors.New("validator is required, use WithValidator option")
	}

	c, err := core.New(interceptor.coreOpts...)
	if err != nil {
		return nil, err
	}
	interceptor.core = c
	interceptor.coreOpts = nil

	return interceptor, nil
}

// UnaryServerInterceptor returns a grpc.UnaryServerInterceptor that validates JWTs.
// It locates the JWT in gRPC metadata, validates it, and makes the outcome
// available in the request context.
func (i *JWTInterceptor) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if i.excludedMethods[info.FullMethod] {
			if i.logger != nil {
				i.logger.Debug("skipping JWT validation for excluded method",
					"method", info.FullMethod)
			}
			return handler(ctx, req)
		}

		validatedCtx, err := i.validateRequest(ctx, info.FullMethod)
		if err != nil {
			return nil, err
		}

		return handler(validatedCtx, req)
	}
}

// StreamServerInterceptor returns a grpc.StreamServerInterceptor that validates JWTs.
func (i *JWTInterceptor) StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(
		srv any,
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		if i.excludedMethods[info.FullMethod] {
			if i.logger != nil {
				i.logger.Debug("skipping JWT validation for excluded method",
					"method", info.FullMethod)
			}
			return handler(srv, ss)
		}

		validatedCtx, err := i.validateRequest(ss.Context(), info.FullMethod)
		if err != nil {
			return err
		}

		wrappedStream := &wrappedServerStream{
			ServerStream: ss,
			ctx:          validatedCtx,
		}

		return handler(srv, wrappedStream)
	}
}

// validateRequest locates and validates the JWT carried by ctx.
func (i *JWTInterceptor) validateRequest(ctx context.Context, method string) (context.Context, error) {
	outcome := i.core.Check(ctx, i.tokenLocator(ctx))
	ctx = core.WithOutcome(ctx, outcome)

	if outcome.Authenticated() {
		return ctx, nil
	}

	if outcome.Reason() == core.NoCredential && i.credentialsOptional {
		if i.logger != nil {
			i.logger.Debug("no credentials provided, continuing without principal (credentials optional)",
				"method", method)
		}
		return ctx, nil
	}

	return ctx, i.errorHandler(outcome.Err())
}

// PrincipalFrom returns the principal of an authenticated call.
func PrincipalFrom(ctx context.Context) (*core.Principal, error) {
	return core.PrincipalFrom(ctx)
}

// wrappedServerStream wraps grpc.ServerStream with a custom context.
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

// Context returns the wrapped context carrying the outcome.
func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}
