package grpc

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/resume-platform/jwtauth/core"
)

// ErrorHandler converts rejection errors to gRPC status errors.
type ErrorHandler func(error) error

// DefaultErrorHandler maps JWT validation errors to appropriate gRPC status codes.
// It returns gRPC status errors that follow standard gRPC error handling conventions.
func DefaultErrorHandler(err error) error {
	if err == nil {
		return nil
	}

	var validationErr *core.ValidationError
	if errors.As(err, &validationErr) {
		return mapValidationError(validationErr)
	}

	if errors.Is(err, core.ErrJWTMissing) {
		return status.Error(codes.Unauthenticated, "missing credentials")
	}

	// Default: treat unknown validation errors as Unauthenticated for security
	return status.Error(codes.Unauthenticated, "invalid or malformed token")
}

// mapValidationError maps core.ValidationError to gRPC status codes.
// A well-signed token for another issuer or audience is authenticated in
// the cryptographic sense, so those map to PermissionDenied.
func mapValidationError(err *core.ValidationError) error {
	switch err.Reason {
	case core.NoCredential:
		return status.Error(codes.Unauthenticated, "missing credentials")
	case core.IssuerMismatch, core.AudienceMismatch:
		return status.Error(codes.PermissionDenied, err.Reason.Message())
	case core.Malformed, core.BadSignature, core.Expired, core.NotYetValid:
		return status.Error(codes.Unauthenticated, err.Reason.Message())
	default:
		return status.Error(codes.Unauthenticated, "invalid or malformed token")
	}
}
