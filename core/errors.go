package core

import "errors"

// Sentinel errors for JWT validation.
var (
	// ErrJWTMissing is returned when the JWT is missing from the request.
	ErrJWTMissing = errors.New("jwt missing")

	// ErrJWTInvalid is returned when the JWT is invalid.
	// This is typically wrapped with more specific validation errors.
	ErrJWTInvalid = errors.New("jwt invalid")

	// ErrPrincipalNotFound is returned when no authenticated principal is
	// stored in the context.
	ErrPrincipalNotFound = errors.New("principal not found in context")
)

// FailureReason tells why a request was not authenticated.
type FailureReason int

const (
	// ReasonNone is the reason of an authenticated outcome.
	ReasonNone FailureReason = iota
	NoCredential
	Malformed
	BadSignature
	IssuerMismatch
	AudienceMismatch
	Expired
	NotYetValid
)

// Common error codes
const (
	ErrorCodeTokenMissing     = "token_missing"
	ErrorCodeTokenMalformed   = "token_malformed"
	ErrorCodeInvalidSignature = "invalid_signature"
	ErrorCodeInvalidIssuer    = "invalid_issuer"
	ErrorCodeInvalidAudience  = "invalid_audience"
	ErrorCodeTokenExpired     = "token_expired"
	ErrorCodeTokenNotYetValid = "token_not_yet_valid"
)

var reasonCodes = map[FailureReason]string{
	ReasonNone:       "none",
	NoCredential:     ErrorCodeTokenMissing,
	Malformed:        ErrorCodeTokenMalformed,
	BadSignature:     ErrorCodeInvalidSignature,
	IssuerMismatch:   ErrorCodeInvalidIssuer,
	AudienceMismatch: ErrorCodeInvalidAudience,
	Expired:          ErrorCodeTokenExpired,
	NotYetValid:      ErrorCodeTokenNotYetValid,
}

var reasonMessages = map[FailureReason]string{
	NoCredential:     "no credentials provided",
	Malformed:        "token is malformed",
	BadSignature:     "token signature is invalid",
	IssuerMismatch:   "token issuer is not accepted",
	AudienceMismatch: "token audience is not accepted",
	Expired:          "token has expired",
	NotYetValid:      "token is not valid yet",
}

// Code returns the machine-readable code of the reason.
func (r FailureReason) Code() string {
	if code, ok := reasonCodes[r]; ok {
		return code
	}
	return "unknown"
}

// String implements fmt.Stringer.
func (r FailureReason) String() string {
	return r.Code()
}

// Message returns a human-readable description of the reason.
func (r FailureReason) Message() string {
	return reasonMessages[r]
}

// ValidationError wraps a rejection with additional context.
// It provides structured error information that can be used for
// logging, metrics, and returning appropriate error responses.
type ValidationError struct {
	// Reason is the first check that failed.
	Reason FailureReason

	// Message is a human-readable error message
	Message string

	// Details contains the underlying error
	Details error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Details != nil {
		return e.Message + ": " + e.Details.Error()
	}
	return e.Message
}

// Code returns the machine-readable error code (e.g. "token_expired").
func (e *ValidationError) Code() string {
	return e.Reason.Code()
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ValidationError) Unwrap() error {
	return e.Details
}

// Is makes a NoCredential error match ErrJWTMissing and every other
// rejection match ErrJWTInvalid.
func (e *ValidationError) Is(target error) bool {
	if e.Reason == NoCredential {
		return target == ErrJWTMissing
	}
	return target == ErrJWTInvalid
}

// NewValidationError creates a new ValidationError for reason. An empty
// message falls back to the reason's default message.
func NewValidationError(reason FailureReason, message string, details error) *ValidationError {
	if message == "" {
		message = reason.Message()
	}
	return &ValidationError{
		Reason:  reason,
		Message: message,
		Details: details,
	}
}
