package jwtauth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/resume-platform/jwtauth/core"
)

var (
	// ErrJWTMissing is returned when the JWT is missing.
	ErrJWTMissing = core.ErrJWTMissing

	// ErrJWTInvalid is returned when the JWT is invalid.
	ErrJWTInvalid = core.ErrJWTInvalid
)

// ErrorHandler is called when a request that requires authentication is not
// authenticated. The err is the *core.ValidationError of the rejected outcome
// and can be checked with errors.Is against ErrJWTMissing or ErrJWTInvalid.
// If you implement your own ErrorHandler you MUST deny the request; the
// protected handler is not called after it returns.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// ErrorResponse is the JSON body written by DefaultErrorHandler. Error is
// empty when the request carried no credentials.
type ErrorResponse struct {
	Error            string `json:"error,omitempty"`
	ErrorDescription string `json:"error_description"`
	ErrorCode        string `json:"error_code,omitempty"`
}

// DefaultErrorHandler is the default error handler implementation for the
// Middleware. It writes RFC 6750 responses:
//
//   - no credentials: 401 with `WWW-Authenticate: Bearer realm="api"` and no
//     error code
//   - rejected token: 401 with `WWW-Authenticate: Bearer error="invalid_token"`
//     and the reason code in the body
//   - anything else: 500
//
// It names DefaultCookieName in the description; the Middleware uses
// NewErrorHandler with its configured cookie name instead.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, DefaultCookieName, err)
}

// NewErrorHandler returns DefaultErrorHandler's behaviour with cookieName in
// the missing credentials description.
func NewErrorHandler(cookieName string) ErrorHandler {
	return func(w http.ResponseWriter, _ *http.Request, err error) {
		writeError(w, cookieName, err)
	}
}

func writeError(w http.ResponseWriter, cookieName string, err error) {
	status, body, challenge := responseFor(cookieName, err)
	if challenge != "" {
		w.Header().Set("WWW-Authenticate", challenge)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func responseFor(cookieName string, err error) (int, ErrorResponse, string) {
	var validationErr *core.ValidationError
	switch {
	case errors.Is(err, ErrJWTMissing):
		return http.StatusUnauthorized, ErrorResponse{
			ErrorDescription: fmt.Sprintf("Authorization header or %s cookie required", cookieName),
		}, `Bearer realm="api"`
	case errors.As(err, &validationErr):
		description := validationErr.Reason.Message()
		return http.StatusUnauthorized, ErrorResponse{
			Error:            "invalid_token",
			ErrorDescription: description,
			ErrorCode:        validationErr.Code(),
		}, fmt.Sprintf(`Bearer error="invalid_token", error_description=%q`, description)
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Something went wrong while checking the JWT.",
		}, ""
	}
}
