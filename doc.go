/*
Package jwtauth provides HTTP middleware for bearer-token JWT authentication.

The middleware looks for a token in the Authorization header and then in the
AuthToken cookie, validates it against a fixed set of parameters (issuer,
audience, HMAC signing key, lifetime) and stores the result in the request
context. The package follows the Core-Adapter pattern: request handling lives
here, validation decisions live in the core and validator packages, and the
framework/gin, framework/echo and integrations/grpc packages adapt the same
core to other transports.

# Quick Start

	import (
	    "github.com/resume-platform/jwtauth"
	    "github.com/resume-platform/jwtauth/validator"
	)

	func main() {
	    v, err := validator.New(
	        validator.WithIssuer("api.example"),
	        validator.WithAudience("web.example"),
	        validator.WithSigningKey([]byte(os.Getenv("JWTSETTINGS_KEY"))),
	    )
	    if err != nil {
	        log.Fatal(err)
	    }

	    mw, err := jwtauth.New(jwtauth.WithValidator(v))
	    if err != nil {
	        log.Fatal(err)
	    }

	    mux := http.NewServeMux()
	    mux.Handle("/api/me", mw.RequireAuth(meHandler))
	    http.ListenAndServe(":8080", mw.Authenticate(mux))
	}

# Locating tokens

The default TokenLocator is HeaderOrCookie(DefaultCookieName):

  - "Authorization: Bearer <token>" is used when present. The scheme is
    matched case-insensitively.
  - Otherwise the AuthToken cookie is used.
  - A header that is not a bearer credential is ignored and the cookie is
    consulted instead.

At most one candidate is ever validated per request. Use WithCookieName to
change the cookie or WithTokenLocator to replace the strategy entirely.

# Authenticate and RequireAuth

Authenticate never rejects a request. It runs validation once and attaches the
core.Outcome to the request context; handlers that serve both anonymous and
signed-in users call PrincipalFrom or IsAuthenticated.

RequireAuth denies every request whose outcome is not authenticated and hands
the rejection error to the ErrorHandler. When it runs behind Authenticate it
reuses the stored outcome instead of validating a second time.

	p, err := jwtauth.PrincipalFrom(r.Context())
	if err != nil {
	    // anonymous request
	}
	fmt.Println(p.Subject(), p.Claims["email"])

# Error Handling

DefaultErrorHandler writes RFC 6750 responses:

  - 401 with `WWW-Authenticate: Bearer realm="api"` and no error code when
    no token was sent
  - 401 with `WWW-Authenticate: Bearer error="invalid_token", ...` and a
    machine-readable error_code (token_expired, invalid_signature, ...) when
    a token was rejected

A rejected token gets a body like:

	{
	  "error": "invalid_token",
	  "error_description": "token has expired",
	  "error_code": "token_expired"
	}

Custom handlers can use errors.Is(err, jwtauth.ErrJWTMissing) and
errors.As with a *core.ValidationError target to tell the cases apart.

# Observability

WithLogger accepts anything with slog-style Debug/Info/Warn/Error methods.
*slog.Logger works directly; NewLogrusLogger, NewZapLogger and
NewZerologLogger adapt the other loggers. Missing credentials are logged at
debug level only.

NewPrometheusMetrics and NewOpenTelemetryTracer plug into WithMetrics and
WithTracer.

# Options

  - WithValidator (required)
  - WithTokenLocator, WithCookieName
  - WithErrorHandler
  - WithValidateOnOptions (default false so CORS preflights pass)
  - WithExclusionUrls
  - WithLogger, WithMetrics, WithTracer
*/
package jwtauth
