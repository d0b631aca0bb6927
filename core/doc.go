/*
Package core provides framework-agnostic token validation logic that can be
used across different transport layers (HTTP, gRPC, etc.).

The Core type runs a located TokenSource through a Validator exactly once and
reports the Outcome. It has no dependency on any transport protocol, so the
same validation code serves the net/http middleware, the gin and echo
adapters and the gRPC interceptors.

# Architecture

	┌─────────────────────────────────────────────┐
	│         Transport Adapters                  │
	│  (HTTP, gRPC, Gin, Echo - token location)   │
	└────────────────┬────────────────────────────┘
	                 │ TokenSource
	                 ▼
	┌─────────────────────────────────────────────┐
	│          Core Engine (THIS PACKAGE)         │
	│  • Logging, metrics, tracing                │
	│  • Outcome stored on the context            │
	└────────────────┬────────────────────────────┘
	                 │
	                 ▼
	┌─────────────────────────────────────────────┐
	│          Validator                          │
	│  (JWS parsing, signature and claim checks)  │
	└─────────────────────────────────────────────┘

# Basic Usage

	val, err := validator.New(
	    validator.WithIssuer("api.example"),
	    validator.WithAudience("web.example"),
	    validator.WithSigningKey(key),
	)
	if err != nil {
	    log.Fatal(err)
	}

	c, err := core.New(core.WithValidator(val))
	if err != nil {
	    log.Fatal(err)
	}

	outcome := c.Check(ctx, core.FromHeader(tokenString))
	if p, ok := outcome.Principal(); ok {
	    fmt.Println(p.Subject())
	}

# Outcomes

An Outcome is either Authenticated, carrying a Principal with every claim of
the token, or Rejected with the FailureReason of the first check that failed.
Rejections are values, not faults:

	if err := outcome.Err(); err != nil {
	    if errors.Is(err, core.ErrJWTMissing) {
	        // anonymous request
	    }
	    var validationErr *core.ValidationError
	    if errors.As(err, &validationErr) {
	        switch validationErr.Reason {
	        case core.Expired:
	            // ask the client to refresh
	        }
	    }
	}

# Context Helpers

Adapters store the Outcome on the request context:

	ctx = core.WithOutcome(ctx, outcome)

	p, err := core.PrincipalFrom(ctx)
	if err != nil {
	    // not authenticated
	}
*/
package core
