/*
Package validator verifies bearer tokens signed with a shared symmetric key,
using the lestrrat-go/jwx v2 library.

A Validator is built once at startup from functional options and never
changes afterwards. For each request it turns a core.TokenSource into a
core.Outcome, running these checks in order and stopping at the first
failure:

 1. structure: a compact JWS (header.payload.signature) whose payload is a
    JSON claims set, otherwise core.Malformed
 2. signature: HS256, HS384 or HS512 verified with the signing key,
    otherwise core.BadSignature
 3. issuer: iss equals the configured issuer exactly, otherwise
    core.IssuerMismatch
 4. audience: aud (string or array) contains the configured audience,
    otherwise core.AudienceMismatch
 5. lifetime: nbf <= now < exp, widened by the clock skew, otherwise
    core.NotYetValid or core.Expired

An absent token is rejected with core.NoCredential without any parsing.

# Basic Usage

	v, err := validator.New(
	    validator.WithIssuer("api.example"),
	    validator.WithAudience("web.example"),
	    validator.WithSigningKey(key),
	)
	if err != nil {
	    log.Fatal(err) // missing or short key, empty issuer/audience
	}

	outcome := v.Validate(core.FromHeader(token))
	if p, ok := outcome.Principal(); ok {
	    fmt.Println(p.Subject(), p.Claims["email"])
	}

# Clock Skew

No skew is allowed unless configured:

	validator.WithAllowedClockSkew(30 * time.Second)

# Thread Safety

Validate is a pure function of the token, the configuration and the clock.
A single Validator can be shared by every request.
*/
package validator
