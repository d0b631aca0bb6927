package validator

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/resume-platform/jwtauth/core"
)

// Signature algorithms accepted with a symmetric signing key.
const (
	HS256 = jwa.HS256 // HMAC using SHA-256
	HS384 = jwa.HS384 // HMAC using SHA-384
	HS512 = jwa.HS512 // HMAC using SHA-512
)

var allowedSigningAlgorithms = map[jwa.SignatureAlgorithm]bool{
	HS256: true,
	HS384: true,
	HS512: true,
}

// Params is the validation configuration. A Validator holds its own copy, so
// a Params value obtained from Validator.Params can be inspected or changed
// without affecting requests in flight.
type Params struct {
	Issuer     string
	Audience   string
	SigningKey []byte

	ValidateIssuer           bool
	ValidateAudience         bool
	ValidateIssuerSigningKey bool
	ValidateLifetime         bool

	// ClockSkew is the tolerance applied to exp and nbf. Zero by default.
	ClockSkew time.Duration
	// RequireExpiration rejects tokens without an exp claim when lifetime
	// validation is enabled.
	RequireExpiration bool
}

func (p Params) clone() Params {
	p.SigningKey = bytes.Clone(p.SigningKey)
	return p
}

// Validator checks bearer tokens against a fixed set of Params.
// It is immutable after New returns and safe for concurrent use.
type Validator struct {
	params Params
	now    func() time.Time
}

// Params returns a copy of the configuration the validator was built with.
func (v *Validator) Params() Params {
	return v.params.clone()
}

// Validate decides the Outcome for src. Checks run in a fixed order and the
// first failure determines the reason:
// structure, signature, issuer, audience, lifetime.
func (v *Validator) Validate(src core.TokenSource) core.Outcome {
	if !src.Present() {
		return core.Rejected(core.NoCredential, nil)
	}

	raw := []byte(src.Token)
	parsed, err := parse(raw)
	if err != nil {
		return core.Rejected(core.Malformed, err)
	}

	if v.params.ValidateIssuerSigningKey {
		if err := v.verifySignature(raw, parsed.message); err != nil {
			return core.Rejected(core.BadSignature, err)
		}
	}

	if v.params.ValidateIssuer {
		if iss := parsed.token.Issuer(); iss != v.params.Issuer {
			return core.Rejected(core.IssuerMismatch, fmt.Errorf("expected issuer %q but token has %q", v.params.Issuer, iss))
		}
	}

	if v.params.ValidateAudience {
		if !containsAudience(parsed.token.Audience(), v.params.Audience) {
			return core.Rejected(core.AudienceMismatch, fmt.Errorf("audience %q not found in token", v.params.Audience))
		}
	}

	if v.params.ValidateLifetime {
		if reason, err := v.checkLifetime(parsed.token); err != nil {
			return core.Rejected(reason, err)
		}
	}

	return core.Authenticated(&core.Principal{
		Claims: parsed.claims,
		Source: src.Kind,
	})
}

type parsedToken struct {
	message *jws.Message
	token   jwt.Token
	claims  map[string]any
}

func parse(raw []byte) (*parsedToken, error) {
	if err := validateTokenFormat(raw); err != nil {
		return nil, err
	}

	msg, err := jws.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("could not parse the token: %w", err)
	}
	if n := len(msg.Signatures()); n != 1 {
		return nil, fmt.Errorf("expected exactly one signature, token has %d", n)
	}

	token, err := jwt.Parse(raw, jwt.WithVerify(false), jwt.WithValidate(false))
	if err != nil {
		return nil, fmt.Errorf("could not parse the token claims: %w", err)
	}

	claims, err := decodeClaims(msg.Payload())
	if err != nil {
		return nil, err
	}

	return &parsedToken{message: msg, token: token, claims: claims}, nil
}

// decodeClaims keeps numbers as json.Number so integer claims wider than
// 53 bits come back exactly as signed.
func decodeClaims(payload []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	claims := make(map[string]any)
	if err := dec.Decode(&claims); err != nil {
		return nil, fmt.Errorf("could not decode token claims: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("could not decode token claims: trailing data after the claims set")
	}
	return claims, nil
}

func (v *Validator) verifySignature(raw []byte, msg *jws.Message) error {
	alg := msg.Signatures()[0].ProtectedHeaders().Algorithm()
	if !allowedSigningAlgorithms[alg] {
		return fmt.Errorf("signing algorithm %q is not accepted", alg)
	}

	// Non-zero trailing bits decode to the same signature bytes.
	sig := raw[bytes.LastIndexByte(raw, '.')+1:]
	if _, err := base64.RawURLEncoding.Strict().DecodeString(string(sig)); err != nil {
		return fmt.Errorf("signature is not canonical base64url: %w", err)
	}

	if _, err := jws.Verify(raw, jws.WithKey(alg, v.params.SigningKey)); err != nil {
		return fmt.Errorf("could not verify the token signature: %w", err)
	}
	return nil
}

func (v *Validator) checkLifetime(token jwt.Token) (core.FailureReason, error) {
	now := v.now()
	skew := v.params.ClockSkew

	if nbf := token.NotBefore(); !nbf.IsZero() && now.Add(skew).Before(nbf) {
		return core.NotYetValid, fmt.Errorf("token is not valid before %s", nbf.UTC().Format(time.RFC3339))
	}

	exp := token.Expiration()
	if exp.IsZero() {
		if v.params.RequireExpiration {
			return core.Expired, errors.New("token has no expiration")
		}
		return core.ReasonNone, nil
	}
	// exp is exclusive: a token expiring exactly now is expired.
	if !now.Before(exp.Add(skew)) {
		return core.Expired, fmt.Errorf("token expired at %s", exp.UTC().Format(time.RFC3339))
	}

	return core.ReasonNone, nil
}

func containsAudience(audiences []string, want string) bool {
	for _, aud := range audiences {
		if aud == want {
			return true
		}
	}
	return false
}
