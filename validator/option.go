package validator

import (
	"bytes"
	"errors"
	"fmt"
	"time"
)

// MinSigningKeyLength is the shortest accepted signing key, in bytes.
// HMAC keys must be at least as long as the hash output (RFC 7518 §3.2).
const MinSigningKeyLength = 32

// Sentinel errors for configuration validation
var (
	ErrSigningKeyMissing  = errors.New("signing key is required but was empty (use WithSigningKey)")
	ErrSigningKeyTooShort = fmt.Errorf("signing key must be at least %d bytes", MinSigningKeyLength)
	ErrIssuerMissing      = errors.New("issuer is required when issuer validation is enabled")
	ErrAudienceMissing    = errors.New("audience is required when audience validation is enabled")
)

// Option is how options for the Validator are set up.
// Options return errors to enable validation during construction.
type Option func(*Validator) error

// New builds a Validator. Every check is enabled by default; the signing key
// is always required, and so are the issuer and audience unless their
// validation is turned off.
//
// Example:
//
//	v, err := validator.New(
//	    validator.WithIssuer("api.example"),
//	    validator.WithAudience("web.example"),
//	    validator.WithSigningKey([]byte(os.Getenv("JWT_SIGN_KEY"))),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
func New(opts ...Option) (*Validator, error) {
	v := &Validator{
		params: Params{
			ValidateIssuer:           true,
			ValidateAudience:         true,
			ValidateIssuerSigningKey: true,
			ValidateLifetime:         true,
			RequireExpiration:        true,
		},
		now: time.Now,
	}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if err := v.validate(); err != nil {
		return nil, fmt.Errorf("invalid validator configuration: %w", err)
	}

	return v, nil
}

func (v *Validator) validate() error {
	switch {
	case len(v.params.SigningKey) == 0:
		return ErrSigningKeyMissing
	case len(v.params.SigningKey) < MinSigningKeyLength:
		return ErrSigningKeyTooShort
	case v.params.ValidateIssuer && v.params.Issuer == "":
		return ErrIssuerMissing
	case v.params.ValidateAudience && v.params.Audience == "":
		return ErrAudienceMissing
	}
	return nil
}

// WithIssuer sets the expected issuer claim (iss). The comparison is an
// exact string match.
func WithIssuer(issuer string) Option {
	return func(v *Validator) error {
		if issuer == "" {
			return errors.New("issuer cannot be empty")
		}
		v.params.Issuer = issuer
		return nil
	}
}

// WithAudience sets the audience that must appear in the aud claim.
func WithAudience(audience string) Option {
	return func(v *Validator) error {
		if audience == "" {
			return errors.New("audience cannot be empty")
		}
		v.params.Audience = audience
		return nil
	}
}

// WithSigningKey sets the shared secret used to verify HS256/HS384/HS512
// signatures. The key is copied.
func WithSigningKey(key []byte) Option {
	return func(v *Validator) error {
		if len(key) == 0 {
			return ErrSigningKeyMissing
		}
		v.params.SigningKey = bytes.Clone(key)
		return nil
	}
}

// WithAllowedClockSkew sets the allowed clock skew for exp and nbf.
// If not set, the default is 0 (no clock skew allowed).
func WithAllowedClockSkew(skew time.Duration) Option {
	return func(v *Validator) error {
		if skew < 0 {
			return errors.New("clock skew cannot be negative")
		}
		v.params.ClockSkew = skew
		return nil
	}
}

// WithIssuerValidation turns the issuer check on or off.
func WithIssuerValidation(enabled bool) Option {
	return func(v *Validator) error {
		v.params.ValidateIssuer = enabled
		return nil
	}
}

// WithAudienceValidation turns the audience check on or off.
func WithAudienceValidation(enabled bool) Option {
	return func(v *Validator) error {
		v.params.ValidateAudience = enabled
		return nil
	}
}

// WithSigningKeyValidation turns signature verification on or off.
// Turning it off accepts forged tokens and is only meant for tests.
func WithSigningKeyValidation(enabled bool) Option {
	return func(v *Validator) error {
		v.params.ValidateIssuerSigningKey = enabled
		return nil
	}
}

// WithLifetimeValidation turns the exp/nbf check on or off.
func WithLifetimeValidation(enabled bool) Option {
	return func(v *Validator) error {
		v.params.ValidateLifetime = enabled
		return nil
	}
}

// WithRequireExpiration controls whether tokens without exp are rejected.
//
// Default: true
func WithRequireExpiration(required bool) Option {
	return func(v *Validator) error {
		v.params.RequireExpiration = required
		return nil
	}
}

// WithClock overrides the time source used for lifetime checks.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) error {
		if now == nil {
			return errors.New("clock cannot be nil")
		}
		v.now = now
		return nil
	}
}
