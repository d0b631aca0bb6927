package core

import (
	"encoding/json"
	"time"
)

// Principal is the identity derived from a validated token. Claims holds
// every claim of the token payload as decoded from JSON, unfiltered, with
// numbers kept as json.Number. Each validation decodes a fresh map.
type Principal struct {
	Claims map[string]any
	Source SourceKind
}

// Claim returns the raw value of the named claim.
func (p *Principal) Claim(name string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.Claims[name]
	return v, ok
}

func (p *Principal) stringClaim(name string) string {
	v, _ := p.Claim(name)
	s, _ := v.(string)
	return s
}

// Subject returns the "sub" claim.
func (p *Principal) Subject() string { return p.stringClaim("sub") }

// Issuer returns the "iss" claim.
func (p *Principal) Issuer() string { return p.stringClaim("iss") }

// Audience returns the "aud" claim, which may be a single string or an array.
func (p *Principal) Audience() []string {
	v, _ := p.Claim("aud")
	switch aud := v.(type) {
	case string:
		return []string{aud}
	case []any:
		out := make([]string, 0, len(aud))
		for _, a := range aud {
			if s, ok := a.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// ExpiresAt returns the "exp" claim, or the zero time when it is absent.
func (p *Principal) ExpiresAt() time.Time {
	v, _ := p.Claim("exp")
	switch exp := v.(type) {
	case json.Number:
		if n, err := exp.Int64(); err == nil {
			return time.Unix(n, 0)
		}
		if f, err := exp.Float64(); err == nil {
			return time.Unix(int64(f), 0)
		}
	case float64:
		return time.Unix(int64(exp), 0)
	}
	return time.Time{}
}

// Outcome is the result of running a TokenSource through validation:
// either Authenticated with a Principal or Rejected with a FailureReason.
type Outcome struct {
	principal *Principal
	err       *ValidationError
}

// Authenticated returns a successful Outcome for p.
func Authenticated(p *Principal) Outcome {
	return Outcome{principal: p}
}

// Rejected returns a failed Outcome. details may be nil.
func Rejected(reason FailureReason, details error) Outcome {
	return Outcome{err: NewValidationError(reason, "", details)}
}

// Authenticated reports whether the outcome carries a principal.
func (o Outcome) Authenticated() bool {
	return o.err == nil && o.principal != nil
}

// Principal returns the authenticated principal, if any.
func (o Outcome) Principal() (*Principal, bool) {
	if !o.Authenticated() {
		return nil, false
	}
	return o.principal, true
}

// Reason returns ReasonNone for authenticated outcomes.
func (o Outcome) Reason() FailureReason {
	if o.err != nil {
		return o.err.Reason
	}
	if o.principal == nil {
		// zero Outcome: nothing ran
		return NoCredential
	}
	return ReasonNone
}

// Err returns the rejection as a *ValidationError, or nil when authenticated.
func (o Outcome) Err() error {
	if o.err != nil {
		return o.err
	}
	if o.principal == nil {
		return NewValidationError(NoCredential, "", nil)
	}
	return nil
}
