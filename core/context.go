package core

import "context"

// contextKey is an unexported type for context keys to prevent collisions.
// Using an unexported type ensures that only this package can create context keys,
// eliminating the risk of collisions with other packages.
type contextKey int

const (
	outcomeKey contextKey = iota
)

// WithOutcome stores the outcome of the pipeline in the context.
// This is a helper function for adapters to call after validation.
func WithOutcome(ctx context.Context, o Outcome) context.Context {
	return context.WithValue(ctx, outcomeKey, o)
}

// OutcomeFrom returns the outcome stored in ctx, and false when the
// pipeline has not run for this request.
func OutcomeFrom(ctx context.Context) (Outcome, bool) {
	o, ok := ctx.Value(outcomeKey).(Outcome)
	return o, ok
}

// PrincipalFrom returns the authenticated principal stored in ctx.
//
// Example usage:
//
//	p, err := core.PrincipalFrom(ctx)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(p.Subject())
func PrincipalFrom(ctx context.Context) (*Principal, error) {
	o, ok := OutcomeFrom(ctx)
	if !ok {
		return nil, ErrPrincipalNotFound
	}
	p, ok := o.Principal()
	if !ok {
		return nil, ErrPrincipalNotFound
	}
	return p, nil
}

// IsAuthenticated reports whether ctx carries an authenticated outcome.
func IsAuthenticated(ctx context.Context) bool {
	o, ok := OutcomeFrom(ctx)
	return ok && o.Authenticated()
}
