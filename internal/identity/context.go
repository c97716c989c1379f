package identity

import "context"

type principalKey struct{}

// WithPrincipals returns a context carrying the principals the caller has
// proven control of. Used by in-process hosts and tests.
func WithPrincipals(ctx context.Context, principals ...string) context.Context {
	existing := principalsFromContext(ctx)
	merged := make([]string, 0, len(existing)+len(principals))
	merged = append(merged, existing...)
	merged = append(merged, principals...)
	return context.WithValue(ctx, principalKey{}, merged)
}

func principalsFromContext(ctx context.Context) []string {
	principals, _ := ctx.Value(principalKey{}).([]string)
	return principals
}

// ContextGate authorizes principals previously attached to the call context
// with WithPrincipals.
type ContextGate struct{}

// RequireAuth implements Gate.
func (ContextGate) RequireAuth(ctx context.Context, principal string) error {
	for _, candidate := range principalsFromContext(ctx) {
		if candidate == principal {
			return nil
		}
	}
	return ErrUnauthorized
}
