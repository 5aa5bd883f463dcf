package authz

import (
	"context"

	"github.com/google/uuid"
)

// Principal is the authenticated caller for one request. It is built once by
// the identity resolver and not modified afterwards.
type Principal struct {
	ID       uuid.UUID
	Username string
	Scopes   ScopeSet
	Active   bool
}

// NewPrincipal builds a principal from resolver output.
func NewPrincipal(id uuid.UUID, username string, scopes []string, active bool) *Principal {
	return &Principal{
		ID:       id,
		Username: username,
		Scopes:   NewScopeSet(scopes...),
		Active:   active,
	}
}

// Has reports whether the principal holds scope.
func (p *Principal) Has(scope Scope) bool {
	if p == nil {
		return false
	}
	return p.Scopes.Has(scope)
}

// IsAdmin reports whether the principal holds the blanket admin marker.
func (p *Principal) IsAdmin() bool {
	return p.Has(ScopeAdmin)
}

type principalKey struct{}

// WithPrincipal stores the principal in ctx.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored by the identity middleware.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}
