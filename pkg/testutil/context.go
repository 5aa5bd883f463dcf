package testutil

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"ploshtadka/internal/authz"
)

// WithPrincipal attaches a principal holding scopes to the request, the way
// the identity middleware does for authenticated requests.
func WithPrincipal(req *http.Request, userID uuid.UUID, scopes ...authz.Scope) *http.Request {
	raw := make([]string, 0, len(scopes))
	for _, s := range scopes {
		raw = append(raw, string(s))
	}
	p := authz.NewPrincipal(userID, "user-"+userID.String()[:8], raw, true)
	return req.WithContext(authz.WithPrincipal(req.Context(), p))
}

// WithInactivePrincipal attaches a deactivated principal.
func WithInactivePrincipal(req *http.Request, userID uuid.UUID, scopes ...authz.Scope) *http.Request {
	req = WithPrincipal(req, userID, scopes...)
	p, _ := authz.PrincipalFrom(req.Context())
	p.Active = false
	return req
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
