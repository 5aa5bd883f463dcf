package identity

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"ploshtadka/internal/authz"
	dErrors "ploshtadka/pkg/domain-errors"
)

// Trusted identity headers set by the perimeter.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUsername = "X-Username"
	HeaderScopes   = "X-User-Scopes"
)

// HeaderResolver trusts identity headers injected by an authenticating
// perimeter. It must only be deployed behind one that strips these headers
// from client traffic; session validity is not re-checked here.
type HeaderResolver struct {
	metrics *Metrics
}

func NewHeaderResolver(m *Metrics) *HeaderResolver {
	return &HeaderResolver{metrics: m}
}

func (h *HeaderResolver) Resolve(_ context.Context, r *http.Request) (*authz.Principal, error) {
	raw := strings.TrimSpace(r.Header.Get(HeaderUserID))
	if raw == "" {
		h.metrics.IncResolution(StrategyHeader, OutcomeUnauthenticated)
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Not authenticated")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.metrics.IncResolution(StrategyHeader, OutcomeUnauthenticated)
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Invalid user id header")
	}

	scopes := authz.ParseScopeList(r.Header.Get(HeaderScopes))
	h.metrics.IncResolution(StrategyHeader, OutcomeOK)
	return &authz.Principal{
		ID:       id,
		Username: strings.TrimSpace(r.Header.Get(HeaderUsername)),
		Scopes:   scopes,
		Active:   true,
	}, nil
}
