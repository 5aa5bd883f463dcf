// Package identity turns request credentials into an authz.Principal.
//
// Three strategies exist and exactly one is active per deployment:
//
//   - token: the bearer token is forwarded to the identity service, which
//     answers with the caller's profile and scopes.
//   - header: an authenticating perimeter (gateway, mesh) has already
//     validated the session and passes the identity in trusted headers.
//   - jwt: an HS256 token signed with a shared secret is verified locally.
package identity

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"ploshtadka/internal/authz"
	"ploshtadka/internal/platform/config"
	dErrors "ploshtadka/pkg/domain-errors"
)

// Resolver authenticates one request.
type Resolver interface {
	Resolve(ctx context.Context, r *http.Request) (*authz.Principal, error)
}

const bearerPrefix = "Bearer "

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "Not authenticated")
	}
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", dErrors.New(dErrors.CodeUnauthorized, "Invalid authorization header format")
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "Invalid authorization header format")
	}
	return token, nil
}

// New builds the resolver selected by cfg. client is only used by the token
// strategy; a nil client gets one bounded by cfg.Timeout.
func New(cfg config.IdentityConfig, client *http.Client, m *Metrics) (Resolver, error) {
	switch cfg.Strategy {
	case config.IdentityToken:
		if client == nil {
			client = &http.Client{Timeout: cfg.Timeout}
		}
		return NewTokenResolver(cfg.BaseURL, client, m), nil
	case config.IdentityHeader:
		return NewHeaderResolver(m), nil
	case config.IdentityJWT:
		return NewJWTResolver([]byte(cfg.JWTSecret), m)
	default:
		return nil, fmt.Errorf("unknown identity strategy %q", cfg.Strategy)
	}
}
