package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ploshtadka/internal/authz"
	dErrors "ploshtadka/pkg/domain-errors"
)

func TestHeaderResolver(t *testing.T) {
	resolver := NewHeaderResolver(nil)
	id := uuid.New()

	t.Run("reads trusted headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderUserID, id.String())
		req.Header.Set(HeaderUsername, "ivan")
		req.Header.Set(HeaderScopes, "venues:read  venues:images")

		p, err := resolver.Resolve(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, id, p.ID)
		assert.Equal(t, "ivan", p.Username)
		assert.True(t, p.Active)
		assert.True(t, p.Has(authz.ScopeImages))
		assert.True(t, p.Has(authz.ScopeRead))
	})

	t.Run("missing user id", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("malformed user id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderUserID, "42")
		_, err := resolver.Resolve(context.Background(), req)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("no scopes header yields empty set", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderUserID, id.String())
		p, err := resolver.Resolve(context.Background(), req)
		require.NoError(t, err)
		assert.Empty(t, p.Scopes)
	})
}
