package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ploshtadka/internal/authz"
	dErrors "ploshtadka/pkg/domain-errors"
	"ploshtadka/pkg/testutil"
)

func bearerRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestNewJWTResolverRequiresKey(t *testing.T) {
	_, err := NewJWTResolver(nil, nil)
	require.Error(t, err)
}

func TestJWTResolver(t *testing.T) {
	resolver, err := NewJWTResolver([]byte("test-secret"), nil)
	require.NoError(t, err)
	userID := uuid.New()
	inactive := false

	testutil.Given(t, "a token with a scope string", func(t *testing.T) {
		token, err := resolver.Sign(Claims{
			Username: "petar",
			Scope:    "venues:read venues:write",
			Scopes:   []string{"venues:images"},
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   userID.String(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		require.NoError(t, err)

		testutil.Then(t, "scopes from both claims are merged", func(t *testing.T) {
			p, err := resolver.Resolve(context.Background(), bearerRequest(token))
			require.NoError(t, err)
			assert.Equal(t, userID, p.ID)
			assert.Equal(t, "petar", p.Username)
			assert.True(t, p.Active)
			assert.True(t, p.Has(authz.ScopeRead))
			assert.True(t, p.Has(authz.ScopeWrite))
			assert.True(t, p.Has(authz.ScopeImages))
		})
	})

	testutil.Given(t, "a deactivated account", func(t *testing.T) {
		token, err := resolver.Sign(Claims{
			IsActive:         &inactive,
			RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
		})
		require.NoError(t, err)

		p, err := resolver.Resolve(context.Background(), bearerRequest(token))
		require.NoError(t, err)
		assert.False(t, p.Active)
	})

	testutil.When(t, "the token is expired", func(t *testing.T) {
		token, err := resolver.Sign(Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		}})
		require.NoError(t, err)

		_, err = resolver.Resolve(context.Background(), bearerRequest(token))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	testutil.When(t, "the token is signed with another key", func(t *testing.T) {
		other, err := NewJWTResolver([]byte("other-secret"), nil)
		require.NoError(t, err)
		token, err := other.Sign(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()}})
		require.NoError(t, err)

		_, err = resolver.Resolve(context.Background(), bearerRequest(token))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	testutil.When(t, "the algorithm is not HS256", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
		}).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = resolver.Resolve(context.Background(), bearerRequest(token))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	testutil.When(t, "the subject is not a uuid", func(t *testing.T) {
		token, err := resolver.Sign(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}})
		require.NoError(t, err)

		_, err = resolver.Resolve(context.Background(), bearerRequest(token))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}
