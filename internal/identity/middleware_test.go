package identity

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ploshtadka/internal/authz"
	"ploshtadka/internal/platform/config"
	dErrors "ploshtadka/pkg/domain-errors"
	"ploshtadka/pkg/testutil"
)

type stubResolver struct {
	p   *authz.Principal
	err error
}

func (s stubResolver) Resolve(context.Context, *http.Request) (*authz.Principal, error) {
	return s.p, s.err
}

func TestAuthenticate(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	var seen *authz.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = authz.PrincipalFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("stores principal", func(t *testing.T) {
		p := authz.NewPrincipal(uuid.New(), "a", []string{"venues:read"}, true)
		rr := testutil.DoRequest(Authenticate(stubResolver{p: p}, logger)(next), testutil.NewRequest(t, http.MethodGet, "/"))
		testutil.AssertStatus(t, rr, http.StatusNoContent)
		assert.Same(t, p, seen)
	})

	t.Run("logs scopes outside the vocabulary", func(t *testing.T) {
		var buf bytes.Buffer
		debug := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		p := authz.NewPrincipal(uuid.New(), "a", []string{"venues:read", "billing:read"}, true)
		rr := testutil.DoRequest(Authenticate(stubResolver{p: p}, debug)(next), testutil.NewRequest(t, http.MethodGet, "/"))
		testutil.AssertStatus(t, rr, http.StatusNoContent)
		assert.Contains(t, buf.String(), "billing:read")
		assert.NotContains(t, buf.String(), "venues:read")
	})

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unauthenticated", dErrors.New(dErrors.CodeUnauthorized, "Not authenticated"), http.StatusUnauthorized, "unauthorized"},
		{"upstream down", dErrors.New(dErrors.CodeUnavailable, "Identity service unavailable"), http.StatusServiceUnavailable, "upstream_unavailable"},
		{"upstream garbage", dErrors.New(dErrors.CodeBadGateway, "Unexpected response"), http.StatusBadGateway, "bad_gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			rr := testutil.DoRequest(Authenticate(stubResolver{err: tt.err}, logger)(next), testutil.NewRequest(t, http.MethodGet, "/"))
			testutil.AssertStatusAndError(t, rr, tt.status, tt.code)
			assert.Nil(t, seen)
		})
	}

	t.Run("401 carries challenge", func(t *testing.T) {
		rr := testutil.DoRequest(
			Authenticate(stubResolver{err: dErrors.New(dErrors.CodeUnauthorized, "x")}, logger)(next),
			httptest.NewRequest(http.MethodGet, "/", nil),
		)
		assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
	})
}

func TestNewSelectsStrategy(t *testing.T) {
	r, err := New(config.IdentityConfig{Strategy: config.IdentityToken, BaseURL: "http://id", Timeout: time.Second}, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &TokenResolver{}, r)

	r, err = New(config.IdentityConfig{Strategy: config.IdentityHeader}, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &HeaderResolver{}, r)

	r, err = New(config.IdentityConfig{Strategy: config.IdentityJWT, JWTSecret: "k"}, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &JWTResolver{}, r)

	_, err = New(config.IdentityConfig{Strategy: "ldap"}, nil, nil)
	require.Error(t, err)
}
