package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "ploshtadka/pkg/domain-errors"
)

func principalWith(scopes ...string) *Principal {
	return NewPrincipal(uuid.New(), "alice", scopes, true)
}

func TestRequireAll(t *testing.T) {
	t.Run("passes when every scope is held", func(t *testing.T) {
		p := principalWith("venues:read", "venues:write")
		got, err := RequireAll(p, ScopeRead, ScopeWrite)
		require.NoError(t, err)
		assert.Same(t, p, got)
	})

	t.Run("lists every missing scope", func(t *testing.T) {
		p := principalWith("venues:read")
		_, err := RequireAll(p, ScopeRead, ScopeWrite, ScopeDelete)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
		de, _ := dErrors.As(err)
		assert.Equal(t, "Missing required scopes: venues:write, venues:delete", de.Message)
	})

	t.Run("empty requirement passes for active principal", func(t *testing.T) {
		_, err := RequireAll(principalWith())
		assert.NoError(t, err)
	})

	t.Run("deactivated principal is rejected before scopes", func(t *testing.T) {
		p := NewPrincipal(uuid.New(), "bob", []string{"venues:read"}, false)
		_, err := RequireAll(p, ScopeRead)
		de, ok := dErrors.As(err)
		require.True(t, ok)
		assert.Equal(t, dErrors.CodeForbidden, de.Code)
		assert.Equal(t, "Your account has been deactivated", de.Message)
	})

	t.Run("nil principal is unauthenticated", func(t *testing.T) {
		_, err := RequireAll(nil, ScopeRead)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("no prefix matching", func(t *testing.T) {
		_, err := RequireAll(principalWith("venues"), ScopeRead)
		assert.Error(t, err)
		_, err = RequireAll(principalWith("admin:venues"), ScopeAdminWrite)
		assert.Error(t, err)
	})
}

func TestAuthorizeOwnerAction(t *testing.T) {
	cases := []struct {
		name   string
		scopes []string
		pass   bool
	}{
		{"owner scope", []string{"venues:write"}, true},
		{"admin scope", []string{"admin:venues:write"}, true},
		{"blanket admin marker", []string{"admin:venues"}, true},
		{"unrelated scopes", []string{"venues:read", "venues:delete"}, false},
		{"no scopes", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := AuthorizeOwnerAction(ScopeWrite, ScopeAdminWrite, principalWith(tc.scopes...))
			if tc.pass {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
			assert.Contains(t, err.Error(), "venues:write")
			assert.Contains(t, err.Error(), "admin:venues:write")
		})
	}
}

func TestAuthorize(t *testing.T) {
	cases := []struct {
		name   string
		req    Requirement
		scopes []string
		pass   bool
	}{
		{"read with read", RequireRead, []string{"venues:read"}, true},
		{"read with admin marker only", RequireRead, []string{"admin:venues"}, false},
		{"status with admin write", RequireStatus, []string{"admin:venues:write"}, true},
		{"status with owner write", RequireStatus, []string{"venues:write"}, false},
		{"delete with admin delete", RequireDelete, []string{"admin:venues:delete"}, true},
		{"delete with admin write", RequireDelete, []string{"admin:venues:write"}, false},
		{"images with admin write", RequireImages, []string{"admin:venues:write"}, true},
		{"schedule with schedule", RequireSchedule, []string{"venues:schedule"}, true},
		{"schedule with images", RequireSchedule, []string{"venues:images"}, false},
		{"me with me", RequireMe, []string{"venues:me"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.req, principalWith(tc.scopes...))
			if tc.pass {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestScopeSet(t *testing.T) {
	set := ParseScopeList("  venues:read   admin:venues  venues:read ")
	assert.Len(t, set, 2)
	assert.True(t, set.Has(ScopeRead))
	assert.True(t, set.Has(ScopeAdmin))
	assert.Equal(t, []string{"admin:venues", "venues:read"}, set.Sorted())

	assert.True(t, ScopeSchedule.IsKnown())
	assert.False(t, Scope("venues:*").IsKnown())

	mixed := NewScopeSet("venues:read", "venues:*", "billing:read")
	assert.Equal(t, []string{"billing:read", "venues:*"}, mixed.Unknown())
	assert.Empty(t, set.Unknown())
}
