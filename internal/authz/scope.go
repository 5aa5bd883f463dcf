package authz

import (
	"sort"
	"strings"
)

// Scope is a permission string granted by the identity service. Scopes are
// compared by exact equality; there is no prefix or wildcard matching.
type Scope string

const (
	ScopeRead     Scope = "venues:read"
	ScopeMe       Scope = "venues:me"
	ScopeWrite    Scope = "venues:write"
	ScopeDelete   Scope = "venues:delete"
	ScopeImages   Scope = "venues:images"
	ScopeSchedule Scope = "venues:schedule"

	// ScopeAdmin is the blanket admin marker. It satisfies every owner-or-admin
	// requirement but does not stand in for the specific admin scopes elsewhere.
	ScopeAdmin       Scope = "admin:venues"
	ScopeAdminRead   Scope = "admin:venues:read"
	ScopeAdminWrite  Scope = "admin:venues:write"
	ScopeAdminDelete Scope = "admin:venues:delete"
)

var knownScopes = map[Scope]struct{}{
	ScopeRead:        {},
	ScopeMe:          {},
	ScopeWrite:       {},
	ScopeDelete:      {},
	ScopeImages:      {},
	ScopeSchedule:    {},
	ScopeAdmin:       {},
	ScopeAdminRead:   {},
	ScopeAdminWrite:  {},
	ScopeAdminDelete: {},
}

// IsKnown reports whether s belongs to the venue service vocabulary.
func (s Scope) IsKnown() bool {
	_, ok := knownScopes[s]
	return ok
}

func (s Scope) String() string { return string(s) }

// ScopeSet is an unordered set of scopes.
type ScopeSet map[Scope]struct{}

// NewScopeSet builds a set from raw scope strings. Blank entries are dropped;
// scopes outside the vocabulary are kept so they can be logged, but they never
// satisfy a requirement.
func NewScopeSet(raw ...string) ScopeSet {
	set := make(ScopeSet, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		set[Scope(r)] = struct{}{}
	}
	return set
}

// ParseScopeList splits a space separated scope string, as carried in OAuth
// "scope" claims and gateway headers.
func ParseScopeList(raw string) ScopeSet {
	return NewScopeSet(strings.Fields(raw)...)
}

// Has reports exact membership.
func (s ScopeSet) Has(scope Scope) bool {
	_, ok := s[scope]
	return ok
}

// Sorted returns the scopes in lexical order.
func (s ScopeSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for scope := range s {
		out = append(out, string(scope))
	}
	sort.Strings(out)
	return out
}

// Unknown returns, in lexical order, the scopes outside the vocabulary.
func (s ScopeSet) Unknown() []string {
	var out []string
	for scope := range s {
		if !scope.IsKnown() {
			out = append(out, string(scope))
		}
	}
	sort.Strings(out)
	return out
}
