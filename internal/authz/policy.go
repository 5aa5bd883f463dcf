// Package authz decides whether a principal may perform an operation.
//
// Decisions are pure functions of the principal's scopes, except for the
// ownership guard which additionally resolves the owner of a venue through a
// lookup port. Every check fails closed.
package authz

import (
	"strings"

	dErrors "ploshtadka/pkg/domain-errors"
)

// RequireActive rejects missing principals and deactivated accounts. It runs
// before any scope check.
func RequireActive(p *Principal) error {
	if p == nil {
		return dErrors.New(dErrors.CodeUnauthorized, "Not authenticated")
	}
	if !p.Active {
		return dErrors.New(dErrors.CodeForbidden, "Your account has been deactivated")
	}
	return nil
}

// RequireAll passes only when p holds every listed scope. The error names all
// missing scopes, in the order requested.
func RequireAll(p *Principal, scopes ...Scope) (*Principal, error) {
	if err := RequireActive(p); err != nil {
		return nil, err
	}
	var missing []string
	for _, s := range scopes {
		if !p.Has(s) {
			missing = append(missing, string(s))
		}
	}
	if len(missing) > 0 {
		return nil, dErrors.New(dErrors.CodeForbidden, "Missing required scopes: "+strings.Join(missing, ", "))
	}
	return p, nil
}

// AuthorizeOwnerAction passes when p holds ownerScope, adminScope or the
// blanket admin marker. It does not check ownership of any resource; that is
// the guard's job once the target is known.
func AuthorizeOwnerAction(ownerScope, adminScope Scope, p *Principal) (*Principal, error) {
	if err := RequireActive(p); err != nil {
		return nil, err
	}
	if p.Has(ownerScope) || p.Has(adminScope) || p.IsAdmin() {
		return p, nil
	}
	return nil, dErrors.New(dErrors.CodeForbidden,
		"Requires scope "+string(ownerScope)+" or "+string(adminScope))
}

// Requirement describes the scope precondition of a route.
type Requirement struct {
	all   []Scope
	owner Scope
	admin Scope
}

// AllOf requires every listed scope.
func AllOf(scopes ...Scope) Requirement {
	return Requirement{all: scopes}
}

// OwnerOrAdmin requires the owner scope or its admin counterpart.
func OwnerOrAdmin(owner, admin Scope) Requirement {
	return Requirement{owner: owner, admin: admin}
}

// Route requirements shared by the HTTP layer.
var (
	RequireRead     = AllOf(ScopeRead)
	RequireMe       = AllOf(ScopeMe)
	RequireStatus   = AllOf(ScopeAdminWrite)
	RequireWrite    = OwnerOrAdmin(ScopeWrite, ScopeAdminWrite)
	RequireDelete   = OwnerOrAdmin(ScopeDelete, ScopeAdminDelete)
	RequireImages   = OwnerOrAdmin(ScopeImages, ScopeAdminWrite)
	RequireSchedule = OwnerOrAdmin(ScopeSchedule, ScopeAdminWrite)
)

// Authorize evaluates req against p.
func Authorize(req Requirement, p *Principal) error {
	if req.owner != "" {
		_, err := AuthorizeOwnerAction(req.owner, req.admin, p)
		return err
	}
	_, err := RequireAll(p, req.all...)
	return err
}
