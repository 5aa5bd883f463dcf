package authz

import (
	"context"
	"errors"

	"github.com/google/uuid"

	dErrors "ploshtadka/pkg/domain-errors"
	"ploshtadka/pkg/platform/sentinel"
)

// OwnerLookup resolves the owner of a venue. It returns sentinel.ErrNotFound
// when the venue does not exist.
type OwnerLookup interface {
	VenueOwner(ctx context.Context, venueID uuid.UUID) (uuid.UUID, error)
}

// Guard enforces venue ownership for per-venue mutations.
type Guard struct {
	venues OwnerLookup
}

// NewGuard creates a Guard backed by lookup.
func NewGuard(lookup OwnerLookup) *Guard {
	return &Guard{venues: lookup}
}

// AssertOwnsVenue succeeds when p holds admin:venues:write, or when the venue
// exists and p owns it. Absent venues yield NotFound; foreign venues Forbidden.
func (g *Guard) AssertOwnsVenue(ctx context.Context, venueID uuid.UUID, p *Principal) error {
	if err := RequireActive(p); err != nil {
		return err
	}
	if p.Has(ScopeAdminWrite) {
		return nil
	}
	owner, err := g.owner(ctx, venueID)
	if err != nil {
		return err
	}
	if owner != p.ID {
		return dErrors.New(dErrors.CodeForbidden, "You don't have permission to modify this venue")
	}
	return nil
}

// ResolveOwnerContext returns the owner id a venue update or delete should be
// scoped to. Admin writers act as the venue's actual owner, which requires the
// venue to exist; everyone else acts as themselves and the store scoping
// decides visibility.
func (g *Guard) ResolveOwnerContext(ctx context.Context, venueID uuid.UUID, p *Principal) (uuid.UUID, error) {
	if err := RequireActive(p); err != nil {
		return uuid.Nil, err
	}
	if !p.Has(ScopeAdminWrite) {
		return p.ID, nil
	}
	return g.owner(ctx, venueID)
}

func (g *Guard) owner(ctx context.Context, venueID uuid.UUID) (uuid.UUID, error) {
	owner, err := g.venues.VenueOwner(ctx, venueID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return uuid.Nil, dErrors.New(dErrors.CodeNotFound, "Venue not found")
		}
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve venue owner")
	}
	return owner, nil
}
