package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ploshtadka/internal/audit"
	"ploshtadka/internal/authz"
	"ploshtadka/internal/venue/models"
	dErrors "ploshtadka/pkg/domain-errors"
	"ploshtadka/pkg/requestcontext"
)

const msgVenueNotOwned = "Venue not found or you don't own it"

// CreateVenue registers a venue owned by the caller. New venues await
// approval before they show up in public searches.
func (s *Service) CreateVenue(ctx context.Context, p *authz.Principal, req *models.CreateVenueRequest) (v *models.Venue, err error) {
	ctx, span := s.startSpan(ctx, "create", uuid.Nil)
	defer func() { endSpan(span, err) }()

	if err = authz.RequireActive(p); err != nil {
		return nil, err
	}
	if err = req.Validate(); err != nil {
		return nil, err
	}

	v = req.NewVenue(p.ID, requestcontext.Now(ctx))
	if err = s.venues.Create(ctx, v); err != nil {
		err = translate(err, "Venue not found", "failed to create venue")
		s.logStoreError(ctx, "failed to create venue", err)
		return nil, err
	}
	v.Images = []*models.Image{}
	v.Unavailabilities = []*models.Unavailability{}

	s.logAudit(ctx, audit.Event{
		Action:  audit.ActionVenueCreated,
		ActorID: p.ID,
		OwnerID: v.OwnerID,
		VenueID: v.ID,
	})
	return v, nil
}

// GetVenue returns a venue with its images and unavailabilities.
func (s *Service) GetVenue(ctx context.Context, id uuid.UUID) (v *models.Venue, err error) {
	ctx, span := s.startSpan(ctx, "get", id)
	defer func() { endSpan(span, err) }()

	v, err = s.venues.FindByID(ctx, id)
	if err != nil {
		err = translate(err, "Venue not found", "failed to load venue")
		s.logStoreError(ctx, "failed to load venue", err, "venue_id", id)
		return nil, err
	}
	return v, nil
}

// ListVenues runs a filtered, paginated search.
func (s *Service) ListVenues(ctx context.Context, f models.Filters) (items []*models.ListItem, err error) {
	ctx, span := s.startSpan(ctx, "list", uuid.Nil)
	defer func() { endSpan(span, err) }()

	start := time.Now()
	defer s.metrics.ObserveList(start)

	items, err = s.venues.List(ctx, f)
	if err != nil {
		err = translate(err, "Venue not found", "failed to list venues")
		s.logStoreError(ctx, "failed to list venues", err)
		return nil, err
	}
	if items == nil {
		items = []*models.ListItem{}
	}
	return items, nil
}

// ListOwnVenues searches the caller's venues in any status unless f
// restricts it.
func (s *Service) ListOwnVenues(ctx context.Context, p *authz.Principal, f models.Filters) ([]*models.ListItem, error) {
	if err := authz.RequireActive(p); err != nil {
		return nil, err
	}
	return s.ListVenues(ctx, f.WithOwner(p.ID))
}

// UpdateVenue applies a partial update. The write is scoped to the resolved
// owner, so callers who do not own the venue see it as missing.
func (s *Service) UpdateVenue(ctx context.Context, p *authz.Principal, id uuid.UUID, req *models.UpdateVenueRequest) (v *models.Venue, err error) {
	ctx, span := s.startSpan(ctx, "update", id)
	defer func() { endSpan(span, err) }()

	if err = req.Validate(); err != nil {
		return nil, err
	}
	ownerID, err := s.guard.ResolveOwnerContext(ctx, id, p)
	if err != nil {
		s.recordDenial(ctx, err, id, p)
		return nil, err
	}

	now := requestcontext.Now(ctx)
	v, err = s.venues.UpdateForOwner(ctx, id, ownerID, func(current *models.Venue) error {
		req.Apply(current)
		current.UpdatedAt = now
		return nil
	})
	if err != nil {
		err = translate(err, msgVenueNotOwned, "failed to update venue")
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			s.metrics.IncDenial(string(dErrors.CodeNotFound))
		}
		s.logStoreError(ctx, "failed to update venue", err, "venue_id", id)
		return nil, err
	}

	s.logAudit(ctx, audit.Event{
		Action:  audit.ActionVenueUpdated,
		ActorID: p.ID,
		OwnerID: v.OwnerID,
		VenueID: v.ID,
	})
	return v, nil
}

// UpdateVenueStatus moves a venue through its lifecycle. Only admin writers
// reach this; ownership is not consulted.
func (s *Service) UpdateVenueStatus(ctx context.Context, p *authz.Principal, id uuid.UUID, req *models.UpdateStatusRequest) (v *models.Venue, err error) {
	ctx, span := s.startSpan(ctx, "update_status", id)
	defer func() { endSpan(span, err) }()

	if _, err = authz.RequireAll(p, authz.ScopeAdminWrite); err != nil {
		return nil, err
	}
	if err = req.Validate(); err != nil {
		return nil, err
	}

	v, err = s.venues.UpdateStatus(ctx, id, req.ParsedStatus(), requestcontext.Now(ctx))
	if err != nil {
		err = translate(err, "Venue not found", "failed to update venue status")
		s.logStoreError(ctx, "failed to update venue status", err, "venue_id", id)
		return nil, err
	}

	s.logAudit(ctx, audit.Event{
		Action:  audit.ActionVenueStatusChanged,
		ActorID: p.ID,
		OwnerID: v.OwnerID,
		VenueID: v.ID,
		Detail:  string(v.Status),
	})
	return v, nil
}

// DeleteVenue removes a venue with its images and schedule. Admin deleters
// remove any venue; everyone else only their own.
func (s *Service) DeleteVenue(ctx context.Context, p *authz.Principal, id uuid.UUID) (err error) {
	ctx, span := s.startSpan(ctx, "delete", id)
	defer func() { endSpan(span, err) }()

	if err = authz.RequireActive(p); err != nil {
		return err
	}

	hard := p.Has(authz.ScopeAdminDelete)
	if hard {
		err = s.venues.Delete(ctx, id)
	} else {
		err = s.venues.DeleteForOwner(ctx, id, p.ID)
	}
	if err != nil {
		msg := msgVenueNotOwned
		if hard {
			msg = "Venue not found"
		}
		err = translate(err, msg, "failed to delete venue")
		if !hard && dErrors.HasCode(err, dErrors.CodeNotFound) {
			s.metrics.IncDenial(string(dErrors.CodeNotFound))
		}
		s.logStoreError(ctx, "failed to delete venue", err, "venue_id", id)
		return err
	}

	event := audit.Event{
		Action:  audit.ActionVenueDeleted,
		ActorID: p.ID,
		VenueID: id,
	}
	if hard {
		event.Detail = "admin"
	} else {
		event.OwnerID = p.ID
	}
	s.logAudit(ctx, event)
	return nil
}
