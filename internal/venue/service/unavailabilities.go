package service

import (
	"context"

	"github.com/google/uuid"

	"ploshtadka/internal/audit"
	"ploshtadka/internal/authz"
	"ploshtadka/internal/venue/models"
	"ploshtadka/pkg/requestcontext"
)

const msgUnavailabilityNotFound = "Unavailability not found"

// ListUnavailabilities returns the venue's blocked windows. Any reader may
// see them; the venue must exist.
func (s *Service) ListUnavailabilities(ctx context.Context, venueID uuid.UUID) (items []*models.Unavailability, err error) {
	ctx, span := s.startSpan(ctx, "list_unavailabilities", venueID)
	defer func() { endSpan(span, err) }()

	if _, err = s.venues.VenueOwner(ctx, venueID); err != nil {
		err = translate(err, "Venue not found", "failed to load venue")
		s.logStoreError(ctx, "failed to load venue", err, "venue_id", venueID)
		return nil, err
	}
	items, err = s.unavailabilities.ListUnavailabilities(ctx, venueID)
	if err != nil {
		err = translate(err, "Venue not found", "failed to list unavailabilities")
		s.logStoreError(ctx, "failed to list unavailabilities", err, "venue_id", venueID)
		return nil, err
	}
	if items == nil {
		items = []*models.Unavailability{}
	}
	return items, nil
}

func (s *Service) AddUnavailability(ctx context.Context, p *authz.Principal, venueID uuid.UUID, req *models.CreateUnavailabilityRequest) (u *models.Unavailability, err error) {
	ctx, span := s.startSpan(ctx, "add_unavailability", venueID)
	defer func() { endSpan(span, err) }()

	if err = req.Validate(); err != nil {
		return nil, err
	}
	if err = s.assertOwns(ctx, venueID, p); err != nil {
		return nil, err
	}

	u = &models.Unavailability{
		ID:        uuid.New(),
		VenueID:   venueID,
		Start:     req.Start,
		End:       req.End,
		Reason:    req.Reason,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err = s.unavailabilities.CreateUnavailability(ctx, u); err != nil {
		err = translate(err, "Venue not found", "failed to add unavailability")
		s.logStoreError(ctx, "failed to add unavailability", err, "venue_id", venueID)
		return nil, err
	}

	s.logAudit(ctx, audit.Event{
		Action:   audit.ActionUnavailabilityAdded,
		ActorID:  p.ID,
		VenueID:  venueID,
		TargetID: u.ID,
	})
	return u, nil
}

// UpdateUnavailability merges the provided fields and re-validates the
// resulting window before it is stored.
func (s *Service) UpdateUnavailability(ctx context.Context, p *authz.Principal, venueID, id uuid.UUID, req *models.UpdateUnavailabilityRequest) (u *models.Unavailability, err error) {
	ctx, span := s.startSpan(ctx, "update_unavailability", venueID)
	defer func() { endSpan(span, err) }()

	if err = req.Validate(); err != nil {
		return nil, err
	}
	if err = s.assertOwns(ctx, venueID, p); err != nil {
		return nil, err
	}

	u, err = s.unavailabilities.UpdateUnavailability(ctx, venueID, id, req.Apply)
	if err != nil {
		err = translate(err, msgUnavailabilityNotFound, "failed to update unavailability")
		s.logStoreError(ctx, "failed to update unavailability", err, "venue_id", venueID, "unavailability_id", id)
		return nil, err
	}

	s.logAudit(ctx, audit.Event{
		Action:   audit.ActionUnavailabilityUpdated,
		ActorID:  p.ID,
		VenueID:  venueID,
		TargetID: id,
	})
	return u, nil
}

func (s *Service) DeleteUnavailability(ctx context.Context, p *authz.Principal, venueID, id uuid.UUID) (err error) {
	ctx, span := s.startSpan(ctx, "delete_unavailability", venueID)
	defer func() { endSpan(span, err) }()

	if err = s.assertOwns(ctx, venueID, p); err != nil {
		return err
	}
	if err = s.unavailabilities.DeleteUnavailability(ctx, venueID, id); err != nil {
		err = translate(err, msgUnavailabilityNotFound, "failed to delete unavailability")
		s.logStoreError(ctx, "failed to delete unavailability", err, "venue_id", venueID, "unavailability_id", id)
		return err
	}

	s.logAudit(ctx, audit.Event{
		Action:   audit.ActionUnavailabilityDeleted,
		ActorID:  p.ID,
		VenueID:  venueID,
		TargetID: id,
	})
	return nil
}
