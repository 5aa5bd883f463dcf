package service

import (
	"context"

	"github.com/google/uuid"

	"ploshtadka/internal/audit"
	"ploshtadka/internal/authz"
	"ploshtadka/internal/venue/models"
	"ploshtadka/pkg/requestcontext"
)

const msgImageNotFound = "Image not found"

// ListImages returns the venue's images by display order. Image management
// is owner territory, so reads go through the ownership guard too.
func (s *Service) ListImages(ctx context.Context, p *authz.Principal, venueID uuid.UUID) (images []*models.Image, err error) {
	ctx, span := s.startSpan(ctx, "list_images", venueID)
	defer func() { endSpan(span, err) }()

	if err = s.assertOwns(ctx, venueID, p); err != nil {
		return nil, err
	}
	images, err = s.images.ListImages(ctx, venueID)
	if err != nil {
		err = translate(err, "Venue not found", "failed to list images")
		s.logStoreError(ctx, "failed to list images", err, "venue_id", venueID)
		return nil, err
	}
	if images == nil {
		images = []*models.Image{}
	}
	return images, nil
}

// AddImage attaches an image. A thumbnail-flagged image demotes the previous
// thumbnail in the same store operation.
func (s *Service) AddImage(ctx context.Context, p *authz.Principal, venueID uuid.UUID, req *models.CreateImageRequest) (img *models.Image, err error) {
	ctx, span := s.startSpan(ctx, "add_image", venueID)
	defer func() { endSpan(span, err) }()

	if err = req.Validate(); err != nil {
		return nil, err
	}
	if err = s.assertOwns(ctx, venueID, p); err != nil {
		return nil, err
	}

	img = &models.Image{
		ID:          uuid.New(),
		VenueID:     venueID,
		URL:         req.URL,
		IsThumbnail: req.IsThumbnail,
		Order:       req.Order,
		CreatedAt:   requestcontext.Now(ctx),
	}
	if err = s.images.CreateImage(ctx, img); err != nil {
		err = translate(err, "Venue not found", "failed to add image")
		s.logStoreError(ctx, "failed to add image", err, "venue_id", venueID)
		return nil, err
	}
	if img.IsThumbnail {
		s.metrics.IncThumbnail()
	}

	s.logAudit(ctx, audit.Event{
		Action:   audit.ActionImageAdded,
		ActorID:  p.ID,
		VenueID:  venueID,
		TargetID: img.ID,
	})
	return img, nil
}

// UpdateImage applies a partial update to one of the venue's images.
func (s *Service) UpdateImage(ctx context.Context, p *authz.Principal, venueID, imageID uuid.UUID, req *models.UpdateImageRequest) (img *models.Image, err error) {
	ctx, span := s.startSpan(ctx, "update_image", venueID)
	defer func() { endSpan(span, err) }()

	if err = req.Validate(); err != nil {
		return nil, err
	}
	if err = s.assertOwns(ctx, venueID, p); err != nil {
		return nil, err
	}

	img, err = s.images.UpdateImage(ctx, venueID, imageID, func(current *models.Image) error {
		req.Apply(current)
		return nil
	})
	if err != nil {
		err = translate(err, msgImageNotFound, "failed to update image")
		s.logStoreError(ctx, "failed to update image", err, "venue_id", venueID, "image_id", imageID)
		return nil, err
	}
	if req.IsThumbnail != nil && *req.IsThumbnail {
		s.metrics.IncThumbnail()
	}

	s.logAudit(ctx, audit.Event{
		Action:   audit.ActionImageUpdated,
		ActorID:  p.ID,
		VenueID:  venueID,
		TargetID: imageID,
	})
	return img, nil
}

func (s *Service) DeleteImage(ctx context.Context, p *authz.Principal, venueID, imageID uuid.UUID) (err error) {
	ctx, span := s.startSpan(ctx, "delete_image", venueID)
	defer func() { endSpan(span, err) }()

	if err = s.assertOwns(ctx, venueID, p); err != nil {
		return err
	}
	if err = s.images.DeleteImage(ctx, venueID, imageID); err != nil {
		err = translate(err, msgImageNotFound, "failed to delete image")
		s.logStoreError(ctx, "failed to delete image", err, "venue_id", venueID, "image_id", imageID)
		return err
	}

	s.logAudit(ctx, audit.Event{
		Action:   audit.ActionImageDeleted,
		ActorID:  p.ID,
		VenueID:  venueID,
		TargetID: imageID,
	})
	return nil
}

// ReorderImages assigns display positions from the order of ids. Ids that
// belong to another venue are ignored.
func (s *Service) ReorderImages(ctx context.Context, p *authz.Principal, venueID uuid.UUID, req *models.ReorderImagesRequest) (images []*models.Image, err error) {
	ctx, span := s.startSpan(ctx, "reorder_images", venueID)
	defer func() { endSpan(span, err) }()

	if err = req.Validate(); err != nil {
		return nil, err
	}
	if err = s.assertOwns(ctx, venueID, p); err != nil {
		return nil, err
	}

	images, err = s.images.ReorderImages(ctx, venueID, req.ImageIDs)
	if err != nil {
		err = translate(err, "Venue not found", "failed to reorder images")
		s.logStoreError(ctx, "failed to reorder images", err, "venue_id", venueID)
		return nil, err
	}
	if images == nil {
		images = []*models.Image{}
	}

	s.logAudit(ctx, audit.Event{
		Action:  audit.ActionImagesReordered,
		ActorID: p.ID,
		VenueID: venueID,
	})
	return images, nil
}
