package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"ploshtadka/internal/venue/models"
	"ploshtadka/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded store for tests and single-node development.
// Every method copies records in and out so callers never share memory with
// the store.
type InMemory struct {
	mu               sync.RWMutex
	venues           map[uuid.UUID]*models.Venue
	images           map[uuid.UUID]*models.Image
	unavailabilities map[uuid.UUID]*models.Unavailability
}

// NewInMemory creates an empty store.
func NewInMemory() *InMemory {
	return &InMemory{
		venues:           make(map[uuid.UUID]*models.Venue),
		images:           make(map[uuid.UUID]*models.Image),
		unavailabilities: make(map[uuid.UUID]*models.Unavailability),
	}
}

// Create inserts a new venue.
func (s *InMemory) Create(_ context.Context, v *models.Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.venues[v.ID]; exists {
		return sentinel.ErrConflict
	}
	s.venues[v.ID] = cloneVenue(v)
	return nil
}

// FindByID returns the venue with its images and unavailabilities.
func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.venues[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := cloneVenue(v)
	out.Images = s.imagesFor(id)
	out.Unavailabilities = s.unavailabilitiesFor(id)
	return out, nil
}

// VenueOwner returns the owner of a venue.
func (s *InMemory) VenueOwner(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.venues[id]
	if !ok {
		return uuid.Nil, sentinel.ErrNotFound
	}
	return v.OwnerID, nil
}

// List returns one page of venues matching f, newest first.
func (s *InMemory) List(_ context.Context, f models.Filters) ([]*models.ListItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*models.Venue, 0)
	for _, v := range s.venues {
		if f.Matches(v) {
			matched = append(matched, v)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})

	items := make([]*models.ListItem, 0, f.PageSize())
	offset := f.Offset()
	if offset >= len(matched) {
		return items, nil
	}
	end := min(offset+f.PageSize(), len(matched))
	for _, v := range matched[offset:end] {
		items = append(items, models.NewListItem(v, s.imagesFor(v.ID)))
	}
	return items, nil
}

// UpdateForOwner applies mutate to the venue only if ownerID owns it.
func (s *InMemory) UpdateForOwner(_ context.Context, id, ownerID uuid.UUID, mutate func(*models.Venue) error) (*models.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.venues[id]
	if !ok || current.OwnerID != ownerID {
		return nil, sentinel.ErrNotFound
	}
	next := cloneVenue(current)
	if err := mutate(next); err != nil {
		return nil, err
	}
	next.ID, next.OwnerID = current.ID, current.OwnerID
	s.venues[id] = next

	out := cloneVenue(next)
	out.Images = s.imagesFor(id)
	out.Unavailabilities = s.unavailabilitiesFor(id)
	return out, nil
}

// UpdateStatus sets the venue status without any ownership scoping.
func (s *InMemory) UpdateStatus(_ context.Context, id uuid.UUID, status models.Status, at time.Time) (*models.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.venues[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	v.Status = status
	v.UpdatedAt = at

	out := cloneVenue(v)
	out.Images = s.imagesFor(id)
	out.Unavailabilities = s.unavailabilitiesFor(id)
	return out, nil
}

// Delete removes a venue and everything attached to it.
func (s *InMemory) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.venues[id]; !ok {
		return sentinel.ErrNotFound
	}
	s.deleteLocked(id)
	return nil
}

// DeleteForOwner removes a venue only if ownerID owns it.
func (s *InMemory) DeleteForOwner(_ context.Context, id, ownerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.venues[id]
	if !ok || v.OwnerID != ownerID {
		return sentinel.ErrNotFound
	}
	s.deleteLocked(id)
	return nil
}

func (s *InMemory) deleteLocked(id uuid.UUID) {
	delete(s.venues, id)
	for imgID, img := range s.images {
		if img.VenueID == id {
			delete(s.images, imgID)
		}
	}
	for uID, u := range s.unavailabilities {
		if u.VenueID == id {
			delete(s.unavailabilities, uID)
		}
	}
}

// ListImages returns a venue's images by display order.
func (s *InMemory) ListImages(_ context.Context, venueID uuid.UUID) ([]*models.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.imagesFor(venueID), nil
}

// CreateImage inserts img. When it is flagged as the thumbnail every other
// thumbnail of the venue is demoted under the same lock.
func (s *InMemory) CreateImage(_ context.Context, img *models.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.venues[img.VenueID]; !ok {
		return sentinel.ErrNotFound
	}
	if img.IsThumbnail {
		s.demoteThumbnailsLocked(img.VenueID, img.ID)
	}
	cp := *img
	s.images[img.ID] = &cp
	return nil
}

// UpdateImage applies mutate to an image of venueID, demoting other
// thumbnails if the result is flagged.
func (s *InMemory) UpdateImage(_ context.Context, venueID, imageID uuid.UUID, mutate func(*models.Image) error) (*models.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.images[imageID]
	if !ok || current.VenueID != venueID {
		return nil, sentinel.ErrNotFound
	}
	next := *current
	if err := mutate(&next); err != nil {
		return nil, err
	}
	next.ID, next.VenueID = current.ID, current.VenueID
	if next.IsThumbnail {
		s.demoteThumbnailsLocked(venueID, imageID)
	}
	s.images[imageID] = &next
	out := next
	return &out, nil
}

// DeleteImage removes an image of venueID.
func (s *InMemory) DeleteImage(_ context.Context, venueID, imageID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	img, ok := s.images[imageID]
	if !ok || img.VenueID != venueID {
		return sentinel.ErrNotFound
	}
	delete(s.images, imageID)
	return nil
}

// ReorderImages sets Order to the position of each id in ids. Ids that do
// not belong to venueID are skipped.
func (s *InMemory) ReorderImages(_ context.Context, venueID uuid.UUID, ids []uuid.UUID) ([]*models.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for position, id := range ids {
		img, ok := s.images[id]
		if !ok || img.VenueID != venueID {
			continue
		}
		img.Order = position
	}
	return s.imagesFor(venueID), nil
}

func (s *InMemory) demoteThumbnailsLocked(venueID, keep uuid.UUID) {
	for id, img := range s.images {
		if img.VenueID == venueID && id != keep && img.IsThumbnail {
			img.IsThumbnail = false
		}
	}
}

// ListUnavailabilities returns a venue's blocked windows by start time.
func (s *InMemory) ListUnavailabilities(_ context.Context, venueID uuid.UUID) ([]*models.Unavailability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unavailabilitiesFor(venueID), nil
}

// CreateUnavailability inserts u for an existing venue.
func (s *InMemory) CreateUnavailability(_ context.Context, u *models.Unavailability) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.venues[u.VenueID]; !ok {
		return sentinel.ErrNotFound
	}
	cp := *u
	s.unavailabilities[u.ID] = &cp
	return nil
}

// UpdateUnavailability applies mutate to a window of venueID.
func (s *InMemory) UpdateUnavailability(_ context.Context, venueID, id uuid.UUID, mutate func(*models.Unavailability) error) (*models.Unavailability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.unavailabilities[id]
	if !ok || current.VenueID != venueID {
		return nil, sentinel.ErrNotFound
	}
	next := *current
	if err := mutate(&next); err != nil {
		return nil, err
	}
	next.ID, next.VenueID = current.ID, current.VenueID
	s.unavailabilities[id] = &next
	out := next
	return &out, nil
}

// DeleteUnavailability removes a window of venueID.
func (s *InMemory) DeleteUnavailability(_ context.Context, venueID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.unavailabilities[id]
	if !ok || u.VenueID != venueID {
		return sentinel.ErrNotFound
	}
	delete(s.unavailabilities, id)
	return nil
}

// Ping always succeeds.
func (s *InMemory) Ping(context.Context) error { return nil }

func (s *InMemory) imagesFor(venueID uuid.UUID) []*models.Image {
	out := make([]*models.Image, 0)
	for _, img := range s.images {
		if img.VenueID == venueID {
			cp := *img
			out = append(out, &cp)
		}
	}
	models.SortImages(out)
	return out
}

func (s *InMemory) unavailabilitiesFor(venueID uuid.UUID) []*models.Unavailability {
	out := make([]*models.Unavailability, 0)
	for _, u := range s.unavailabilities {
		if u.VenueID == venueID {
			cp := *u
			out = append(out, &cp)
		}
	}
	models.SortUnavailabilities(out)
	return out
}

func cloneVenue(v *models.Venue) *models.Venue {
	cp := *v
	cp.SportTypes = append([]models.SportType(nil), v.SportTypes...)
	cp.Amenities = append([]string(nil), v.Amenities...)
	if v.WorkingHours != nil {
		cp.WorkingHours = make(models.WorkingHours, len(v.WorkingHours))
		for k, h := range v.WorkingHours {
			cp.WorkingHours[k] = h
		}
	}
	cp.Images = nil
	cp.Unavailabilities = nil
	return &cp
}
