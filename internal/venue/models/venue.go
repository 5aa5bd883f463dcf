package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dErrors "ploshtadka/pkg/domain-errors"
)

// SportType is a sport a venue can host.
type SportType string

const (
	SportFootball   SportType = "football"
	SportBasketball SportType = "basketball"
	SportTennis     SportType = "tennis"
	SportVolleyball SportType = "volleyball"
	SportSwimming   SportType = "swimming"
	SportGym        SportType = "gym"
	SportPadel      SportType = "padel"
	SportOther      SportType = "other"
)

// ParseSportType validates a raw sport type.
func ParseSportType(raw string) (SportType, error) {
	switch t := SportType(raw); t {
	case SportFootball, SportBasketball, SportTennis, SportVolleyball,
		SportSwimming, SportGym, SportPadel, SportOther:
		return t, nil
	}
	return "", dErrors.New(dErrors.CodeValidation, "unknown sport type: "+raw)
}

// Status is the lifecycle state of a venue. Only admins change it.
type Status string

const (
	StatusActive          Status = "active"
	StatusInactive        Status = "inactive"
	StatusMaintenance     Status = "maintenance"
	StatusPendingApproval Status = "pending_approval"
)

// ParseStatus validates a raw status.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusActive, StatusInactive, StatusMaintenance, StatusPendingApproval:
		return s, nil
	}
	return "", dErrors.New(dErrors.CodeValidation, "unknown venue status: "+raw)
}

// Venue is a bookable sports facility listed by its owner.
type Venue struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	SportTypes  []SportType

	Address   string
	City      string
	Latitude  *decimal.Decimal
	Longitude *decimal.Decimal

	PricePerHour decimal.Decimal
	Currency     string

	Capacity           int
	IsIndoor           bool
	HasParking         bool
	HasChangingRooms   bool
	HasShowers         bool
	HasEquipmentRental bool
	Amenities          []string
	WorkingHours       WorkingHours

	Status Status

	// Aggregates maintained by the booking and review services.
	Rating        decimal.Decimal
	TotalReviews  int
	TotalBookings int

	CreatedAt time.Time
	UpdatedAt time.Time

	// Populated on detail reads only.
	Images           []*Image
	Unavailabilities []*Unavailability
}

// Offers reports whether the venue lists sport.
func (v *Venue) Offers(sport SportType) bool {
	for _, s := range v.SportTypes {
		if s == sport {
			return true
		}
	}
	return false
}

// ListItem is the summary projection returned by venue searches.
type ListItem struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Name         string
	City         string
	SportTypes   []SportType
	Status       Status
	PricePerHour decimal.Decimal
	Currency     string
	Capacity     int
	IsIndoor     bool
	Rating       decimal.Decimal
	TotalReviews int
	Thumbnail    *string
}

// NewListItem projects v, deriving the thumbnail from images.
func NewListItem(v *Venue, images []*Image) *ListItem {
	return &ListItem{
		ID:           v.ID,
		OwnerID:      v.OwnerID,
		Name:         v.Name,
		City:         v.City,
		SportTypes:   v.SportTypes,
		Status:       v.Status,
		PricePerHour: v.PricePerHour,
		Currency:     v.Currency,
		Capacity:     v.Capacity,
		IsIndoor:     v.IsIndoor,
		Rating:       v.Rating,
		TotalReviews: v.TotalReviews,
		Thumbnail:    ThumbnailURL(images),
	}
}
