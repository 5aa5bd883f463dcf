package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ploshtadka/internal/venue/models"
)

type ImageResponse struct {
	ID          uuid.UUID `json:"id"`
	VenueID     uuid.UUID `json:"venue_id"`
	URL         string    `json:"url"`
	IsThumbnail bool      `json:"is_thumbnail"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
}

type UnavailabilityResponse struct {
	ID        uuid.UUID `json:"id"`
	VenueID   uuid.UUID `json:"venue_id"`
	Start     time.Time `json:"start_datetime"`
	End       time.Time `json:"end_datetime"`
	Reason    *string   `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// VenueResponse is the full venue representation, relations included.
type VenueResponse struct {
	ID                 uuid.UUID                `json:"id"`
	OwnerID            uuid.UUID                `json:"owner_id"`
	Name               string                   `json:"name"`
	Description        string                   `json:"description"`
	SportTypes         []models.SportType       `json:"sport_types"`
	Address            string                   `json:"address"`
	City               string                   `json:"city"`
	Latitude           *decimal.Decimal         `json:"latitude"`
	Longitude          *decimal.Decimal         `json:"longitude"`
	PricePerHour       decimal.Decimal          `json:"price_per_hour"`
	Currency           string                   `json:"currency"`
	Capacity           int                      `json:"capacity"`
	IsIndoor           bool                     `json:"is_indoor"`
	HasParking         bool                     `json:"has_parking"`
	HasChangingRooms   bool                     `json:"has_changing_rooms"`
	HasShowers         bool                     `json:"has_showers"`
	HasEquipmentRental bool                     `json:"has_equipment_rental"`
	Amenities          []string                 `json:"amenities"`
	WorkingHours       models.WorkingHours      `json:"working_hours"`
	Status             models.Status            `json:"status"`
	Rating             decimal.Decimal          `json:"rating"`
	TotalReviews       int                      `json:"total_reviews"`
	TotalBookings      int                      `json:"total_bookings"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
	Images             []ImageResponse          `json:"images"`
	Unavailabilities   []UnavailabilityResponse `json:"unavailabilities"`
}

// ListItemResponse is one row of a venue search.
type ListItemResponse struct {
	ID           uuid.UUID          `json:"id"`
	OwnerID      uuid.UUID          `json:"owner_id"`
	Name         string             `json:"name"`
	City         string             `json:"city"`
	SportTypes   []models.SportType `json:"sport_types"`
	Status       models.Status      `json:"status"`
	PricePerHour decimal.Decimal    `json:"price_per_hour"`
	Currency     string             `json:"currency"`
	Capacity     int                `json:"capacity"`
	IsIndoor     bool               `json:"is_indoor"`
	Rating       decimal.Decimal    `json:"rating"`
	TotalReviews int                `json:"total_reviews"`
	Thumbnail    *string            `json:"thumbnail"`
}

func toImageResponse(img *models.Image) ImageResponse {
	return ImageResponse{
		ID:          img.ID,
		VenueID:     img.VenueID,
		URL:         img.URL,
		IsThumbnail: img.IsThumbnail,
		Order:       img.Order,
		CreatedAt:   img.CreatedAt,
	}
}

func toImageResponses(images []*models.Image) []ImageResponse {
	out := make([]ImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, toImageResponse(img))
	}
	return out
}

func toUnavailabilityResponse(u *models.Unavailability) UnavailabilityResponse {
	return UnavailabilityResponse{
		ID:        u.ID,
		VenueID:   u.VenueID,
		Start:     u.Start,
		End:       u.End,
		Reason:    u.Reason,
		CreatedAt: u.CreatedAt,
	}
}

func toUnavailabilityResponses(items []*models.Unavailability) []UnavailabilityResponse {
	out := make([]UnavailabilityResponse, 0, len(items))
	for _, u := range items {
		out = append(out, toUnavailabilityResponse(u))
	}
	return out
}

func toVenueResponse(v *models.Venue) VenueResponse {
	sports := v.SportTypes
	if sports == nil {
		sports = []models.SportType{}
	}
	amenities := v.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	hours := v.WorkingHours
	if hours == nil {
		hours = models.WorkingHours{}
	}
	return VenueResponse{
		ID:                 v.ID,
		OwnerID:            v.OwnerID,
		Name:               v.Name,
		Description:        v.Description,
		SportTypes:         sports,
		Address:            v.Address,
		City:               v.City,
		Latitude:           v.Latitude,
		Longitude:          v.Longitude,
		PricePerHour:       v.PricePerHour,
		Currency:           v.Currency,
		Capacity:           v.Capacity,
		IsIndoor:           v.IsIndoor,
		HasParking:         v.HasParking,
		HasChangingRooms:   v.HasChangingRooms,
		HasShowers:         v.HasShowers,
		HasEquipmentRental: v.HasEquipmentRental,
		Amenities:          amenities,
		WorkingHours:       hours,
		Status:             v.Status,
		Rating:             v.Rating,
		TotalReviews:       v.TotalReviews,
		TotalBookings:      v.TotalBookings,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
		Images:             toImageResponses(v.Images),
		Unavailabilities:   toUnavailabilityResponses(v.Unavailabilities),
	}
}

func toListResponse(items []*models.ListItem) []ListItemResponse {
	out := make([]ListItemResponse, 0, len(items))
	for _, item := range items {
		sports := item.SportTypes
		if sports == nil {
			sports = []models.SportType{}
		}
		out = append(out, ListItemResponse{
			ID:           item.ID,
			OwnerID:      item.OwnerID,
			Name:         item.Name,
			City:         item.City,
			SportTypes:   sports,
			Status:       item.Status,
			PricePerHour: item.PricePerHour,
			Currency:     item.Currency,
			Capacity:     item.Capacity,
			IsIndoor:     item.IsIndoor,
			Rating:       item.Rating,
			TotalReviews: item.TotalReviews,
			Thumbnail:    item.Thumbnail,
		})
	}
	return out
}
