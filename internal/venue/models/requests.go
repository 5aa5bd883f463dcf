package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dErrors "ploshtadka/pkg/domain-errors"
	strutil "ploshtadka/pkg/platform/strings"
)

const (
	MinNameLength        = 2
	MaxNameLength        = 255
	MinDescriptionLength = 10
	MaxAddressLength     = 500
	MaxCityLength        = 100
	MaxURLLength         = 500
	MaxReasonLength      = 255
	DefaultCurrency      = "EUR"
)

var (
	minLatitude  = decimal.NewFromInt(-90)
	maxLatitude  = decimal.NewFromInt(90)
	minLongitude = decimal.NewFromInt(-180)
	maxLongitude = decimal.NewFromInt(180)
)

// CreateVenueRequest is the payload for registering a venue. The owner is
// always the caller and the status always starts as pending approval.
type CreateVenueRequest struct {
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	SportTypes         []SportType      `json:"sport_types"`
	Address            string           `json:"address"`
	City               string           `json:"city"`
	Latitude           *decimal.Decimal `json:"latitude"`
	Longitude          *decimal.Decimal `json:"longitude"`
	PricePerHour       *decimal.Decimal `json:"price_per_hour"`
	Currency           string           `json:"currency"`
	Capacity           *int             `json:"capacity"`
	IsIndoor           bool             `json:"is_indoor"`
	HasParking         bool             `json:"has_parking"`
	HasChangingRooms   bool             `json:"has_changing_rooms"`
	HasShowers         bool             `json:"has_showers"`
	HasEquipmentRental bool             `json:"has_equipment_rental"`
	Amenities          []string         `json:"amenities"`
	WorkingHours       WorkingHours     `json:"working_hours"`
}

// Validate normalizes the request in place and checks every field.
func (r *CreateVenueRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Name = strings.TrimSpace(r.Name)
	if err := validateName(r.Name); err != nil {
		return err
	}
	if err := validateDescription(r.Description); err != nil {
		return err
	}
	if strings.TrimSpace(r.Address) == "" {
		return dErrors.New(dErrors.CodeValidation, "address is required")
	}
	if err := maxLen("address", r.Address, MaxAddressLength); err != nil {
		return err
	}
	if strings.TrimSpace(r.City) == "" {
		return dErrors.New(dErrors.CodeValidation, "city is required")
	}
	if err := maxLen("city", r.City, MaxCityLength); err != nil {
		return err
	}
	if err := validateCoordinates(r.Latitude, r.Longitude); err != nil {
		return err
	}
	if r.PricePerHour == nil {
		return dErrors.New(dErrors.CodeValidation, "price_per_hour is required")
	}
	if err := validatePrice(*r.PricePerHour); err != nil {
		return err
	}
	if r.Currency == "" {
		r.Currency = DefaultCurrency
	}
	currency, err := normalizeCurrency(r.Currency)
	if err != nil {
		return err
	}
	r.Currency = currency
	if r.Capacity == nil {
		one := 1
		r.Capacity = &one
	}
	if *r.Capacity < 1 {
		return dErrors.New(dErrors.CodeValidation, "capacity must be at least 1")
	}
	sports, err := normalizeSportTypes(r.SportTypes)
	if err != nil {
		return err
	}
	r.SportTypes = sports
	r.Amenities = strutil.Compact(r.Amenities)
	if r.WorkingHours == nil {
		r.WorkingHours = WorkingHours{}
	}
	return r.WorkingHours.Normalize()
}

// NewVenue builds a venue owned by ownerID from a validated request.
func (r *CreateVenueRequest) NewVenue(ownerID uuid.UUID, now time.Time) *Venue {
	return &Venue{
		ID:                 uuid.New(),
		OwnerID:            ownerID,
		Name:               r.Name,
		Description:        r.Description,
		SportTypes:         r.SportTypes,
		Address:            r.Address,
		City:               r.City,
		Latitude:           r.Latitude,
		Longitude:          r.Longitude,
		PricePerHour:       *r.PricePerHour,
		Currency:           r.Currency,
		Capacity:           *r.Capacity,
		IsIndoor:           r.IsIndoor,
		HasParking:         r.HasParking,
		HasChangingRooms:   r.HasChangingRooms,
		HasShowers:         r.HasShowers,
		HasEquipmentRental: r.HasEquipmentRental,
		Amenities:          r.Amenities,
		WorkingHours:       r.WorkingHours,
		Status:             StatusPendingApproval,
		Rating:             decimal.Zero,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// UpdateVenueRequest is a partial update; nil fields are left untouched.
type UpdateVenueRequest struct {
	Name               *string          `json:"name"`
	Description        *string          `json:"description"`
	SportTypes         *[]SportType     `json:"sport_types"`
	Address            *string          `json:"address"`
	City               *string          `json:"city"`
	Latitude           *decimal.Decimal `json:"latitude"`
	Longitude          *decimal.Decimal `json:"longitude"`
	PricePerHour       *decimal.Decimal `json:"price_per_hour"`
	Currency           *string          `json:"currency"`
	Capacity           *int             `json:"capacity"`
	IsIndoor           *bool            `json:"is_indoor"`
	HasParking         *bool            `json:"has_parking"`
	HasChangingRooms   *bool            `json:"has_changing_rooms"`
	HasShowers         *bool            `json:"has_showers"`
	HasEquipmentRental *bool            `json:"has_equipment_rental"`
	Amenities          *[]string        `json:"amenities"`
	WorkingHours       *WorkingHours    `json:"working_hours"`
}

// Validate normalizes and checks the provided fields.
func (r *UpdateVenueRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if err := validateName(name); err != nil {
			return err
		}
		r.Name = &name
	}
	if r.Description != nil {
		if err := validateDescription(*r.Description); err != nil {
			return err
		}
	}
	if r.Address != nil {
		if err := maxLen("address", *r.Address, MaxAddressLength); err != nil {
			return err
		}
	}
	if r.City != nil {
		if err := maxLen("city", *r.City, MaxCityLength); err != nil {
			return err
		}
	}
	if err := validateCoordinates(r.Latitude, r.Longitude); err != nil {
		return err
	}
	if r.PricePerHour != nil {
		if err := validatePrice(*r.PricePerHour); err != nil {
			return err
		}
	}
	if r.Currency != nil {
		currency, err := normalizeCurrency(*r.Currency)
		if err != nil {
			return err
		}
		r.Currency = &currency
	}
	if r.Capacity != nil && *r.Capacity < 1 {
		return dErrors.New(dErrors.CodeValidation, "capacity must be at least 1")
	}
	if r.SportTypes != nil {
		sports, err := normalizeSportTypes(*r.SportTypes)
		if err != nil {
			return err
		}
		r.SportTypes = &sports
	}
	if r.Amenities != nil {
		amenities := strutil.Compact(*r.Amenities)
		r.Amenities = &amenities
	}
	if r.WorkingHours != nil {
		if *r.WorkingHours == nil {
			*r.WorkingHours = WorkingHours{}
		}
		if err := r.WorkingHours.Normalize(); err != nil {
			return err
		}
	}
	return nil
}

// Apply copies the provided fields onto v.
func (r *UpdateVenueRequest) Apply(v *Venue) {
	setIf(&v.Name, r.Name)
	setIf(&v.Description, r.Description)
	setIf(&v.SportTypes, r.SportTypes)
	setIf(&v.Address, r.Address)
	setIf(&v.City, r.City)
	if r.Latitude != nil {
		v.Latitude = r.Latitude
	}
	if r.Longitude != nil {
		v.Longitude = r.Longitude
	}
	setIf(&v.PricePerHour, r.PricePerHour)
	setIf(&v.Currency, r.Currency)
	setIf(&v.Capacity, r.Capacity)
	setIf(&v.IsIndoor, r.IsIndoor)
	setIf(&v.HasParking, r.HasParking)
	setIf(&v.HasChangingRooms, r.HasChangingRooms)
	setIf(&v.HasShowers, r.HasShowers)
	setIf(&v.HasEquipmentRental, r.HasEquipmentRental)
	setIf(&v.Amenities, r.Amenities)
	setIf(&v.WorkingHours, r.WorkingHours)
}

// UpdateStatusRequest is the admin payload for a status transition.
type UpdateStatusRequest struct {
	Status string `json:"status"`

	parsed Status
}

func (r *UpdateStatusRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	status, err := ParseStatus(strings.TrimSpace(r.Status))
	if err != nil {
		return err
	}
	r.parsed = status
	return nil
}

// ParsedStatus returns the validated status.
func (r *UpdateStatusRequest) ParsedStatus() Status {
	return r.parsed
}

// CreateImageRequest attaches an image to the venue named in the path.
type CreateImageRequest struct {
	URL         string `json:"url"`
	IsThumbnail bool   `json:"is_thumbnail"`
	Order       int    `json:"order"`
}

func (r *CreateImageRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.URL = strings.TrimSpace(r.URL)
	if r.URL == "" {
		return dErrors.New(dErrors.CodeValidation, "url is required")
	}
	if err := maxLen("url", r.URL, MaxURLLength); err != nil {
		return err
	}
	if r.Order < 0 {
		return dErrors.New(dErrors.CodeValidation, "order must be non-negative")
	}
	return nil
}

// UpdateImageRequest is a partial image update.
type UpdateImageRequest struct {
	URL         *string `json:"url"`
	IsThumbnail *bool   `json:"is_thumbnail"`
	Order       *int    `json:"order"`
}

func (r *UpdateImageRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.URL != nil {
		url := strings.TrimSpace(*r.URL)
		if url == "" {
			return dErrors.New(dErrors.CodeValidation, "url must not be empty")
		}
		if err := maxLen("url", url, MaxURLLength); err != nil {
			return err
		}
		r.URL = &url
	}
	if r.Order != nil && *r.Order < 0 {
		return dErrors.New(dErrors.CodeValidation, "order must be non-negative")
	}
	return nil
}

// Apply copies the provided fields onto img.
func (r *UpdateImageRequest) Apply(img *Image) {
	setIf(&img.URL, r.URL)
	setIf(&img.IsThumbnail, r.IsThumbnail)
	setIf(&img.Order, r.Order)
}

// ReorderImagesRequest lists image ids in their new display order.
type ReorderImagesRequest struct {
	ImageIDs []uuid.UUID `json:"image_ids"`
}

func (r *ReorderImagesRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.ImageIDs == nil {
		return dErrors.New(dErrors.CodeValidation, "image_ids is required")
	}
	seen := make(map[uuid.UUID]struct{}, len(r.ImageIDs))
	for _, id := range r.ImageIDs {
		if _, dup := seen[id]; dup {
			return dErrors.New(dErrors.CodeValidation, "image_ids must not repeat an id")
		}
		seen[id] = struct{}{}
	}
	return nil
}

// CreateUnavailabilityRequest blocks a window on the venue named in the path.
type CreateUnavailabilityRequest struct {
	Start  time.Time `json:"start_datetime"`
	End    time.Time `json:"end_datetime"`
	Reason *string   `json:"reason"`
}

func (r *CreateUnavailabilityRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Start.IsZero() || r.End.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "start_datetime and end_datetime are required")
	}
	u := Unavailability{Start: r.Start, End: r.End, Reason: r.Reason}
	return u.Validate()
}

// UpdateUnavailabilityRequest is a partial update. The window is re-validated
// against the stored values once merged.
type UpdateUnavailabilityRequest struct {
	Start  *time.Time `json:"start_datetime"`
	End    *time.Time `json:"end_datetime"`
	Reason *string    `json:"reason"`
}

func (r *UpdateUnavailabilityRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Start != nil && r.End != nil && !r.End.After(*r.Start) {
		return dErrors.New(dErrors.CodeValidation, "end_datetime must be after start_datetime")
	}
	if r.Reason != nil {
		if err := maxLen("reason", *r.Reason, MaxReasonLength); err != nil {
			return err
		}
	}
	return nil
}

// Apply merges the provided fields onto u and validates the result.
func (r *UpdateUnavailabilityRequest) Apply(u *Unavailability) error {
	setIf(&u.Start, r.Start)
	setIf(&u.End, r.End)
	if r.Reason != nil {
		u.Reason = r.Reason
	}
	return u.Validate()
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func validateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < MinNameLength || n > MaxNameLength {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("name must be between %d and %d characters", MinNameLength, MaxNameLength))
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(strings.TrimSpace(description)) < MinDescriptionLength {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("description must be at least %d characters", MinDescriptionLength))
	}
	return nil
}

func maxLen(field, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be at most %d characters", field, limit))
	}
	return nil
}

func validateCoordinates(lat, lng *decimal.Decimal) error {
	if lat != nil && (lat.LessThan(minLatitude) || lat.GreaterThan(maxLatitude)) {
		return dErrors.New(dErrors.CodeValidation, "latitude must be between -90 and 90")
	}
	if lng != nil && (lng.LessThan(minLongitude) || lng.GreaterThan(maxLongitude)) {
		return dErrors.New(dErrors.CodeValidation, "longitude must be between -180 and 180")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return dErrors.New(dErrors.CodeValidation, "price_per_hour must be non-negative")
	}
	if !price.Equal(price.Round(2)) {
		return dErrors.New(dErrors.CodeValidation, "price_per_hour must have at most 2 decimal places")
	}
	return nil
}

func normalizeCurrency(raw string) (string, error) {
	currency := strings.ToUpper(strings.TrimSpace(raw))
	if utf8.RuneCountInString(currency) != 3 {
		return "", dErrors.New(dErrors.CodeValidation, "currency must be a 3-letter code")
	}
	return currency, nil
}

// normalizeSportTypes validates each entry and drops repeats, keeping the
// first occurrence.
func normalizeSportTypes(in []SportType) ([]SportType, error) {
	out := make([]SportType, 0, len(in))
	for _, raw := range in {
		sport, err := ParseSportType(string(raw))
		if err != nil {
			return nil, err
		}
		out = append(out, sport)
	}
	return strutil.Unique(out), nil
}
