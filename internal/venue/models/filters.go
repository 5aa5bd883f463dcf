package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dErrors "ploshtadka/pkg/domain-errors"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// FilterInput carries raw search criteria. Zero pagination values take the
// defaults.
type FilterInput struct {
	City        *string
	SportType   *SportType
	IsIndoor    *bool
	HasParking  *bool
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	MinCapacity *int
	Status      *Status
	OwnerID     *uuid.UUID
	Page        int
	PageSize    int
}

// Filters is a validated venue search. Build it with NewFilters; a Filters
// value is never modified after construction.
type Filters struct {
	city        string
	hasCity     bool
	sportType   *SportType
	isIndoor    *bool
	hasParking  *bool
	minPrice    *decimal.Decimal
	maxPrice    *decimal.Decimal
	minCapacity *int
	status      *Status
	ownerID     *uuid.UUID
	page        int
	pageSize    int
}

// NewFilters validates in and returns the search it describes.
func NewFilters(in FilterInput) (Filters, error) {
	f := Filters{
		sportType:   in.SportType,
		isIndoor:    in.IsIndoor,
		hasParking:  in.HasParking,
		minPrice:    in.MinPrice,
		maxPrice:    in.MaxPrice,
		minCapacity: in.MinCapacity,
		status:      in.Status,
		ownerID:     in.OwnerID,
		page:        in.Page,
		pageSize:    in.PageSize,
	}
	if in.City != nil {
		f.city = strings.TrimSpace(*in.City)
		f.hasCity = f.city != ""
	}
	if f.page == 0 {
		f.page = DefaultPage
	}
	if f.pageSize == 0 {
		f.pageSize = DefaultPageSize
	}

	if f.page < 1 {
		return Filters{}, dErrors.New(dErrors.CodeValidation, "page must be at least 1")
	}
	if f.pageSize < 1 || f.pageSize > MaxPageSize {
		return Filters{}, dErrors.New(dErrors.CodeValidation, "page_size must be between 1 and 100")
	}
	if f.sportType != nil {
		if _, err := ParseSportType(string(*f.sportType)); err != nil {
			return Filters{}, err
		}
	}
	if f.status != nil {
		if _, err := ParseStatus(string(*f.status)); err != nil {
			return Filters{}, err
		}
	}
	if f.minPrice != nil && f.minPrice.IsNegative() {
		return Filters{}, dErrors.New(dErrors.CodeValidation, "min_price must be non-negative")
	}
	if f.maxPrice != nil && f.maxPrice.IsNegative() {
		return Filters{}, dErrors.New(dErrors.CodeValidation, "max_price must be non-negative")
	}
	if f.minPrice != nil && f.maxPrice != nil && f.minPrice.GreaterThan(*f.maxPrice) {
		return Filters{}, dErrors.New(dErrors.CodeValidation, "min_price must be less than or equal to max_price")
	}
	if f.minCapacity != nil && *f.minCapacity < 1 {
		return Filters{}, dErrors.New(dErrors.CodeValidation, "min_capacity must be at least 1")
	}
	return f, nil
}

func (f Filters) City() (string, bool) { return f.city, f.hasCity }
func (f Filters) SportType() *SportType { return f.sportType }
func (f Filters) IsIndoor() *bool { return f.isIndoor }
func (f Filters) HasParking() *bool { return f.hasParking }
func (f Filters) MinPrice() *decimal.Decimal { return f.minPrice }
func (f Filters) MaxPrice() *decimal.Decimal { return f.maxPrice }
func (f Filters) MinCapacity() *int { return f.minCapacity }
func (f Filters) Status() *Status { return f.status }
func (f Filters) OwnerID() *uuid.UUID { return f.ownerID }
func (f Filters) Page() int { return f.page }
func (f Filters) PageSize() int { return f.pageSize }
func (f Filters) Offset() int { return (f.page - 1) * f.pageSize }

// WithStatus returns a copy of f restricted to status.
func (f Filters) WithStatus(status *Status) Filters {
	f.status = status
	return f
}

// WithOwner returns a copy of f restricted to venues owned by ownerID.
func (f Filters) WithOwner(ownerID uuid.UUID) Filters {
	f.ownerID = &ownerID
	return f
}

// Matches evaluates every predicate against v. Pagination is not applied.
func (f Filters) Matches(v *Venue) bool {
	if f.status != nil && v.Status != *f.status {
		return false
	}
	if f.hasCity && !strings.Contains(strings.ToLower(v.City), strings.ToLower(f.city)) {
		return false
	}
	if f.sportType != nil && !v.Offers(*f.sportType) {
		return false
	}
	if f.isIndoor != nil && v.IsIndoor != *f.isIndoor {
		return false
	}
	if f.hasParking != nil && v.HasParking != *f.hasParking {
		return false
	}
	if f.minPrice != nil && v.PricePerHour.LessThan(*f.minPrice) {
		return false
	}
	if f.maxPrice != nil && v.PricePerHour.GreaterThan(*f.maxPrice) {
		return false
	}
	if f.minCapacity != nil && v.Capacity < *f.minCapacity {
		return false
	}
	if f.ownerID != nil && v.OwnerID != *f.ownerID {
		return false
	}
	return true
}
