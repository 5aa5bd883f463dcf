package handler

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"ploshtadka/internal/venue/models"
	dErrors "ploshtadka/pkg/domain-errors"
)

// parseFilterInput reads the venue search query parameters. Any value that
// does not parse is a validation error; range checks happen in NewFilters.
func parseFilterInput(q url.Values) (models.FilterInput, error) {
	var in models.FilterInput

	if v := strings.TrimSpace(q.Get("city")); v != "" {
		in.City = &v
	}
	if v := q.Get("sport_type"); v != "" {
		sport, err := models.ParseSportType(v)
		if err != nil {
			return in, err
		}
		in.SportType = &sport
	}
	if v := q.Get("status"); v != "" {
		status, err := models.ParseStatus(v)
		if err != nil {
			return in, err
		}
		in.Status = &status
	}

	var err error
	if in.IsIndoor, err = parseBool(q, "is_indoor"); err != nil {
		return in, err
	}
	if in.HasParking, err = parseBool(q, "has_parking"); err != nil {
		return in, err
	}
	if in.MinPrice, err = parseDecimal(q, "min_price"); err != nil {
		return in, err
	}
	if in.MaxPrice, err = parseDecimal(q, "max_price"); err != nil {
		return in, err
	}
	if in.MinCapacity, err = parseInt(q, "min_capacity"); err != nil {
		return in, err
	}

	page, err := parseInt(q, "page")
	if err != nil {
		return in, err
	}
	if page != nil {
		if *page < 1 {
			return in, dErrors.New(dErrors.CodeValidation, "page must be at least 1")
		}
		in.Page = *page
	}
	size, err := parseInt(q, "page_size")
	if err != nil {
		return in, err
	}
	if size != nil {
		if *size < 1 {
			return in, dErrors.New(dErrors.CodeValidation, "page_size must be between 1 and 100")
		}
		in.PageSize = *size
	}
	return in, nil
}

func parseBool(q url.Values, key string) (*bool, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	switch strings.ToLower(raw) {
	case "true", "1", "yes", "on":
		v := true
		return &v, nil
	case "false", "0", "no", "off":
		v := false
		return &v, nil
	}
	return nil, dErrors.New(dErrors.CodeValidation, key+" must be a boolean")
}

func parseDecimal(q url.Values, key string) (*decimal.Decimal, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, key+" must be a decimal number")
	}
	return &d, nil
}

func parseInt(q url.Values, key string) (*int, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, key+" must be an integer")
	}
	return &n, nil
}
