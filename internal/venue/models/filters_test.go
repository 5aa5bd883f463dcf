package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "ploshtadka/pkg/domain-errors"
)

func ptr[T any](v T) *T { return &v }

func TestNewFilters(t *testing.T) {
	t.Run("applies pagination defaults", func(t *testing.T) {
		f, err := NewFilters(FilterInput{})
		require.NoError(t, err)
		assert.Equal(t, 1, f.Page())
		assert.Equal(t, 20, f.PageSize())
		assert.Equal(t, 0, f.Offset())
		assert.Nil(t, f.Status())
	})

	t.Run("offset follows page", func(t *testing.T) {
		f, err := NewFilters(FilterInput{Page: 3, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, 20, f.Offset())
	})

	cases := []struct {
		name string
		in   FilterInput
	}{
		{"page below one", FilterInput{Page: -1}},
		{"page size above limit", FilterInput{PageSize: 101}},
		{"page size negative", FilterInput{PageSize: -5}},
		{"min price above max price", FilterInput{MinPrice: ptr(decimal.NewFromInt(50)), MaxPrice: ptr(decimal.NewFromInt(10))}},
		{"negative min price", FilterInput{MinPrice: ptr(decimal.NewFromInt(-1))}},
		{"zero min capacity", FilterInput{MinCapacity: ptr(0)}},
		{"unknown sport", FilterInput{SportType: ptr(SportType("curling"))}},
		{"unknown status", FilterInput{Status: ptr(Status("archived"))}},
	}
	for _, tc := range cases {
		t.Run("rejects "+tc.name, func(t *testing.T) {
			_, err := NewFilters(tc.in)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}

	t.Run("equal price bounds are allowed", func(t *testing.T) {
		_, err := NewFilters(FilterInput{MinPrice: ptr(decimal.NewFromInt(20)), MaxPrice: ptr(decimal.NewFromInt(20))})
		assert.NoError(t, err)
	})

	t.Run("page size bounds are inclusive", func(t *testing.T) {
		_, err := NewFilters(FilterInput{PageSize: 1})
		assert.NoError(t, err)
		_, err = NewFilters(FilterInput{PageSize: 100})
		assert.NoError(t, err)
	})
}

func TestFiltersMatches(t *testing.T) {
	owner := uuid.New()
	v := &Venue{
		OwnerID:      owner,
		City:         "Sofia",
		SportTypes:   []SportType{SportFootball, SportTennis},
		IsIndoor:     true,
		HasParking:   false,
		PricePerHour: decimal.RequireFromString("25.50"),
		Capacity:     12,
		Status:       StatusActive,
	}

	cases := []struct {
		name  string
		in    FilterInput
		match bool
	}{
		{"no predicates", FilterInput{}, true},
		{"city substring case insensitive", FilterInput{City: ptr("sOF")}, true},
		{"city mismatch", FilterInput{City: ptr("Plovdiv")}, false},
		{"blank city ignored", FilterInput{City: ptr("  ")}, true},
		{"sport contained", FilterInput{SportType: ptr(SportTennis)}, true},
		{"sport missing", FilterInput{SportType: ptr(SportPadel)}, false},
		{"indoor", FilterInput{IsIndoor: ptr(true)}, true},
		{"outdoor", FilterInput{IsIndoor: ptr(false)}, false},
		{"parking required", FilterInput{HasParking: ptr(true)}, false},
		{"min price inclusive", FilterInput{MinPrice: ptr(decimal.RequireFromString("25.50"))}, true},
		{"max price inclusive", FilterInput{MaxPrice: ptr(decimal.RequireFromString("25.50"))}, true},
		{"max price below", FilterInput{MaxPrice: ptr(decimal.NewFromInt(25))}, false},
		{"min capacity inclusive", FilterInput{MinCapacity: ptr(12)}, true},
		{"min capacity above", FilterInput{MinCapacity: ptr(13)}, false},
		{"status match", FilterInput{Status: ptr(StatusActive)}, true},
		{"status mismatch", FilterInput{Status: ptr(StatusPendingApproval)}, false},
		{"owner match", FilterInput{OwnerID: &owner}, true},
		{"owner mismatch", FilterInput{OwnerID: ptr(uuid.New())}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := NewFilters(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.match, f.Matches(v))
		})
	}
}

func TestFiltersWithStatusCopies(t *testing.T) {
	f, err := NewFilters(FilterInput{})
	require.NoError(t, err)

	active := f.WithStatus(ptr(StatusActive))
	assert.Nil(t, f.Status())
	require.NotNil(t, active.Status())
	assert.Equal(t, StatusActive, *active.Status())
}
