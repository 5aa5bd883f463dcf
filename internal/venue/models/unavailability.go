package models

import (
	"sort"
	"time"

	"github.com/google/uuid"

	dErrors "ploshtadka/pkg/domain-errors"
)

// Unavailability blocks a venue for a time window, e.g. maintenance.
type Unavailability struct {
	ID        uuid.UUID
	VenueID   uuid.UUID
	Start     time.Time
	End       time.Time
	Reason    *string
	CreatedAt time.Time
}

// Validate checks the window and reason length.
func (u *Unavailability) Validate() error {
	if !u.End.After(u.Start) {
		return dErrors.New(dErrors.CodeValidation, "end_datetime must be after start_datetime")
	}
	if u.Reason != nil && len([]rune(*u.Reason)) > MaxReasonLength {
		return dErrors.New(dErrors.CodeValidation, "reason must be at most 255 characters")
	}
	return nil
}

// SortUnavailabilities orders windows by start time.
func SortUnavailabilities(items []*Unavailability) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Start.Before(items[j].Start)
	})
}
