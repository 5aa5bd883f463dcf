package models

import (
	"time"

	dErrors "ploshtadka/pkg/domain-errors"
)

// DayHours is an opening window for one day, in HH:MM.
type DayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// WorkingHours maps "0".."6" (Monday first) or "default" to opening hours.
type WorkingHours map[string]DayHours

const DefaultDayKey = "default"

var dayKeys = map[string]struct{}{
	"0": {}, "1": {}, "2": {}, "3": {}, "4": {}, "5": {}, "6": {},
	DefaultDayKey: {},
}

// Normalize validates every entry and rewrites times as HH:MM.
func (w WorkingHours) Normalize() error {
	for key, hours := range w {
		if _, ok := dayKeys[key]; !ok {
			return dErrors.New(dErrors.CodeValidation, "invalid day key '"+key+"'; must be '0'-'6' or 'default'")
		}
		open, err := parseClock(hours.Open)
		if err != nil {
			return err
		}
		closing, err := parseClock(hours.Close)
		if err != nil {
			return err
		}
		if !closing.After(open) {
			return dErrors.New(dErrors.CodeValidation, "close time must be after open time")
		}
		w[key] = DayHours{Open: open.Format("15:04"), Close: closing.Format("15:04")}
	}
	return nil
}

func parseClock(raw string) (time.Time, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, dErrors.New(dErrors.CodeValidation, "invalid time '"+raw+"'; expected HH:MM")
}
