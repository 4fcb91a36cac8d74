package models

import "time"

// CalendarDay represents one (listing, date) availability observation.
type CalendarDay struct {
	ListingID int64      `json:"listing_id"`
	RawDate   string     `json:"-"`
	Date      *time.Time `json:"date,omitempty"`

	RawPrice string   `json:"-"`
	Price    *float64 `json:"price,omitempty"`

	// "t"/"f" in the source; nil when the flag was malformed
	RawAvailable string `json:"-"`
	Available    *bool  `json:"available,omitempty"`

	// Time features derived during cleaning
	Month     int  `json:"month"`       // 1-12
	DayOfWeek int  `json:"day_of_week"` // 0=Mon .. 6=Sun
	IsWeekend bool `json:"is_weekend"`  // Fri or Sat
}
