package clean

import (
	"fmt"
	"log"
	"time"

	"github.com/staylens/rental-market-go/internal/config"
	"github.com/staylens/rental-market-go/internal/models"
	"github.com/staylens/rental-market-go/internal/stats"
)

// Listings runs the full cleaning pipeline over a raw listing table and
// returns an analysis-ready copy. The input slice is never modified.
//
// Stage order matters: missing-value handling and the activity filter
// read the numeric price produced by normalization, and derived fields
// read the rows that survived filtering.
func Listings(raw []models.Listing, cfg config.CleaningConfig, now time.Time) ([]models.Listing, error) {
	if cfg.PriceMax < cfg.PriceMin {
		return nil, fmt.Errorf("invalid price bounds: min %.2f > max %.2f", cfg.PriceMin, cfg.PriceMax)
	}

	log.Printf("Starting listings cleaning (%d rows)", len(raw))

	rows := make([]models.Listing, len(raw))
	copy(rows, raw)

	rows = dedupeByID(rows)
	rows = normalizePrices(rows)
	rows = handleMissing(rows)
	rows = filterActive(rows, cfg)
	rows = addDerivedFields(rows, now)
	rows = expandAmenities(rows)

	log.Printf("Cleaning complete: %d rows", len(rows))
	return rows, nil
}

// dedupeByID removes duplicate listings by id, keeping the first occurrence
func dedupeByID(rows []models.Listing) []models.Listing {
	seen := make(map[int64]bool, len(rows))
	out := rows[:0:0]
	for _, r := range rows {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	if removed := len(rows) - len(out); removed > 0 {
		log.Printf("Removed %d duplicate listings", removed)
	}
	return out
}

// normalizePrices parses the raw price string into the numeric price
// field. Rows whose raw price is absent keep an already-parsed price,
// so re-cleaning cleaned output is a no-op.
func normalizePrices(rows []models.Listing) []models.Listing {
	for i := range rows {
		if rows[i].RawPrice == "" {
			continue
		}
		rows[i].Price = ParsePrice(rows[i].RawPrice)
	}
	return rows
}

// handleMissing drops rows missing the fields every downstream
// computation anchors on (id, price, coordinates) and imputes
// bedrooms/beds with the median of their room-type group, falling
// back to 1 when a group has no observations at all.
func handleMissing(rows []models.Listing) []models.Listing {
	out := rows[:0:0]
	for _, r := range rows {
		if r.ID == 0 || r.Price == nil || r.Latitude == nil || r.Longitude == nil {
			continue
		}
		out = append(out, r)
	}
	if dropped := len(rows) - len(out); dropped > 0 {
		log.Printf("Dropped %d rows missing critical fields", dropped)
	}

	bedroomMedians := groupMedians(out, func(l models.Listing) *float64 { return l.Bedrooms })
	bedMedians := groupMedians(out, func(l models.Listing) *float64 { return l.Beds })

	for i := range out {
		if out[i].Bedrooms == nil {
			out[i].Bedrooms = ptr(fillValue(bedroomMedians, out[i].RoomType))
		}
		if out[i].Beds == nil {
			out[i].Beds = ptr(fillValue(bedMedians, out[i].RoomType))
		}
	}
	return out
}

// groupMedians computes the per-room-type median of one numeric field
func groupMedians(rows []models.Listing, field func(models.Listing) *float64) map[string]float64 {
	groups := make(map[string][]float64)
	for _, r := range rows {
		if v := field(r); v != nil {
			groups[r.RoomType] = append(groups[r.RoomType], *v)
		}
	}

	medians := make(map[string]float64, len(groups))
	for rt, values := range groups {
		medians[rt] = stats.Median(values)
	}
	return medians
}

func fillValue(medians map[string]float64, roomType string) float64 {
	if m, ok := medians[roomType]; ok {
		return m
	}
	return 1
}

// filterActive keeps listings that look like operating rentals: price
// within bounds, and either enough reviews or some future availability.
func filterActive(rows []models.Listing, cfg config.CleaningConfig) []models.Listing {
	before := len(rows)

	inBounds := rows[:0:0]
	for _, r := range rows {
		if *r.Price >= cfg.PriceMin && *r.Price <= cfg.PriceMax {
			inBounds = append(inBounds, r)
		}
	}
	log.Printf("After price filter ($%.0f-$%.0f): %d rows", cfg.PriceMin, cfg.PriceMax, len(inBounds))

	out := inBounds[:0:0]
	for _, r := range inBounds {
		hasReviews := r.NumberOfReviews >= cfg.MinReviews
		hasAvailability := r.Availability365 != nil && *r.Availability365 > 0
		if hasReviews || hasAvailability {
			out = append(out, r)
		}
	}
	log.Printf("Filtered %d -> %d active listings", before, len(out))
	return out
}

// addDerivedFields computes the analysis columns: price per person,
// estimated 30-day bookings and revenue, review recency, and boolean
// flags from the source's "t"/"f" letters.
func addDerivedFields(rows []models.Listing, now time.Time) []models.Listing {
	today := now.Truncate(24 * time.Hour)

	for i := range rows {
		r := &rows[i]

		if r.Accommodates != nil && *r.Accommodates > 0 {
			r.PricePerPerson = ptr(*r.Price / float64(*r.Accommodates))
		}

		if r.Availability30 != nil {
			booked := 30 - *r.Availability30
			r.EstBooked30 = &booked
			r.EstMonthlyRevenue = ptr(*r.Price * float64(booked))
		}

		if r.LastReview != nil {
			days := int(today.Sub(r.LastReview.Truncate(24*time.Hour)).Hours() / 24)
			r.DaysSinceReview = &days
		}

		if r.RawSuperhost != "" || r.IsSuperhost == nil {
			r.IsSuperhost = parseFlag(r.RawSuperhost)
		}
		if r.RawInstantBookable != "" || r.IsInstantBookable == nil {
			r.IsInstantBookable = parseFlag(r.RawInstantBookable)
		}
	}
	return rows
}

// expandAmenities parses the serialized amenities field into a list
// column and a count column
func expandAmenities(rows []models.Listing) []models.Listing {
	for i := range rows {
		if rows[i].RawAmenities == "" && rows[i].Amenities != nil {
			rows[i].AmenityCount = len(rows[i].Amenities)
			continue
		}
		rows[i].Amenities = ParseAmenities(rows[i].RawAmenities)
		rows[i].AmenityCount = len(rows[i].Amenities)
	}
	return rows
}

// parseFlag maps the source's letter booleans: "t" true, "f" false,
// anything else unknown
func parseFlag(s string) *bool {
	switch s {
	case "t":
		return ptr(true)
	case "f":
		return ptr(false)
	default:
		return nil
	}
}

func ptr[T any](v T) *T {
	return &v
}
