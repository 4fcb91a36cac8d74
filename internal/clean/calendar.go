package clean

import (
	"log"
	"time"

	"github.com/staylens/rental-market-go/internal/models"
)

const dateLayout = "2006-01-02"

// Calendar cleans a raw calendar table: parses dates, normalizes
// prices, converts the availability flag, derives time features and
// drops rows without a date. The input slice is never modified.
func Calendar(raw []models.CalendarDay) []models.CalendarDay {
	log.Printf("Starting calendar cleaning (%d rows)", len(raw))

	out := make([]models.CalendarDay, 0, len(raw))
	for _, d := range raw {
		if d.Date == nil && d.RawDate != "" {
			if t, err := time.Parse(dateLayout, d.RawDate); err == nil {
				d.Date = &t
			}
		}
		// A date is the calendar's join key; a row without one is
		// meaningless.
		if d.Date == nil {
			continue
		}

		if d.RawPrice != "" {
			d.Price = ParsePrice(d.RawPrice)
		}
		if d.RawAvailable != "" || d.Available == nil {
			d.Available = parseFlag(d.RawAvailable)
		}

		d.Month = int(d.Date.Month())
		d.DayOfWeek = (int(d.Date.Weekday()) + 6) % 7 // 0=Mon .. 6=Sun
		d.IsWeekend = d.DayOfWeek == 4 || d.DayOfWeek == 5

		out = append(out, d)
	}

	log.Printf("Calendar cleaning complete: %d rows", len(out))
	return out
}
