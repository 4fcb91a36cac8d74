package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"

	"github.com/staylens/rental-market-go/internal/models"
)

var requiredCalendarColumns = []string{"listing_id", "date"}

// LoadCalendar reads a calendar CSV (plain or gzip) into raw
// (listing, date) availability records.
func LoadCalendar(path string) ([]models.CalendarDay, error) {
	r, closeFn, err := openMaybeGzip(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar header: %w", err)
	}
	cols := indexColumns(header)

	for _, c := range requiredCalendarColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}

	var days []models.CalendarDay
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read calendar row: %w", err)
		}

		days = append(days, models.CalendarDay{
			ListingID:    parseInt64(cols.get(record, "listing_id")),
			RawDate:      cols.get(record, "date"),
			RawPrice:     cols.get(record, "price"),
			RawAvailable: cols.get(record, "available"),
		})
	}

	log.Printf("Loaded calendar: %d rows", len(days))
	return days, nil
}
