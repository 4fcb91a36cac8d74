package dataset

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/staylens/rental-market-go/internal/models"
)

// ErrMissingColumn indicates the snapshot lacks a column the pipeline
// cannot work without
var ErrMissingColumn = fmt.Errorf("required column missing")

// requiredListingColumns anchor every downstream computation; a
// snapshot without them is structurally unusable.
var requiredListingColumns = []string{
	"id", "host_id", "price", "latitude", "longitude",
	"room_type", "number_of_reviews",
}

// LoadListings reads a listings CSV (plain or gzip) into raw listing
// records, and reports which optional columns the snapshot carries.
func LoadListings(path string) ([]models.Listing, models.FieldSet, error) {
	r, closeFn, err := openMaybeGzip(path)
	if err != nil {
		return nil, models.FieldSet{}, err
	}
	defer closeFn()

	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, models.FieldSet{}, fmt.Errorf("failed to read listings header: %w", err)
	}
	cols := indexColumns(header)

	for _, c := range requiredListingColumns {
		if _, ok := cols[c]; !ok {
			return nil, models.FieldSet{}, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}

	fs := models.FieldSet{
		HasHostName:        cols.has("host_name"),
		HasCoordinates:     true,
		HasAccommodates:    cols.has("accommodates"),
		HasBedrooms:        cols.has("bedrooms"),
		HasBeds:            cols.has("beds"),
		HasAvailability30:  cols.has("availability_30"),
		HasAvailability365: cols.has("availability_365"),
		HasRating:          cols.has("review_scores_rating"),
		HasLastReview:      cols.has("last_review"),
		HasSuperhost:       cols.has("host_is_superhost"),
		HasInstantBookable: cols.has("instant_bookable"),
		HasAmenities:       cols.has("amenities"),
	}

	var listings []models.Listing
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, models.FieldSet{}, fmt.Errorf("failed to read listings row: %w", err)
		}

		l := models.Listing{
			ID:                 parseInt64(cols.get(record, "id")),
			HostID:             parseInt64(cols.get(record, "host_id")),
			HostName:           cols.get(record, "host_name"),
			Neighborhood:       neighborhoodOf(cols, record),
			RoomType:           cols.get(record, "room_type"),
			PropertyType:       cols.get(record, "property_type"),
			Latitude:           parseFloatPtr(cols.get(record, "latitude")),
			Longitude:          parseFloatPtr(cols.get(record, "longitude")),
			RawPrice:           cols.get(record, "price"),
			Accommodates:       parseIntPtr(cols.get(record, "accommodates")),
			Bedrooms:           parseFloatPtr(cols.get(record, "bedrooms")),
			Beds:               parseFloatPtr(cols.get(record, "beds")),
			Availability30:     parseIntPtr(cols.get(record, "availability_30")),
			Availability365:    parseIntPtr(cols.get(record, "availability_365")),
			NumberOfReviews:    int(parseInt64(cols.get(record, "number_of_reviews"))),
			Rating:             parseFloatPtr(cols.get(record, "review_scores_rating")),
			LastReview:         parseDatePtr(cols.get(record, "last_review")),
			RawSuperhost:       cols.get(record, "host_is_superhost"),
			RawInstantBookable: cols.get(record, "instant_bookable"),
			RawAmenities:       cols.get(record, "amenities"),
		}
		listings = append(listings, l)
	}

	log.Printf("Loaded listings: %d rows, %d columns", len(listings), len(header))
	return listings, fs, nil
}

// columnIndex maps column names to their position in the CSV header
type columnIndex map[string]int

func indexColumns(header []string) columnIndex {
	cols := make(columnIndex, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	return cols
}

func (c columnIndex) has(name string) bool {
	_, ok := c[name]
	return ok
}

func (c columnIndex) get(record []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// neighborhoodOf prefers the provider's cleansed label over the
// free-form one
func neighborhoodOf(cols columnIndex, record []string) string {
	if v := cols.get(record, "neighbourhood_cleansed"); v != "" {
		return v
	}
	return cols.get(record, "neighbourhood")
}

func parseInt64(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseIntPtr(s string) *int {
	if s == "" {
		return nil
	}
	// Some exports write integral columns as floats ("2.0")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	v := int(f)
	return &v
}

func parseFloatPtr(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseDatePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// openMaybeGzip opens a file, transparently decompressing .gz paths
func openMaybeGzip(path string) (io.Reader, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	if !strings.HasSuffix(path, ".gz") {
		return f, f.Close, nil
	}

	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to decompress %s: %w", path, err)
	}
	return gz, func() error {
		gz.Close()
		return f.Close()
	}, nil
}
