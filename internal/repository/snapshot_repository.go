package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/staylens/rental-market-go/internal/analysis/market"
	"github.com/staylens/rental-market-go/internal/database"
	"github.com/staylens/rental-market-go/internal/models"
)

// SnapshotRepository persists cleaned snapshots and their executive
// summaries so past runs can be compared.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Run is one persisted cleaning/analysis run
type Run struct {
	ID                int64     `json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	ListingsPath      string    `json:"listings_path"`
	CalendarPath      string    `json:"calendar_path,omitempty"`
	TotalListings     int       `json:"total_listings"`
	ADRMean           float64   `json:"adr_mean"`
	ADRMedian         float64   `json:"adr_median"`
	UniqueHosts       int       `json:"unique_hosts"`
	Top10HostSharePct float64   `json:"top_10_host_share_pct"`
	AvgRating         float64   `json:"avg_rating"`
	PctSuperhost      *float64  `json:"pct_superhost,omitempty"`
}

// SaveRun stores the executive summary and every cleaned listing in
// one transaction, returning the new run id.
func (r *SnapshotRepository) SaveRun(summary market.Summary, listings []models.Listing, listingsPath, calendarPath string) (int64, error) {
	var runID int64

	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			INSERT INTO snapshot_runs
				(listings_path, calendar_path, total_listings, adr_mean, adr_median,
				 unique_hosts, top_10_host_share_pct, avg_rating, pct_superhost)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			listingsPath, calendarPath, summary.TotalListings, summary.ADRMean,
			summary.ADRMedian, summary.UniqueHosts, summary.Top10HostSharePct,
			summary.AvgRating, nullableFloat(summary.PctSuperhost),
		)
		if err != nil {
			return fmt.Errorf("failed to insert run: %w", err)
		}
		runID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read run id: %w", err)
		}

		stmt, err := tx.Prepare(`
			INSERT INTO cleaned_listings
				(run_id, id, host_id, host_name, neighbourhood, room_type,
				 property_type, latitude, longitude, price, accommodates,
				 bedrooms, beds, availability_30, availability_365,
				 number_of_reviews, review_scores_rating, price_per_person,
				 est_booked_30, est_monthly_revenue, days_since_review,
				 is_superhost, is_instant_bookable, amenity_count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare listing insert: %w", err)
		}
		defer stmt.Close()

		for _, l := range listings {
			_, err := stmt.Exec(
				runID, l.ID, l.HostID, l.HostName, l.Neighborhood, l.RoomType,
				l.PropertyType, deref(l.Latitude), deref(l.Longitude), deref(l.Price),
				nullableInt(l.Accommodates), nullableFloat(l.Bedrooms), nullableFloat(l.Beds),
				nullableInt(l.Availability30), nullableInt(l.Availability365),
				l.NumberOfReviews, nullableFloat(l.Rating), nullableFloat(l.PricePerPerson),
				nullableInt(l.EstBooked30), nullableFloat(l.EstMonthlyRevenue),
				nullableInt(l.DaysSinceReview), nullableBool(l.IsSuperhost),
				nullableBool(l.IsInstantBookable), l.AmenityCount,
			)
			if err != nil {
				return fmt.Errorf("failed to insert listing %d: %w", l.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return runID, nil
}

// ListRuns returns persisted runs, newest first
func (r *SnapshotRepository) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(`
		SELECT id, created_at, listings_path, calendar_path, total_listings,
		       adr_mean, adr_median, unique_hosts, top_10_host_share_pct,
		       avg_rating, pct_superhost
		FROM snapshot_runs
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt string
		var pctSuperhost sql.NullFloat64
		if err := rows.Scan(
			&run.ID, &createdAt, &run.ListingsPath, &run.CalendarPath,
			&run.TotalListings, &run.ADRMean, &run.ADRMedian, &run.UniqueHosts,
			&run.Top10HostSharePct, &run.AvgRating, &pctSuperhost,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if t, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
			run.CreatedAt = t
		}
		if pctSuperhost.Valid {
			run.PctSuperhost = &pctSuperhost.Float64
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// CountListings returns the number of cleaned listings stored for a run
func (r *SnapshotRepository) CountListings(runID int64) (int, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM cleaned_listings WHERE run_id = ?", runID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count listings for run %d: %w", runID, err)
	}
	return count, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableBool(v *bool) any {
	if v == nil {
		return nil
	}
	return *v
}
