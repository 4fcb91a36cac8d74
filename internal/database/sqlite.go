package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "modernc.org/sqlite"
)

// Open opens the snapshot store, enables WAL mode and creates the
// schema when missing.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	// WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("Database initialized: %s", path)
	return db, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS snapshot_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			listings_path TEXT NOT NULL,
			calendar_path TEXT,
			total_listings INTEGER NOT NULL,
			adr_mean REAL,
			adr_median REAL,
			unique_hosts INTEGER,
			top_10_host_share_pct REAL,
			avg_rating REAL,
			pct_superhost REAL
		);

		CREATE TABLE IF NOT EXISTS cleaned_listings (
			run_id INTEGER NOT NULL REFERENCES snapshot_runs(id),
			id INTEGER NOT NULL,
			host_id INTEGER NOT NULL,
			host_name TEXT,
			neighbourhood TEXT,
			room_type TEXT,
			property_type TEXT,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			price REAL NOT NULL,
			accommodates INTEGER,
			bedrooms REAL,
			beds REAL,
			availability_30 INTEGER,
			availability_365 INTEGER,
			number_of_reviews INTEGER,
			review_scores_rating REAL,
			price_per_person REAL,
			est_booked_30 INTEGER,
			est_monthly_revenue REAL,
			days_since_review INTEGER,
			is_superhost INTEGER,
			is_instant_bookable INTEGER,
			amenity_count INTEGER,
			PRIMARY KEY (run_id, id)
		);

		CREATE INDEX IF NOT EXISTS idx_cleaned_listings_neighbourhood
			ON cleaned_listings(run_id, neighbourhood);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Transaction executes fn within a database transaction
func Transaction(db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
