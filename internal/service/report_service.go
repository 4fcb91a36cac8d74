package service

import (
	"fmt"
	"log"
	"time"

	"github.com/staylens/rental-market-go/internal/analysis/competitive"
	"github.com/staylens/rental-market-go/internal/analysis/market"
	"github.com/staylens/rental-market-go/internal/analysis/neighborhood"
	"github.com/staylens/rental-market-go/internal/analysis/seasonality"
	"github.com/staylens/rental-market-go/internal/clean"
	"github.com/staylens/rental-market-go/internal/config"
	"github.com/staylens/rental-market-go/internal/dataset"
	"github.com/staylens/rental-market-go/internal/models"
)

// ReportService orchestrates loading, cleaning and analysis of one
// market snapshot. Analyzers are built once at construction; every
// report method after that is a pure read, safe to serve concurrently.
type ReportService struct {
	cfg *config.Config

	listings   []models.Listing
	calendar   []models.CalendarDay
	boundaries []models.Neighborhood
	fields     models.FieldSet

	Market       *market.Analyzer
	Seasonality  *seasonality.Analyzer
	Neighborhood *neighborhood.Analyzer
	Competitive  *competitive.Analyzer
}

// NewFromFiles loads the configured snapshot files, runs both cleaning
// pipelines and constructs the analyzers. The calendar and boundary
// files are optional; their analyzers degrade accordingly.
func NewFromFiles(cfg *config.Config) (*ReportService, error) {
	rawListings, fields, err := dataset.LoadListings(cfg.Data.Listings)
	if err != nil {
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}

	listings, err := clean.Listings(rawListings, cfg.Cleaning, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to clean listings: %w", err)
	}

	var calendar []models.CalendarDay
	if cfg.Data.Calendar != "" {
		rawCalendar, err := dataset.LoadCalendar(cfg.Data.Calendar)
		if err != nil {
			return nil, fmt.Errorf("failed to load calendar: %w", err)
		}
		calendar = clean.Calendar(rawCalendar)
	}

	var boundaries []models.Neighborhood
	if cfg.Data.Neighbourhoods != "" {
		boundaries, err = dataset.LoadNeighborhoods(cfg.Data.Neighbourhoods)
		if err != nil {
			log.Printf("Continuing without neighborhood boundaries: %v", err)
			boundaries = nil
		}
	}

	return New(cfg, listings, calendar, boundaries, fields), nil
}

// New builds a report service from already-cleaned tables
func New(cfg *config.Config, listings []models.Listing, calendar []models.CalendarDay,
	boundaries []models.Neighborhood, fields models.FieldSet) *ReportService {

	listings = neighborhood.AssignNeighborhoods(listings, boundaries)

	return &ReportService{
		cfg:          cfg,
		listings:     listings,
		calendar:     calendar,
		boundaries:   boundaries,
		fields:       fields,
		Market:       market.New(listings, fields, cfg.Analysis),
		Seasonality:  seasonality.New(calendar, cfg.Analysis),
		Neighborhood: neighborhood.New(listings, boundaries, fields, cfg.Analysis),
		Competitive:  competitive.New(listings, fields, cfg.Analysis),
	}
}

// Listings returns the cleaned listing table
func (s *ReportService) Listings() []models.Listing {
	return s.listings
}

// Fields returns the snapshot's optional-field descriptor
func (s *ReportService) Fields() models.FieldSet {
	return s.fields
}

// HasCalendar reports whether a calendar table was loaded
func (s *ReportService) HasCalendar() bool {
	return len(s.calendar) > 0
}
