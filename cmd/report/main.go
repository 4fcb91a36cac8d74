// Command report runs the batch pipeline once: load the configured
// snapshot, clean it, run every analyzer, persist the run to the
// snapshot store and print the executive summary.
package main

import (
	"fmt"
	"log"

	"github.com/staylens/rental-market-go/internal/config"
	"github.com/staylens/rental-market-go/internal/database"
	"github.com/staylens/rental-market-go/internal/repository"
	"github.com/staylens/rental-market-go/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	svc, err := service.NewFromFiles(cfg)
	if err != nil {
		log.Fatal("Failed to build report service: ", err)
	}

	summary := svc.Market.Summary()

	if cfg.Server.DBPath != "" {
		db, err := database.Open(cfg.Server.DBPath)
		if err != nil {
			log.Fatal("Failed to initialize database: ", err)
		}
		defer db.Close()

		repo := repository.NewSnapshotRepository(db)
		runID, err := repo.SaveRun(summary, svc.Listings(), cfg.Data.Listings, cfg.Data.Calendar)
		if err != nil {
			log.Fatal("Failed to persist run: ", err)
		}
		log.Printf("Persisted run %d (%d listings)", runID, len(svc.Listings()))
	}

	fmt.Println("=== Market Summary ===")
	fmt.Printf("Total active listings: %d\n", summary.TotalListings)
	fmt.Printf("ADR mean / median:     $%.2f / $%.2f\n", summary.ADRMean, summary.ADRMedian)
	fmt.Printf("Unique hosts:          %d\n", summary.UniqueHosts)
	fmt.Printf("Top 10 host share:     %.1f%%\n", summary.Top10HostSharePct)
	fmt.Printf("Average rating:        %.2f\n", summary.AvgRating)
	if summary.PctSuperhost != nil {
		fmt.Printf("Superhosts:            %.1f%%\n", *summary.PctSuperhost)
	}

	fmt.Println("\n=== Price Segments ===")
	for _, seg := range svc.Competitive.SegmentSummary() {
		fmt.Printf("%-12s %5d listings (%4.1f%%)  avg $%.2f\n",
			seg.Segment, seg.Listings, seg.Pct, seg.AvgPrice)
	}

	if svc.HasCalendar() {
		peak := svc.Seasonality.PeakSeason()
		fmt.Println("\n=== Seasonality ===")
		fmt.Printf("High season avg price: $%.2f\n", peak.HighSeasonAvgPrice)
		fmt.Printf("Low season avg price:  $%.2f\n", peak.LowSeasonAvgPrice)
		fmt.Printf("Seasonal premium:      %.1f%%\n", peak.SeasonalPremiumPct)
	}

	fmt.Println("\n=== Top Neighborhoods by ADR ===")
	adr := svc.Neighborhood.ADRByNeighborhood(0)
	for i, nh := range adr {
		if i >= 10 {
			break
		}
		fmt.Printf("%-30s $%.2f (%d listings)\n", nh.Neighborhood, nh.ADRMean, nh.Listings)
	}

	gaps := svc.Competitive.MarketGaps(0)
	if len(gaps) > 0 {
		fmt.Println("\n=== Market Gaps ===")
		for _, g := range gaps {
			fmt.Printf("%-50s %d listings (%.1f%%)\n", g.Opportunity, g.CurrentListings, g.PctOfNeighborhood)
		}
	}
}
