// Package neighborhood provides geographic market segmentation: ADR
// by area, listing density, saturation scoring, and the geo join used
// for choropleth heatmaps.
package neighborhood

import (
	"fmt"
	"sort"
	"strings"

	"github.com/staylens/rental-market-go/internal/config"
	"github.com/staylens/rental-market-go/internal/models"
	"github.com/staylens/rental-market-go/internal/stats"
)

// ErrNoGeoData indicates a heatmap was requested without boundary input
var ErrNoGeoData = fmt.Errorf("neighborhood boundary data required for heatmap")

// Analyzer computes neighborhood-level aggregations over a cleaned
// listing table, optionally joined against boundary polygons.
type Analyzer struct {
	listings   []models.Listing
	boundaries []models.Neighborhood
	fields     models.FieldSet
	cfg        config.AnalysisConfig
}

// New creates a neighborhood analyzer. boundaries may be nil; only the
// heatmap join requires them.
func New(listings []models.Listing, boundaries []models.Neighborhood, fields models.FieldSet, cfg config.AnalysisConfig) *Analyzer {
	return &Analyzer{listings: listings, boundaries: boundaries, fields: fields, cfg: cfg}
}

// NeighborhoodADR is the Average Daily Rate summary for one neighborhood
type NeighborhoodADR struct {
	Neighborhood string  `json:"neighbourhood"`
	ADRMean      float64 `json:"adr_mean"`
	ADRMedian    float64 `json:"adr_median"`
	ADRStd       float64 `json:"adr_std"`
	Listings     int     `json:"listings"`
}

// ADRByNeighborhood groups prices by neighborhood, keeps neighborhoods
// with at least minListings listings and sorts by mean descending.
// Pass minListings <= 0 for the configured default.
func (a *Analyzer) ADRByNeighborhood(minListings int) []NeighborhoodADR {
	if minListings <= 0 {
		minListings = a.cfg.MinNeighborhoodListings
	}
	if minListings <= 0 {
		minListings = 3
	}

	groups := make(map[string][]float64)
	for _, l := range a.listings {
		if l.Price != nil {
			groups[l.Neighborhood] = append(groups[l.Neighborhood], *l.Price)
		}
	}

	out := make([]NeighborhoodADR, 0, len(groups))
	for nh, prices := range groups {
		if len(prices) < minListings {
			continue
		}
		out = append(out, NeighborhoodADR{
			Neighborhood: nh,
			ADRMean:      stats.Mean(prices),
			ADRMedian:    stats.Median(prices),
			ADRStd:       stats.StdDev(prices),
			Listings:     len(prices),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ADRMean > out[j].ADRMean })
	return out
}

// Density is the listing count and share for one neighborhood
type Density struct {
	Neighborhood string  `json:"neighbourhood"`
	ListingCount int     `json:"listing_count"`
	PctOfTotal   float64 `json:"pct_of_total"`
}

// ListingDensity returns listing count and percent of total per
// neighborhood, sorted by count descending
func (a *Analyzer) ListingDensity() []Density {
	counts := make(map[string]int)
	for _, l := range a.listings {
		counts[l.Neighborhood]++
	}

	total := float64(len(a.listings))
	out := make([]Density, 0, len(counts))
	for nh, count := range counts {
		d := Density{Neighborhood: nh, ListingCount: count}
		if total > 0 {
			d.PctOfTotal = float64(count) / total * 100
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ListingCount != out[j].ListingCount {
			return out[i].ListingCount > out[j].ListingCount
		}
		return out[i].Neighborhood < out[j].Neighborhood
	})
	return out
}

// Saturation is the composite supply/demand pressure score for one
// neighborhood. Scores are min-max normalized to [0, 1]; higher means
// a more saturated, more competitive market.
type Saturation struct {
	Neighborhood       string  `json:"neighbourhood"`
	ListingCount       int     `json:"listing_count"`
	AvgAvailability365 float64 `json:"avg_availability_365"`
	SupplyScore        float64 `json:"supply_score"`
	DemandScore        float64 `json:"demand_score"`
	SaturationScore    float64 `json:"saturation_score"`
}

// SaturationScores combines normalized listing count (supply) with
// inverted normalized availability (demand pressure: low availability
// implies high demand), sorted most saturated first.
func (a *Analyzer) SaturationScores() []Saturation {
	type agg struct {
		count        int
		availability []float64
	}
	groups := make(map[string]*agg)
	for _, l := range a.listings {
		g, ok := groups[l.Neighborhood]
		if !ok {
			g = &agg{}
			groups[l.Neighborhood] = g
		}
		g.count++
		if l.Availability365 != nil {
			g.availability = append(g.availability, float64(*l.Availability365))
		}
	}

	out := make([]Saturation, 0, len(groups))
	counts := make([]float64, 0, len(groups))
	avails := make([]float64, 0, len(groups))
	for nh, g := range groups {
		avgAvail := stats.Mean(g.availability)
		out = append(out, Saturation{
			Neighborhood:       nh,
			ListingCount:       g.count,
			AvgAvailability365: avgAvail,
		})
		counts = append(counts, float64(g.count))
		avails = append(avails, avgAvail)
	}

	supply := stats.Normalize(counts)
	demand := stats.Normalize(avails)
	for i := range out {
		out[i].SupplyScore = supply[i]
		out[i].DemandScore = 1 - demand[i]
		out[i].SaturationScore = (out[i].SupplyScore + out[i].DemandScore) / 2
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SaturationScore > out[j].SaturationScore })
	return out
}

// HeatmapRow is one boundary polygon joined with its price statistics.
// AvgPrice is nil for boundaries with no matching listings; the
// boundary is kept so the map renders every neighborhood.
type HeatmapRow struct {
	Neighborhood string   `json:"neighbourhood"`
	CentroidLat  float64  `json:"centroid_lat"`
	CentroidLon  float64  `json:"centroid_lon"`
	AvgPrice     *float64 `json:"avg_price,omitempty"`
	MedianPrice  *float64 `json:"median_price,omitempty"`
	Listings     int      `json:"listings"`
}

// PriceHeatmap left-joins per-neighborhood ADR (minimum listing count
// relaxed to 1) onto the boundary polygons by normalized name.
func (a *Analyzer) PriceHeatmap() ([]HeatmapRow, error) {
	if len(a.boundaries) == 0 {
		return nil, ErrNoGeoData
	}

	adr := make(map[string]NeighborhoodADR)
	for _, row := range a.ADRByNeighborhood(1) {
		adr[joinKey(row.Neighborhood)] = row
	}

	out := make([]HeatmapRow, 0, len(a.boundaries))
	for i := range a.boundaries {
		b := &a.boundaries[i]
		centroid := b.Centroid()
		row := HeatmapRow{
			Neighborhood: b.Name,
			CentroidLat:  centroid.Lat,
			CentroidLon:  centroid.Lon,
		}
		if s, ok := adr[joinKey(b.Name)]; ok {
			row.AvgPrice = &s.ADRMean
			row.MedianPrice = &s.ADRMedian
			row.Listings = s.Listings
		}
		out = append(out, row)
	}
	return out, nil
}

// joinKey normalizes a neighborhood label for joining: boundary files
// and listing exports disagree on case and surrounding whitespace.
func joinKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Profile is the deep-dive summary for a single neighborhood
type Profile struct {
	Neighborhood     string   `json:"neighbourhood"`
	TotalListings    int      `json:"total_listings"`
	ADRMean          float64  `json:"adr_mean"`
	ADRMedian        float64  `json:"adr_median"`
	DominantRoomType string   `json:"dominant_room_type,omitempty"`
	AvgRating        float64  `json:"avg_rating"`
	PctSuperhost     *float64 `json:"pct_superhost,omitempty"`
	AvgAccommodates  float64  `json:"avg_accommodates"`
}

// Profile computes metrics for one named neighborhood. The second
// return is false when the neighborhood has no listings; callers must
// treat that as not-found, never as a zero-valued market.
func (a *Analyzer) Profile(name string) (Profile, bool) {
	var (
		prices, ratings, accommodates []float64
		roomTypes                     = make(map[string]int)
		super, superKnown, total      int
	)
	for _, l := range a.listings {
		if l.Neighborhood != name {
			continue
		}
		total++
		if l.Price != nil {
			prices = append(prices, *l.Price)
		}
		if l.Rating != nil {
			ratings = append(ratings, *l.Rating)
		}
		if l.Accommodates != nil {
			accommodates = append(accommodates, float64(*l.Accommodates))
		}
		roomTypes[l.RoomType]++
		if l.IsSuperhost != nil {
			superKnown++
			if *l.IsSuperhost {
				super++
			}
		}
	}

	if total == 0 {
		return Profile{}, false
	}

	p := Profile{
		Neighborhood:     name,
		TotalListings:    total,
		ADRMean:          stats.Mean(prices),
		ADRMedian:        stats.Median(prices),
		DominantRoomType: modeString(roomTypes),
		AvgRating:        stats.Mean(ratings),
		AvgAccommodates:  stats.Mean(accommodates),
	}
	if a.fields.HasSuperhost && superKnown > 0 {
		pct := float64(super) / float64(superKnown) * 100
		p.PctSuperhost = &pct
	}
	return p, true
}

// modeString returns the most frequent key, breaking ties lexically
func modeString(counts map[string]int) string {
	var best string
	bestCount := -1
	for k, c := range counts {
		if c > bestCount || (c == bestCount && k < best) {
			best, bestCount = k, c
		}
	}
	return best
}
