// Package competitive analyzes market positioning: price-tier
// segmentation, amenity differentiation, superhost premiums and
// underserved segment identification.
package competitive

import (
	"fmt"
	"sort"
	"strings"

	"github.com/staylens/rental-market-go/internal/config"
	"github.com/staylens/rental-market-go/internal/models"
	"github.com/staylens/rental-market-go/internal/stats"
)

// OtherSegment labels prices not covered by any configured tier
const OtherSegment = "Other"

// ErrAmenitiesNotParsed indicates the snapshot's amenities were never
// expanded by the cleaning pipeline
var ErrAmenitiesNotParsed = fmt.Errorf("amenities not parsed: snapshot has no amenities column")

// Analyzer computes competitive metrics over a cleaned listing table.
// Segment definitions come from configuration and are scanned in
// declared order with first-match-wins semantics.
type Analyzer struct {
	listings []models.Listing
	fields   models.FieldSet
	cfg      config.AnalysisConfig
}

// New creates a competitive analyzer over a cleaned listing table
func New(listings []models.Listing, fields models.FieldSet, cfg config.AnalysisConfig) *Analyzer {
	return &Analyzer{listings: listings, fields: fields, cfg: cfg}
}

// SegmentFor maps a price to its tier label: the first configured
// half-open interval [min, max) that contains it, else OtherSegment.
func (a *Analyzer) SegmentFor(price float64) string {
	for _, s := range a.cfg.Segments {
		if price >= s.Min && price < s.Max {
			return s.Label
		}
	}
	return OtherSegment
}

// segmentLabels returns each listing's segment, aligned by index.
// Listings without a price map to OtherSegment.
func (a *Analyzer) segmentLabels() []string {
	labels := make([]string, len(a.listings))
	for i, l := range a.listings {
		if l.Price == nil {
			labels[i] = OtherSegment
			continue
		}
		labels[i] = a.SegmentFor(*l.Price)
	}
	return labels
}

// SegmentedListing pairs a listing with its assigned price tier
type SegmentedListing struct {
	models.Listing
	Segment string `json:"segment"`
}

// WithSegments returns a copy of the listing table with each row's
// price tier attached
func (a *Analyzer) WithSegments() []SegmentedListing {
	labels := a.segmentLabels()
	out := make([]SegmentedListing, len(a.listings))
	for i, l := range a.listings {
		out[i] = SegmentedListing{Listing: l, Segment: labels[i]}
	}
	return out
}

// SegmentRow is the summary for one price tier
type SegmentRow struct {
	Segment     string  `json:"segment"`
	Listings    int     `json:"listings"`
	AvgPrice    float64 `json:"avg_price"`
	MedianPrice float64 `json:"median_price"`
	AvgRating   float64 `json:"avg_rating"`
	Pct         float64 `json:"pct"`
}

// SegmentSummary assigns every listing to a tier and summarizes each
// one, ordered by segment declaration order. Configured segments with
// no listings are omitted.
func (a *Analyzer) SegmentSummary() []SegmentRow {
	labels := a.segmentLabels()

	type agg struct {
		count   int
		prices  []float64
		ratings []float64
	}
	groups := make(map[string]*agg)
	for i, l := range a.listings {
		g, ok := groups[labels[i]]
		if !ok {
			g = &agg{}
			groups[labels[i]] = g
		}
		g.count++
		if l.Price != nil {
			g.prices = append(g.prices, *l.Price)
		}
		if l.Rating != nil {
			g.ratings = append(g.ratings, *l.Rating)
		}
	}

	total := float64(len(a.listings))
	out := make([]SegmentRow, 0, len(a.cfg.Segments))
	for _, s := range a.cfg.Segments {
		g, ok := groups[s.Label]
		if !ok {
			continue
		}
		row := SegmentRow{
			Segment:     s.Label,
			Listings:    g.count,
			AvgPrice:    stats.Mean(g.prices),
			MedianPrice: stats.Median(g.prices),
			AvgRating:   stats.Mean(g.ratings),
		}
		if total > 0 {
			row.Pct = float64(g.count) / total * 100
		}
		out = append(out, row)
	}
	return out
}

// PricePoint is one listing in the price-vs-rating extract
type PricePoint struct {
	Price        float64 `json:"price"`
	Rating       float64 `json:"rating"`
	Segment      string  `json:"segment"`
	RoomType     string  `json:"room_type"`
	Neighborhood string  `json:"neighbourhood"`
}

// PriceVsRating extracts listing-level scatter data, dropping rows
// missing either price or rating
func (a *Analyzer) PriceVsRating() []PricePoint {
	var out []PricePoint
	for _, l := range a.listings {
		if l.Price == nil || l.Rating == nil {
			continue
		}
		out = append(out, PricePoint{
			Price:        *l.Price,
			Rating:       *l.Rating,
			Segment:      a.SegmentFor(*l.Price),
			RoomType:     l.RoomType,
			Neighborhood: l.Neighborhood,
		})
	}
	return out
}

// AmenityCount is one amenity and how many listings offer it
type AmenityCount struct {
	Amenity string `json:"amenity"`
	Count   int    `json:"count"`
}

// AmenityAnalysis holds overall and per-segment amenity rankings
type AmenityAnalysis struct {
	Overall     []AmenityCount            `json:"overall"`
	BySegment   map[string][]AmenityCount `json:"by_segment"`
	TotalUnique int                       `json:"total_unique"`
}

// AmenityAnalysis ranks amenity frequency overall and per segment
// (top 20 each). Returns ErrAmenitiesNotParsed when the snapshot
// carries no amenities column, so sibling metrics can still render.
func (a *Analyzer) AmenityAnalysis() (*AmenityAnalysis, error) {
	if !a.fields.HasAmenities {
		return nil, ErrAmenitiesNotParsed
	}

	labels := a.segmentLabels()

	overall := make(map[string]int)
	bySegment := make(map[string]map[string]int)
	for i, l := range a.listings {
		for _, amenity := range l.Amenities {
			overall[amenity]++
			seg := bySegment[labels[i]]
			if seg == nil {
				seg = make(map[string]int)
				bySegment[labels[i]] = seg
			}
			seg[amenity]++
		}
	}

	result := &AmenityAnalysis{
		Overall:     rankAmenities(overall, 0),
		BySegment:   make(map[string][]AmenityCount, len(a.cfg.Segments)),
		TotalUnique: len(overall),
	}
	for _, s := range a.cfg.Segments {
		if counts, ok := bySegment[s.Label]; ok {
			result.BySegment[s.Label] = rankAmenities(counts, 20)
		}
	}
	return result, nil
}

// rankAmenities sorts amenity counts descending, breaking ties
// lexically, and optionally caps the list
func rankAmenities(counts map[string]int, limit int) []AmenityCount {
	out := make([]AmenityCount, 0, len(counts))
	for amenity, count := range counts {
		out = append(out, AmenityCount{Amenity: amenity, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Amenity < out[j].Amenity
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SuperhostPremium compares superhost and regular-host listings.
// Comparable is false when either group is absent; numeric fields are
// only meaningful when it is true.
type SuperhostPremium struct {
	Comparable bool   `json:"comparable"`
	Note       string `json:"note,omitempty"`

	SuperhostAvgPrice    float64 `json:"superhost_avg_price,omitempty"`
	RegularAvgPrice      float64 `json:"regular_avg_price,omitempty"`
	SuperhostMedianPrice float64 `json:"superhost_median_price,omitempty"`
	RegularMedianPrice   float64 `json:"regular_median_price,omitempty"`
	PricePremiumPct      float64 `json:"price_premium_pct,omitempty"`
	SuperhostAvgRating   float64 `json:"superhost_avg_rating,omitempty"`
	RegularAvgRating     float64 `json:"regular_avg_rating,omitempty"`
	SuperhostAvgReviews  float64 `json:"superhost_avg_reviews,omitempty"`
	RegularAvgReviews    float64 `json:"regular_avg_reviews,omitempty"`
	SuperhostCount       int     `json:"superhost_count"`
	RegularCount         int     `json:"regular_count"`
}

// SuperhostPremium computes the price and rating differential between
// superhosts and regular hosts. When the flag is absent or one group
// is empty the result carries an explanatory note instead of numbers.
func (a *Analyzer) SuperhostPremium() SuperhostPremium {
	if !a.fields.HasSuperhost {
		return SuperhostPremium{Note: "superhost flag not present in snapshot"}
	}

	type group struct {
		prices  []float64
		ratings []float64
		reviews []float64
	}
	var superhost, regular group
	for _, l := range a.listings {
		if l.IsSuperhost == nil {
			continue
		}
		g := &regular
		if *l.IsSuperhost {
			g = &superhost
		}
		if l.Price != nil {
			g.prices = append(g.prices, *l.Price)
		}
		if l.Rating != nil {
			g.ratings = append(g.ratings, *l.Rating)
		}
		g.reviews = append(g.reviews, float64(l.NumberOfReviews))
	}

	if len(superhost.reviews) == 0 || len(regular.reviews) == 0 {
		return SuperhostPremium{
			Note:           "insufficient data for superhost comparison",
			SuperhostCount: len(superhost.reviews),
			RegularCount:   len(regular.reviews),
		}
	}

	result := SuperhostPremium{
		Comparable:           true,
		SuperhostAvgPrice:    stats.Mean(superhost.prices),
		RegularAvgPrice:      stats.Mean(regular.prices),
		SuperhostMedianPrice: stats.Median(superhost.prices),
		RegularMedianPrice:   stats.Median(regular.prices),
		SuperhostAvgRating:   stats.Mean(superhost.ratings),
		RegularAvgRating:     stats.Mean(regular.ratings),
		SuperhostAvgReviews:  stats.Mean(superhost.reviews),
		RegularAvgReviews:    stats.Mean(regular.reviews),
		SuperhostCount:       len(superhost.reviews),
		RegularCount:         len(regular.reviews),
	}
	if result.RegularAvgPrice != 0 {
		result.PricePremiumPct = (result.SuperhostAvgPrice - result.RegularAvgPrice) / result.RegularAvgPrice * 100
	}
	return result
}

// Gap is one underserved neighborhood/segment combination
type Gap struct {
	Neighborhood      string  `json:"neighbourhood"`
	Segment           string  `json:"segment"`
	CurrentListings   int     `json:"current_listings"`
	PctOfNeighborhood float64 `json:"pct_of_neighborhood"`
	Opportunity       string  `json:"opportunity"`
}

// gap thresholds: a segment is underserved in a neighborhood when it
// has fewer than minGapListings listings or under minGapSharePct of
// that neighborhood's supply
const (
	minGapListings = 3
	minGapSharePct = 10.0
	maxGaps        = 15
)

// MarketGaps flags underserved segments in the topK neighborhoods by
// listing count, pooled across neighborhoods, sorted most underserved
// (fewest listings) first and capped. Pass topK <= 0 for the
// configured default.
func (a *Analyzer) MarketGaps(topK int) []Gap {
	if topK <= 0 {
		topK = a.cfg.TopNeighborhoods
	}
	if topK <= 0 {
		topK = 10
	}

	labels := a.segmentLabels()

	nhTotals := make(map[string]int)
	nhSegments := make(map[string]map[string]int)
	for i, l := range a.listings {
		nhTotals[l.Neighborhood]++
		seg := nhSegments[l.Neighborhood]
		if seg == nil {
			seg = make(map[string]int)
			nhSegments[l.Neighborhood] = seg
		}
		seg[labels[i]]++
	}

	type nhCount struct {
		name  string
		count int
	}
	ranked := make([]nhCount, 0, len(nhTotals))
	for nh, count := range nhTotals {
		ranked = append(ranked, nhCount{nh, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].name < ranked[j].name
	})
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	var gaps []Gap
	for _, nh := range ranked {
		for _, s := range a.cfg.Segments {
			count := nhSegments[nh.name][s.Label]
			pct := 0.0
			if nh.count > 0 {
				pct = float64(count) / float64(nh.count) * 100
			}
			if count >= minGapListings && pct >= minGapSharePct {
				continue
			}
			gaps = append(gaps, Gap{
				Neighborhood:      nh.name,
				Segment:           s.Label,
				CurrentListings:   count,
				PctOfNeighborhood: round1(pct),
				Opportunity:       fmt.Sprintf("Low %s supply in %s", strings.ToLower(s.Label), nh.name),
			})
		}
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].CurrentListings < gaps[j].CurrentListings
	})
	if len(gaps) > maxGaps {
		gaps = gaps[:maxGaps]
	}
	return gaps
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
