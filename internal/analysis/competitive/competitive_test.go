package competitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staylens/rental-market-go/internal/config"
	"github.com/staylens/rental-market-go/internal/models"
)

func fp(v float64) *float64 { return &v }
func bp(v bool) *bool       { return &v }

func listing(id int64, nh string, price float64) models.Listing {
	return models.Listing{ID: id, Neighborhood: nh, Price: fp(price)}
}

func newAnalyzer(listings []models.Listing, fields models.FieldSet) *Analyzer {
	return New(listings, fields, config.Default().Analysis)
}

func TestSegmentForBoundaries(t *testing.T) {
	a := newAnalyzer(nil, models.FieldSet{})

	// Default tiers: Budget [0,100), Mid-Range [100,250),
	// Premium [250,500), Luxury [500,100000)
	assert.Equal(t, "Budget", a.SegmentFor(0))
	assert.Equal(t, "Budget", a.SegmentFor(99.99))
	assert.Equal(t, "Mid-Range", a.SegmentFor(100)) // lower bound inclusive
	assert.Equal(t, "Premium", a.SegmentFor(250))
	assert.Equal(t, "Luxury", a.SegmentFor(500))
	assert.Equal(t, OtherSegment, a.SegmentFor(100000))
	assert.Equal(t, OtherSegment, a.SegmentFor(-5))
}

func TestWithSegments(t *testing.T) {
	noPrice := models.Listing{ID: 3, Neighborhood: "Centro"}
	got := newAnalyzer([]models.Listing{
		listing(1, "Centro", 50),
		listing(2, "Centro", 300),
		noPrice,
	}, models.FieldSet{}).WithSegments()

	require.Len(t, got, 3)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, "Budget", got[0].Segment)
	assert.Equal(t, "Premium", got[1].Segment)
	assert.Equal(t, OtherSegment, got[2].Segment)
}

func TestSegmentSummary(t *testing.T) {
	listings := []models.Listing{
		listing(1, "Centro", 50),
		listing(2, "Centro", 80),
		listing(3, "Centro", 120),
		listing(4, "Centro", 600),
	}
	listings[0].Rating = fp(4.0)
	listings[1].Rating = fp(5.0)

	got := newAnalyzer(listings, models.FieldSet{}).SegmentSummary()
	require.Len(t, got, 3)

	// Declaration order, empty tiers omitted
	assert.Equal(t, "Budget", got[0].Segment)
	assert.Equal(t, 2, got[0].Listings)
	assert.InDelta(t, 65.0, got[0].AvgPrice, 1e-9)
	assert.InDelta(t, 4.5, got[0].AvgRating, 1e-9)
	assert.InDelta(t, 50.0, got[0].Pct, 1e-9)

	assert.Equal(t, "Mid-Range", got[1].Segment)
	assert.Equal(t, "Luxury", got[2].Segment)
}

func TestSegmentSummaryOmitsOther(t *testing.T) {
	noPrice := models.Listing{ID: 1, Neighborhood: "Centro"}
	got := newAnalyzer([]models.Listing{noPrice}, models.FieldSet{}).SegmentSummary()
	assert.Empty(t, got)
}

func TestPriceVsRating(t *testing.T) {
	priced := listing(1, "Centro", 120)
	priced.Rating = fp(4.7)
	priced.RoomType = "Entire home/apt"
	unrated := listing(2, "Centro", 80)

	got := newAnalyzer([]models.Listing{priced, unrated}, models.FieldSet{}).PriceVsRating()
	require.Len(t, got, 1)
	assert.InDelta(t, 120.0, got[0].Price, 1e-9)
	assert.InDelta(t, 4.7, got[0].Rating, 1e-9)
	assert.Equal(t, "Mid-Range", got[0].Segment)
	assert.Equal(t, "Centro", got[0].Neighborhood)
}

func TestAmenityAnalysis(t *testing.T) {
	budget := listing(1, "Centro", 50)
	budget.Amenities = []string{"Wifi", "Kitchen"}
	mid := listing(2, "Centro", 150)
	mid.Amenities = []string{"Wifi", "Pool"}

	got, err := newAnalyzer([]models.Listing{budget, mid}, models.FieldSet{HasAmenities: true}).AmenityAnalysis()
	require.NoError(t, err)

	require.Len(t, got.Overall, 3)
	assert.Equal(t, AmenityCount{Amenity: "Wifi", Count: 2}, got.Overall[0])
	assert.Equal(t, 3, got.TotalUnique)

	require.Contains(t, got.BySegment, "Budget")
	require.Contains(t, got.BySegment, "Mid-Range")
	assert.Equal(t, []AmenityCount{{"Kitchen", 1}, {"Wifi", 1}}, got.BySegment["Budget"])
}

func TestAmenityAnalysisWithoutColumn(t *testing.T) {
	_, err := newAnalyzer(nil, models.FieldSet{}).AmenityAnalysis()
	assert.ErrorIs(t, err, ErrAmenitiesNotParsed)
}

func TestSuperhostPremium(t *testing.T) {
	s1 := listing(1, "Centro", 200)
	s1.IsSuperhost = bp(true)
	s1.Rating = fp(4.9)
	s1.NumberOfReviews = 80
	s2 := listing(2, "Centro", 220)
	s2.IsSuperhost = bp(true)
	s2.NumberOfReviews = 60

	r1 := listing(3, "Centro", 100)
	r1.IsSuperhost = bp(false)
	r1.Rating = fp(4.2)
	r1.NumberOfReviews = 10
	r2 := listing(4, "Centro", 110)
	r2.IsSuperhost = bp(false)
	r2.NumberOfReviews = 20

	got := newAnalyzer([]models.Listing{s1, s2, r1, r2}, models.FieldSet{HasSuperhost: true}).SuperhostPremium()
	require.True(t, got.Comparable)
	assert.InDelta(t, 210.0, got.SuperhostAvgPrice, 1e-9)
	assert.InDelta(t, 105.0, got.RegularAvgPrice, 1e-9)
	assert.InDelta(t, 100.0, got.PricePremiumPct, 1e-9)
	assert.InDelta(t, 70.0, got.SuperhostAvgReviews, 1e-9)
	assert.Equal(t, 2, got.SuperhostCount)
	assert.Equal(t, 2, got.RegularCount)
}

func TestSuperhostPremiumInsufficientData(t *testing.T) {
	only := listing(1, "Centro", 200)
	only.IsSuperhost = bp(true)

	got := newAnalyzer([]models.Listing{only}, models.FieldSet{HasSuperhost: true}).SuperhostPremium()
	assert.False(t, got.Comparable)
	assert.NotEmpty(t, got.Note)
	assert.Equal(t, 1, got.SuperhostCount)
	assert.Equal(t, 0, got.RegularCount)
}

func TestSuperhostPremiumFlagAbsent(t *testing.T) {
	got := newAnalyzer([]models.Listing{listing(1, "Centro", 100)}, models.FieldSet{}).SuperhostPremium()
	assert.False(t, got.Comparable)
	assert.Equal(t, "superhost flag not present in snapshot", got.Note)
}

func TestMarketGaps(t *testing.T) {
	var listings []models.Listing
	// Centro: plenty of budget supply, one mid-range listing
	for i := int64(1); i <= 10; i++ {
		listings = append(listings, listing(i, "Centro", 50))
	}
	listings = append(listings, listing(11, "Centro", 150))

	got := newAnalyzer(listings, models.FieldSet{}).MarketGaps(5)
	require.NotEmpty(t, got)

	bySegment := make(map[string]Gap)
	for _, g := range got {
		assert.Equal(t, "Centro", g.Neighborhood)
		bySegment[g.Segment] = g
	}

	// Budget has 10 listings at 90.9%, no gap there
	assert.NotContains(t, bySegment, "Budget")

	mid, ok := bySegment["Mid-Range"]
	require.True(t, ok)
	assert.Equal(t, 1, mid.CurrentListings)
	assert.InDelta(t, 9.1, mid.PctOfNeighborhood, 1e-9)
	assert.Equal(t, "Low mid-range supply in Centro", mid.Opportunity)

	premium, ok := bySegment["Premium"]
	require.True(t, ok)
	assert.Equal(t, 0, premium.CurrentListings)

	// Sorted by fewest listings first
	assert.Equal(t, 0, got[0].CurrentListings)
	assert.Equal(t, 1, got[len(got)-1].CurrentListings)
}

func TestMarketGapsEmpty(t *testing.T) {
	assert.Empty(t, newAnalyzer(nil, models.FieldSet{}).MarketGaps(5))
}
