package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staylens/rental-market-go/internal/config"
	"github.com/staylens/rental-market-go/internal/models"
)

func fp(v float64) *float64 { return &v }
func bp(v bool) *bool       { return &v }

func listing(id, hostID int64, roomType string, price float64) models.Listing {
	return models.Listing{ID: id, HostID: hostID, RoomType: roomType, Price: fp(price)}
}

func newAnalyzer(listings []models.Listing, fields models.FieldSet) *Analyzer {
	return New(listings, fields, config.Default().Analysis)
}

func TestADRByRoomType(t *testing.T) {
	a := newAnalyzer([]models.Listing{
		listing(1, 1, "Entire home/apt", 200),
		listing(2, 1, "Entire home/apt", 300),
		listing(3, 2, "Private room", 80),
		listing(4, 2, "Private room", 120),
		{ID: 5, HostID: 3, RoomType: "Shared room"}, // no price, excluded
	}, models.FieldSet{})

	got := a.ADRByRoomType()
	require.Len(t, got, 2)

	// Sorted by mean price descending
	assert.Equal(t, "Entire home/apt", got[0].RoomType)
	assert.InDelta(t, 250.0, got[0].ADRMean, 1e-9)
	assert.InDelta(t, 250.0, got[0].ADRMedian, 1e-9)
	assert.Equal(t, 2, got[0].Listings)

	assert.Equal(t, "Private room", got[1].RoomType)
	assert.InDelta(t, 100.0, got[1].ADRMean, 1e-9)
}

func TestPriceDistribution(t *testing.T) {
	a := newAnalyzer([]models.Listing{
		listing(1, 1, "", 100),
		listing(2, 1, "", 200),
		listing(3, 1, "", 300),
		listing(4, 1, "", 400),
	}, models.FieldSet{})

	got := a.PriceDistribution()
	assert.InDelta(t, 250.0, got.Mean, 1e-9)
	assert.InDelta(t, 250.0, got.Median, 1e-9)
	assert.InDelta(t, 100.0, got.Min, 1e-9)
	assert.InDelta(t, 400.0, got.Max, 1e-9)
	assert.InDelta(t, 175.0, got.Q25, 1e-9)
	assert.InDelta(t, 325.0, got.Q75, 1e-9)
	assert.Equal(t, 4, got.Count)
}

func TestSupplyByRoomType(t *testing.T) {
	a := newAnalyzer([]models.Listing{
		listing(1, 1, "Entire home/apt", 100),
		listing(2, 1, "Entire home/apt", 100),
		listing(3, 1, "Entire home/apt", 100),
		listing(4, 2, "Private room", 50),
	}, models.FieldSet{})

	got := a.SupplyByRoomType()
	require.Len(t, got, 2)
	assert.Equal(t, "Entire home/apt", got[0].Name)
	assert.Equal(t, 3, got[0].Count)
	assert.InDelta(t, 75.0, got[0].Pct, 1e-9)
	assert.InDelta(t, 25.0, got[1].Pct, 1e-9)
}

func TestTopHosts(t *testing.T) {
	listings := []models.Listing{
		listing(1, 100, "", 100),
		listing(2, 100, "", 200),
		listing(3, 100, "", 300),
		listing(4, 200, "", 150),
		listing(5, 200, "", 250),
		listing(6, 300, "", 500),
	}
	listings[0].HostName = "Alice"
	listings[3].HostName = "Bob"
	listings[0].Rating = fp(4.8)
	listings[1].Rating = fp(4.6)

	a := newAnalyzer(listings, models.FieldSet{HasHostName: true})
	got := a.TopHosts(2)
	require.Len(t, got, 2)

	assert.Equal(t, int64(100), got[0].HostID)
	assert.Equal(t, "Alice", got[0].HostName)
	assert.Equal(t, 3, got[0].Listings)
	assert.InDelta(t, 200.0, got[0].AvgPrice, 1e-9)
	require.NotNil(t, got[0].AvgRating)
	assert.InDelta(t, 4.7, *got[0].AvgRating, 1e-9)
	assert.InDelta(t, 50.0, got[0].MarketSharePct, 1e-9)

	assert.Equal(t, int64(200), got[1].HostID)
	assert.Nil(t, got[1].AvgRating)
}

func TestTopHostsTieBreaksOnHostID(t *testing.T) {
	a := newAnalyzer([]models.Listing{
		listing(1, 900, "", 100),
		listing(2, 100, "", 100),
	}, models.FieldSet{})

	got := a.TopHosts(10)
	require.Len(t, got, 2)
	assert.Equal(t, int64(100), got[0].HostID)
	assert.Equal(t, int64(900), got[1].HostID)
}

func TestConcentrationHHI(t *testing.T) {
	// Two hosts with half the market each: 50^2 + 50^2 = 5000
	a := newAnalyzer([]models.Listing{
		listing(1, 1, "", 100),
		listing(2, 1, "", 100),
		listing(3, 2, "", 100),
		listing(4, 2, "", 100),
	}, models.FieldSet{})

	got := a.Concentration()
	assert.InDelta(t, 5000.0, got.HHI, 1e-9)
	assert.InDelta(t, 100.0, got.Top10HostSharePct, 1e-9)
	assert.Equal(t, 2, got.UniqueHosts)
}

func TestConcentrationMonopoly(t *testing.T) {
	a := newAnalyzer([]models.Listing{
		listing(1, 1, "", 100),
		listing(2, 1, "", 100),
	}, models.FieldSet{})

	got := a.Concentration()
	assert.InDelta(t, 10000.0, got.HHI, 1e-9)
	assert.Equal(t, 1, got.UniqueHosts)
}

func TestRatingDistribution(t *testing.T) {
	listings := []models.Listing{
		listing(1, 1, "", 100),
		listing(2, 1, "", 100),
		listing(3, 1, "", 100),
		listing(4, 1, "", 100),
	}
	listings[0].Rating = fp(4.9)
	listings[1].Rating = fp(4.2)
	listings[2].Rating = fp(3.5)
	// listings[3] unrated

	a := newAnalyzer(listings, models.FieldSet{HasRating: true})
	got := a.RatingDistribution()

	assert.Equal(t, 3, got.TotalWithRating)
	assert.Equal(t, 4, got.TotalListings)
	assert.InDelta(t, 4.2, got.Median, 1e-9)
	assert.InDelta(t, 100.0*2/3, got.PctAbove4, 1e-6)
	assert.InDelta(t, 100.0/3, got.PctAbove45, 1e-6)
}

func TestSummarySuperhostShare(t *testing.T) {
	listings := []models.Listing{
		listing(1, 1, "", 100),
		listing(2, 2, "", 200),
		listing(3, 3, "", 300),
	}
	listings[0].IsSuperhost = bp(true)
	listings[1].IsSuperhost = bp(false)
	// listings[2] flag unknown, excluded from the denominator

	a := newAnalyzer(listings, models.FieldSet{HasSuperhost: true})
	got := a.Summary()

	assert.Equal(t, 3, got.TotalListings)
	require.NotNil(t, got.PctSuperhost)
	assert.InDelta(t, 50.0, *got.PctSuperhost, 1e-9)
}

func TestSummaryWithoutSuperhostColumn(t *testing.T) {
	a := newAnalyzer([]models.Listing{listing(1, 1, "", 100)}, models.FieldSet{})
	assert.Nil(t, a.Summary().PctSuperhost)
}

func TestEmptyMarket(t *testing.T) {
	a := newAnalyzer(nil, models.FieldSet{})

	assert.Equal(t, 0, a.TotalActiveListings())
	assert.Empty(t, a.ADRByRoomType())
	assert.Equal(t, 0, a.PriceDistribution().Count)
	assert.Empty(t, a.TopHosts(5))

	conc := a.Concentration()
	assert.Equal(t, 0.0, conc.HHI)
	assert.Equal(t, 0, conc.UniqueHosts)
}
