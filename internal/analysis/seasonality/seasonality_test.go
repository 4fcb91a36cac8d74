package seasonality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staylens/rental-market-go/internal/config"
	"github.com/staylens/rental-market-go/internal/models"
)

func fp(v float64) *float64 { return &v }
func bp(v bool) *bool       { return &v }

func day(month, dow int, price float64) models.CalendarDay {
	return models.CalendarDay{
		ListingID: 1,
		Month:     month,
		DayOfWeek: dow,
		IsWeekend: dow == 4 || dow == 5,
		Price:     fp(price),
	}
}

func newAnalyzer(calendar []models.CalendarDay) *Analyzer {
	return New(calendar, config.Default().Analysis)
}

func TestPriceByMonth(t *testing.T) {
	a := newAnalyzer([]models.CalendarDay{
		day(7, 0, 200),
		day(7, 1, 300),
		day(1, 0, 100),
		{ListingID: 1, Month: 1}, // no price, skipped
	})

	got := a.PriceByMonth()
	require.Len(t, got, 2)

	assert.Equal(t, 1, got[0].Month)
	assert.InDelta(t, 100.0, got[0].AvgPrice, 1e-9)
	assert.Equal(t, 1, got[0].Observations)

	assert.Equal(t, 7, got[1].Month)
	assert.InDelta(t, 250.0, got[1].AvgPrice, 1e-9)
	assert.Equal(t, 2, got[1].Observations)
}

func TestAvailabilityByMonth(t *testing.T) {
	days := []models.CalendarDay{
		{ListingID: 1, Month: 6, Available: bp(true)},
		{ListingID: 1, Month: 6, Available: bp(true)},
		{ListingID: 1, Month: 6, Available: bp(false)},
		{ListingID: 1, Month: 6, Available: bp(false)},
		{ListingID: 1, Month: 6}, // flag unknown, skipped
	}

	got := newAnalyzer(days).AvailabilityByMonth()
	require.Len(t, got, 1)
	assert.Equal(t, 6, got[0].Month)
	assert.InDelta(t, 0.5, got[0].AvailabilityRate, 1e-9)
	assert.InDelta(t, 0.5, got[0].OccupancyRate, 1e-9)
	assert.Equal(t, 4, got[0].Observations)
}

func TestPeakSeason(t *testing.T) {
	cfg := config.Default().Analysis
	cfg.HighSeasonMonths = []int{6, 7}
	cfg.LowSeasonMonths = []int{1, 2}

	a := New([]models.CalendarDay{
		day(6, 0, 200),
		day(7, 0, 200),
		day(1, 0, 100),
		day(2, 0, 100),
	}, cfg)

	got := a.PeakSeason()
	assert.InDelta(t, 200.0, got.HighSeasonAvgPrice, 1e-9)
	assert.InDelta(t, 100.0, got.LowSeasonAvgPrice, 1e-9)
	assert.InDelta(t, 100.0, got.SeasonalPremiumPct, 1e-9)
}

func TestPeakSeasonNoLowSeasonData(t *testing.T) {
	cfg := config.Default().Analysis
	cfg.HighSeasonMonths = []int{6}
	cfg.LowSeasonMonths = []int{1}

	a := New([]models.CalendarDay{day(6, 0, 200)}, cfg)

	got := a.PeakSeason()
	assert.InDelta(t, 200.0, got.HighSeasonAvgPrice, 1e-9)
	assert.Equal(t, 0.0, got.LowSeasonAvgPrice)
	// Premium is not computable without a low season baseline
	assert.Equal(t, 0.0, got.SeasonalPremiumPct)
}

func TestWeekendVsWeekday(t *testing.T) {
	a := newAnalyzer([]models.CalendarDay{
		day(3, 4, 150), // Fri
		day(3, 5, 170), // Sat
		day(3, 0, 100), // Mon
		day(3, 6, 100), // Sun counts as weekday
	})

	got := a.WeekendVsWeekday()
	assert.InDelta(t, 160.0, got.WeekendAvg, 1e-9)
	assert.InDelta(t, 100.0, got.WeekdayAvg, 1e-9)
	assert.InDelta(t, 60.0, got.WeekendPremiumPct, 1e-9)
}

func TestWeekendPremiumUndefined(t *testing.T) {
	// Only weekend observations: no weekday baseline
	got := newAnalyzer([]models.CalendarDay{day(3, 5, 170)}).WeekendVsWeekday()
	assert.Equal(t, 0.0, got.WeekdayAvg)
	assert.Equal(t, 0.0, got.WeekendPremiumPct)
}

func TestPriceByDayOfWeek(t *testing.T) {
	a := newAnalyzer([]models.CalendarDay{
		day(3, 6, 120),
		day(3, 0, 100),
		day(3, 0, 110),
	})

	got := a.PriceByDayOfWeek()
	require.Len(t, got, 2)

	assert.Equal(t, 0, got[0].DayOfWeek)
	assert.Equal(t, "Mon", got[0].DayName)
	assert.InDelta(t, 105.0, got[0].AvgPrice, 1e-9)

	assert.Equal(t, 6, got[1].DayOfWeek)
	assert.Equal(t, "Sun", got[1].DayName)
}

func TestEmptyCalendar(t *testing.T) {
	a := newAnalyzer(nil)

	assert.Empty(t, a.PriceByMonth())
	assert.Empty(t, a.AvailabilityByMonth())
	assert.Equal(t, 0.0, a.PeakSeason().SeasonalPremiumPct)
	assert.Equal(t, 0.0, a.WeekendVsWeekday().WeekendPremiumPct)
}
