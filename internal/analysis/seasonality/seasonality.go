// Package seasonality analyzes temporal patterns in calendar pricing
// and availability: monthly trends, weekend premiums and peak season
// identification.
package seasonality

import (
	"sort"

	"github.com/staylens/rental-market-go/internal/config"
	"github.com/staylens/rental-market-go/internal/models"
	"github.com/staylens/rental-market-go/internal/stats"
)

var dayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Analyzer computes temporal aggregations over a cleaned calendar
// table. All methods are pure reads.
type Analyzer struct {
	calendar []models.CalendarDay
	cfg      config.AnalysisConfig
}

// New creates a seasonality analyzer over a cleaned calendar table
func New(calendar []models.CalendarDay, cfg config.AnalysisConfig) *Analyzer {
	return &Analyzer{calendar: calendar, cfg: cfg}
}

// MonthlyPrice is the price summary for one calendar month
type MonthlyPrice struct {
	Month        int     `json:"month"`
	AvgPrice     float64 `json:"avg_price"`
	MedianPrice  float64 `json:"median_price"`
	StdPrice     float64 `json:"std_price"`
	Observations int     `json:"observations"`
}

// PriceByMonth aggregates nightly prices by month over rows with a
// known price, sorted by month ascending
func (a *Analyzer) PriceByMonth() []MonthlyPrice {
	groups := make(map[int][]float64)
	for _, d := range a.calendar {
		if d.Price != nil {
			groups[d.Month] = append(groups[d.Month], *d.Price)
		}
	}

	out := make([]MonthlyPrice, 0, len(groups))
	for month, prices := range groups {
		out = append(out, MonthlyPrice{
			Month:        month,
			AvgPrice:     stats.Mean(prices),
			MedianPrice:  stats.Median(prices),
			StdPrice:     stats.StdDev(prices),
			Observations: len(prices),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// MonthlyAvailability is the availability summary for one month.
// OccupancyRate is estimated as 1 - availability rate.
type MonthlyAvailability struct {
	Month            int     `json:"month"`
	AvailabilityRate float64 `json:"availability_rate"`
	OccupancyRate    float64 `json:"occupancy_rate"`
	Observations     int     `json:"observations"`
}

// AvailabilityByMonth aggregates the availability flag by month over
// rows where the flag parsed
func (a *Analyzer) AvailabilityByMonth() []MonthlyAvailability {
	type agg struct{ available, total int }
	groups := make(map[int]*agg)
	for _, d := range a.calendar {
		if d.Available == nil {
			continue
		}
		g, ok := groups[d.Month]
		if !ok {
			g = &agg{}
			groups[d.Month] = g
		}
		g.total++
		if *d.Available {
			g.available++
		}
	}

	out := make([]MonthlyAvailability, 0, len(groups))
	for month, g := range groups {
		rate := float64(g.available) / float64(g.total)
		out = append(out, MonthlyAvailability{
			Month:            month,
			AvailabilityRate: rate,
			OccupancyRate:    1 - rate,
			Observations:     g.total,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// PeakSeason classifies months into high/low season and computes the
// seasonal price premium
type PeakSeason struct {
	HighSeasonMonths   []int   `json:"high_season_months"`
	LowSeasonMonths    []int   `json:"low_season_months"`
	HighSeasonAvgPrice float64 `json:"high_season_avg_price"`
	LowSeasonAvgPrice  float64 `json:"low_season_avg_price"`
	SeasonalPremiumPct float64 `json:"seasonal_premium_pct"`
}

// PeakSeason averages the monthly mean prices within the configured
// high and low season month lists. The premium reports 0 when the low
// season mean is zero or has no observations.
func (a *Analyzer) PeakSeason() PeakSeason {
	monthly := a.PriceByMonth()
	byMonth := make(map[int]float64, len(monthly))
	for _, m := range monthly {
		byMonth[m.Month] = m.AvgPrice
	}

	highAvg := seasonMean(byMonth, a.cfg.HighSeasonMonths)
	lowAvg := seasonMean(byMonth, a.cfg.LowSeasonMonths)

	result := PeakSeason{
		HighSeasonMonths:   a.cfg.HighSeasonMonths,
		LowSeasonMonths:    a.cfg.LowSeasonMonths,
		HighSeasonAvgPrice: highAvg,
		LowSeasonAvgPrice:  lowAvg,
	}
	if lowAvg != 0 {
		result.SeasonalPremiumPct = (highAvg - lowAvg) / lowAvg * 100
	}
	return result
}

// seasonMean averages monthly means over the months that have data
func seasonMean(byMonth map[int]float64, months []int) float64 {
	var values []float64
	for _, m := range months {
		if v, ok := byMonth[m]; ok {
			values = append(values, v)
		}
	}
	return stats.Mean(values)
}

// WeekendPricing compares weekend (Fri-Sat) and weekday nightly prices
type WeekendPricing struct {
	WeekendAvg        float64 `json:"weekend_avg"`
	WeekdayAvg        float64 `json:"weekday_avg"`
	WeekendMedian     float64 `json:"weekend_median"`
	WeekdayMedian     float64 `json:"weekday_median"`
	WeekendPremiumPct float64 `json:"weekend_premium_pct"`
}

// WeekendVsWeekday splits priced calendar rows by the weekend flag.
// The premium reports 0 when the weekday mean is zero or undefined.
func (a *Analyzer) WeekendVsWeekday() WeekendPricing {
	var weekend, weekday []float64
	for _, d := range a.calendar {
		if d.Price == nil {
			continue
		}
		if d.IsWeekend {
			weekend = append(weekend, *d.Price)
		} else {
			weekday = append(weekday, *d.Price)
		}
	}

	result := WeekendPricing{
		WeekendAvg:    stats.Mean(weekend),
		WeekdayAvg:    stats.Mean(weekday),
		WeekendMedian: stats.Median(weekend),
		WeekdayMedian: stats.Median(weekday),
	}
	if result.WeekdayAvg != 0 {
		result.WeekendPremiumPct = (result.WeekendAvg - result.WeekdayAvg) / result.WeekdayAvg * 100
	}
	return result
}

// DayOfWeekPrice is the price summary for one day of the week
type DayOfWeekPrice struct {
	DayOfWeek   int     `json:"day_of_week"` // 0=Mon .. 6=Sun
	DayName     string  `json:"day_name"`
	AvgPrice    float64 `json:"avg_price"`
	MedianPrice float64 `json:"median_price"`
}

// PriceByDayOfWeek aggregates nightly prices per day of the week
func (a *Analyzer) PriceByDayOfWeek() []DayOfWeekPrice {
	groups := make(map[int][]float64)
	for _, d := range a.calendar {
		if d.Price != nil {
			groups[d.DayOfWeek] = append(groups[d.DayOfWeek], *d.Price)
		}
	}

	out := make([]DayOfWeekPrice, 0, len(groups))
	for dow, prices := range groups {
		name := ""
		if dow >= 0 && dow < len(dayNames) {
			name = dayNames[dow]
		}
		out = append(out, DayOfWeekPrice{
			DayOfWeek:   dow,
			DayName:     name,
			AvgPrice:    stats.Mean(prices),
			MedianPrice: stats.Median(prices),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayOfWeek < out[j].DayOfWeek })
	return out
}
