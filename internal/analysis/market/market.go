// Package market computes aggregate market metrics from cleaned
// listings: ADR breakdowns, supply shares, host concentration and
// rating distributions.
package market

import (
	"sort"

	"github.com/staylens/rental-market-go/internal/config"
	"github.com/staylens/rental-market-go/internal/models"
	"github.com/staylens/rental-market-go/internal/stats"
)

// Analyzer computes market overview metrics. It holds a read-only view
// of the cleaned listing table; every method is a pure read and safe
// to call concurrently.
type Analyzer struct {
	listings []models.Listing
	fields   models.FieldSet
	cfg      config.AnalysisConfig
}

// New creates a market overview analyzer over a cleaned listing table
func New(listings []models.Listing, fields models.FieldSet, cfg config.AnalysisConfig) *Analyzer {
	return &Analyzer{listings: listings, fields: fields, cfg: cfg}
}

// TotalActiveListings returns the number of listings that survived cleaning
func (a *Analyzer) TotalActiveListings() int {
	return len(a.listings)
}

// RoomTypeADR is the Average Daily Rate summary for one room type
type RoomTypeADR struct {
	RoomType  string  `json:"room_type"`
	ADRMean   float64 `json:"adr_mean"`
	ADRMedian float64 `json:"adr_median"`
	ADRStd    float64 `json:"adr_std"`
	Listings  int     `json:"listings"`
}

// ADRByRoomType groups nightly prices by room type, sorted by mean
// price descending
func (a *Analyzer) ADRByRoomType() []RoomTypeADR {
	groups := make(map[string][]float64)
	for _, l := range a.listings {
		if l.Price != nil {
			groups[l.RoomType] = append(groups[l.RoomType], *l.Price)
		}
	}

	out := make([]RoomTypeADR, 0, len(groups))
	for rt, prices := range groups {
		out = append(out, RoomTypeADR{
			RoomType:  rt,
			ADRMean:   stats.Mean(prices),
			ADRMedian: stats.Median(prices),
			ADRStd:    stats.StdDev(prices),
			Listings:  len(prices),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ADRMean > out[j].ADRMean })
	return out
}

// PriceDistribution describes the nightly price distribution over
// listings with a known price
type PriceDistribution struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
	Count  int     `json:"count"`
}

// PriceDistribution returns descriptive statistics for listing prices
func (a *Analyzer) PriceDistribution() PriceDistribution {
	var prices []float64
	for _, l := range a.listings {
		if l.Price != nil {
			prices = append(prices, *l.Price)
		}
	}

	return PriceDistribution{
		Mean:   stats.Mean(prices),
		Median: stats.Median(prices),
		Std:    stats.StdDev(prices),
		Min:    stats.Min(prices),
		Max:    stats.Max(prices),
		Q25:    stats.Quantile(prices, 0.25),
		Q75:    stats.Quantile(prices, 0.75),
		Count:  len(prices),
	}
}

// SupplyShare is the listing count and share of one category
type SupplyShare struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Pct   float64 `json:"pct"`
}

// SupplyByRoomType returns listing count and percentage by room type
func (a *Analyzer) SupplyByRoomType() []SupplyShare {
	return a.supplyBy(func(l models.Listing) string { return l.RoomType }, 0)
}

// SupplyByPropertyType returns listing count and percentage by
// property type, capped to the 15 largest categories
func (a *Analyzer) SupplyByPropertyType() []SupplyShare {
	return a.supplyBy(func(l models.Listing) string { return l.PropertyType }, 15)
}

func (a *Analyzer) supplyBy(key func(models.Listing) string, limit int) []SupplyShare {
	counts := make(map[string]int)
	for _, l := range a.listings {
		counts[key(l)]++
	}

	out := make([]SupplyShare, 0, len(counts))
	total := float64(len(a.listings))
	for name, count := range counts {
		share := SupplyShare{Name: name, Count: count}
		if total > 0 {
			share.Pct = float64(count) / total * 100
		}
		out = append(out, share)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// HostRank is one host's position in the listing-count ranking
type HostRank struct {
	HostID         int64    `json:"host_id"`
	HostName       string   `json:"host_name,omitempty"`
	Listings       int      `json:"listings"`
	AvgPrice       float64  `json:"avg_price"`
	AvgRating      *float64 `json:"avg_rating,omitempty"`
	MarketSharePct float64  `json:"market_share_pct"`
}

// TopHosts ranks hosts by listing count descending and returns the top
// n. Pass n <= 0 for the configured default.
func (a *Analyzer) TopHosts(n int) []HostRank {
	if n <= 0 {
		n = a.cfg.TopHosts
	}
	if n <= 0 {
		n = 20
	}

	type hostAgg struct {
		name    string
		count   int
		prices  []float64
		ratings []float64
	}
	hosts := make(map[int64]*hostAgg)
	for _, l := range a.listings {
		h, ok := hosts[l.HostID]
		if !ok {
			h = &hostAgg{}
			hosts[l.HostID] = h
		}
		h.count++
		if a.fields.HasHostName && h.name == "" {
			h.name = l.HostName
		}
		if l.Price != nil {
			h.prices = append(h.prices, *l.Price)
		}
		if l.Rating != nil {
			h.ratings = append(h.ratings, *l.Rating)
		}
	}

	total := float64(len(a.listings))
	out := make([]HostRank, 0, len(hosts))
	for id, h := range hosts {
		rank := HostRank{
			HostID:   id,
			HostName: h.name,
			Listings: h.count,
			AvgPrice: stats.Mean(h.prices),
		}
		if len(h.ratings) > 0 {
			avg := stats.Mean(h.ratings)
			rank.AvgRating = &avg
		}
		if total > 0 {
			rank.MarketSharePct = float64(h.count) / total * 100
		}
		out = append(out, rank)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Listings != out[j].Listings {
			return out[i].Listings > out[j].Listings
		}
		return out[i].HostID < out[j].HostID
	})

	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Concentration summarizes how concentrated supply is across hosts
type Concentration struct {
	// HHI is the Herfindahl-Hirschman Index over host shares on the
	// percentage scale: sum of squared shares, 10000 = monopoly.
	HHI               float64 `json:"hhi"`
	Top10HostSharePct float64 `json:"top_10_host_share_pct"`
	UniqueHosts       int     `json:"unique_hosts"`
}

// Concentration computes the HHI, the combined share of the ten
// largest hosts, and the unique host count
func (a *Analyzer) Concentration() Concentration {
	counts := make(map[int64]int)
	for _, l := range a.listings {
		counts[l.HostID]++
	}

	total := float64(len(a.listings))
	shares := make([]float64, 0, len(counts))
	for _, c := range counts {
		if total > 0 {
			shares = append(shares, float64(c)/total*100)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(shares)))

	var hhi, top10 float64
	for i, s := range shares {
		hhi += s * s
		if i < 10 {
			top10 += s
		}
	}

	return Concentration{
		HHI:               hhi,
		Top10HostSharePct: top10,
		UniqueHosts:       len(counts),
	}
}

// RatingDistribution describes review scores across rated listings
type RatingDistribution struct {
	Mean            float64 `json:"mean"`
	Median          float64 `json:"median"`
	Std             float64 `json:"std"`
	PctAbove4       float64 `json:"pct_above_4"`
	PctAbove45      float64 `json:"pct_above_4_5"`
	TotalWithRating int     `json:"total_with_rating"`
	TotalListings   int     `json:"total_listings"`
}

// RatingDistribution returns statistics for review scores
func (a *Analyzer) RatingDistribution() RatingDistribution {
	var scores []float64
	var above4, above45 int
	for _, l := range a.listings {
		if l.Rating == nil {
			continue
		}
		scores = append(scores, *l.Rating)
		if *l.Rating >= 4.0 {
			above4++
		}
		if *l.Rating >= 4.5 {
			above45++
		}
	}

	dist := RatingDistribution{
		Mean:            stats.Mean(scores),
		Median:          stats.Median(scores),
		Std:             stats.StdDev(scores),
		TotalWithRating: len(scores),
		TotalListings:   len(a.listings),
	}
	if len(scores) > 0 {
		dist.PctAbove4 = float64(above4) / float64(len(scores)) * 100
		dist.PctAbove45 = float64(above45) / float64(len(scores)) * 100
	}
	return dist
}

// Summary is the executive summary of the market
type Summary struct {
	TotalListings     int      `json:"total_listings"`
	ADRMean           float64  `json:"adr_mean"`
	ADRMedian         float64  `json:"adr_median"`
	UniqueHosts       int      `json:"unique_hosts"`
	Top10HostSharePct float64  `json:"top_10_host_share_pct"`
	AvgRating         float64  `json:"avg_rating"`
	PctSuperhost      *float64 `json:"pct_superhost,omitempty"`
}

// Summary bundles the headline metrics into one flat result.
// PctSuperhost is nil when the snapshot carries no superhost flag.
func (a *Analyzer) Summary() Summary {
	dist := a.PriceDistribution()
	conc := a.Concentration()
	ratings := a.RatingDistribution()

	s := Summary{
		TotalListings:     a.TotalActiveListings(),
		ADRMean:           dist.Mean,
		ADRMedian:         dist.Median,
		UniqueHosts:       conc.UniqueHosts,
		Top10HostSharePct: conc.Top10HostSharePct,
		AvgRating:         ratings.Mean,
	}

	if a.fields.HasSuperhost {
		var super, known int
		for _, l := range a.listings {
			if l.IsSuperhost == nil {
				continue
			}
			known++
			if *l.IsSuperhost {
				super++
			}
		}
		if known > 0 {
			pct := float64(super) / float64(known) * 100
			s.PctSuperhost = &pct
		}
	}
	return s
}
