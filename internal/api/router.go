package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/staylens/rental-market-go/internal/handler"
	"github.com/staylens/rental-market-go/internal/middleware"
	"github.com/staylens/rental-market-go/internal/repository"
	"github.com/staylens/rental-market-go/internal/service"
)

// SetupRouter wires the report service into the HTTP API. repo may be
// nil when the server runs without a snapshot store.
func SetupRouter(svc *service.ReportService, repo *repository.SnapshotRepository) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(120, time.Minute))

	// CORS for the chart frontend
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "ok",
			"total_listings": svc.Market.TotalActiveListings(),
		})
	})

	marketH := handler.NewMarketHandler(svc)
	seasonH := handler.NewSeasonalityHandler(svc)
	nhH := handler.NewNeighborhoodHandler(svc)
	compH := handler.NewCompetitiveHandler(svc)

	api := r.Group("/api/v1")
	{
		market := api.Group("/market")
		{
			market.GET("/summary", marketH.GetSummary)
			market.GET("/adr-by-room-type", marketH.GetADRByRoomType)
			market.GET("/price-distribution", marketH.GetPriceDistribution)
			market.GET("/supply", marketH.GetSupply)
			market.GET("/top-hosts", marketH.GetTopHosts)
			market.GET("/concentration", marketH.GetConcentration)
			market.GET("/rating-distribution", marketH.GetRatingDistribution)
		}

		seasonality := api.Group("/seasonality")
		{
			seasonality.GET("/price-by-month", seasonH.GetPriceByMonth)
			seasonality.GET("/availability-by-month", seasonH.GetAvailabilityByMonth)
			seasonality.GET("/peak-season", seasonH.GetPeakSeason)
			seasonality.GET("/weekend-pricing", seasonH.GetWeekendPricing)
			seasonality.GET("/price-by-day-of-week", seasonH.GetPriceByDayOfWeek)
		}

		neighborhoods := api.Group("/neighborhoods")
		{
			neighborhoods.GET("/adr", nhH.GetADR)
			neighborhoods.GET("/density", nhH.GetDensity)
			neighborhoods.GET("/saturation", nhH.GetSaturation)
			neighborhoods.GET("/heatmap", nhH.GetHeatmap)
			neighborhoods.GET("/profile/:name", nhH.GetProfile)
		}

		competitive := api.Group("/competitive")
		{
			competitive.GET("/segments", compH.GetSegments)
			competitive.GET("/listings", compH.GetSegmentedListings)
			competitive.GET("/price-vs-rating", compH.GetPriceVsRating)
			competitive.GET("/amenities", compH.GetAmenities)
			competitive.GET("/superhost-premium", compH.GetSuperhostPremium)
			competitive.GET("/gaps", compH.GetMarketGaps)
		}

		if repo != nil {
			runsH := handler.NewRunsHandler(repo)
			api.GET("/runs", runsH.ListRuns)
		}
	}

	return r
}
