package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/staylens/rental-market-go/internal/analysis/competitive"
	"github.com/staylens/rental-market-go/internal/service"
	"github.com/staylens/rental-market-go/pkg/response"
)

// CompetitiveHandler handles HTTP requests for competitive metrics
type CompetitiveHandler struct {
	svc *service.ReportService
}

// NewCompetitiveHandler creates a new competitive handler
func NewCompetitiveHandler(svc *service.ReportService) *CompetitiveHandler {
	return &CompetitiveHandler{svc: svc}
}

// GetSegments handles GET /api/v1/competitive/segments
func (h *CompetitiveHandler) GetSegments(c *gin.Context) {
	response.Success(c, h.svc.Competitive.SegmentSummary())
}

// GetSegmentedListings handles GET /api/v1/competitive/listings
func (h *CompetitiveHandler) GetSegmentedListings(c *gin.Context) {
	response.Success(c, h.svc.Competitive.WithSegments())
}

// GetPriceVsRating handles GET /api/v1/competitive/price-vs-rating
func (h *CompetitiveHandler) GetPriceVsRating(c *gin.Context) {
	response.Success(c, h.svc.Competitive.PriceVsRating())
}

// GetAmenities handles GET /api/v1/competitive/amenities
func (h *CompetitiveHandler) GetAmenities(c *gin.Context) {
	analysis, err := h.svc.Competitive.AmenityAnalysis()
	if err != nil {
		if errors.Is(err, competitive.ErrAmenitiesNotParsed) {
			response.UnprocessableEntity(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, analysis)
}

// GetSuperhostPremium handles GET /api/v1/competitive/superhost-premium
func (h *CompetitiveHandler) GetSuperhostPremium(c *gin.Context) {
	response.Success(c, h.svc.Competitive.SuperhostPremium())
}

// GetMarketGaps handles GET /api/v1/competitive/gaps
func (h *CompetitiveHandler) GetMarketGaps(c *gin.Context) {
	topK, err := strconv.Atoi(c.DefaultQuery("neighborhoods", "0"))
	if err != nil || topK < 0 {
		response.BadRequest(c, "Invalid neighborhoods parameter")
		return
	}
	response.Success(c, h.svc.Competitive.MarketGaps(topK))
}
