package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/staylens/rental-market-go/internal/service"
	"github.com/staylens/rental-market-go/pkg/response"
)

// MarketHandler handles HTTP requests for market overview metrics
type MarketHandler struct {
	svc *service.ReportService
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(svc *service.ReportService) *MarketHandler {
	return &MarketHandler{svc: svc}
}

// GetSummary handles GET /api/v1/market/summary
func (h *MarketHandler) GetSummary(c *gin.Context) {
	response.Success(c, h.svc.Market.Summary())
}

// GetADRByRoomType handles GET /api/v1/market/adr-by-room-type
func (h *MarketHandler) GetADRByRoomType(c *gin.Context) {
	response.Success(c, h.svc.Market.ADRByRoomType())
}

// GetPriceDistribution handles GET /api/v1/market/price-distribution
func (h *MarketHandler) GetPriceDistribution(c *gin.Context) {
	response.Success(c, h.svc.Market.PriceDistribution())
}

// GetSupply handles GET /api/v1/market/supply with a "by" query
// parameter selecting room_type (default) or property_type
func (h *MarketHandler) GetSupply(c *gin.Context) {
	switch c.DefaultQuery("by", "room_type") {
	case "room_type":
		response.Success(c, h.svc.Market.SupplyByRoomType())
	case "property_type":
		response.Success(c, h.svc.Market.SupplyByPropertyType())
	default:
		response.BadRequest(c, "Invalid by parameter: expected room_type or property_type")
	}
}

// GetTopHosts handles GET /api/v1/market/top-hosts
func (h *MarketHandler) GetTopHosts(c *gin.Context) {
	n, err := strconv.Atoi(c.DefaultQuery("n", "0"))
	if err != nil || n < 0 {
		response.BadRequest(c, "Invalid n parameter")
		return
	}
	response.Success(c, h.svc.Market.TopHosts(n))
}

// GetConcentration handles GET /api/v1/market/concentration
func (h *MarketHandler) GetConcentration(c *gin.Context) {
	response.Success(c, h.svc.Market.Concentration())
}

// GetRatingDistribution handles GET /api/v1/market/rating-distribution
func (h *MarketHandler) GetRatingDistribution(c *gin.Context) {
	response.Success(c, h.svc.Market.RatingDistribution())
}
