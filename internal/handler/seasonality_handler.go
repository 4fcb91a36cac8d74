package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/staylens/rental-market-go/internal/service"
	"github.com/staylens/rental-market-go/pkg/response"
)

// SeasonalityHandler handles HTTP requests for temporal metrics
type SeasonalityHandler struct {
	svc *service.ReportService
}

// NewSeasonalityHandler creates a new seasonality handler
func NewSeasonalityHandler(svc *service.ReportService) *SeasonalityHandler {
	return &SeasonalityHandler{svc: svc}
}

// requireCalendar rejects calendar-backed endpoints when the snapshot
// was loaded without a calendar table
func (h *SeasonalityHandler) requireCalendar(c *gin.Context) bool {
	if !h.svc.HasCalendar() {
		response.UnprocessableEntity(c, "No calendar data in this snapshot")
		return false
	}
	return true
}

// GetPriceByMonth handles GET /api/v1/seasonality/price-by-month
func (h *SeasonalityHandler) GetPriceByMonth(c *gin.Context) {
	if !h.requireCalendar(c) {
		return
	}
	response.Success(c, h.svc.Seasonality.PriceByMonth())
}

// GetAvailabilityByMonth handles GET /api/v1/seasonality/availability-by-month
func (h *SeasonalityHandler) GetAvailabilityByMonth(c *gin.Context) {
	if !h.requireCalendar(c) {
		return
	}
	response.Success(c, h.svc.Seasonality.AvailabilityByMonth())
}

// GetPeakSeason handles GET /api/v1/seasonality/peak-season
func (h *SeasonalityHandler) GetPeakSeason(c *gin.Context) {
	if !h.requireCalendar(c) {
		return
	}
	response.Success(c, h.svc.Seasonality.PeakSeason())
}

// GetWeekendPricing handles GET /api/v1/seasonality/weekend-pricing
func (h *SeasonalityHandler) GetWeekendPricing(c *gin.Context) {
	if !h.requireCalendar(c) {
		return
	}
	response.Success(c, h.svc.Seasonality.WeekendVsWeekday())
}

// GetPriceByDayOfWeek handles GET /api/v1/seasonality/price-by-day-of-week
func (h *SeasonalityHandler) GetPriceByDayOfWeek(c *gin.Context) {
	if !h.requireCalendar(c) {
		return
	}
	response.Success(c, h.svc.Seasonality.PriceByDayOfWeek())
}
