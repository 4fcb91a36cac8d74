package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/staylens/rental-market-go/internal/analysis/neighborhood"
	"github.com/staylens/rental-market-go/internal/service"
	"github.com/staylens/rental-market-go/pkg/response"
)

// NeighborhoodHandler handles HTTP requests for geographic metrics
type NeighborhoodHandler struct {
	svc *service.ReportService
}

// NewNeighborhoodHandler creates a new neighborhood handler
func NewNeighborhoodHandler(svc *service.ReportService) *NeighborhoodHandler {
	return &NeighborhoodHandler{svc: svc}
}

// GetADR handles GET /api/v1/neighborhoods/adr
func (h *NeighborhoodHandler) GetADR(c *gin.Context) {
	minListings, err := strconv.Atoi(c.DefaultQuery("minListings", "0"))
	if err != nil || minListings < 0 {
		response.BadRequest(c, "Invalid minListings parameter")
		return
	}
	response.Success(c, h.svc.Neighborhood.ADRByNeighborhood(minListings))
}

// GetDensity handles GET /api/v1/neighborhoods/density
func (h *NeighborhoodHandler) GetDensity(c *gin.Context) {
	response.Success(c, h.svc.Neighborhood.ListingDensity())
}

// GetSaturation handles GET /api/v1/neighborhoods/saturation
func (h *NeighborhoodHandler) GetSaturation(c *gin.Context) {
	response.Success(c, h.svc.Neighborhood.SaturationScores())
}

// GetHeatmap handles GET /api/v1/neighborhoods/heatmap
func (h *NeighborhoodHandler) GetHeatmap(c *gin.Context) {
	rows, err := h.svc.Neighborhood.PriceHeatmap()
	if err != nil {
		if errors.Is(err, neighborhood.ErrNoGeoData) {
			response.UnprocessableEntity(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, rows)
}

// GetProfile handles GET /api/v1/neighborhoods/profile/:name
func (h *NeighborhoodHandler) GetProfile(c *gin.Context) {
	name := c.Param("name")
	profile, ok := h.svc.Neighborhood.Profile(name)
	if !ok {
		response.NotFound(c, "No listings found in '"+name+"'")
		return
	}
	response.Success(c, profile)
}
