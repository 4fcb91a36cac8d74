package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/staylens/rental-market-go/internal/repository"
	"github.com/staylens/rental-market-go/pkg/response"
)

// RunsHandler handles HTTP requests for persisted snapshot runs
type RunsHandler struct {
	repo *repository.SnapshotRepository
}

// NewRunsHandler creates a new runs handler
func NewRunsHandler(repo *repository.SnapshotRepository) *RunsHandler {
	return &RunsHandler{repo: repo}
}

// ListRuns handles GET /api/v1/runs
func (h *RunsHandler) ListRuns(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		response.BadRequest(c, "Invalid limit parameter")
		return
	}

	runs, err := h.repo.ListRuns(limit)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, runs)
}
