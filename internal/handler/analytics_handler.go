package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jdvillanueva/brgy-health-api/internal/service"
	"github.com/jdvillanueva/brgy-health-api/pkg/response"
)

// AnalyticsHandler exposes derived community statistics.
type AnalyticsHandler struct {
	service *service.AnalyticsService
}

// NewAnalyticsHandler creates a new handler.
func NewAnalyticsHandler(svc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: svc}
}

// Summary godoc
// @Summary Community health statistics
// @Description Recomputed from the record set on every fetch
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics/summary [get]
// @Security BearerAuth
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// Heatmap godoc
// @Summary Per-street severity heatmap
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics/heatmap [get]
// @Security BearerAuth
func (h *AnalyticsHandler) Heatmap(c *gin.Context) {
	heatmap, err := h.service.Heatmap(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, heatmap, nil)
}
