package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jdvillanueva/brgy-health-api/internal/service"
	"github.com/jdvillanueva/brgy-health-api/pkg/response"
)

// ActivityHandler exposes the audit trail.
type ActivityHandler struct {
	service *service.ActivityService
}

// NewActivityHandler creates a new handler.
func NewActivityHandler(svc *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: svc}
}

// Recent godoc
// @Summary Recent activity log entries
// @Description Newest first, capped at the configured limit
// @Tags Activity
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /activity-logs [get]
// @Security BearerAuth
func (h *ActivityHandler) Recent(c *gin.Context) {
	entries, err := h.service.Recent(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}
