package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jdvillanueva/brgy-health-api/internal/service"
	appErrors "github.com/jdvillanueva/brgy-health-api/pkg/errors"
	"github.com/jdvillanueva/brgy-health-api/pkg/response"
)

// PendingHandler wires HTTP endpoints to the pending resident service.
type PendingHandler struct {
	service   *service.PendingService
	analytics *service.AnalyticsService
}

// NewPendingHandler creates a new handler.
func NewPendingHandler(svc *service.PendingService, analytics *service.AnalyticsService) *PendingHandler {
	return &PendingHandler{service: svc, analytics: analytics}
}

// Submit godoc
// @Summary Submit a self-registration
// @Description Public intake endpoint; the submission waits in the review queue
// @Tags Pending residents
// @Accept json
// @Produce json
// @Param payload body service.SubmitPendingRequest true "Submission payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /pending-residents [post]
func (h *PendingHandler) Submit(c *gin.Context) {
	var req service.SubmitPendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid submission payload"))
		return
	}

	pending, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.analytics.Invalidate(c.Request.Context())

	response.Created(c, pending)
}

// List godoc
// @Summary List pending submissions
// @Tags Pending residents
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /pending-residents [get]
// @Security BearerAuth
func (h *PendingHandler) List(c *gin.Context) {
	pendings, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pendings, nil)
}

// Accept godoc
// @Summary Approve a pending submission
// @Description Promotes the submission into a permanent health record
// @Tags Pending residents
// @Produce json
// @Param id path int true "Pending entry ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /pending-residents/accept/{id} [post]
// @Security BearerAuth
func (h *PendingHandler) Accept(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid pending entry id"))
		return
	}

	record, err := h.service.Accept(c.Request.Context(), id, actingAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.analytics.Invalidate(c.Request.Context())

	response.JSON(c, http.StatusOK, record, nil)
}

// Reject godoc
// @Summary Reject a pending submission
// @Description Removes the submission, its resident identity and any records under it
// @Tags Pending residents
// @Produce json
// @Param id path int true "Pending entry ID"
// @Param admin query string false "Admin name override for the audit entry"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /pending-residents/remove/{id} [delete]
// @Security BearerAuth
func (h *PendingHandler) Reject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid pending entry id"))
		return
	}

	if err := h.service.Reject(c.Request.Context(), id, actingAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}
	h.analytics.Invalidate(c.Request.Context())

	response.NoContent(c)
}
