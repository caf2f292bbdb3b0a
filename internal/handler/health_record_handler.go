package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jdvillanueva/brgy-health-api/internal/service"
	appErrors "github.com/jdvillanueva/brgy-health-api/pkg/errors"
	"github.com/jdvillanueva/brgy-health-api/pkg/response"
)

// HealthRecordHandler wires HTTP endpoints to the health record service.
type HealthRecordHandler struct {
	service   *service.HealthRecordService
	analytics *service.AnalyticsService
}

// NewHealthRecordHandler creates a new handler.
func NewHealthRecordHandler(svc *service.HealthRecordService, analytics *service.AnalyticsService) *HealthRecordHandler {
	return &HealthRecordHandler{service: svc, analytics: analytics}
}

// List godoc
// @Summary List health records
// @Tags Health records
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /health-records [get]
// @Security BearerAuth
func (h *HealthRecordHandler) List(c *gin.Context) {
	records, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// Get godoc
// @Summary Get one health record
// @Tags Health records
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /health-records/{id} [get]
// @Security BearerAuth
func (h *HealthRecordHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid record id"))
		return
	}

	detail, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Create godoc
// @Summary Add a follow-up visit record for an existing resident
// @Tags Health records
// @Accept json
// @Produce json
// @Param payload body service.CreateHealthRecordRequest true "Record payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /health-records [post]
// @Security BearerAuth
func (h *HealthRecordHandler) Create(c *gin.Context) {
	var req service.CreateHealthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid health record payload"))
		return
	}

	record, err := h.service.Create(c.Request.Context(), req, actingAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.analytics.Invalidate(c.Request.Context())

	response.Created(c, record)
}

// Update godoc
// @Summary Replace a health record's clinical fields
// @Description BMI and nutrition status are recomputed from the submitted vitals
// @Tags Health records
// @Accept json
// @Produce json
// @Param id path int true "Record ID"
// @Param payload body service.UpdateHealthRecordRequest true "Record payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /health-records/{id} [put]
// @Security BearerAuth
func (h *HealthRecordHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid record id"))
		return
	}

	var req service.UpdateHealthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid health record payload"))
		return
	}

	record, err := h.service.Update(c.Request.Context(), id, req, actingAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.analytics.Invalidate(c.Request.Context())

	response.JSON(c, http.StatusOK, record, nil)
}

// Delete godoc
// @Summary Delete a health record and its resident
// @Description Cascades: the record, any queued submissions, then the resident identity
// @Tags Health records
// @Produce json
// @Param id path int true "Record ID"
// @Param admin query string false "Admin name override for the audit entry"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /health-records/{id} [delete]
// @Security BearerAuth
func (h *HealthRecordHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid record id"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, actingAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}
	h.analytics.Invalidate(c.Request.Context())

	response.NoContent(c)
}
