package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jdvillanueva/brgy-health-api/internal/models"
	"github.com/jdvillanueva/brgy-health-api/internal/service"
	appErrors "github.com/jdvillanueva/brgy-health-api/pkg/errors"
	"github.com/jdvillanueva/brgy-health-api/pkg/response"
)

// ResidentHandler wires HTTP endpoints to the resident service.
type ResidentHandler struct {
	service   *service.ResidentService
	analytics *service.AnalyticsService
}

// NewResidentHandler creates a new handler.
func NewResidentHandler(svc *service.ResidentService, analytics *service.AnalyticsService) *ResidentHandler {
	return &ResidentHandler{service: svc, analytics: analytics}
}

// List godoc
// @Summary List residents
// @Tags Residents
// @Produce json
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Param search query string false "Name or resident ID search"
// @Param street query string false "Street filter"
// @Success 200 {object} response.Envelope
// @Router /residents [get]
// @Security BearerAuth
func (h *ResidentHandler) List(c *gin.Context) {
	filter := models.ResidentFilter{
		Search: c.Query("search"),
		Street: c.Query("street"),
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	residents, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, residents, pagination)
}

// Get godoc
// @Summary Get one resident
// @Tags Residents
// @Produce json
// @Param id path string true "Resident ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /residents/{id} [get]
// @Security BearerAuth
func (h *ResidentHandler) Get(c *gin.Context) {
	resident, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resident, nil)
}

// Register godoc
// @Summary Register a resident with their first health record
// @Tags Residents
// @Accept json
// @Produce json
// @Param payload body service.RegisterResidentRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /residents [post]
// @Security BearerAuth
func (h *ResidentHandler) Register(c *gin.Context) {
	var req service.RegisterResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid resident payload"))
		return
	}

	resident, record, err := h.service.Register(c.Request.Context(), req, actingAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.analytics.Invalidate(c.Request.Context())

	response.Created(c, gin.H{"resident": resident, "record": record})
}

// Update godoc
// @Summary Replace a resident's identity fields
// @Tags Residents
// @Accept json
// @Produce json
// @Param id path string true "Resident ID"
// @Param payload body service.UpdateResidentRequest true "Resident payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /residents/{id} [put]
// @Security BearerAuth
func (h *ResidentHandler) Update(c *gin.Context) {
	var req service.UpdateResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid resident payload"))
		return
	}

	resident, err := h.service.Update(c.Request.Context(), c.Param("id"), req, actingAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.analytics.Invalidate(c.Request.Context())

	response.JSON(c, http.StatusOK, resident, nil)
}
