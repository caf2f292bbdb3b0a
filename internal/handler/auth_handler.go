package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jdvillanueva/brgy-health-api/internal/models"
	"github.com/jdvillanueva/brgy-health-api/internal/service"
	appErrors "github.com/jdvillanueva/brgy-health-api/pkg/errors"
	"github.com/jdvillanueva/brgy-health-api/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service  *service.AuthService
	sessions *service.SessionService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, sessions *service.SessionService) *AuthHandler {
	return &AuthHandler{service: svc, sessions: sessions}
}

// Login godoc
// @Summary Authenticate admin
// @Description Authenticate admin by username and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.sessions != nil {
		h.sessions.Touch(res.Admin.ID)
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Logout godoc
// @Summary Logout current admin
// @Description Drops the inactivity session for the authenticated admin
// @Tags Authentication
// @Produce json
// @Success 204 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if h.sessions != nil {
		h.sessions.Forget(claims.AdminID)
	}
	response.NoContent(c)
}

// Me godoc
// @Summary Current admin profile
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, models.AdminInfo{ID: claims.AdminID, Username: claims.Username}, nil)
}

// Session godoc
// @Summary Inactivity session state
// @Description Reports whether the session is active, in its warning countdown, or expired
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if h.sessions == nil {
		response.JSON(c, http.StatusOK, models.SessionState{State: models.SessionActive}, nil)
		return
	}
	response.JSON(c, http.StatusOK, h.sessions.State(claims.AdminID), nil)
}
