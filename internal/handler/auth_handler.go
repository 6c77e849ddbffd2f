package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/keylounge/keylounge-backend/internal/common"
	"github.com/keylounge/keylounge-backend/internal/domain"
	"github.com/keylounge/keylounge-backend/internal/service"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid login payload", err)
		return
	}

	resp, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		// Generic message: do not leak whether the account exists
		common.ErrorResponse(c, http.StatusUnauthorized, "invalid username or password", nil)
		return
	}

	common.SuccessResponse(c, resp, nil)
}
