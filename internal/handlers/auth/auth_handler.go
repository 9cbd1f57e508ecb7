// internal/handlers/auth/auth_handler.go
package auth

import (
	"errors"
	"net/http"

	"tedtam-service/internal/domain/agent"
	"tedtam-service/internal/middleware"
	xerrors "tedtam-service/internal/pkg/errors"
	"tedtam-service/internal/pkg/response"
	service "tedtam-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register creates a new agent account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req agent.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	a, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrConflict) {
			response.Error(c, http.StatusConflict, "email already registered", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to register", err)
		return
	}

	response.Success(c, http.StatusCreated, "agent registered", a)
}

// Login verifies credentials and returns an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req agent.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrUnauthorized) {
			response.Unauthorized(c, "invalid email or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to log in", err)
		return
	}

	response.Success(c, http.StatusOK, "logged in", result)
}

// GetMe returns the authenticated agent's profile.
func (h *AuthHandler) GetMe(c *gin.Context) {
	agentID, ok := middleware.GetAgentID(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	a, err := h.authService.GetAgent(c.Request.Context(), agentID)
	if err != nil {
		response.NotFound(c, "agent not found")
		return
	}

	response.Success(c, http.StatusOK, "agent retrieved", a)
}
