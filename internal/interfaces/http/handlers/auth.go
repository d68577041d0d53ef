// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gamevault/game-library-backend/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	userService *user.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *user.Service) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "User registered successfully", resp)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Login successful", resp)
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshToken handles POST /auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req refreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.userService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Token refreshed successfully", resp)
}

// GetProfile handles GET /auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Profile retrieved successfully", profile)
}
