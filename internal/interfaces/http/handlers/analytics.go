// internal/interfaces/http/handlers/analytics.go
package handlers

import (
	"net/http"

	"github.com/gamevault/game-library-backend/internal/domain/analytics"
	"github.com/gamevault/game-library-backend/internal/domain/recommendation"
	"github.com/gin-gonic/gin"
)

// StatsHandler serves per-user statistics and recommendations
type StatsHandler struct {
	analyticsService      *analytics.Service
	recommendationService *recommendation.Service
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(analyticsService *analytics.Service, recommendationService *recommendation.Service) *StatsHandler {
	return &StatsHandler{
		analyticsService:      analyticsService,
		recommendationService: recommendationService,
	}
}

// GetUserStats handles GET /stats/user
func (h *StatsHandler) GetUserStats(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	stats, err := h.analyticsService.GetUserStats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "User statistics retrieved successfully", stats)
}

// GetRecommendations handles GET /recommendations
func (h *StatsHandler) GetRecommendations(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	games, err := h.recommendationService.Recommend(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Recommendations retrieved successfully", games)
}
