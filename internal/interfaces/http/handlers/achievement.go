package handlers

import (
	"net/http"

	"github.com/gamevault/game-library-backend/internal/domain/achievement"
	"github.com/gin-gonic/gin"
)

// AchievementHandler exposes unlocked achievements and manual evaluation
type AchievementHandler struct {
	engine *achievement.Engine
}

// NewAchievementHandler creates a new achievement handler
func NewAchievementHandler(engine *achievement.Engine) *AchievementHandler {
	return &AchievementHandler{engine: engine}
}

// GetMyAchievements handles GET /achievements
func (h *AchievementHandler) GetMyAchievements(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	unlocked, err := h.engine.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Achievements retrieved successfully", unlocked)
}

// GetDefinitions handles GET /achievements/definitions
func (h *AchievementHandler) GetDefinitions(c *gin.Context) {
	respond(c, http.StatusOK, "Achievement definitions retrieved successfully", achievement.Definitions())
}

// CheckAchievements handles POST /achievements/check
func (h *AchievementHandler) CheckAchievements(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	unlocked, err := h.engine.Evaluate(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Achievements checked", gin.H{
		"new_achievements": unlocked,
		"count":            len(unlocked),
	})
}
