// internal/interfaces/http/handlers/review.go
package handlers

import (
	"net/http"

	"github.com/gamevault/game-library-backend/internal/domain/review"
	"github.com/gamevault/game-library-backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// ReviewHandler handles game review endpoints
type ReviewHandler struct {
	reviewService *review.Service
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *review.Service) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// GetGameReviews handles GET /reviews/game/:gameId
func (h *ReviewHandler) GetGameReviews(c *gin.Context) {
	gameID, ok := paramID(c, "gameId")
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListByGame(c.Request.Context(), gameID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Reviews retrieved successfully", reviews)
}

// GetGameReviewStats handles GET /reviews/game/:gameId/stats
func (h *ReviewHandler) GetGameReviewStats(c *gin.Context) {
	gameID, ok := paramID(c, "gameId")
	if !ok {
		return
	}

	summary, err := h.reviewService.Summary(c.Request.Context(), gameID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Review statistics retrieved successfully", summary)
}

// UpsertReview handles POST /reviews/game/:gameId
func (h *ReviewHandler) UpsertReview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	gameID, ok := paramID(c, "gameId")
	if !ok {
		return
	}

	var req review.UpsertReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	username, _ := middleware.GetUsernameFromContext(c)
	rv, err := h.reviewService.Upsert(c.Request.Context(), userID, username, gameID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Review saved successfully", rv)
}

// DeleteReview handles DELETE /reviews/game/:gameId
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	gameID, ok := paramID(c, "gameId")
	if !ok {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), userID, gameID); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Review deleted successfully", nil)
}
