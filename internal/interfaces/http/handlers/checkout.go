// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gamevault/game-library-backend/internal/domain/checkout"
	"github.com/gin-gonic/gin"
)

// CheckoutHandler handles the purchase endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

type checkoutResponse struct {
	*checkout.Result
	AchievementsPending bool `json:"achievements_pending,omitempty"`
}

// Checkout handles POST /orders/checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	result, err := h.checkoutService.Checkout(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	// The purchase committed; a failed evaluation is retried by POST /achievements/check.
	resp := checkoutResponse{Result: result, AchievementsPending: result.EvaluationError != nil}
	respond(c, http.StatusCreated, "Checkout completed successfully", resp)
}

// GetCheckoutSummary handles GET /orders/checkout/summary
func (h *CheckoutHandler) GetCheckoutSummary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	summary, err := h.checkoutService.GetCheckoutSummary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Checkout summary retrieved successfully", summary)
}
