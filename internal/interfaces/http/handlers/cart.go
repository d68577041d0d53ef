// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gamevault/game-library-backend/internal/domain/cart"
	"github.com/gin-gonic/gin"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *cart.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	cartResponse, err := h.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Cart retrieved successfully", cartResponse)
}

// AddToCart handles POST /cart/add/:gameId
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	gameID, ok := paramID(c, "gameId")
	if !ok {
		return
	}

	item, err := h.cartService.AddToCart(c.Request.Context(), userID, gameID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Item added to cart successfully", item)
}

// RemoveFromCart handles DELETE /cart/remove/:gameId
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	gameID, ok := paramID(c, "gameId")
	if !ok {
		return
	}

	if err := h.cartService.RemoveFromCart(c.Request.Context(), userID, gameID); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Item removed from cart successfully", nil)
}

// ClearCart handles DELETE /cart/clear
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.cartService.ClearCart(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Cart cleared successfully", nil)
}
