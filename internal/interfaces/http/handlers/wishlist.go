// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"net/http"

	"github.com/gamevault/game-library-backend/internal/domain/wishlist"
	"github.com/gin-gonic/gin"
)

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	wishlistService *wishlist.Service
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlistService *wishlist.Service) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// GetWishlist handles GET /wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.wishlistService.GetWishlist(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Wishlist retrieved successfully", items)
}

// AddToWishlist handles POST /wishlist/add/:gameId
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	gameID, ok := paramID(c, "gameId")
	if !ok {
		return
	}

	item, err := h.wishlistService.AddToWishlist(c.Request.Context(), userID, gameID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Game added to wishlist", item)
}

// RemoveFromWishlist handles DELETE /wishlist/remove/:gameId
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	gameID, ok := paramID(c, "gameId")
	if !ok {
		return
	}

	if err := h.wishlistService.RemoveFromWishlist(c.Request.Context(), userID, gameID); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Game removed from wishlist", nil)
}

// CheckWishlist handles GET /wishlist/check/:gameId
func (h *WishlistHandler) CheckWishlist(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	gameID, ok := paramID(c, "gameId")
	if !ok {
		return
	}

	inWishlist, err := h.wishlistService.IsInWishlist(c.Request.Context(), userID, gameID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Wishlist checked", gin.H{"game_id": gameID, "in_wishlist": inWishlist})
}
