package handlers

import (
	"net/http"

	"github.com/gamevault/game-library-backend/internal/domain/library"
	"github.com/gin-gonic/gin"
)

// LibraryHandler handles the owned-games endpoints
type LibraryHandler struct {
	libraryService *library.Service
}

// NewLibraryHandler creates a new library handler
func NewLibraryHandler(libraryService *library.Service) *LibraryHandler {
	return &LibraryHandler{libraryService: libraryService}
}

// GetMyGames handles GET /library/my-games
func (h *LibraryHandler) GetMyGames(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	games, err := h.libraryService.ListGames(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Library retrieved successfully", games)
}

// AddGame handles POST /library/add/:gameId
func (h *LibraryHandler) AddGame(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	gameID, ok := paramID(c, "gameId")
	if !ok {
		return
	}

	entry, err := h.libraryService.Grant(c.Request.Context(), userID, gameID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Game added to library", entry)
}

// CheckOwnership handles GET /library/check/:gameId
func (h *LibraryHandler) CheckOwnership(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	gameID, ok := paramID(c, "gameId")
	if !ok {
		return
	}

	owned, err := h.libraryService.IsOwned(c.Request.Context(), userID, gameID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Ownership checked", gin.H{"game_id": gameID, "owned": owned})
}
