package handlers

import (
	"net/http"
	"strings"

	"github.com/gamevault/game-library-backend/internal/domain/catalog"
	"github.com/gamevault/game-library-backend/internal/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GameHandler serves the public catalog
type GameHandler struct {
	catalogService *catalog.Service
	maxLimit       int
}

// NewGameHandler creates a new game handler
func NewGameHandler(catalogService *catalog.Service, maxLimit int) *GameHandler {
	if maxLimit <= 0 {
		maxLimit = 100
	}
	return &GameHandler{catalogService: catalogService, maxLimit: maxLimit}
}

func (h *GameHandler) limit(c *gin.Context) int {
	return min(queryInt(c, "limit", h.maxLimit), h.maxLimit)
}

// GetGames handles GET /games?genre=&platform=&title=&min_rating=&limit=
func (h *GameHandler) GetGames(c *gin.Context) {
	f := catalog.Filter{
		Genre:    c.Query("genre"),
		Platform: c.Query("platform"),
		Title:    c.Query("title"),
		Limit:    h.limit(c),
	}
	if raw := c.Query("min_rating"); raw != "" {
		r, err := decimal.NewFromString(raw)
		if err != nil {
			respondError(c, apperror.InvalidArgument("invalid min_rating"))
			return
		}
		f.MinRating = &r
	}

	games, err := h.catalogService.ListGames(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Games retrieved successfully", games)
}

// GetGame handles GET /games/:id
func (h *GameHandler) GetGame(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	game, err := h.catalogService.GetGame(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Game retrieved successfully", game)
}

// SearchGames handles GET /games/search?title=
func (h *GameHandler) SearchGames(c *gin.Context) {
	title := strings.TrimSpace(c.Query("title"))
	if title == "" {
		respondError(c, apperror.InvalidArgument("title is required"))
		return
	}

	games, err := h.catalogService.Search(c.Request.Context(), title, h.limit(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Search completed", games)
}

// TopRated handles GET /games/top-rated
func (h *GameHandler) TopRated(c *gin.Context) {
	games, err := h.catalogService.TopRated(c.Request.Context(), h.limit(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Top rated games retrieved successfully", games)
}
