// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"fmt"

	"github.com/gamevault/game-library-backend/internal/pkg/apperror"
	"github.com/gamevault/game-library-backend/internal/pkg/dbutil"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Service handles catalog business logic
type Service struct {
	repo        *Repository
	cache       *Cache
	topRatedMin decimal.Decimal
	log         logrus.FieldLogger
}

// NewService creates a new catalog service
func NewService(repo *Repository, cache *Cache, topRatedMin float64, log logrus.FieldLogger) *Service {
	return &Service{
		repo:        repo,
		cache:       cache,
		topRatedMin: decimal.NewFromFloat(topRatedMin),
		log:         log,
	}
}

// GetGame returns a game by id, reading through the cache
func (s *Service) GetGame(ctx context.Context, id uint) (*Game, error) {
	if cached, err := s.cache.Get(ctx, id); err != nil {
		s.log.WithError(err).WithField("game_id", id).Warn("catalog cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	game, err := s.repo.Get(ctx, id)
	if err != nil {
		if dbutil.IsNotFound(err) {
			return nil, apperror.NotFound(fmt.Sprintf("game %d not found", id))
		}
		return nil, apperror.Internal("failed to load game", err)
	}

	if err := s.cache.Set(ctx, game); err != nil {
		s.log.WithError(err).WithField("game_id", id).Warn("catalog cache write failed")
	}
	return game, nil
}

// ListGames returns games matching the filter
func (s *Service) ListGames(ctx context.Context, f Filter) ([]Game, error) {
	games, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, apperror.Internal("failed to list games", err)
	}
	return games, nil
}

// Search returns games whose title contains the query, case-insensitively
func (s *Service) Search(ctx context.Context, title string, limit int) ([]Game, error) {
	return s.ListGames(ctx, Filter{Title: title, Limit: limit})
}

// TopRated returns games at or above the configured rating threshold
func (s *Service) TopRated(ctx context.Context, limit int) ([]Game, error) {
	games, err := s.repo.TopRated(ctx, s.topRatedMin, limit)
	if err != nil {
		return nil, apperror.Internal("failed to list top rated games", err)
	}
	return games, nil
}
