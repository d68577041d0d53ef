// Package recommendation suggests catalog games based on a user's library.
package recommendation

import (
	"context"

	"github.com/gamevault/game-library-backend/internal/domain/catalog"
	"github.com/gamevault/game-library-backend/internal/domain/library"
	"github.com/gamevault/game-library-backend/internal/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Limit is the maximum number of recommendations returned
const Limit = 10

// Service builds genre-based recommendations
type Service struct {
	games       *catalog.Repository
	library     *library.Repository
	topRatedMin decimal.Decimal
}

// NewService creates a new recommendation service
func NewService(games *catalog.Repository, lib *library.Repository, topRatedMin float64) *Service {
	return &Service{
		games:       games,
		library:     lib,
		topRatedMin: decimal.NewFromFloat(topRatedMin),
	}
}

// Recommend returns up to Limit unowned games sharing a genre with the
// user's library, topped up with top-rated games.
func (s *Service) Recommend(ctx context.Context, userID uint) ([]catalog.Game, error) {
	owned, err := s.library.OwnedGameIDs(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("failed to load library", err)
	}

	genres, err := s.games.GenresOf(ctx, owned)
	if err != nil {
		return nil, apperror.Internal("failed to load genres", err)
	}

	picked, err := s.games.ByGenres(ctx, genres, owned, Limit)
	if err != nil {
		return nil, apperror.Internal("failed to load recommendations", err)
	}
	if len(picked) >= Limit {
		return picked, nil
	}

	popular, err := s.games.TopRated(ctx, s.topRatedMin, 0)
	if err != nil {
		return nil, apperror.Internal("failed to load top rated games", err)
	}

	skip := make(map[uint]struct{}, len(owned)+len(picked))
	for _, id := range owned {
		skip[id] = struct{}{}
	}
	for _, g := range picked {
		skip[g.ID] = struct{}{}
	}
	for _, g := range popular {
		if len(picked) >= Limit {
			break
		}
		if _, ok := skip[g.ID]; ok {
			continue
		}
		skip[g.ID] = struct{}{}
		picked = append(picked, g)
	}

	if picked == nil {
		picked = []catalog.Game{}
	}
	return picked, nil
}
