// internal/domain/library/service.go
package library

import (
	"context"
	"time"

	"github.com/gamevault/game-library-backend/internal/domain/catalog"
	"github.com/gamevault/game-library-backend/internal/pkg/apperror"
	"github.com/gamevault/game-library-backend/internal/pkg/dbutil"
	"github.com/sirupsen/logrus"
)

// GameLookup resolves catalog games
type GameLookup interface {
	GetGame(ctx context.Context, id uint) (*catalog.Game, error)
}

// Service handles library business logic
type Service struct {
	repo  *Repository
	games GameLookup
	log   logrus.FieldLogger
}

// NewService creates a new library service
func NewService(repo *Repository, games GameLookup, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, games: games, log: log}
}

// ListGames returns the games owned by the user
func (s *Service) ListGames(ctx context.Context, userID uint) ([]Entry, error) {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("failed to load library", err)
	}
	return entries, nil
}

// IsOwned reports whether the user owns the game
func (s *Service) IsOwned(ctx context.Context, userID, gameID uint) (bool, error) {
	owned, err := s.repo.Exists(ctx, userID, gameID)
	if err != nil {
		return false, apperror.Internal("failed to check library", err)
	}
	return owned, nil
}

// Grant adds a game to the user's library at its current catalog price
// without going through checkout.
func (s *Service) Grant(ctx context.Context, userID, gameID uint) (*Entry, error) {
	game, err := s.games.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	owned, err := s.IsOwned(ctx, userID, gameID)
	if err != nil {
		return nil, err
	}
	if owned {
		return nil, apperror.InvalidState("game already in library")
	}

	entry := &Entry{
		UserID:       userID,
		GameID:       game.ID,
		GameTitle:    game.Title,
		GameImageURL: game.ImageURL,
		PricePaid:    game.Price,
		PurchasedAt:  time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		if dbutil.IsDuplicateKey(err) {
			return nil, apperror.InvalidState("game already in library")
		}
		return nil, apperror.Internal("failed to add to library", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "game_id": gameID}).Info("game granted to library")
	return entry, nil
}
