// internal/domain/cart/service.go
package cart

import (
	"context"
	"time"

	"github.com/gamevault/game-library-backend/internal/domain/catalog"
	"github.com/gamevault/game-library-backend/internal/pkg/apperror"
	"github.com/gamevault/game-library-backend/internal/pkg/dbutil"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// GameLookup resolves catalog games for snapshotting
type GameLookup interface {
	GetGame(ctx context.Context, id uint) (*catalog.Game, error)
}

// Service handles cart business logic
type Service struct {
	repo  *Repository
	games GameLookup
	log   logrus.FieldLogger
}

// NewService creates a new cart service
func NewService(repo *Repository, games GameLookup, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, games: games, log: log}
}

// GetCart returns the user's cart with its subtotal
func (s *Service) GetCart(ctx context.Context, userID uint) (*Cart, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("failed to load cart", err)
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price)
	}

	return &Cart{
		UserID:    userID,
		Items:     items,
		ItemCount: len(items),
		Subtotal:  subtotal,
	}, nil
}

// AddToCart snapshots the game into the user's cart. A game already in
// the cart is rejected; owning the game does not block adding it.
func (s *Service) AddToCart(ctx context.Context, userID, gameID uint) (*CartItem, error) {
	game, err := s.games.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, userID, gameID)
	if err != nil {
		return nil, apperror.Internal("failed to add to cart", err)
	}
	if exists {
		return nil, apperror.InvalidState("game already in cart")
	}

	item := &CartItem{
		UserID:       userID,
		GameID:       game.ID,
		GameTitle:    game.Title,
		GameImageURL: game.ImageURL,
		Price:        game.Price,
		AddedAt:      time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		if dbutil.IsDuplicateKey(err) {
			return nil, apperror.InvalidState("game already in cart")
		}
		return nil, apperror.Internal("failed to add to cart", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "game_id": gameID}).Debug("game added to cart")
	return item, nil
}

// RemoveFromCart removes one game from the user's cart
func (s *Service) RemoveFromCart(ctx context.Context, userID, gameID uint) error {
	removed, err := s.repo.Delete(ctx, userID, gameID)
	if err != nil {
		return apperror.Internal("failed to remove from cart", err)
	}
	if !removed {
		return apperror.NotFound("game not in cart")
	}
	return nil
}

// ClearCart removes every line from the user's cart
func (s *Service) ClearCart(ctx context.Context, userID uint) error {
	if _, err := s.repo.DeleteAllByUser(ctx, userID); err != nil {
		return apperror.Internal("failed to clear cart", err)
	}
	return nil
}
