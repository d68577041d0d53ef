package wishlist

import (
	"context"
	"fmt"
	"time"

	"github.com/gamevault/game-library-backend/internal/domain/catalog"
	"github.com/gamevault/game-library-backend/internal/pkg/apperror"
	"github.com/gamevault/game-library-backend/internal/pkg/dbutil"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GameLookup resolves catalog games
type GameLookup interface {
	GetGame(ctx context.Context, id uint) (*catalog.Game, error)
}

// Service handles wishlist business logic
type Service struct {
	db    *gorm.DB
	games GameLookup
	log   logrus.FieldLogger
}

// NewService creates a new wishlist service
func NewService(db *gorm.DB, games GameLookup, log logrus.FieldLogger) *Service {
	return &Service{db: db, games: games, log: log}
}

// GetWishlist returns the user's wishlist, most recently added first
func (s *Service) GetWishlist(ctx context.Context, userID uint) ([]WishlistItem, error) {
	var items []WishlistItem
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("added_at DESC").Order("id DESC").Find(&items).Error; err != nil {
		return nil, apperror.Internal("failed to retrieve wishlist items", err)
	}
	return items, nil
}

// AddToWishlist adds a game to the wishlist with a title and image snapshot
func (s *Service) AddToWishlist(ctx context.Context, userID, gameID uint) (*WishlistItem, error) {
	game, err := s.games.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	exists, err := s.IsInWishlist(ctx, userID, gameID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.InvalidState("game already in wishlist")
	}

	item := &WishlistItem{
		UserID:       userID,
		GameID:       game.ID,
		GameTitle:    game.Title,
		GameImageURL: game.ImageURL,
		AddedAt:      time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		if dbutil.IsDuplicateKey(err) {
			return nil, apperror.InvalidState("game already in wishlist")
		}
		return nil, apperror.Internal("failed to add to wishlist", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "game_id": gameID}).Debug("game added to wishlist")
	return item, nil
}

// RemoveFromWishlist removes a game from the wishlist
func (s *Service) RemoveFromWishlist(ctx context.Context, userID, gameID uint) error {
	result := s.db.WithContext(ctx).Where("user_id = ? AND game_id = ?", userID, gameID).Delete(&WishlistItem{})
	if result.Error != nil {
		return apperror.Internal("failed to remove from wishlist", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("game not in wishlist")
	}
	return nil
}

// IsInWishlist checks if a game is in the user's wishlist
func (s *Service) IsInWishlist(ctx context.Context, userID, gameID uint) (bool, error) {
	ok, err := dbutil.Exists(s.db.WithContext(ctx), &WishlistItem{}, "user_id = ? AND game_id = ?", userID, gameID)
	if err != nil {
		return false, apperror.Internal("failed to check wishlist", err)
	}
	return ok, nil
}

// Count returns the number of wishlisted games
func (s *Service) Count(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&WishlistItem{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count wishlist items: %w", err)
	}
	return count, nil
}
