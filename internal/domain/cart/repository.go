// internal/domain/cart/repository.go
package cart

import (
	"context"
	"fmt"

	"github.com/gamevault/game-library-backend/internal/pkg/dbutil"
	"gorm.io/gorm"
)

// Repository persists cart lines
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new cart repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListByUser returns the user's cart lines in insertion order
func (r *Repository) ListByUser(ctx context.Context, userID uint) ([]CartItem, error) {
	var items []CartItem
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	return items, nil
}

// Exists reports whether the game is already in the user's cart
func (r *Repository) Exists(ctx context.Context, userID, gameID uint) (bool, error) {
	ok, err := dbutil.Exists(r.db.WithContext(ctx), &CartItem{}, "user_id = ? AND game_id = ?", userID, gameID)
	if err != nil {
		return false, fmt.Errorf("failed to check cart item: %w", err)
	}
	return ok, nil
}

// Create inserts a cart line
func (r *Repository) Create(ctx context.Context, item *CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Delete removes one game from the cart and reports whether a line existed
func (r *Repository) Delete(ctx context.Context, userID, gameID uint) (bool, error) {
	result := r.db.WithContext(ctx).Where("user_id = ? AND game_id = ?", userID, gameID).Delete(&CartItem{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to remove cart item: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteAllByUser empties the user's cart
func (r *Repository) DeleteAllByUser(ctx context.Context, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&CartItem{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear cart: %w", result.Error)
	}
	return result.RowsAffected, nil
}
