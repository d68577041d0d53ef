// internal/domain/review/repository.go
package review

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Repository persists reviews
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new review repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByUserAndGame loads the user's review of a game
func (r *Repository) FindByUserAndGame(ctx context.Context, userID, gameID uint) (*Review, error) {
	var rv Review
	if err := r.db.WithContext(ctx).Where("user_id = ? AND game_id = ?", userID, gameID).First(&rv).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

// Save inserts or updates a review
func (r *Repository) Save(ctx context.Context, rv *Review) error {
	return r.db.WithContext(ctx).Save(rv).Error
}

// Delete removes the user's review of a game and reports whether one existed
func (r *Repository) Delete(ctx context.Context, userID, gameID uint) (bool, error) {
	result := r.db.WithContext(ctx).Where("user_id = ? AND game_id = ?", userID, gameID).Delete(&Review{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete review: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ListByGame returns a game's reviews, newest first
func (r *Repository) ListByGame(ctx context.Context, gameID uint) ([]Review, error) {
	var reviews []Review
	if err := r.db.WithContext(ctx).Where("game_id = ?", gameID).
		Order("created_at DESC").Order("id DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// RatingsByGame returns every rating given to a game
func (r *Repository) RatingsByGame(ctx context.Context, gameID uint) ([]int, error) {
	var ratings []int
	if err := r.db.WithContext(ctx).Model(&Review{}).Where("game_id = ?", gameID).Pluck("rating", &ratings).Error; err != nil {
		return nil, fmt.Errorf("failed to load ratings: %w", err)
	}
	return ratings, nil
}

// CountByUser returns how many reviews the user has written
func (r *Repository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Review{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}

// Count returns the number of reviews
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Review{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}
