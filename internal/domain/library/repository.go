// internal/domain/library/repository.go
package library

import (
	"context"
	"fmt"

	"github.com/gamevault/game-library-backend/internal/pkg/dbutil"
	"gorm.io/gorm"
)

// Repository persists library entries
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new library repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Exists reports whether the user owns the game
func (r *Repository) Exists(ctx context.Context, userID, gameID uint) (bool, error) {
	ok, err := dbutil.Exists(r.db.WithContext(ctx), &Entry{}, "user_id = ? AND game_id = ?", userID, gameID)
	if err != nil {
		return false, fmt.Errorf("failed to check library entry: %w", err)
	}
	return ok, nil
}

// Create inserts a library entry
func (r *Repository) Create(ctx context.Context, entry *Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// CountByUser returns the size of the user's library
func (r *Repository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Entry{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count library entries: %w", err)
	}
	return count, nil
}

// ListByUser returns the user's library, most recent purchase first
func (r *Repository) ListByUser(ctx context.Context, userID uint) ([]Entry, error) {
	var entries []Entry
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("purchased_at DESC").Order("id DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list library entries: %w", err)
	}
	return entries, nil
}

// OwnedGameIDs returns the ids of every game the user owns
func (r *Repository) OwnedGameIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&Entry{}).Where("user_id = ?", userID).Pluck("game_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list owned games: %w", err)
	}
	return ids, nil
}
