package achievement

import (
	"context"
	"fmt"

	"github.com/gamevault/game-library-backend/internal/pkg/dbutil"
	"gorm.io/gorm"
)

// Repository persists unlocked achievements
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new achievement repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Exists reports whether the user already unlocked the type
func (r *Repository) Exists(ctx context.Context, userID uint, t Type) (bool, error) {
	ok, err := dbutil.Exists(r.db.WithContext(ctx), &Achievement{}, "user_id = ? AND achievement_type = ?", userID, t)
	if err != nil {
		return false, fmt.Errorf("failed to check achievement: %w", err)
	}
	return ok, nil
}

// Create inserts an unlocked achievement
func (r *Repository) Create(ctx context.Context, a *Achievement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// ListByUser returns the user's achievements in unlock order
func (r *Repository) ListByUser(ctx context.Context, userID uint) ([]Achievement, error) {
	var out []Achievement
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("unlocked_at ASC").Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	return out, nil
}
