// internal/domain/catalog/repository.go
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository provides gorm-backed catalog queries
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get loads one game by id
func (r *Repository) Get(ctx context.Context, id uint) (*Game, error) {
	var game Game
	if err := r.db.WithContext(ctx).First(&game, id).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// List returns games matching the filter ordered by title
func (r *Repository) List(ctx context.Context, f Filter) ([]Game, error) {
	query := r.db.WithContext(ctx).Model(&Game{})

	if f.Genre != "" {
		query = query.Where("LOWER(genre) = ?", strings.ToLower(f.Genre))
	}
	if f.Platform != "" {
		query = query.Where("LOWER(platform) LIKE ?", "%"+strings.ToLower(f.Platform)+"%")
	}
	if f.Title != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(f.Title)+"%")
	}
	if f.MinRating != nil {
		query = query.Where("rating >= ?", f.MinRating.InexactFloat64())
	}
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}

	var games []Game
	if err := query.Order("title ASC").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

// TopRated returns games rated at least min, best first
func (r *Repository) TopRated(ctx context.Context, min decimal.Decimal, limit int) ([]Game, error) {
	query := r.db.WithContext(ctx).
		Where("rating >= ?", min.InexactFloat64()).
		Order("rating DESC").Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var games []Game
	if err := query.Find(&games).Error; err != nil {
		return nil, fmt.Errorf("failed to load top rated games: %w", err)
	}
	return games, nil
}

// ByGenres returns games in any of the genres, skipping the excluded ids
func (r *Repository) ByGenres(ctx context.Context, genres []string, exclude []uint, limit int) ([]Game, error) {
	if len(genres) == 0 {
		return nil, nil
	}

	query := r.db.WithContext(ctx).Where("genre IN ?", genres)
	if len(exclude) > 0 {
		query = query.Where("id NOT IN ?", exclude)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var games []Game
	if err := query.Order("rating DESC").Order("id ASC").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("failed to load games by genre: %w", err)
	}
	return games, nil
}

// Create inserts a game, applying the default price when unset
func (r *Repository) Create(ctx context.Context, game *Game) error {
	if game.Price.IsZero() {
		game.Price = DefaultPrice
	}
	if err := r.db.WithContext(ctx).Create(game).Error; err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

// Count returns the number of catalog games
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Game{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	return count, nil
}

// GenresOf returns the distinct genres of the given games
func (r *Repository) GenresOf(ctx context.Context, ids []uint) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var genres []string
	if err := r.db.WithContext(ctx).Model(&Game{}).
		Where("id IN ? AND genre <> ''", ids).
		Distinct().Order("genre").Pluck("genre", &genres).Error; err != nil {
		return nil, fmt.Errorf("failed to load genres: %w", err)
	}
	return genres, nil
}
