// internal/domain/review/entity.go
package review

import (
	"time"

	"github.com/shopspring/decimal"
)

// Review is a user's rating of a game. A user has at most one review per game.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_user_game" json:"user_id"`
	Username  string    `gorm:"not null;size:100" json:"username"`
	GameID    uint      `gorm:"not null;uniqueIndex:idx_review_user_game;index" json:"game_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Review) TableName() string {
	return "reviews"
}

// UpsertReviewRequest represents the body of a review submission
type UpsertReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// Summary aggregates the reviews of one game
type Summary struct {
	GameID          uint            `json:"game_id"`
	AverageRating   decimal.Decimal `json:"average_rating"`
	TotalReviews    int64           `json:"total_reviews"`
	RatingBreakdown map[int]int     `json:"rating_breakdown"`
}
