package wishlist

import (
	"time"
)

// WishlistItem represents a wishlist item
type WishlistItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_game" json:"user_id"`
	GameID       uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_game" json:"game_id"`
	GameTitle    string    `gorm:"not null;size:255" json:"game_title"`
	GameImageURL string    `gorm:"size:500" json:"game_image_url"`
	AddedAt      time.Time `gorm:"not null" json:"added_at"`
}

// TableName overrides the table name
func (WishlistItem) TableName() string {
	return "wishlist_items"
}
