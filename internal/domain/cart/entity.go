// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one game in a user's cart. Title, image and price are copied
// from the catalog when the line is added.
type CartItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       uint            `gorm:"not null;uniqueIndex:idx_cart_user_game" json:"user_id"`
	GameID       uint            `gorm:"not null;uniqueIndex:idx_cart_user_game" json:"game_id"`
	GameTitle    string          `gorm:"not null;size:255" json:"game_title"`
	GameImageURL string          `gorm:"size:500" json:"game_image_url"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	AddedAt      time.Time       `gorm:"not null" json:"added_at"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// Cart is the response view of a user's cart
type Cart struct {
	UserID    uint            `json:"user_id"`
	Items     []CartItem      `json:"items"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}
