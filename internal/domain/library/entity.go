// internal/domain/library/entity.go
package library

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is a game permanently owned by a user. Entries are never updated
// or removed once written.
type Entry struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       uint            `gorm:"not null;uniqueIndex:idx_library_user_game" json:"user_id"`
	GameID       uint            `gorm:"not null;uniqueIndex:idx_library_user_game" json:"game_id"`
	GameTitle    string          `gorm:"not null;size:255" json:"game_title"`
	GameImageURL string          `gorm:"size:500" json:"game_image_url"`
	PricePaid    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price_paid"`
	PurchasedAt  time.Time       `gorm:"not null" json:"purchased_at"`
}

// TableName overrides the table name
func (Entry) TableName() string {
	return "library_entries"
}
