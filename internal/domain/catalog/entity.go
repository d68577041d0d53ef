// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultPrice is applied to games imported without a price
var DefaultPrice = decimal.RequireFromString("59.99")

// Game represents a purchasable catalog title
type Game struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Title         string          `gorm:"not null;size:255;index" json:"title"`
	Description   string          `gorm:"type:text" json:"description"`
	Price         decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Genre         string          `gorm:"size:100;index" json:"genre"`
	Platform      string          `gorm:"size:100;index" json:"platform"`
	Developer     string          `gorm:"size:255" json:"developer"`
	ReleaseDate   string          `gorm:"size:20" json:"release_date"`
	PlaytimeHours int             `json:"playtime_hours"`
	Rating        decimal.Decimal `gorm:"type:numeric(3,2);not null;default:0;index" json:"rating"`
	ImageURL      string          `gorm:"size:500" json:"image_url"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName overrides the table name
func (Game) TableName() string {
	return "games"
}

// Filter narrows a catalog listing. Zero values are ignored.
type Filter struct {
	Genre     string
	Platform  string
	Title     string
	MinRating *decimal.Decimal
	Limit     int
}
