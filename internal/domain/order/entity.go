// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
)

// PaymentMethodCreditCard is the only payment method checkout records
const PaymentMethodCreditCard = "CREDIT_CARD"

// Order is an immutable purchase record
type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OrderNumber   string          `gorm:"uniqueIndex;not null;size:64" json:"order_number"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	Status        OrderStatus     `gorm:"not null;size:20;index" json:"status"`
	PaymentMethod string          `gorm:"not null;size:50" json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem is one purchased game, in cart order
type OrderItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OrderID      uint            `gorm:"not null;index" json:"order_id"`
	Position     int             `gorm:"not null" json:"position"`
	GameID       uint            `gorm:"not null;index" json:"game_id"`
	GameTitle    string          `gorm:"not null;size:255" json:"game_title"`
	GameImageURL string          `gorm:"size:500" json:"game_image_url"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// GenerateOrderNumber formats the order number from the creation date and id
func (o *Order) GenerateOrderNumber() string {
	// Format: ORD-YYYYMMDD-XXXXX
	created := o.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	return fmt.Sprintf("ORD-%s-%05d", created.Format("20060102"), o.ID)
}

// ItemsTotal sums the item prices
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price)
	}
	return total
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// OrderPage is one page of an order listing
type OrderPage struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}
