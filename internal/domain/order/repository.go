// internal/domain/order/repository.go
package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository persists orders and their items
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new order repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create inserts the order with its items and assigns the order number
// once the id is known.
func (r *Repository) Create(ctx context.Context, o *Order) error {
	db := r.db.WithContext(ctx)

	// placeholder keeps the unique index satisfied until the id exists
	o.OrderNumber = "PENDING-" + uuid.NewString()
	if err := db.Create(o).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	o.OrderNumber = o.GenerateOrderNumber()
	if err := db.Model(o).Update("order_number", o.OrderNumber).Error; err != nil {
		return fmt.Errorf("failed to update order number: %w", err)
	}
	return nil
}

// Get loads an order with its items
func (r *Repository) Get(ctx context.Context, id uint) (*Order, error) {
	var o Order
	if err := r.db.WithContext(ctx).Preload("Items", preloadItems).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByUser returns the user's orders newest first
func (r *Repository) ListByUser(ctx context.Context, userID uint) ([]Order, error) {
	var orders []Order
	if err := r.db.WithContext(ctx).Preload("Items", preloadItems).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// List returns one page of all orders, newest first
func (r *Repository) List(ctx context.Context, page, limit int) ([]Order, int64, error) {
	var (
		orders []Order
		total  int64
	)

	query := r.db.WithContext(ctx).Model(&Order{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (page - 1) * limit
	if err := query.Preload("Items", preloadItems).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, total, nil
}

// CountCompletedByUser returns how many completed orders the user has
func (r *Repository) CountCompletedByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Order{}).
		Where("user_id = ? AND status = ?", userID, OrderStatusCompleted).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// CompletedTotals returns the total of every completed order of the user
func (r *Repository) CompletedTotals(ctx context.Context, userID uint) ([]decimal.Decimal, error) {
	var orders []Order
	if err := r.db.WithContext(ctx).Select("id", "total_amount").
		Where("user_id = ? AND status = ?", userID, OrderStatusCompleted).
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to load order totals: %w", err)
	}

	totals := make([]decimal.Decimal, len(orders))
	for i, o := range orders {
		totals[i] = o.TotalAmount
	}
	return totals, nil
}

// TotalSpent sums the user's completed order totals exactly
func (r *Repository) TotalSpent(ctx context.Context, userID uint) (decimal.Decimal, error) {
	totals, err := r.CompletedTotals(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.Sum(decimal.Zero, totals...), nil
}

// Revenue sums every completed order
func (r *Repository) Revenue(ctx context.Context) (decimal.Decimal, int64, error) {
	var orders []Order
	if err := r.db.WithContext(ctx).Select("id", "total_amount").
		Where("status = ?", OrderStatusCompleted).
		Find(&orders).Error; err != nil {
		return decimal.Zero, 0, fmt.Errorf("failed to load order totals: %w", err)
	}

	revenue := decimal.Zero
	for _, o := range orders {
		revenue = revenue.Add(o.TotalAmount)
	}
	return revenue, int64(len(orders)), nil
}
