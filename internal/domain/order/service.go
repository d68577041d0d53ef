// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"

	"github.com/gamevault/game-library-backend/internal/pkg/apperror"
	"github.com/gamevault/game-library-backend/internal/pkg/dbutil"
)

// Service handles order queries. Orders are only ever written by checkout.
type Service struct {
	repo *Repository
}

// NewService creates a new order service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// GetUserOrders returns the user's order history, newest first
func (s *Service) GetUserOrders(ctx context.Context, userID uint) ([]Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("failed to load orders", err)
	}
	return orders, nil
}

// GetUserOrder returns one of the user's orders. Orders of other users
// are reported as not found.
func (s *Service) GetUserOrder(ctx context.Context, userID, orderID uint) (*Order, error) {
	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		if dbutil.IsNotFound(err) {
			return nil, apperror.NotFound(fmt.Sprintf("order %d not found", orderID))
		}
		return nil, apperror.Internal("failed to load order", err)
	}
	if o.UserID != userID {
		return nil, apperror.NotFound(fmt.Sprintf("order %d not found", orderID))
	}
	return o, nil
}

// GetOrders returns a page of all orders for administrators
func (s *Service) GetOrders(ctx context.Context, page, limit int) (*OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	orders, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, apperror.Internal("failed to load orders", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &OrderPage{
		Orders: orders,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}, nil
}
