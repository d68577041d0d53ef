package achievement

import (
	"context"
	"fmt"

	"github.com/gamevault/game-library-backend/internal/domain/library"
	"github.com/gamevault/game-library-backend/internal/domain/order"
	"github.com/gamevault/game-library-backend/internal/domain/review"
	"github.com/shopspring/decimal"
)

// Facts is the user state the rules are evaluated against
type Facts struct {
	CompletedOrders int64
	LibrarySize     int64
	ReviewCount     int64
	TotalSpent      decimal.Decimal
}

// FactSource loads the facts for one user
type FactSource interface {
	Facts(ctx context.Context, userID uint) (Facts, error)
}

var (
	spend100 = decimal.NewFromInt(100)
	spend500 = decimal.NewFromInt(500)
)

// Candidates returns the achievement types whose rule holds for f.
// Within a tiered category only the highest satisfied tier is returned,
// so a user who jumps straight past a lower tier never receives it.
func Candidates(f Facts) []Type {
	var out []Type

	if f.CompletedOrders >= 1 {
		out = append(out, FirstPurchase)
	}

	switch {
	case f.LibrarySize >= 10:
		out = append(out, Collector10)
	case f.LibrarySize >= 5:
		out = append(out, Collector5)
	}

	switch {
	case f.ReviewCount >= 5:
		out = append(out, Reviewer5)
	case f.ReviewCount >= 1:
		out = append(out, Reviewer)
	}

	switch {
	case f.TotalSpent.GreaterThanOrEqual(spend500):
		out = append(out, Spender500)
	case f.TotalSpent.GreaterThanOrEqual(spend100):
		out = append(out, Spender100)
	}

	return out
}

// StoreFacts reads facts from the order, library and review repositories
type StoreFacts struct {
	Orders  *order.Repository
	Library *library.Repository
	Reviews *review.Repository
}

// Facts implements FactSource
func (s *StoreFacts) Facts(ctx context.Context, userID uint) (Facts, error) {
	var (
		f   Facts
		err error
	)

	if f.CompletedOrders, err = s.Orders.CountCompletedByUser(ctx, userID); err != nil {
		return Facts{}, fmt.Errorf("failed to count orders: %w", err)
	}
	if f.LibrarySize, err = s.Library.CountByUser(ctx, userID); err != nil {
		return Facts{}, fmt.Errorf("failed to count library: %w", err)
	}
	if f.ReviewCount, err = s.Reviews.CountByUser(ctx, userID); err != nil {
		return Facts{}, fmt.Errorf("failed to count reviews: %w", err)
	}
	if f.TotalSpent, err = s.Orders.TotalSpent(ctx, userID); err != nil {
		return Facts{}, fmt.Errorf("failed to sum spend: %w", err)
	}
	return f, nil
}
