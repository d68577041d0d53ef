// internal/domain/analytics/service.go
package analytics

import (
	"context"

	"github.com/gamevault/game-library-backend/internal/domain/achievement"
	"github.com/gamevault/game-library-backend/internal/domain/catalog"
	"github.com/gamevault/game-library-backend/internal/domain/library"
	"github.com/gamevault/game-library-backend/internal/domain/order"
	"github.com/gamevault/game-library-backend/internal/domain/review"
	"github.com/gamevault/game-library-backend/internal/domain/user"
	"github.com/gamevault/game-library-backend/internal/domain/wishlist"
	"github.com/gamevault/game-library-backend/internal/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Service computes per-user and store-wide statistics
type Service struct {
	orders       *order.Repository
	library      *library.Repository
	reviews      *review.Repository
	wishlist     *wishlist.Service
	achievements *achievement.Repository
	games        *catalog.Repository
	users        *user.AdminService
}

// Deps groups the stores the analytics service reads from
type Deps struct {
	Orders       *order.Repository
	Library      *library.Repository
	Reviews      *review.Repository
	Wishlist     *wishlist.Service
	Achievements *achievement.Repository
	Games        *catalog.Repository
	Users        *user.AdminService
}

// NewService creates a new analytics service
func NewService(d Deps) *Service {
	return &Service{
		orders:       d.Orders,
		library:      d.Library,
		reviews:      d.Reviews,
		wishlist:     d.Wishlist,
		achievements: d.Achievements,
		games:        d.Games,
		users:        d.Users,
	}
}

// UserStats represents the profile statistics of one user
type UserStats struct {
	GamesOwned           int64           `json:"games_owned"`
	WishlistCount        int64           `json:"wishlist_count"`
	ReviewsCount         int64           `json:"reviews_count"`
	TotalSpent           decimal.Decimal `json:"total_spent"`
	TotalOrders          int64           `json:"total_orders"`
	AchievementsUnlocked int             `json:"achievements_unlocked"`
}

// DashboardStats represents overall store statistics
type DashboardStats struct {
	TotalUsers    int64           `json:"total_users"`
	TotalOrders   int64           `json:"total_orders"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
	TotalGames    int64           `json:"total_games"`
	TotalReviews  int64           `json:"total_reviews"`
}

// GetUserStats returns the statistics shown on a user's profile
func (s *Service) GetUserStats(ctx context.Context, userID uint) (*UserStats, error) {
	stats := &UserStats{}
	var err error

	if stats.GamesOwned, err = s.library.CountByUser(ctx, userID); err != nil {
		return nil, apperror.Internal("failed to load user stats", err)
	}
	if stats.WishlistCount, err = s.wishlist.Count(ctx, userID); err != nil {
		return nil, apperror.Internal("failed to load user stats", err)
	}
	if stats.ReviewsCount, err = s.reviews.CountByUser(ctx, userID); err != nil {
		return nil, apperror.Internal("failed to load user stats", err)
	}
	if stats.TotalOrders, err = s.orders.CountCompletedByUser(ctx, userID); err != nil {
		return nil, apperror.Internal("failed to load user stats", err)
	}
	if stats.TotalSpent, err = s.orders.TotalSpent(ctx, userID); err != nil {
		return nil, apperror.Internal("failed to load user stats", err)
	}

	unlocked, err := s.achievements.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("failed to load user stats", err)
	}
	stats.AchievementsUnlocked = len(unlocked)

	return stats, nil
}

// GetDashboardStats returns store-wide totals for administrators
func (s *Service) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{AvgOrderValue: decimal.Zero}
	var err error

	if stats.TotalUsers, err = s.users.CountUsers(ctx); err != nil {
		return nil, apperror.Internal("failed to load dashboard stats", err)
	}
	if stats.TotalRevenue, stats.TotalOrders, err = s.orders.Revenue(ctx); err != nil {
		return nil, apperror.Internal("failed to load dashboard stats", err)
	}
	if stats.TotalGames, err = s.games.Count(ctx); err != nil {
		return nil, apperror.Internal("failed to load dashboard stats", err)
	}
	if stats.TotalReviews, err = s.reviews.Count(ctx); err != nil {
		return nil, apperror.Internal("failed to load dashboard stats", err)
	}

	if stats.TotalOrders > 0 {
		stats.AvgOrderValue = stats.TotalRevenue.DivRound(decimal.NewFromInt(stats.TotalOrders), 2)
	}
	return stats, nil
}
