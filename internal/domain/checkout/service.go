// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gamevault/game-library-backend/internal/config"
	"github.com/gamevault/game-library-backend/internal/domain/achievement"
	"github.com/gamevault/game-library-backend/internal/domain/cart"
	"github.com/gamevault/game-library-backend/internal/domain/library"
	"github.com/gamevault/game-library-backend/internal/domain/order"
	"github.com/gamevault/game-library-backend/internal/domain/user"
	"github.com/gamevault/game-library-backend/internal/pkg/apperror"
	"github.com/gamevault/game-library-backend/internal/pkg/dbutil"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Evaluator runs the achievement rules for a user after a purchase
type Evaluator interface {
	Evaluate(ctx context.Context, userID uint) ([]achievement.Achievement, error)
}

// Service turns a user's cart into an order and library entries
type Service struct {
	db            *gorm.DB
	carts         *cart.Repository
	library       *library.Repository
	orders        *order.Repository
	evaluator     Evaluator
	timeout       time.Duration
	paymentMethod string
	log           logrus.FieldLogger
	now           func() time.Time
}

// NewService creates a new checkout service
func NewService(
	db *gorm.DB,
	carts *cart.Repository,
	lib *library.Repository,
	orders *order.Repository,
	evaluator Evaluator,
	cfg config.CheckoutConfig,
	log logrus.FieldLogger,
) *Service {
	paymentMethod := cfg.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = order.PaymentMethodCreditCard
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Service{
		db:            db,
		carts:         carts,
		library:       lib,
		orders:        orders,
		evaluator:     evaluator,
		timeout:       timeout,
		paymentMethod: paymentMethod,
		log:           log,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Result is the outcome of a successful checkout. Achievement evaluation
// runs after the purchase commits; its failure is carried in
// EvaluationError and never undoes the purchase.
type Result struct {
	Order           *order.Order              `json:"order"`
	Unlocked        []achievement.Achievement `json:"new_achievements"`
	EvaluationError error                     `json:"-"`
}

// Checkout purchases every game in the user's cart. The order, the new
// library entries and the emptied cart commit together or not at all.
// Games the user already owns are charged but not duplicated in the library.
func (s *Service) Checkout(ctx context.Context, userID uint) (*Result, error) {
	// The purchase must not be half-abandoned by a client disconnect, only by the timeout.
	txCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	logger := s.log.WithField("user_id", userID)

	var placed *order.Order
	err := s.db.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
		o, err := s.placeOrder(txCtx, tx, userID)
		if err != nil {
			return err
		}
		placed = o
		return nil
	})
	if err != nil {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		logger.WithError(err).Error("checkout rolled back")
		return nil, apperror.Aborted("checkout failed, no changes were made", err)
	}

	logger.WithFields(logrus.Fields{
		"order_id":     placed.ID,
		"order_number": placed.OrderNumber,
		"total":        placed.TotalAmount.StringFixed(2),
		"items":        len(placed.Items),
	}).Info("checkout completed")

	result := &Result{Order: placed, Unlocked: []achievement.Achievement{}}
	if s.evaluator == nil {
		return result, nil
	}

	evalCtx, cancelEval := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancelEval()

	unlocked, err := s.evaluator.Evaluate(evalCtx, userID)
	if unlocked != nil {
		result.Unlocked = unlocked
	}
	if err != nil {
		result.EvaluationError = err
		logger.WithError(err).WithField("order_id", placed.ID).Warn("achievement evaluation failed after checkout")
	}
	return result, nil
}

func (s *Service) placeOrder(ctx context.Context, tx *gorm.DB, userID uint) (*order.Order, error) {
	// Row lock serializes concurrent checkouts of the same user.
	var u user.User
	if err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").First(&u, userID).Error; err != nil {
		if dbutil.IsNotFound(err) {
			return nil, apperror.NotFound(fmt.Sprintf("user %d not found", userID))
		}
		return nil, fmt.Errorf("failed to lock user: %w", err)
	}

	carts := s.carts.WithTx(tx)
	lines, err := carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, apperror.InvalidState("cart is empty")
	}

	now := s.now()
	o := &order.Order{
		UserID:        userID,
		Status:        order.OrderStatusCompleted,
		PaymentMethod: s.paymentMethod,
		CreatedAt:     now,
		Items:         make([]order.OrderItem, 0, len(lines)),
	}
	for i, line := range lines {
		o.Items = append(o.Items, order.OrderItem{
			Position:     i,
			GameID:       line.GameID,
			GameTitle:    line.GameTitle,
			GameImageURL: line.GameImageURL,
			Price:        line.Price,
		})
	}
	o.TotalAmount = o.ItemsTotal()

	lib := s.library.WithTx(tx)
	for _, line := range lines {
		owned, err := lib.Exists(ctx, userID, line.GameID)
		if err != nil {
			return nil, err
		}
		if owned {
			continue
		}
		if err := lib.Create(ctx, &library.Entry{
			UserID:       userID,
			GameID:       line.GameID,
			GameTitle:    line.GameTitle,
			GameImageURL: line.GameImageURL,
			PricePaid:    line.Price,
			PurchasedAt:  now,
		}); err != nil {
			return nil, fmt.Errorf("failed to add game %d to library: %w", line.GameID, err)
		}
	}

	if err := s.orders.WithTx(tx).Create(ctx, o); err != nil {
		return nil, err
	}

	if _, err := carts.DeleteAllByUser(ctx, userID); err != nil {
		return nil, err
	}
	return o, nil
}

// SummaryLine is one cart line as it would be purchased
type SummaryLine struct {
	GameID       uint            `json:"game_id"`
	GameTitle    string          `json:"game_title"`
	Price        decimal.Decimal `json:"price"`
	AlreadyOwned bool            `json:"already_owned"`
}

// Summary previews a checkout without writing anything
type Summary struct {
	Items         []SummaryLine   `json:"items"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	CanCheckout   bool            `json:"can_checkout"`
}

// GetCheckoutSummary previews the order the user's cart would produce,
// flagging games that are already in the library.
func (s *Service) GetCheckoutSummary(ctx context.Context, userID uint) (*Summary, error) {
	lines, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("failed to load cart", err)
	}

	owned, err := s.library.OwnedGameIDs(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("failed to load library", err)
	}
	ownedSet := make(map[uint]struct{}, len(owned))
	for _, id := range owned {
		ownedSet[id] = struct{}{}
	}

	summary := &Summary{
		Items:         make([]SummaryLine, 0, len(lines)),
		Total:         decimal.Zero,
		PaymentMethod: s.paymentMethod,
		CanCheckout:   len(lines) > 0,
	}
	for _, line := range lines {
		_, isOwned := ownedSet[line.GameID]
		summary.Items = append(summary.Items, SummaryLine{
			GameID:       line.GameID,
			GameTitle:    line.GameTitle,
			Price:        line.Price,
			AlreadyOwned: isOwned,
		})
		summary.Total = summary.Total.Add(line.Price)
	}
	return summary, nil
}
