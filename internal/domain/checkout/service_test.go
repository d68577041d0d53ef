package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gamevault/game-library-backend/internal/config"
	"github.com/gamevault/game-library-backend/internal/domain/achievement"
	"github.com/gamevault/game-library-backend/internal/domain/cart"
	"github.com/gamevault/game-library-backend/internal/domain/library"
	"github.com/gamevault/game-library-backend/internal/domain/order"
	"github.com/gamevault/game-library-backend/internal/domain/review"
	"github.com/gamevault/game-library-backend/internal/domain/user"
	"github.com/gamevault/game-library-backend/internal/pkg/apperror"
	"github.com/gamevault/game-library-backend/internal/pkg/logger"
	"github.com/gamevault/game-library-backend/internal/pkg/testdb"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	svc     *Service
	carts   *cart.Repository
	library *library.Repository
	orders  *order.Repository
}

func newFixture(t *testing.T, evaluator func(f *fixture) Evaluator) *fixture {
	t.Helper()
	db := testdb.Open(t,
		&user.User{}, &cart.CartItem{}, &library.Entry{},
		&order.Order{}, &order.OrderItem{}, &achievement.Achievement{}, &review.Review{},
	)

	f := &fixture{
		db:      db,
		carts:   cart.NewRepository(db),
		library: library.NewRepository(db),
		orders:  order.NewRepository(db),
	}

	var ev Evaluator
	if evaluator != nil {
		ev = evaluator(f)
	}
	f.svc = NewService(db, f.carts, f.library, f.orders, ev,
		config.CheckoutConfig{Timeout: 5 * time.Second, PaymentMethod: order.PaymentMethodCreditCard},
		logger.Discard())
	return f
}

// withEngine wires the real achievement engine
func withEngine(f *fixture) Evaluator {
	facts := &achievement.StoreFacts{Orders: f.orders, Library: f.library, Reviews: review.NewRepository(f.db)}
	return achievement.NewEngine(achievement.NewRepository(f.db), facts, nil, logger.Discard())
}

func (f *fixture) addUser(t *testing.T, name string) uint {
	t.Helper()
	u := user.User{Username: name, Email: name + "@example.com", Password: "x", Role: user.RoleUser}
	require.NoError(t, f.db.Create(&u).Error)
	return u.ID
}

func (f *fixture) addToCart(t *testing.T, userID, gameID uint, price string) {
	t.Helper()
	require.NoError(t, f.carts.Create(context.Background(), &cart.CartItem{
		UserID:    userID,
		GameID:    gameID,
		GameTitle: fmt.Sprintf("Game %d", gameID),
		Price:     decimal.RequireFromString(price),
		AddedAt:   time.Now().UTC(),
	}))
}

func (f *fixture) grant(t *testing.T, userID, gameID uint, price string) {
	t.Helper()
	require.NoError(t, f.library.Create(context.Background(), &library.Entry{
		UserID:      userID,
		GameID:      gameID,
		GameTitle:   fmt.Sprintf("Game %d", gameID),
		PricePaid:   decimal.RequireFromString(price),
		PurchasedAt: time.Now().UTC(),
	}))
}

func (f *fixture) count(t *testing.T, model interface{}, userID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Where("user_id = ?", userID).Count(&n).Error)
	return n
}

func unlockedTypes(as []achievement.Achievement) []achievement.Type {
	out := make([]achievement.Type, len(as))
	for i, a := range as {
		out[i] = a.AchievementType
	}
	return out
}

func TestCheckout_ExactTotalAndLibrary(t *testing.T) {
	f := newFixture(t, withEngine)
	ctx := context.Background()
	uid := f.addUser(t, "alice")
	f.addToCart(t, uid, 1, "19.99")
	f.addToCart(t, uid, 2, "39.99")

	res, err := f.svc.Checkout(ctx, uid)
	require.NoError(t, err)
	require.NoError(t, res.EvaluationError)

	o := res.Order
	assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("59.98")), o.TotalAmount.String())
	assert.Equal(t, order.OrderStatusCompleted, o.Status)
	assert.Equal(t, order.PaymentMethodCreditCard, o.PaymentMethod)
	assert.Regexp(t, `^ORD-\d{8}-\d{5}$`, o.OrderNumber)
	require.Len(t, o.Items, 2)
	assert.Equal(t, uint(1), o.Items[0].GameID)
	assert.Equal(t, uint(2), o.Items[1].GameID)

	assert.Zero(t, f.count(t, &cart.CartItem{}, uid))
	assert.Equal(t, int64(2), f.count(t, &library.Entry{}, uid))

	stored, err := f.orders.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, stored.ItemsTotal().Equal(stored.TotalAmount))

	assert.Equal(t, []achievement.Type{achievement.FirstPurchase}, unlockedTypes(res.Unlocked))
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newFixture(t, withEngine)
	uid := f.addUser(t, "bob")

	_, err := f.svc.Checkout(context.Background(), uid)
	assert.ErrorIs(t, err, apperror.ErrInvalidState)

	assert.Zero(t, f.count(t, &order.Order{}, uid))
	assert.Zero(t, f.count(t, &library.Entry{}, uid))
	assert.Zero(t, f.count(t, &achievement.Achievement{}, uid))
}

func TestCheckout_UnknownUser(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.Checkout(context.Background(), 404)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCheckout_OwnedGameNotDuplicated(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	uid := f.addUser(t, "carol")
	f.grant(t, uid, 7, "10.00")
	f.addToCart(t, uid, 7, "19.99")

	res, err := f.svc.Checkout(ctx, uid)
	require.NoError(t, err)
	assert.True(t, res.Order.TotalAmount.Equal(decimal.RequireFromString("19.99")))

	entries, err := f.library.ListByUser(ctx, uid)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].PricePaid.Equal(decimal.RequireFromString("10.00")))
}

func TestCheckout_CollectorJumpsTier(t *testing.T) {
	f := newFixture(t, withEngine)
	uid := f.addUser(t, "dave")
	for g := uint(1); g <= 3; g++ {
		f.grant(t, uid, g, "1.00")
	}
	for g := uint(4); g <= 12; g++ {
		f.addToCart(t, uid, g, "1.00")
	}

	res, err := f.svc.Checkout(context.Background(), uid)
	require.NoError(t, err)

	got := unlockedTypes(res.Unlocked)
	assert.Contains(t, got, achievement.Collector10)
	assert.NotContains(t, got, achievement.Collector5)
	assert.Equal(t, int64(12), f.count(t, &library.Entry{}, uid))
}

func TestCheckout_SpenderTiers(t *testing.T) {
	f := newFixture(t, withEngine)
	ctx := context.Background()
	uid := f.addUser(t, "erin")

	f.addToCart(t, uid, 1, "60.00")
	res, err := f.svc.Checkout(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, []achievement.Type{achievement.FirstPurchase}, unlockedTypes(res.Unlocked))

	f.addToCart(t, uid, 2, "40.00")
	res, err = f.svc.Checkout(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, []achievement.Type{achievement.Spender100}, unlockedTypes(res.Unlocked))

	f.addToCart(t, uid, 3, "420.00")
	res, err = f.svc.Checkout(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, []achievement.Type{achievement.Spender500}, unlockedTypes(res.Unlocked))

	var spender100 int64
	require.NoError(t, f.db.Model(&achievement.Achievement{}).
		Where("user_id = ? AND achievement_type = ?", uid, achievement.Spender100).
		Count(&spender100).Error)
	assert.Equal(t, int64(1), spender100)
}

// The test database has a single connection and sqlite ignores FOR UPDATE,
// so the two transactions queue on the pool here. The user row lock that
// serializes them on postgres is not exercised by this test.
func TestCheckout_ConcurrentSameUser(t *testing.T) {
	f := newFixture(t, withEngine)
	uid := f.addUser(t, "frank")
	f.addToCart(t, uid, 1, "19.99")
	f.addToCart(t, uid, 2, "5.00")

	var (
		wg   sync.WaitGroup
		errs = make([]error, 2)
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Checkout(context.Background(), uid)
		}(i)
	}
	wg.Wait()

	var ok, invalid int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, apperror.ErrInvalidState):
			invalid++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, invalid)
	assert.Equal(t, int64(1), f.count(t, &order.Order{}, uid))
	assert.Equal(t, int64(2), f.count(t, &library.Entry{}, uid))
}

func TestCheckout_OrderInsertFailureRollsBack(t *testing.T) {
	f := newFixture(t, withEngine)
	uid := f.addUser(t, "grace")
	f.addToCart(t, uid, 1, "19.99")
	f.addToCart(t, uid, 2, "39.99")

	require.NoError(t, f.db.Callback().Create().Before("gorm:create").Register("test:fail_orders", func(tx *gorm.DB) {
		if tx.Statement.Table == "orders" {
			_ = tx.AddError(errors.New("disk full"))
		}
	}))

	_, err := f.svc.Checkout(context.Background(), uid)
	assert.ErrorIs(t, err, apperror.ErrAborted)

	assert.Equal(t, int64(2), f.count(t, &cart.CartItem{}, uid))
	assert.Zero(t, f.count(t, &library.Entry{}, uid))
	assert.Zero(t, f.count(t, &achievement.Achievement{}, uid))
}

type failingEvaluator struct{}

func (failingEvaluator) Evaluate(context.Context, uint) ([]achievement.Achievement, error) {
	return nil, errors.New("achievement store offline")
}

func TestCheckout_EvaluationFailureDoesNotFailCheckout(t *testing.T) {
	f := newFixture(t, func(*fixture) Evaluator { return failingEvaluator{} })
	uid := f.addUser(t, "heidi")
	f.addToCart(t, uid, 1, "9.99")

	res, err := f.svc.Checkout(context.Background(), uid)
	require.NoError(t, err)
	assert.Error(t, res.EvaluationError)
	assert.NotNil(t, res.Unlocked)
	assert.Empty(t, res.Unlocked)
	assert.NotZero(t, res.Order.ID)
	assert.Zero(t, f.count(t, &cart.CartItem{}, uid))
}

func TestCheckout_CallerCancellationDoesNotAbort(t *testing.T) {
	f := newFixture(t, nil)
	uid := f.addUser(t, "ivan")
	f.addToCart(t, uid, 1, "9.99")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := f.svc.Checkout(ctx, uid)
	require.NoError(t, err)
	assert.NotZero(t, res.Order.ID)
	assert.NotNil(t, res.Unlocked)
}

func TestCheckout_NoUnlocksEncodesEmptyList(t *testing.T) {
	f := newFixture(t, withEngine)
	ctx := context.Background()
	uid := f.addUser(t, "kim")
	f.addToCart(t, uid, 1, "9.99")
	_, err := f.svc.Checkout(ctx, uid)
	require.NoError(t, err)

	f.addToCart(t, uid, 2, "4.99")
	res, err := f.svc.Checkout(ctx, uid)
	require.NoError(t, err)

	body, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"new_achievements":[]`)
}

func TestGetCheckoutSummary(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	uid := f.addUser(t, "judy")
	f.grant(t, uid, 1, "5.00")
	f.addToCart(t, uid, 1, "19.99")
	f.addToCart(t, uid, 2, "0.01")

	summary, err := f.svc.GetCheckoutSummary(ctx, uid)
	require.NoError(t, err)
	assert.True(t, summary.CanCheckout)
	assert.True(t, summary.Total.Equal(decimal.RequireFromString("20.00")))
	require.Len(t, summary.Items, 2)
	assert.True(t, summary.Items[0].AlreadyOwned)
	assert.False(t, summary.Items[1].AlreadyOwned)

	assert.Equal(t, int64(2), f.count(t, &cart.CartItem{}, uid))
}
