package cart

import (
	"context"
	"testing"

	"github.com/gamevault/game-library-backend/internal/domain/catalog"
	"github.com/gamevault/game-library-backend/internal/pkg/apperror"
	"github.com/gamevault/game-library-backend/internal/pkg/logger"
	"github.com/gamevault/game-library-backend/internal/pkg/testdb"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGames map[uint]*catalog.Game

func (s stubGames) GetGame(_ context.Context, id uint) (*catalog.Game, error) {
	if g, ok := s[id]; ok {
		return g, nil
	}
	return nil, apperror.NotFound("game not found")
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	db := testdb.Open(t, &CartItem{})
	games := stubGames{
		1: {ID: 1, Title: "Celeste", ImageURL: "celeste.png", Price: decimal.RequireFromString("19.99")},
		2: {ID: 2, Title: "Hollow Knight", Price: decimal.RequireFromString("14.99")},
	}
	return NewService(NewRepository(db), games, logger.Discard())
}

func TestAddToCart_Snapshot(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	item, err := svc.AddToCart(ctx, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, "Celeste", item.GameTitle)
	assert.Equal(t, "celeste.png", item.GameImageURL)
	assert.True(t, item.Price.Equal(decimal.RequireFromString("19.99")))
	assert.False(t, item.AddedAt.IsZero())
}

func TestAddToCart_Duplicate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, 10, 1)
	require.NoError(t, err)

	_, err = svc.AddToCart(ctx, 10, 1)
	assert.ErrorIs(t, err, apperror.ErrInvalidState)

	// another user may hold the same game
	_, err = svc.AddToCart(ctx, 11, 1)
	assert.NoError(t, err)
}

func TestAddToCart_UnknownGame(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddToCart(context.Background(), 10, 99)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetCart_Subtotal(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, 10, 1)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, 10, 2)
	require.NoError(t, err)

	c, err := svc.GetCart(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, c.ItemCount)
	assert.Equal(t, uint(1), c.Items[0].GameID)
	assert.True(t, c.Subtotal.Equal(decimal.RequireFromString("34.98")), c.Subtotal.String())
}

func TestRemoveAndClear(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, 10, 1)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, 10, 2)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFromCart(ctx, 10, 1))
	assert.ErrorIs(t, svc.RemoveFromCart(ctx, 10, 1), apperror.ErrNotFound)

	require.NoError(t, svc.ClearCart(ctx, 10))
	c, err := svc.GetCart(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.True(t, c.Subtotal.IsZero())
}
