package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gamevault/game-library-backend/internal/pkg/apperror"
	"github.com/gamevault/game-library-backend/internal/pkg/logger"
	"github.com/gamevault/game-library-backend/internal/pkg/testdb"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedGames(t *testing.T, repo *Repository) []Game {
	t.Helper()
	games := []Game{
		{Title: "Elden Ring", Genre: "RPG", Platform: "PC, PS5", Price: decimal.RequireFromString("59.99"), Rating: decimal.RequireFromString("4.8")},
		{Title: "Hades", Genre: "Roguelike", Platform: "PC, Switch", Price: decimal.RequireFromString("24.99"), Rating: decimal.RequireFromString("4.6")},
		{Title: "Stardew Valley", Genre: "Simulation", Platform: "PC", Price: decimal.RequireFromString("14.99"), Rating: decimal.RequireFromString("3.9")},
		{Title: "The Witcher 3", Genre: "RPG", Platform: "PC", Rating: decimal.RequireFromString("4.9")},
	}
	for i := range games {
		require.NoError(t, repo.Create(context.Background(), &games[i]))
	}
	return games
}

func newTestService(t *testing.T) (*Service, *Repository, *miniredis.Miniredis) {
	t.Helper()
	db := testdb.Open(t, &Game{})
	repo := NewRepository(db)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewService(repo, NewCache(client, time.Minute), 4.0, logger.Discard()), repo, mr
}

func TestCreate_AppliesDefaultPrice(t *testing.T) {
	_, repo, _ := newTestService(t)
	games := seedGames(t, repo)

	assert.True(t, games[3].Price.Equal(DefaultPrice))
}

func TestGetGame_ReadsThroughCache(t *testing.T) {
	svc, repo, mr := newTestService(t)
	games := seedGames(t, repo)
	ctx := context.Background()

	got, err := svc.GetGame(ctx, games[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Elden Ring", got.Title)
	assert.True(t, mr.Exists(gameKey(games[0].ID)))

	// a cached entry wins over storage
	require.NoError(t, repo.db.Model(&Game{}).Where("id = ?", games[0].ID).Update("title", "Renamed").Error)
	got, err = svc.GetGame(ctx, games[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Elden Ring", got.Title)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("59.99")))

	require.NoError(t, svc.cache.Invalidate(ctx, games[0].ID))
	got, err = svc.GetGame(ctx, games[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
}

func TestGetGame_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetGame(context.Background(), 404)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetGame_CacheDown(t *testing.T) {
	svc, repo, mr := newTestService(t)
	games := seedGames(t, repo)
	mr.Close()

	got, err := svc.GetGame(context.Background(), games[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Hades", got.Title)
}

func TestListGames_Filters(t *testing.T) {
	svc, repo, _ := newTestService(t)
	seedGames(t, repo)
	ctx := context.Background()

	rpg, err := svc.ListGames(ctx, Filter{Genre: "rpg"})
	require.NoError(t, err)
	assert.Len(t, rpg, 2)

	switchGames, err := svc.ListGames(ctx, Filter{Platform: "switch"})
	require.NoError(t, err)
	require.Len(t, switchGames, 1)
	assert.Equal(t, "Hades", switchGames[0].Title)

	min := decimal.RequireFromString("4.7")
	rated, err := svc.ListGames(ctx, Filter{MinRating: &min})
	require.NoError(t, err)
	assert.Len(t, rated, 2)
}

func TestSearch_CaseInsensitive(t *testing.T) {
	svc, repo, _ := newTestService(t)
	seedGames(t, repo)

	found, err := svc.Search(context.Background(), "WITCHER", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "The Witcher 3", found[0].Title)
}

func TestTopRated_OrderedAndThresholded(t *testing.T) {
	svc, repo, _ := newTestService(t)
	seedGames(t, repo)

	top, err := svc.TopRated(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "The Witcher 3", top[0].Title)
	assert.Equal(t, "Elden Ring", top[1].Title)
	assert.Equal(t, "Hades", top[2].Title)
}

func TestByGenres_ExcludesIDs(t *testing.T) {
	_, repo, _ := newTestService(t)
	games := seedGames(t, repo)

	got, err := repo.ByGenres(context.Background(), []string{"RPG"}, []uint{games[3].ID}, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, games[0].ID, got[0].ID)
}
