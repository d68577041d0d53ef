package recommendation

import (
	"context"
	"fmt"
	"testing"

	"github.com/gamevault/game-library-backend/internal/domain/catalog"
	"github.com/gamevault/game-library-backend/internal/domain/library"
	"github.com/gamevault/game-library-backend/internal/pkg/testdb"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*Service, *catalog.Repository, *library.Repository) {
	t.Helper()
	db := testdb.Open(t, &catalog.Game{}, &library.Entry{})
	games := catalog.NewRepository(db)
	lib := library.NewRepository(db)
	return NewService(games, lib, 4.0), games, lib
}

func addGame(t *testing.T, repo *catalog.Repository, title, genre, rating string) catalog.Game {
	t.Helper()
	g := catalog.Game{Title: title, Genre: genre, Rating: decimal.RequireFromString(rating)}
	require.NoError(t, repo.Create(context.Background(), &g))
	return g
}

func own(t *testing.T, lib *library.Repository, userID uint, g catalog.Game) {
	t.Helper()
	require.NoError(t, lib.Create(context.Background(), &library.Entry{
		UserID: userID, GameID: g.ID, GameTitle: g.Title, PricePaid: g.Price,
	}))
}

func TestRecommend_EmptyLibraryGetsTopRated(t *testing.T) {
	svc, games, _ := setup(t)
	addGame(t, games, "A", "RPG", "4.5")
	addGame(t, games, "B", "RPG", "3.0")
	addGame(t, games, "C", "Puzzle", "4.9")

	got, err := svc.Recommend(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "C", got[0].Title)
	assert.Equal(t, "A", got[1].Title)
}

func TestRecommend_GenreMatchesExcludeOwned(t *testing.T) {
	svc, games, lib := setup(t)
	owned := addGame(t, games, "Owned RPG", "RPG", "4.0")
	addGame(t, games, "Other RPG", "RPG", "2.0")
	addGame(t, games, "Shooter", "FPS", "4.8")
	addGame(t, games, "Low Shooter", "FPS", "1.0")
	own(t, lib, 1, owned)

	got, err := svc.Recommend(context.Background(), 1)
	require.NoError(t, err)

	titles := make([]string, len(got))
	for i, g := range got {
		titles[i] = g.Title
	}
	assert.Equal(t, []string{"Other RPG", "Shooter"}, titles)
}

func TestRecommend_CappedAtLimit(t *testing.T) {
	svc, games, lib := setup(t)
	first := addGame(t, games, "seed", "RPG", "4.0")
	own(t, lib, 1, first)
	for i := 0; i < 15; i++ {
		addGame(t, games, fmt.Sprintf("rpg %d", i), "RPG", "3.5")
	}

	got, err := svc.Recommend(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, got, Limit)
	for _, g := range got {
		assert.NotEqual(t, first.ID, g.ID)
	}
}
