package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gamevault/game-library-backend/internal/config"
	"github.com/gamevault/game-library-backend/internal/domain/catalog"
	"github.com/gamevault/game-library-backend/internal/domain/user"
	"github.com/gamevault/game-library-backend/internal/infrastructure/database/postgres"
	"github.com/gamevault/game-library-backend/internal/pkg/logger"
	"github.com/gamevault/game-library-backend/internal/pkg/testdb"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiFixture struct {
	t       *testing.T
	db      *gorm.DB
	handler http.Handler
	games   []catalog.Game
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	db := testdb.Open(t, postgres.Models()...)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{
		App:    config.AppConfig{Name: "GameVault", Version: "test", Environment: "test"},
		Server: config.ServerConfig{Port: "0", RequestTimeout: 10 * time.Second, MaxBodyBytes: 1 << 20},
		JWT: config.JWTConfig{
			Secret:             strings.Repeat("k", 40),
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 2 * time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: 4, RateLimitPerMinute: 1000},
		Checkout: config.CheckoutConfig{Timeout: 5 * time.Second, PaymentMethod: "CREDIT_CARD"},
		Catalog:  config.CatalogConfig{CacheTTL: time.Minute, TopRatedMin: 4.0, MaxSearchLimit: 50},
	}

	games := catalog.NewRepository(db)
	seeded := []catalog.Game{
		{Title: "Hades", Genre: "Roguelike", Price: decimal.RequireFromString("19.99"), Rating: decimal.RequireFromString("4.7")},
		{Title: "Celeste", Genre: "Platformer", Price: decimal.RequireFromString("39.99"), Rating: decimal.RequireFromString("4.5")},
		{Title: "Dead Cells", Genre: "Roguelike", Price: decimal.RequireFromString("24.99"), Rating: decimal.RequireFromString("4.4")},
	}
	for i := range seeded {
		require.NoError(t, games.Create(context.Background(), &seeded[i]))
	}

	s := NewServer(cfg, db, rdb, logger.Discard())
	return &apiFixture{t: t, db: db, handler: s.Handler(), games: seeded}
}

func (f *apiFixture) do(method, path, token string, body interface{}) (int, envelope) {
	f.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(f.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(f.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func (f *apiFixture) register(username string) string {
	f.t.Helper()

	code, env := f.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	require.Equal(f.t, http.StatusCreated, code, env.Error)

	var auth struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(f.t, json.Unmarshal(env.Data, &auth))
	require.NotEmpty(f.t, auth.AccessToken)
	return auth.AccessToken
}

func TestHealth(t *testing.T) {
	f := newAPIFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAuthFlow(t *testing.T) {
	f := newAPIFixture(t)
	token := f.register("alice")

	code, env := f.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "alice", "email": "other@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "CONFLICT", env.Code)

	code, env = f.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"login": "alice@example.com", "password": "wrong-password1",
	})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = f.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"login": "alice", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, code)
	var login struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))

	code, _ = f.do(http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refresh_token": login.RefreshToken})
	assert.Equal(t, http.StatusOK, code)

	code, env = f.do(http.MethodGet, "/api/v1/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"username":"alice"`)
	assert.NotContains(t, string(env.Data), "password")
}

func TestCheckoutFlow(t *testing.T) {
	f := newAPIFixture(t)
	token := f.register("bob")
	hades, celeste := f.games[0], f.games[1]

	code, env := f.do(http.MethodPost, "/api/v1/orders/checkout", token, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "INVALID_STATE", env.Code)

	for _, g := range []catalog.Game{hades, celeste} {
		code, env = f.do(http.MethodPost, fmt.Sprintf("/api/v1/cart/add/%d", g.ID), token, nil)
		require.Equal(t, http.StatusCreated, code, env.Error)
	}
	code, env = f.do(http.MethodPost, fmt.Sprintf("/api/v1/cart/add/%d", hades.ID), token, nil)
	assert.Equal(t, http.StatusConflict, code)

	code, env = f.do(http.MethodGet, "/api/v1/orders/checkout/summary", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"total":"59.98"`)

	code, env = f.do(http.MethodPost, "/api/v1/orders/checkout", token, nil)
	require.Equal(t, http.StatusCreated, code, env.Error)

	var result struct {
		Order struct {
			ID          uint   `json:"id"`
			OrderNumber string `json:"order_number"`
			TotalAmount string `json:"total_amount"`
			Status      string `json:"status"`
		} `json:"order"`
		NewAchievements []struct {
			AchievementType string `json:"achievement_type"`
		} `json:"new_achievements"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "59.98", result.Order.TotalAmount)
	assert.Equal(t, "COMPLETED", result.Order.Status)
	assert.True(t, strings.HasPrefix(result.Order.OrderNumber, "ORD-"))
	require.Len(t, result.NewAchievements, 1)
	assert.Equal(t, "FIRST_PURCHASE", result.NewAchievements[0].AchievementType)

	code, env = f.do(http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"item_count":0`)

	code, env = f.do(http.MethodGet, fmt.Sprintf("/api/v1/library/check/%d", celeste.ID), token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"owned":true`)

	code, env = f.do(http.MethodGet, "/api/v1/orders/my-orders", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), result.Order.OrderNumber)

	code, env = f.do(http.MethodPost, "/api/v1/achievements/check", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"count":0`)

	code, env = f.do(http.MethodGet, "/api/v1/stats/user", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"games_owned":2`)
	assert.Contains(t, string(env.Data), `"total_spent":"59.98"`)

	code, env = f.do(http.MethodGet, "/api/v1/recommendations", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "Dead Cells")
	assert.NotContains(t, string(env.Data), `"title":"Hades"`)

	other := f.register("carol")
	code, _ = f.do(http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", result.Order.ID), other, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestReviewsAndWishlist(t *testing.T) {
	f := newAPIFixture(t)
	token := f.register("dave")
	game := f.games[2]
	base := fmt.Sprintf("/api/v1/reviews/game/%d", game.ID)

	code, env := f.do(http.MethodPost, base, token, map[string]interface{}{"rating": 9})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_ARGUMENT", env.Code)

	code, env = f.do(http.MethodPost, base, token, map[string]interface{}{"rating": 4, "comment": "tight"})
	require.Equal(t, http.StatusOK, code, env.Error)

	code, env = f.do(http.MethodGet, base+"/stats", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"total_reviews":1`)

	code, _ = f.do(http.MethodPost, base, "", map[string]interface{}{"rating": 4})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = f.do(http.MethodPost, fmt.Sprintf("/api/v1/wishlist/add/%d", game.ID), token, nil)
	require.Equal(t, http.StatusCreated, code)
	code, env = f.do(http.MethodGet, fmt.Sprintf("/api/v1/wishlist/check/%d", game.ID), token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"in_wishlist":true`)

	code, _ = f.do(http.MethodDelete, "/api/v1/wishlist/remove/999", token, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGamesEndpoints(t *testing.T) {
	f := newAPIFixture(t)

	code, env := f.do(http.MethodGet, "/api/v1/games?genre=roguelike", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "Hades")
	assert.NotContains(t, string(env.Data), "Celeste")

	code, env = f.do(http.MethodGet, fmt.Sprintf("/api/v1/games/%d", f.games[1].ID), "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "Celeste")

	code, _ = f.do(http.MethodGet, "/api/v1/games/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = f.do(http.MethodGet, "/api/v1/games/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = f.do(http.MethodGet, "/api/v1/games/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = f.do(http.MethodGet, "/api/v1/achievements/definitions", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "SPENDER_500")
}

func TestAdminEndpoints(t *testing.T) {
	f := newAPIFixture(t)
	userToken := f.register("erin")
	f.register("root")
	require.NoError(t, f.db.Model(&user.User{}).Where("username = ?", "root").Update("role", user.RoleAdmin).Error)

	code, _ := f.do(http.MethodGet, "/api/v1/admin/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// Role is read from the token, so the admin signs in again.
	code, env := f.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"login": "root", "password": "secret123"})
	require.Equal(t, http.StatusOK, code)
	var login struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	adminToken := login.AccessToken

	code, env = f.do(http.MethodGet, "/api/v1/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"total":2`)

	code, env = f.do(http.MethodGet, "/api/v1/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"total_games":3`)

	code, _ = f.do(http.MethodDelete, fmt.Sprintf("/api/v1/admin/users/%d", login.User.ID), adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	var erin user.User
	require.NoError(t, f.db.Where("username = ?", "erin").First(&erin).Error)
	code, _ = f.do(http.MethodDelete, fmt.Sprintf("/api/v1/admin/users/%d", erin.ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, code)
}
