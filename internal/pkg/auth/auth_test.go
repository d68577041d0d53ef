package auth

import (
	"testing"
	"time"

	"github.com/gamevault/game-library-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "game-library-test"},
		JWT: config.JWTConfig{
			Secret:             "0123456789abcdef0123456789abcdef",
			AccessTokenExpiry:  time.Minute,
			RefreshTokenExpiry: time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: 4},
	}
}

func TestJWTManager_GeneratePair(t *testing.T) {
	m := NewJWTManager(testConfig())

	pair, err := m.GeneratePair(7, "alice", "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, int64(60), pair.ExpiresIn)

	access, err := m.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(7), access.UserID)
	assert.Equal(t, "alice", access.Username)
	assert.True(t, access.IsAdmin())

	refresh, err := m.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Empty(t, refresh.Role)
}

func TestJWTManager_RejectsWrongType(t *testing.T) {
	m := NewJWTManager(testConfig())
	pair, err := m.GeneratePair(1, "bob", "USER")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorContains(t, err, "expected access")

	_, err = m.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorContains(t, err, "expected refresh")
}

func TestJWTManager_RejectsExpired(t *testing.T) {
	m := NewJWTManager(testConfig())
	m.now = func() time.Time { return time.Now().UTC().Add(-2 * time.Hour) }

	pair, err := m.GeneratePair(1, "bob", "USER")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTManager_RejectsForeignSecret(t *testing.T) {
	other := testConfig()
	other.JWT.Secret = "ffffffffffffffffffffffffffffffff"

	pair, err := NewJWTManager(other).GeneratePair(1, "bob", "USER")
	require.NoError(t, err)

	_, err = NewJWTManager(testConfig()).ValidateAccessToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc", ExtractTokenFromHeader("Bearer abc"))
	assert.Empty(t, ExtractTokenFromHeader("Basic abc"))
	assert.Empty(t, ExtractTokenFromHeader(""))
}

func TestPasswordManager(t *testing.T) {
	p := NewPasswordManager(testConfig())

	hash, err := p.HashPassword("gamer2024")
	require.NoError(t, err)
	assert.NoError(t, p.VerifyPassword("gamer2024", hash))
	assert.Error(t, p.VerifyPassword("gamer2025", hash))

	assert.ErrorContains(t, p.ValidatePassword("short1"), "at least 8")
	assert.ErrorContains(t, p.ValidatePassword("lettersonly"), "number")
	assert.ErrorContains(t, p.ValidatePassword("123456789"), "letter")
}
