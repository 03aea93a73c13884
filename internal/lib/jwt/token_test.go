package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key_1234567890"

func TestManager_GenerateAndParse(t *testing.T) {
	tokenTTL := 3600 * time.Hour
	manager := NewManager(testSecret, tokenTTL)

	tests := []struct {
		name  string
		email string
		role  string
	}{
		{name: "admin", email: "admin@x.com", role: "admin"},
		{name: "moderator", email: "mod@x.com", role: "moderator"},
		{name: "без роли", email: "user@x.com", role: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := manager.GenerateToken(tt.email, tt.role)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := manager.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.email, claims.Email)
			assert.Equal(t, tt.role, claims.Role)
			assert.Equal(t, tt.email, claims.Subject)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, 2*time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, 2*time.Second)
		})
	}
}

func TestManager_ParseToken_Invalid(t *testing.T) {
	manager := NewManager(testSecret, 15*time.Minute)

	validToken, err := manager.GenerateToken("a@x.com", "")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "malformed token", token: "invalid.token.here"},
		{name: "expired token", token: createExpiredToken(t)},
		{name: "wrong secret key", token: createTokenWithWrongSecret(t)},
		{name: "tampered token", token: validToken + "tampered"},
		{name: "другой алгоритм подписи", token: createTokenWithAlg(t, jwt.SigningMethodHS512, "a@x.com")},
		{name: "без email", token: createTokenWithAlg(t, jwt.SigningMethodHS256, "")},
		{name: "без срока действия", token: createTokenWithoutExpiry(t)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := manager.ParseToken(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestManager_DifferentSecrets(t *testing.T) {
	manager1 := NewManager("first_secret_key", 15*time.Minute)
	manager2 := NewManager("different_secret_key", 15*time.Minute)

	token, err := manager1.GenerateToken("a@x.com", "admin")
	require.NoError(t, err)

	claims, err := manager2.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)

	claims, err = manager1.ParseToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
}

func TestManager_ExpiredTokenMentionsExpiry(t *testing.T) {
	manager := NewManager(testSecret, time.Minute)

	_, err := manager.ParseToken(createExpiredToken(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func createExpiredToken(t *testing.T) string {
	manager := NewManager(testSecret, -time.Hour)
	token, err := manager.GenerateToken("a@x.com", "")
	require.NoError(t, err)
	return token
}

func createTokenWithWrongSecret(t *testing.T) string {
	wrongManager := NewManager("wrong_secret_key", 15*time.Minute)
	token, err := wrongManager.GenerateToken("a@x.com", "")
	require.NoError(t, err)
	return token
}

func createTokenWithAlg(t *testing.T, method jwt.SigningMethod, email string) string {
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func createTokenWithoutExpiry(t *testing.T) string {
	claims := Claims{Email: "a@x.com"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}
