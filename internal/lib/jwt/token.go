// Package jwt выпускает и проверяет токены входа в маркетплейс.
//
// Токен подтверждает только email. Роль в claims справочная, права
// проверяются по текущей записи пользователя.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken возвращается для неподписанного, просроченного или испорченного токена.
var ErrInvalidToken = errors.New("invalid token")

// Claims содержимое токена.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Manager подписывает токены HS256 общим секретом.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager создает Manager. Выпущенные токены живут ttl и не отзываются.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// GenerateToken выпускает токен на email и роль.
func (m *Manager) GenerateToken(email, role string) (string, error) {
	const op = "jwt.GenerateToken"

	now := time.Now()
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseToken проверяет подпись, алгоритм и срок действия.
// Любая ошибка оборачивает ErrInvalidToken.
func (m *Manager) ParseToken(tokenStr string) (*Claims, error) {
	const op = "jwt.ParseToken"

	var claims Claims
	_, err := jwt.ParseWithClaims(tokenStr, &claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidToken, err)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%s: %w: empty email", op, ErrInvalidToken)
	}
	return &claims, nil
}
