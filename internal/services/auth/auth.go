// Package auth выпускает токены входа.
package auth

import (
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/product-hunt/internal/models"
)

// TokenGenerator подписывает токены.
type TokenGenerator interface {
	GenerateToken(email, role string) (string, error)
}

// Service выпускает токены на переданные утверждения.
// Пользователь на этом шаге не проверяется, личность подтверждает провайдер входа на клиенте.
type Service struct {
	tokens TokenGenerator
	log    *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(tokens TokenGenerator, log *slog.Logger) *Service {
	return &Service{
		tokens: tokens,
		log:    log,
	}
}

// IssueToken выпускает токен для email и необязательной роли.
func (s *Service) IssueToken(req models.TokenRequest) (string, error) {
	const op = "services.auth.IssueToken"

	token, err := s.tokens.GenerateToken(req.Email, req.Role)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Debug("token issued", slog.String("email", req.Email))
	return token, nil
}
