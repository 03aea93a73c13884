// Package user содержит логику работы с пользователями: идемпотентное создание,
// поиск, обновление подписки и назначение ролей.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/product-hunt/internal/models"
	"github.com/magabrotheeeer/product-hunt/internal/services"
	"github.com/magabrotheeeer/product-hunt/internal/storage"
)

// Repository определяет методы хранилища пользователей.
type Repository interface {
	CreateUser(ctx context.Context, user models.User) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsersExcept(ctx context.Context, email string) ([]models.User, error)
	UpdateSubscription(ctx context.Context, id uuid.UUID, upd models.SubscriptionUpdate) (models.UpdateResult, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) (models.UpdateResult, error)
}

// Service реализует бизнес-логику пользователей.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Save создает пользователя с email из пути, если его еще нет.
// Для существующего пользователя возвращается его запись и пустой результат вставки.
func (s *Service) Save(ctx context.Context, email string, req models.DummyUser) (*models.User, *models.InsertResult, error) {
	const op = "services.user.Save"

	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return existing, nil, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.CreateUser(ctx, models.User{
		Name:  req.Name,
		Email: email,
		Photo: req.Photo,
		Role:  models.RoleNone,
	})
	if errors.Is(err, storage.ErrAlreadyExists) {
		// параллельный вход успел создать пользователя
		existing, err = s.repo.GetUserByEmail(ctx, email)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		return existing, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user created", slog.String("email", email))
	return nil, &models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// GetByEmail возвращает пользователя или ErrUserNotFound.
func (s *Service) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "services.user.GetByEmail"

	u, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, services.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// Role возвращает роль пользователя.
func (s *Service) Role(ctx context.Context, email string) (string, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

// ListExcept возвращает всех пользователей, кроме запрашивающего.
func (s *Service) ListExcept(ctx context.Context, email string) ([]models.User, error) {
	const op = "services.user.ListExcept"

	users, err := s.repo.ListUsersExcept(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// UpdateSubscription выставляет поля подписки после оплаты.
func (s *Service) UpdateSubscription(ctx context.Context, id uuid.UUID, upd models.SubscriptionUpdate) (models.UpdateResult, error) {
	const op = "services.user.UpdateSubscription"

	res, err := s.repo.UpdateSubscription(ctx, id, upd)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// UpdateRole назначает пользователю роль moderator или admin.
func (s *Service) UpdateRole(ctx context.Context, id uuid.UUID, role string) (models.UpdateResult, error) {
	const op = "services.user.UpdateRole"

	if role != models.RoleModerator && role != models.RoleAdmin {
		return models.UpdateResult{}, services.ErrInvalidRole
	}
	res, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("role updated", slog.String("id", id.String()), slog.String("role", role))
	return res, nil
}
