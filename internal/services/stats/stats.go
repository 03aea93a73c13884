// Package stats считает агрегаты для панели администратора.
package stats

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/product-hunt/internal/models"
)

// Repository источники счетчиков.
type Repository interface {
	CountProducts(ctx context.Context, status string) (int, error)
	CountReviews(ctx context.Context) (int, error)
	CountUsers(ctx context.Context) (int, error)
}

// Service считает статистику запросами в момент обращения, без кэша.
type Service struct {
	repo Repository
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AdminState возвращает число продуктов, принятых и ожидающих, отзывов и пользователей.
func (s *Service) AdminState(ctx context.Context) (models.AdminState, error) {
	const op = "services.stats.AdminState"
	var (
		state models.AdminState
		err   error
	)

	if state.Products, err = s.repo.CountProducts(ctx, ""); err != nil {
		return models.AdminState{}, fmt.Errorf("%s: %w", op, err)
	}
	if state.AcceptedProducts, err = s.repo.CountProducts(ctx, models.StatusAccepted); err != nil {
		return models.AdminState{}, fmt.Errorf("%s: %w", op, err)
	}
	if state.PendingProducts, err = s.repo.CountProducts(ctx, models.StatusPending); err != nil {
		return models.AdminState{}, fmt.Errorf("%s: %w", op, err)
	}
	if state.Reviews, err = s.repo.CountReviews(ctx); err != nil {
		return models.AdminState{}, fmt.Errorf("%s: %w", op, err)
	}
	if state.Users, err = s.repo.CountUsers(ctx); err != nil {
		return models.AdminState{}, fmt.Errorf("%s: %w", op, err)
	}
	return state, nil
}
