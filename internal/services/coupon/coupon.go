// Package coupon управляет промокодами администратора.
package coupon

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

// Repository определяет методы хранилища купонов.
type Repository interface {
	CreateCoupon(ctx context.Context, c models.Coupon) (string, error)
	ListCoupons(ctx context.Context) ([]models.Coupon, error)
	GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error)
	UpdateCoupon(ctx context.Context, id uuid.UUID, c models.Coupon) (models.UpdateResult, error)
	DeleteCoupon(ctx context.Context, id uuid.UUID) (models.DeleteResult, error)
}

// Service реализует CRUD купонов.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func fromDummy(req models.DummyCoupon) models.Coupon {
	return models.Coupon{
		Code:        req.Code,
		Discount:    req.Discount,
		Description: req.Description,
		ExpiryDate:  req.ExpiryDate,
	}
}

// Create сохраняет купон. Код должен быть уникален.
func (s *Service) Create(ctx context.Context, req models.DummyCoupon) (models.InsertResult, error) {
	const op = "services.coupon.Create"

	id, err := s.repo.CreateCoupon(ctx, fromDummy(req))
	if errors.Is(err, storage.ErrAlreadyExists) {
		return models.InsertResult{}, services.ErrCouponExists
	}
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("coupon created", slog.String("code", req.Code))
	return models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// List возвращает все купоны.
func (s *Service) List(ctx context.Context) ([]models.Coupon, error) {
	const op = "services.coupon.List"

	coupons, err := s.repo.ListCoupons(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return coupons, nil
}

// GetByCode ищет купон по коду.
func (s *Service) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	const op = "services.coupon.GetByCode"

	c, err := s.repo.GetCouponByCode(ctx, code)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, services.ErrCouponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// Update перезаписывает поля купона.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req models.DummyCoupon) (models.UpdateResult, error) {
	const op = "services.coupon.Update"

	res, err := s.repo.UpdateCoupon(ctx, id, fromDummy(req))
	if errors.Is(err, storage.ErrAlreadyExists) {
		return models.UpdateResult{}, services.ErrCouponExists
	}
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Delete удаляет купон.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (models.DeleteResult, error) {
	const op = "services.coupon.Delete"

	res, err := s.repo.DeleteCoupon(ctx, id)
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}
