// Package review сохраняет и выдает отзывы о продуктах.
package review

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

// Repository определяет методы хранилища отзывов.
type Repository interface {
	CreateReview(ctx context.Context, r models.Review) (string, error)
	ListReviewsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service реализует логику отзывов.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create сохраняет отзыв о существующем продукте.
func (s *Service) Create(ctx context.Context, req models.DummyReview) (models.InsertResult, error) {
	const op = "services.review.Create"

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.InsertResult{}, services.ErrProductNotFound
		}
		return models.InsertResult{}, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.CreateReview(ctx, models.Review{
		ProductID:     productID.String(),
		ReviewerName:  req.ReviewerName,
		ReviewerEmail: req.ReviewerEmail,
		ReviewerImage: req.ReviewerImage,
		Description:   req.Description,
		Rating:        req.Rating,
	})
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("review created", slog.String("id", id), slog.String("product_id", req.ProductID))
	return models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// ListByProduct возвращает отзывы продукта. Для неизвестного продукта список пуст.
func (s *Service) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	const op = "services.review.ListByProduct"

	reviews, err := s.repo.ListReviewsByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return reviews, nil
}
