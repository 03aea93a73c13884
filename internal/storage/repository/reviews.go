package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/product-hunt/internal/models"
)

// CreateReview сохраняет отзыв и возвращает его ID.
func (s *Storage) CreateReview(ctx context.Context, r models.Review) (string, error) {
	const op = "storage.CreateReview"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO reviews (product_id, reviewer_name, reviewer_email, reviewer_image,
			      description, rating)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		r.ProductID, r.ReviewerName, r.ReviewerEmail, r.ReviewerImage, r.Description, r.Rating).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListReviewsByProduct возвращает отзывы продукта, новые первыми.
func (s *Storage) ListReviewsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	const op = "storage.ListReviewsByProduct"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, product_id, reviewer_name, reviewer_email, reviewer_image,
			      description, rating, created_at
			  FROM reviews
			  WHERE product_id = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.Review, 0)
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.ProductID, &r.ReviewerName, &r.ReviewerEmail, &r.ReviewerImage,
			&r.Description, &r.Rating, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountReviews возвращает количество отзывов.
func (s *Storage) CountReviews(ctx context.Context) (int, error) {
	const op = "storage.CountReviews"

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
