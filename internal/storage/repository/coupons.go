package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/product-hunt/internal/models"
	"github.com/magabrotheeeer/product-hunt/internal/storage"
)

const couponColumns = `id, code, discount, description, expiry_date, created_at`

func scanCoupon(row scanner) (*models.Coupon, error) {
	var c models.Coupon
	if err := row.Scan(&c.ID, &c.Code, &c.Discount, &c.Description, &c.ExpiryDate, &c.Timestamp); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCoupon сохраняет купон и возвращает его ID.
func (s *Storage) CreateCoupon(ctx context.Context, c models.Coupon) (string, error) {
	const op = "storage.CreateCoupon"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO coupons (code, discount, description, expiry_date)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query, c.Code, c.Discount, c.Description, c.ExpiryDate).Scan(&newID)
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListCoupons возвращает все купоны.
func (s *Storage) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	const op = "storage.ListCoupons"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT `+couponColumns+` FROM coupons ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.Coupon, 0)
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetCouponByCode возвращает купон по коду.
func (s *Storage) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	const op = "storage.GetCouponByCode"

	c, err := scanCoupon(s.DB.QueryRowContext(ctx,
		`SELECT `+couponColumns+` FROM coupons WHERE code = $1`, code))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return c, nil
}

// UpdateCoupon перезаписывает поля купона.
func (s *Storage) UpdateCoupon(ctx context.Context, id uuid.UUID, c models.Coupon) (models.UpdateResult, error) {
	const op = "storage.UpdateCoupon"

	res, err := s.DB.ExecContext(ctx,
		`UPDATE coupons SET code = $1, discount = $2, description = $3, expiry_date = $4 WHERE id = $5`,
		c.Code, c.Discount, c.Description, c.ExpiryDate, id)
	if err != nil {
		if isUniqueViolation(err) {
			return models.UpdateResult{}, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}
		return models.UpdateResult{}, fmt.Errorf("%s: %w", op, err)
	}
	result, err := updateResult(res)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeleteCoupon удаляет купон.
func (s *Storage) DeleteCoupon(ctx context.Context, id uuid.UUID) (models.DeleteResult, error) {
	const op = "storage.DeleteCoupon"

	res, err := s.DB.ExecContext(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("%s: %w", op, err)
	}
	result, err := deleteResult(res)
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
