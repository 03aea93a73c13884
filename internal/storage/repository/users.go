package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/product-hunt/internal/models"
	"github.com/magabrotheeeer/product-hunt/internal/storage"
)

const userColumns = `id, name, email, photo, role, is_subscribed, subscription_date,
			      payment_verified, status, created_at`

func scanUser(row scanner) (*models.User, error) {
	var u models.User
	var subscriptionDate sql.NullTime
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Photo, &u.Role, &u.IsSubscribed,
		&subscriptionDate, &u.PaymentVerified, &u.Status, &u.Timestamp); err != nil {
		return nil, err
	}
	if subscriptionDate.Valid {
		u.SubscriptionDate = &subscriptionDate.Time
	}
	return &u, nil
}

// CreateUser сохраняет нового пользователя и возвращает его ID.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (name, email, photo, role, is_subscribed, subscription_date,
			      payment_verified, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		user.Name, user.Email, user.Photo, user.Role, user.IsSubscribed, user.SubscriptionDate,
		user.PaymentVerified, user.Status).Scan(&newID)
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return u, nil
}

// ListUsersExcept возвращает всех пользователей, кроме указанного.
func (s *Storage) ListUsersExcept(ctx context.Context, email string) ([]models.User, error) {
	const op = "storage.ListUsersExcept"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE email <> $1
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateSubscription выставляет поля подписки пользователя.
func (s *Storage) UpdateSubscription(ctx context.Context, id uuid.UUID, upd models.SubscriptionUpdate) (models.UpdateResult, error) {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return models.UpdateResult{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET is_subscribed = $1, subscription_date = $2, payment_verified = $3, status = $4
			  WHERE id = $5`
	res, err := s.DB.ExecContext(ctx, query,
		upd.IsSubscribed, upd.SubscriptionDate, upd.PaymentVerified, upd.Status, id)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("%s: %w", op, err)
	}
	result, err := updateResult(res)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateRole назначает пользователю роль.
func (s *Storage) UpdateRole(ctx context.Context, id uuid.UUID, role string) (models.UpdateResult, error) {
	const op = "storage.UpdateRole"
	select {
	case <-ctx.Done():
		return models.UpdateResult{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `UPDATE users SET role = $1 WHERE id = $2`, role, id)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("%s: %w", op, err)
	}
	result, err := updateResult(res)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountUsers возвращает количество пользователей.
func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	const op = "storage.CountUsers"

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
