package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/product-hunt/internal/models"
	"github.com/magabrotheeeer/product-hunt/internal/storage"
)

const productColumns = `id, name, image, description, external_link, owner_name, owner_email,
			      owner_image, tags, votes, voted_user, report, reported_user, reported_status,
			      status, is_featured, created_at`

func scanProduct(row scanner) (*models.Product, error) {
	var p models.Product
	var tags []byte
	if err := row.Scan(&p.ID, &p.Name, &p.Image, &p.Description, &p.ExternalLink, &p.OwnerName,
		&p.OwnerEmail, &p.OwnerImage, &tags, &p.Votes, &p.VotedUser, &p.Report, &p.ReportedUser,
		&p.ReportedStatus, &p.Status, &p.IsFeatured, &p.Timestamp); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tags, &p.Tags); err != nil {
		return nil, err
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return &p, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	return string(b), err
}

func (s *Storage) queryProducts(ctx context.Context, op, query string, args ...any) ([]models.Product, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateProduct вставляет продукт и возвращает его ID.
func (s *Storage) CreateProduct(ctx context.Context, p models.Product) (string, error) {
	const op = "storage.CreateProduct"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tags, err := encodeTags(p.Tags)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	query := `INSERT INTO products (name, image, description, external_link, owner_name,
			      owner_email, owner_image, tags, votes, report, status, is_featured)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9, $10, $11, $12)
			  RETURNING id`
	var newID string
	err = s.DB.QueryRowContext(ctx, query,
		p.Name, p.Image, p.Description, p.ExternalLink, p.OwnerName,
		p.OwnerEmail, p.OwnerImage, tags, p.Votes, p.Report, p.Status, p.IsFeatured).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetProduct возвращает продукт по ID.
func (s *Storage) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	const op = "storage.GetProduct"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return p, nil
}

// ListProducts возвращает все продукты в порядке добавления.
func (s *Storage) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.queryProducts(ctx, "storage.ListProducts",
		`SELECT `+productColumns+` FROM products ORDER BY created_at, id`)
}

// ListRecentProducts возвращает все продукты, новые первыми.
func (s *Storage) ListRecentProducts(ctx context.Context) ([]models.Product, error) {
	return s.queryProducts(ctx, "storage.ListRecentProducts",
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC, id`)
}

// ListProductsPage возвращает окно продуктов с пагинацией. limit=0 означает без ограничения.
func (s *Storage) ListProductsPage(ctx context.Context, limit, offset int) ([]models.Product, error) {
	return s.queryProducts(ctx, "storage.ListProductsPage",
		`SELECT `+productColumns+` FROM products ORDER BY created_at, id LIMIT NULLIF($1::bigint, 0) OFFSET $2`,
		limit, offset)
}

// SearchProductsByTag возвращает продукты, у которых хотя бы один тег
// совпадает с регулярным выражением без учёта регистра.
// Выражение, которое Postgres не принял, дает storage.ErrInvalidPattern.
func (s *Storage) SearchProductsByTag(ctx context.Context, pattern string) ([]models.Product, error) {
	const op = "storage.SearchProductsByTag"

	products, err := s.queryProducts(ctx, op,
		`SELECT `+productColumns+` FROM products
			  WHERE EXISTS (
			      SELECT 1 FROM jsonb_array_elements_text(tags) AS tag WHERE tag ~* $1
			  )
			  ORDER BY created_at, id`, pattern)
	if hasCode(err, invalidRegularExpression) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidPattern)
	}
	return products, err
}

// ListProductsByOwner возвращает продукты владельца.
func (s *Storage) ListProductsByOwner(ctx context.Context, email string) ([]models.Product, error) {
	return s.queryProducts(ctx, "storage.ListProductsByOwner",
		`SELECT `+productColumns+` FROM products WHERE owner_email = $1 ORDER BY created_at, id`, email)
}

// ListProductsForReview возвращает все продукты, ожидающие модерации первыми.
func (s *Storage) ListProductsForReview(ctx context.Context) ([]models.Product, error) {
	return s.queryProducts(ctx, "storage.ListProductsForReview",
		`SELECT `+productColumns+` FROM products
			  ORDER BY (status = 'pending') DESC, created_at DESC, id`)
}

// ListReportedProducts возвращает продукты с жалобами.
func (s *Storage) ListReportedProducts(ctx context.Context) ([]models.Product, error) {
	return s.queryProducts(ctx, "storage.ListReportedProducts",
		`SELECT `+productColumns+` FROM products WHERE reported_status = $1 ORDER BY created_at, id`,
		models.ReportedStatus)
}

// CountProductsByOwner возвращает количество продуктов владельца.
func (s *Storage) CountProductsByOwner(ctx context.Context, email string) (int, error) {
	const op = "storage.CountProductsByOwner"

	var count int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE owner_email = $1`, email).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// CountProducts возвращает точное количество продуктов,
// при непустом статусе только продуктов с этим статусом.
func (s *Storage) CountProducts(ctx context.Context, status string) (int, error) {
	const op = "storage.CountProducts"

	var count int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE ($1::text = '' OR status = $1)`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// TotalProducts возвращает точное количество продуктов.
func (s *Storage) TotalProducts(ctx context.Context) (int64, error) {
	const op = "storage.TotalProducts"

	var total int64
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// IncrementVote увеличивает счётчик голосов и перезаписывает последнего проголосовавшего.
func (s *Storage) IncrementVote(ctx context.Context, id uuid.UUID, email string) (*models.Product, error) {
	const op = "storage.IncrementVote"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE products SET votes = votes + 1, voted_user = $2
			  WHERE id = $1
			  RETURNING ` + productColumns
	p, err := scanProduct(s.DB.QueryRowContext(ctx, query, id, email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return p, nil
}

// IncrementReport увеличивает счётчик жалоб и помечает продукт как reported.
func (s *Storage) IncrementReport(ctx context.Context, id uuid.UUID, email string) (*models.Product, error) {
	const op = "storage.IncrementReport"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE products SET report = report + 1, reported_user = $2, reported_status = $3
			  WHERE id = $1
			  RETURNING ` + productColumns
	p, err := scanProduct(s.DB.QueryRowContext(ctx, query, id, email, models.ReportedStatus))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return p, nil
}

// SetProductStatus выставляет статус модерации.
func (s *Storage) SetProductStatus(ctx context.Context, id uuid.UUID, status string) (models.UpdateResult, error) {
	return s.execUpdate(ctx, "storage.SetProductStatus",
		`UPDATE products SET status = $2 WHERE id = $1`, id, status)
}

// SetProductFeatured помечает продукт как рекомендуемый.
func (s *Storage) SetProductFeatured(ctx context.Context, id uuid.UUID) (models.UpdateResult, error) {
	return s.execUpdate(ctx, "storage.SetProductFeatured",
		`UPDATE products SET is_featured = true WHERE id = $1`, id)
}

// UpdateProduct применяет к продукту переданные поля.
func (s *Storage) UpdateProduct(ctx context.Context, id uuid.UUID, patch models.ProductPatch) (models.UpdateResult, error) {
	var tags sql.NullString
	if patch.Tags != nil {
		encoded, err := encodeTags(patch.Tags)
		if err != nil {
			return models.UpdateResult{}, fmt.Errorf("storage.UpdateProduct: %w", err)
		}
		tags = sql.NullString{String: encoded, Valid: true}
	}
	return s.execUpdate(ctx, "storage.UpdateProduct",
		`UPDATE products
			  SET name = COALESCE($2, name),
			      image = COALESCE($3, image),
			      description = COALESCE($4, description),
			      external_link = COALESCE($5, external_link),
			      tags = COALESCE($6::jsonb, tags)
			  WHERE id = $1`,
		id, patch.Name, patch.Image, patch.Description, patch.ExternalLink, tags)
}

// DeleteProduct удаляет продукт.
func (s *Storage) DeleteProduct(ctx context.Context, id uuid.UUID) (models.DeleteResult, error) {
	const op = "storage.DeleteProduct"
	select {
	case <-ctx.Done():
		return models.DeleteResult{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("%s: %w", op, err)
	}
	result, err := deleteResult(res)
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func (s *Storage) execUpdate(ctx context.Context, op, query string, args ...any) (models.UpdateResult, error) {
	select {
	case <-ctx.Done():
		return models.UpdateResult{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("%s: %w", op, err)
	}
	result, err := updateResult(res)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
