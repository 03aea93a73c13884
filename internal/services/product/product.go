// Package product содержит жизненный цикл продукта: создание с проверкой квоты,
// голосование, жалобы, модерацию и read-through кэш карточек.
package product

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/product-hunt/internal/cache"
	"github.com/magabrotheeeer/product-hunt/internal/lib/sl"
	"github.com/magabrotheeeer/product-hunt/internal/models"
	"github.com/magabrotheeeer/product-hunt/internal/services"
	"github.com/magabrotheeeer/product-hunt/internal/storage"
)

// Repository определяет методы хранилища продуктов.
type Repository interface {
	CreateProduct(ctx context.Context, p models.Product) (string, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListRecentProducts(ctx context.Context) ([]models.Product, error)
	ListProductsPage(ctx context.Context, limit, offset int) ([]models.Product, error)
	SearchProductsByTag(ctx context.Context, pattern string) ([]models.Product, error)
	ListProductsByOwner(ctx context.Context, email string) ([]models.Product, error)
	ListProductsForReview(ctx context.Context) ([]models.Product, error)
	ListReportedProducts(ctx context.Context) ([]models.Product, error)
	CountProductsByOwner(ctx context.Context, email string) (int, error)
	TotalProducts(ctx context.Context) (int64, error)
	IncrementVote(ctx context.Context, id uuid.UUID, email string) (*models.Product, error)
	IncrementReport(ctx context.Context, id uuid.UUID, email string) (*models.Product, error)
	SetProductStatus(ctx context.Context, id uuid.UUID, status string) (models.UpdateResult, error)
	SetProductFeatured(ctx context.Context, id uuid.UUID) (models.UpdateResult, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, patch models.ProductPatch) (models.UpdateResult, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) (models.DeleteResult, error)
}

// OwnerRepository нужен для проверки квоты владельца.
type OwnerRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Cache описывает методы для кэширования карточек.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Publisher публикует доменные события.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Service реализует бизнес-правила продуктов.
type Service struct {
	repo     Repository
	owners   OwnerRepository
	cache    Cache
	events   Publisher
	cacheTTL time.Duration
	log      *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, owners OwnerRepository, cache Cache, events Publisher,
	cacheTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		owners:   owners,
		cache:    cache,
		events:   events,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// Create добавляет продукт в статусе pending.
// Владелец без подписки может иметь только один продукт. Проверка и вставка
// выполняются двумя отдельными запросами без блокировки.
func (s *Service) Create(ctx context.Context, req models.DummyProduct) (models.InsertResult, error) {
	const op = "services.product.Create"

	owner, err := s.owners.GetUserByEmail(ctx, req.OwnerEmail)
	if errors.Is(err, storage.ErrNotFound) {
		return models.InsertResult{}, services.ErrOwnerNotFound
	}
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("%s: %w", op, err)
	}

	if !owner.IsSubscribed {
		count, err := s.repo.CountProductsByOwner(ctx, req.OwnerEmail)
		if err != nil {
			return models.InsertResult{}, fmt.Errorf("%s: %w", op, err)
		}
		if count >= 1 {
			return models.InsertResult{}, services.ErrQuotaExceeded
		}
	}

	p := models.Product{
		Name:         req.Name,
		Image:        req.Image,
		Description:  req.Description,
		ExternalLink: req.ExternalLink,
		OwnerName:    req.OwnerName,
		OwnerEmail:   req.OwnerEmail,
		OwnerImage:   req.OwnerImage,
		Tags:         req.Tags,
		Status:       models.StatusPending,
	}
	id, err := s.repo.CreateProduct(ctx, p)
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("product created", slog.String("id", id), slog.String("owner", req.OwnerEmail))
	s.publish(ctx, models.Event{
		Name:        models.EventProductCreated,
		ProductID:   id,
		ProductName: p.Name,
		OwnerEmail:  p.OwnerEmail,
		Status:      p.Status,
	})
	return models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// Get возвращает продукт по ID, сначала заглядывая в кэш.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	const op = "services.product.Get"
	key := cache.ProductKey(id.String())

	var cached models.Product
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("failed to read product from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	p, err := s.repo.GetProduct(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, services.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(ctx, key, p, s.cacheTTL); err != nil {
		s.log.Warn("failed to cache product", slog.String("key", key), sl.Err(err))
	}
	return p, nil
}

// ListAll возвращает все продукты в порядке добавления.
func (s *Service) ListAll(ctx context.Context) ([]models.Product, error) {
	return wrapList("services.product.ListAll")(s.repo.ListProducts(ctx))
}

// ListRecent возвращает все продукты, новые первыми.
func (s *Service) ListRecent(ctx context.Context) ([]models.Product, error) {
	return wrapList("services.product.ListRecent")(s.repo.ListRecentProducts(ctx))
}

// Page возвращает окно skip(page*size).limit(size).
// Нулевой размер снимает ограничение: возвращаются все продукты.
func (s *Service) Page(ctx context.Context, page, size int) ([]models.Product, error) {
	if page < 0 {
		page = 0
	}
	if size < 0 {
		size = 0
	}
	return wrapList("services.product.Page")(s.repo.ListProductsPage(ctx, size, page*size))
}

// SearchByTag ищет продукты, у которых тег совпадает с выражением без учета регистра.
// Пустой шаблон возвращает все продукты.
func (s *Service) SearchByTag(ctx context.Context, pattern string) ([]models.Product, error) {
	if pattern == "" {
		return s.ListAll(ctx)
	}
	if _, err := regexp.Compile(pattern); err != nil {
		return nil, services.ErrInvalidSearch
	}
	products, err := s.repo.SearchProductsByTag(ctx, pattern)
	if errors.Is(err, storage.ErrInvalidPattern) {
		return nil, services.ErrInvalidSearch
	}
	return wrapList("services.product.SearchByTag")(products, err)
}

// ListByOwner возвращает продукты владельца.
func (s *Service) ListByOwner(ctx context.Context, email string) ([]models.Product, error) {
	return wrapList("services.product.ListByOwner")(s.repo.ListProductsByOwner(ctx, email))
}

// ReviewQueue возвращает продукты для модератора, ожидающие решения первыми.
func (s *Service) ReviewQueue(ctx context.Context) ([]models.Product, error) {
	return wrapList("services.product.ReviewQueue")(s.repo.ListProductsForReview(ctx))
}

// ListReported возвращает продукты с жалобами.
func (s *Service) ListReported(ctx context.Context) ([]models.Product, error) {
	return wrapList("services.product.ListReported")(s.repo.ListReportedProducts(ctx))
}

// Count возвращает общее число продуктов.
func (s *Service) Count(ctx context.Context) (int64, error) {
	const op = "services.product.Count"

	count, err := s.repo.TotalProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

func wrapList(op string) func([]models.Product, error) ([]models.Product, error) {
	return func(products []models.Product, err error) ([]models.Product, error) {
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return products, nil
	}
}
