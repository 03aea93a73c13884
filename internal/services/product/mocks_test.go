package product

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/product-hunt/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) products(args mock.Arguments) ([]models.Product, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *RepoMock) product(args mock.Arguments) (*models.Product, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *RepoMock) CreateProduct(ctx context.Context, p models.Product) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}
func (m *RepoMock) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return m.product(m.Called(ctx, id))
}
func (m *RepoMock) ListProducts(ctx context.Context) ([]models.Product, error) {
	return m.products(m.Called(ctx))
}
func (m *RepoMock) ListRecentProducts(ctx context.Context) ([]models.Product, error) {
	return m.products(m.Called(ctx))
}
func (m *RepoMock) ListProductsPage(ctx context.Context, limit, offset int) ([]models.Product, error) {
	return m.products(m.Called(ctx, limit, offset))
}
func (m *RepoMock) SearchProductsByTag(ctx context.Context, pattern string) ([]models.Product, error) {
	return m.products(m.Called(ctx, pattern))
}
func (m *RepoMock) ListProductsByOwner(ctx context.Context, email string) ([]models.Product, error) {
	return m.products(m.Called(ctx, email))
}
func (m *RepoMock) ListProductsForReview(ctx context.Context) ([]models.Product, error) {
	return m.products(m.Called(ctx))
}
func (m *RepoMock) ListReportedProducts(ctx context.Context) ([]models.Product, error) {
	return m.products(m.Called(ctx))
}
func (m *RepoMock) CountProductsByOwner(ctx context.Context, email string) (int, error) {
	args := m.Called(ctx, email)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) TotalProducts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) IncrementVote(ctx context.Context, id uuid.UUID, email string) (*models.Product, error) {
	return m.product(m.Called(ctx, id, email))
}
func (m *RepoMock) IncrementReport(ctx context.Context, id uuid.UUID, email string) (*models.Product, error) {
	return m.product(m.Called(ctx, id, email))
}
func (m *RepoMock) SetProductStatus(ctx context.Context, id uuid.UUID, status string) (models.UpdateResult, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(models.UpdateResult), args.Error(1)
}
func (m *RepoMock) SetProductFeatured(ctx context.Context, id uuid.UUID) (models.UpdateResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.UpdateResult), args.Error(1)
}
func (m *RepoMock) UpdateProduct(ctx context.Context, id uuid.UUID, patch models.ProductPatch) (models.UpdateResult, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(models.UpdateResult), args.Error(1)
}
func (m *RepoMock) DeleteProduct(ctx context.Context, id uuid.UUID) (models.DeleteResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.DeleteResult), args.Error(1)
}

type OwnersMock struct{ mock.Mock }

func (m *OwnersMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, message any) error {
	return m.Called(ctx, routingKey, message).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

type fixture struct {
	repo   *RepoMock
	owners *OwnersMock
	cache  *CacheMock
	events *PublisherMock
	svc    *Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:   new(RepoMock),
		owners: new(OwnersMock),
		cache:  new(CacheMock),
		events: new(PublisherMock),
	}
	f.svc = NewService(f.repo, f.owners, f.cache, f.events, time.Minute, newNoopLogger())
	return f
}

func (f *fixture) assertExpectations(t mock.TestingT) {
	f.repo.AssertExpectations(t)
	f.owners.AssertExpectations(t)
	f.cache.AssertExpectations(t)
	f.events.AssertExpectations(t)
}
