package repository

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/product-hunt/internal/migrations"
	"github.com/magabrotheeeer/product-hunt/internal/models"
)

// setupTestDatabase поднимает PostgreSQL в контейнере и накатывает миграции
func setupTestDatabase(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в режиме -short")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(connStr)
	require.NoError(t, err)

	projectRoot, err := filepath.Abs("../../..")
	require.NoError(t, err)
	require.NoError(t, migrations.Up(storage.DB, filepath.Join(projectRoot, "migrations"), slog.New(slog.NewTextHandler(io.Discard, nil))))

	t.Cleanup(func() {
		_ = storage.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})
	return storage
}

// TestDataFactory создает тестовые данные напрямую через хранилище
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя
func (f *TestDataFactory) CreateUser(t *testing.T, email string, subscribed bool) string {
	id, err := f.storage.CreateUser(context.Background(), models.User{
		Name:         "tester",
		Email:        email,
		IsSubscribed: subscribed,
	})
	require.NoError(t, err)
	return id
}

// CreateProduct создает тестовый продукт в статусе pending
func (f *TestDataFactory) CreateProduct(t *testing.T, name, ownerEmail string, tags ...string) uuid.UUID {
	id, err := f.storage.CreateProduct(context.Background(), models.Product{
		Name:       name,
		OwnerEmail: ownerEmail,
		Tags:       tags,
		Status:     models.StatusPending,
	})
	require.NoError(t, err)
	return uuid.MustParse(id)
}
