// Package repository реализует хранилище данных на основе PostgreSQL
// для пользователей, продуктов, отзывов, купонов и платежей.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/product-hunt/internal/models"
	"github.com/magabrotheeeer/product-hunt/internal/storage"
)

const (
	uniqueViolation          = "23505"
	invalidRegularExpression = "2201B"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
// Создаётся один раз при старте и передаётся во все сервисы.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// requiredTables таблицы, без которых сервис не стартует.
var requiredTables = []string{"users", "products", "reviews", "coupons", "payments"}

// CheckDatabaseReady проверяет, что миграции применены и все таблицы на месте.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	const op = "storage.CheckDatabaseReady"

	for _, table := range requiredTables {
		var exists bool
		err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_schema = current_schema() AND table_name = $1
    )`, table).Scan(&exists)
		if err != nil {
			return fmt.Errorf("%s: table %s: %w", op, table, err)
		}
		if !exists {
			return fmt.Errorf("%s: required table %s missing", op, table)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return hasCode(err, uniqueViolation)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}

func updateResult(res sql.Result) (models.UpdateResult, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return models.UpdateResult{}, err
	}
	return models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  n,
		ModifiedCount: n,
	}, nil
}

func deleteResult(res sql.Result) (models.DeleteResult, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return models.DeleteResult{}, err
	}
	return models.DeleteResult{
		Acknowledged: true,
		DeletedCount: n,
	}, nil
}

type scanner interface {
	Scan(dest ...any) error
}
