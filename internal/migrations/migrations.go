// Package migrations применяет SQL-миграции схемы при старте сервиса.
package migrations

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	pgxv5 "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// Источник миграций из файловой системы.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Up накатывает миграции из dir до последней версии.
// Схема в состоянии dirty после упавшей миграции считается ошибкой.
func Up(db *sql.DB, dir string, log *slog.Logger) error {
	const op = "migrations.Up"

	driver, err := pgxv5.WithInstance(db, &pgxv5.Config{})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+filepath.ToSlash(dir), "pgx_v5", driver)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: %w", op, err)
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		log.Warn("no migrations found", slog.String("dir", dir))
		return nil
	case err != nil:
		return fmt.Errorf("%s: %w", op, err)
	case dirty:
		return fmt.Errorf("%s: schema version %d is dirty", op, version)
	}

	log.Info("schema is up to date", slog.Uint64("version", uint64(version)))
	return nil
}
