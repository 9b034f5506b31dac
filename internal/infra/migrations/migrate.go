package migrations

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/smartlab/SLB-BookingService/internal/config"
)

// Run применяет все неприменённые миграции из каталога path.
// Идемпотентно: повторный запуск без новых миграций не ошибка
func Run(path string, cfg config.DatabaseConfig) error {
	m, err := migrate.New("file://"+path, connString(cfg))
	if err != nil {
		return fmt.Errorf("migrations: init: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("migrations: up: %w", err)
	}

	return nil
}

// connString собирает postgres:// URL для golang-migrate
func connString(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(cfg.User),
		url.QueryEscape(cfg.Password),
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.SSLMode,
	)
}
