package infra

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies all pending database migrations.
func RunMigrations(dsn string, logger *slog.Logger) error {
	migrationDir := findMigrationDir()
	sourceURL := fmt.Sprintf("file://%s", migrationDir)

	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	err = m.Up()
	version, dirty, _ := m.Version()
	switch {
	case err == migrate.ErrNoChange:
		logger.Info("schema up to date", "version", version)
	case err != nil:
		return fmt.Errorf("migrate up: %w", err)
	default:
		logger.Info("migrations applied", "dir", migrationDir, "version", version, "dirty", dirty)
	}

	return nil
}

// findMigrationDir walks up from cwd looking for db/migrations.
func findMigrationDir() string {
	dir, _ := os.Getwd()
	for dir != "" && dir != "/" {
		candidate := filepath.Join(dir, "db", "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		dir = filepath.Dir(dir)
	}
	return "db/migrations"
}
