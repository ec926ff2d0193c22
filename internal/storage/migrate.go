package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	tableExists = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`

	ledgerTable     = "transactions"
	migrationsTable = "schema_migrations"
)

// EnsureSchema brings the ledger file at dbPath up to the current schema.
//
// A file written by the desktop tracker already has a transactions table but
// no migration history. Its rows are kept as they are: the first migration
// only creates what is missing. adopted reports that such a file was found.
func EnsureSchema(dbPath string) (adopted bool, err error) {
	// The migrator closes the handle it is given, so it gets its own.
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return false, fmt.Errorf("open ledger for migration: %w", err)
	}
	defer db.Close()

	hasLedger, err := hasTable(db, ledgerTable)
	if err != nil {
		return false, err
	}
	hasHistory, err := hasTable(db, migrationsTable)
	if err != nil {
		return false, err
	}
	adopted = hasLedger && !hasHistory

	driver, err := sqlite.WithInstance(db, &sqlite.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return false, fmt.Errorf("create sqlite migration driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return false, fmt.Errorf("load embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return false, fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return false, fmt.Errorf("migrate ledger schema: %w", err)
	}

	return adopted, nil
}

func hasTable(db *sql.DB, name string) (bool, error) {
	var n int
	if err := db.QueryRow(tableExists, name).Scan(&n); err != nil {
		return false, fmt.Errorf("inspect table %s: %w", name, err)
	}
	return n > 0, nil
}
