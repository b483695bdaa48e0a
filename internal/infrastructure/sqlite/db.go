// Package sqlite adaptadores de persistencia local sobre SQLite
// (modernc.org/sqlite, driver puro Go). Los repositorios reciben un
// Querier, de modo que funcionan igual sobre *sql.DB y sobre *sql.Tx.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open abre (o crea) la base de datos local. Crea el directorio si no
// existe y activa WAL y foreign keys.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio de BD: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("abrir BD: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("activar foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("fijar busy_timeout: %w", err)
	}
	// SQLite serializa escritores; con una sola conexión el driver no
	// compite consigo mismo bajo WAL.
	db.SetMaxOpenConns(1)

	return db, nil
}

// InitSchema aplica el esquema completo. Idempotente: todas las tablas
// usan IF NOT EXISTS.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}

// Querier subconjunto común de *sql.DB y *sql.Tx que usan los
// repositorios.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)
