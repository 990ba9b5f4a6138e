package repository

import (
	"fmt"
	"io/fs"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/aantony2/nautilus/migrations"
)

// PostgresRepository implements all repository interfaces on PostgreSQL.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository connects to PostgreSQL with pooled connections.
func NewPostgresRepository(databaseURL string) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection pool.
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// Migrate applies all embedded *.sql files in lexical order. Statements are
// written to be re-runnable (IF NOT EXISTS / guarded seeds).
func (r *PostgresRepository) Migrate() error {
	entries, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(entries)
	for _, name := range entries {
		sqlBytes, err := migrations.FS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := r.db.Exec(string(sqlBytes)); err != nil {
			return fmt.Errorf("migration %s failed: %w", name, err)
		}
	}
	return nil
}

// Ping verifies the connection is alive.
func (r *PostgresRepository) Ping() error {
	return r.db.Ping()
}
