package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresStore persists the provider allowlist in PostgreSQL, for
// deployments where runtime additions must survive restarts and be shared
// across instances.
type PostgresStore struct {
	db *sql.DB
}

// Schema creates the backing table.
const Schema = `
CREATE TABLE IF NOT EXISTS registry_providers (
	provider_id TEXT PRIMARY KEY,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// NewPostgres constructs a PostgreSQL-backed provider store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Open connects to PostgreSQL and ensures the schema exists.
func Open(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure registry schema: %w", err)
	}
	return NewPostgres(db), nil
}

func (s *PostgresStore) IsAllowed(ctx context.Context, providerID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM registry_providers WHERE provider_id = $1)`,
		providerID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check provider: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT provider_id FROM registry_providers ORDER BY provider_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	defer rows.Close()

	var providers []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan provider: %w", err)
		}
		providers = append(providers, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate providers: %w", err)
	}
	return providers, nil
}

func (s *PostgresStore) Add(ctx context.Context, providerID string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO registry_providers (provider_id) VALUES ($1) ON CONFLICT DO NOTHING`,
		providerID,
	)
	if err != nil {
		return false, fmt.Errorf("add provider: %w", err)
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("add provider: %w", err)
	}
	return inserted > 0, nil
}

func (s *PostgresStore) Remove(ctx context.Context, providerID string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM registry_providers WHERE provider_id = $1`,
		providerID,
	)
	if err != nil {
		return false, fmt.Errorf("remove provider: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove provider: %w", err)
	}
	return deleted > 0, nil
}

func (s *PostgresStore) Replace(ctx context.Context, providers []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM registry_providers`); err != nil {
		return fmt.Errorf("clear providers: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO registry_providers (provider_id) VALUES ($1) ON CONFLICT DO NOTHING`,
	)
	if err != nil {
		return fmt.Errorf("prepare provider insert: %w", err)
	}
	defer stmt.Close()

	for _, id := range providers {
		if _, err := stmt.ExecContext(ctx, id); err != nil {
			return fmt.Errorf("insert provider %s: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registry_providers`,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("count providers: %w", err)
	}
	return count, nil
}

// Close releases the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
