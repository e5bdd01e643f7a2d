package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/insuvit/storefront/internal/config"

	_ "github.com/lib/pq"
)

type postgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens an instrumented connection and ensures the single
// key/value table exists. One row per key; saves upsert the whole blob.
func NewPostgresStore(cfg *config.Config) (Store, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &postgresStore{db: db}

	if err := s.ensureTable(context.Background()); err != nil {
		return nil, err
	}

	return s, nil
}

// NewPostgresStoreWithDB wires a pre-opened handle, used by tests.
func NewPostgresStoreWithDB(db *sql.DB) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) ensureTable(ctx context.Context) error {

	query := `
		CREATE TABLE IF NOT EXISTS kv_entries (
			key TEXT PRIMARY KEY,
			value JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure kv_entries table: %w", err)
	}

	return nil
}

func (s *postgresStore) Save(ctx context.Context, key string, value any) error {

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %s: %w", key, err)
	}

	query := `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, key, data); err != nil {
		return fmt.Errorf("failed to save key %s: %w", key, err)
	}

	return nil
}

func (s *postgresStore) Load(ctx context.Context, key string, dest any) (bool, error) {

	query := `SELECT value FROM kv_entries WHERE key = $1`

	var data []byte

	err := s.db.QueryRowContext(ctx, query, key).Scan(&data)
	if err != nil {

		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, fmt.Errorf("failed to load key %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal data for key %s: %w", key, err)
	}

	return true, nil
}

func (s *postgresStore) Delete(ctx context.Context, key string) error {

	query := `DELETE FROM kv_entries WHERE key = $1`

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}

	return nil
}

func (s *postgresStore) Close() error {
	return s.db.Close()
}
