package repository

import (
	"context"
	"errors"
	"fmt"

	"resume-studio/internal/storage"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PostgresStore keeps scoped values in the resume_storage table created by
// the migration package.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

var errNoPool = errors.New("postgres store: database not available")

func (r *PostgresStore) Get(ctx context.Context, scope, key string) (string, error) {
	if r.pool == nil {
		return "", errNoPool
	}
	var value string
	err := r.pool.QueryRow(ctx,
		`SELECT value FROM resume_storage WHERE scope = $1 AND key = $2`, scope, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("postgres get %s: %w", key, err)
	}
	return value, nil
}

func (r *PostgresStore) Set(ctx context.Context, scope, key, value string) error {
	if r.pool == nil {
		return errNoPool
	}
	_, err := r.pool.Exec(ctx, `INSERT INTO resume_storage (scope, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (scope, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		scope, key, value)
	if err != nil {
		return fmt.Errorf("postgres set %s: %w", key, err)
	}
	return nil
}

func (r *PostgresStore) Remove(ctx context.Context, scope, key string) error {
	if r.pool == nil {
		return errNoPool
	}
	if _, err := r.pool.Exec(ctx,
		`DELETE FROM resume_storage WHERE scope = $1 AND key = $2`, scope, key); err != nil {
		return fmt.Errorf("postgres remove %s: %w", key, err)
	}
	return nil
}
