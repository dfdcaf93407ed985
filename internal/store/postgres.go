package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores all three namespaces in one kv_records table keyed by
// (namespace, key). Values are the JSON snapshots produced by the typed
// repositories.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects using the DATABASE_URL environment variable and
// ensures the kv_records table exists.
func NewPostgres(ctx context.Context) (*Postgres, error) {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to parse DATABASE_URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	p := &Postgres{pool: pool}
	if err := p.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

// NewPostgresFromPool wraps an existing pool. The caller keeps ownership of
// the pool's lifecycle.
func NewPostgresFromPool(ctx context.Context, pool *pgxpool.Pool) (*Postgres, error) {
	p := &Postgres{pool: pool}
	if err := p.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Postgres) ensureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS kv_records (
			namespace  TEXT NOT NULL,
			key        TEXT NOT NULL,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (namespace, key)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create kv_records table: %w", err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, ns Namespace, key string) (string, bool, error) {
	var value string
	err := p.pool.QueryRow(ctx,
		"SELECT value FROM kv_records WHERE namespace = $1 AND key = $2", string(ns), key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s/%s: %w", ns, key, err)
	}
	return value, true, nil
}

func (p *Postgres) Put(ctx context.Context, ns Namespace, key, value string) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO kv_records (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, string(ns), key, value)
	if err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", ns, key, err)
	}
	return nil
}

func (p *Postgres) Keys(ctx context.Context, ns Namespace) ([]string, error) {
	rows, err := p.pool.Query(ctx,
		"SELECT key FROM kv_records WHERE namespace = $1 ORDER BY key", string(ns))
	if err != nil {
		return nil, fmt.Errorf("failed to list keys in %s: %w", ns, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (p *Postgres) Close() {
	p.pool.Close()
}
