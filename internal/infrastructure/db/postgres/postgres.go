package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"
)

const (
	defaultTimeout = 10 * time.Second

	usersTable    = "users"
	productsTable = "products"

	uniqueViolation = "23505"
)

// Config captures the settings required to open a connection pool.
type Config struct {
	URL      string
	MaxConns int32
	Timeout  time.Duration
}

// Connect opens a pgx pool and verifies connectivity.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	const op = "postgres.Connect"

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := pgxpool.ConnectConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}
	return pool, nil
}

// EnsureSchema creates the tables and indexes when they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const op = "postgres.EnsureSchema"

	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id            TEXT PRIMARY KEY,
	username      VARCHAR(20) NOT NULL UNIQUE,
	email         VARCHAR(50) NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          VARCHAR(20) NOT NULL DEFAULT 'USER',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`, usersTable),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id          TEXT PRIMARY KEY,
	owner_id    TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
	name        VARCHAR(100) NOT NULL,
	description VARCHAR(500) NOT NULL DEFAULT '',
	quantity    INTEGER NOT NULL CHECK (quantity >= 0),
	price       NUMERIC(12, 2) NOT NULL CHECK (price >= 0.01),
	image_name  TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
)`, productsTable, usersTable),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_products_owner ON %s(owner_id, created_at DESC)`, productsTable),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// Pinger adapts a pool to the readiness probe.
type Pinger struct {
	Pool *pgxpool.Pool
}

func (p Pinger) Ping(ctx context.Context) error {
	return p.Pool.Ping(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
