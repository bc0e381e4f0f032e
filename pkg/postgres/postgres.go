package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreDB holds the connection pool for the postgres row-store backend.
type PostgreDB struct {
	Pool *pgxpool.Pool
}

type Config interface {
	GetDSN() string
}

// New opens a pgx pool from the DSN and verifies the connection.
func New(ctx context.Context, cfg Config) (*PostgreDB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &PostgreDB{Pool: pool}, nil
}
