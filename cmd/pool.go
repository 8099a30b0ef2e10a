package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// registryPool connects to the reference database for the postgres registry
// source.
func registryPool(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.Registry.DatabaseURL)
	if err != nil {
		return nil, eris.Wrap(err, "registry: connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "registry: ping")
	}
	return pool, nil
}
