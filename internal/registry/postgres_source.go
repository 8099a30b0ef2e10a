package registry

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/insource-health/tender-triage/internal/model"
)

// querier is the minimal pgx surface the source needs; satisfied by
// *pgxpool.Pool and by pgxmock in tests.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource loads providers and categories from reference tables.
type PostgresSource struct {
	pool querier
}

// NewPostgresSource creates a PostgresSource over an existing pool. The
// source does not own the pool.
func NewPostgresSource(pool querier) *PostgresSource {
	return &PostgresSource{pool: pool}
}

const providersSQL = `
SELECT provider_code, provider_name,
       COALESCE(parent_body_code, ''), COALESCE(parent_body_name, '')
FROM reference.providers
ORDER BY provider_code`

func (s *PostgresSource) Providers(ctx context.Context) ([]model.Provider, error) {
	rows, err := s.pool.Query(ctx, providersSQL)
	if err != nil {
		return nil, eris.Wrap(err, "registry: query providers")
	}
	defer rows.Close()

	var providers []model.Provider
	for rows.Next() {
		var p model.Provider
		if err := rows.Scan(&p.Code, &p.Name, &p.ParentBodyCode, &p.ParentBodyName); err != nil {
			return nil, eris.Wrap(err, "registry: scan provider")
		}
		providers = append(providers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "registry: iterate providers")
	}

	return providers, nil
}

const categoriesSQL = `
SELECT category_name, keywords
FROM reference.service_categories
ORDER BY position`

func (s *PostgresSource) Categories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.pool.Query(ctx, categoriesSQL)
	if err != nil {
		return nil, eris.Wrap(err, "registry: query categories")
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.Name, &c.Keywords); err != nil {
			return nil, eris.Wrap(err, "registry: scan category")
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "registry: iterate categories")
	}

	return categories, nil
}
