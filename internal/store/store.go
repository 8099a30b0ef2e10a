// Package store persists classification results and enriched records.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/insource-health/tender-triage/internal/config"
	"github.com/insource-health/tender-triage/internal/model"
)

// Store defines the persistence interface for pipeline output. The core
// pipeline never persists its own results; commands hand them to a Store.
type Store interface {
	Migrate(ctx context.Context) error
	SaveClassifications(ctx context.Context, results map[string]model.ClassificationResult) error
	SaveEnriched(ctx context.Context, records []model.EnrichedNotice) error
	Close() error
}

// Open creates the configured Store implementation.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	case "sqlite":
		return NewSQLite(cfg.SQLitePath)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
