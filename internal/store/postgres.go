package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/insource-health/tender-triage/internal/model"
)

// pgPool is the pgxpool surface the store uses; satisfied by *pgxpool.Pool
// and by pgxmock in tests.
type pgPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool pgPool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS notice_classifications (
	notice_id      TEXT PRIMARY KEY,
	classification TEXT NOT NULL,
	reason         TEXT NOT NULL,
	confidence     INT NOT NULL,
	detail         JSONB NOT NULL,
	classified_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS enriched_notices (
	notice_id        TEXT PRIMARY KEY,
	title            TEXT NOT NULL,
	buyer_name       TEXT NOT NULL,
	service_category TEXT,
	duration_months  INT,
	mapping          JSONB,
	record           JSONB NOT NULL,
	enriched_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_classifications_class ON notice_classifications(classification);
CREATE INDEX IF NOT EXISTS idx_enriched_category ON enriched_notices(service_category);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

const upsertClassificationSQL = `
INSERT INTO notice_classifications (notice_id, classification, reason, confidence, detail, classified_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (notice_id) DO UPDATE SET
	classification = EXCLUDED.classification,
	reason = EXCLUDED.reason,
	confidence = EXCLUDED.confidence,
	detail = EXCLUDED.detail,
	classified_at = EXCLUDED.classified_at`

func (s *PostgresStore) SaveClassifications(ctx context.Context, results map[string]model.ClassificationResult) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin")
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	for noticeID, result := range results {
		detail, err := json.Marshal(result)
		if err != nil {
			return eris.Wrapf(err, "postgres: marshal result for %s", noticeID)
		}
		_, err = tx.Exec(ctx, upsertClassificationSQL,
			noticeID, string(result.Classification), result.Reason, result.Confidence, detail, now,
		)
		if err != nil {
			return eris.Wrapf(err, "postgres: upsert classification for %s", noticeID)
		}
	}

	return eris.Wrap(tx.Commit(ctx), "postgres: commit classifications")
}

const upsertEnrichedSQL = `
INSERT INTO enriched_notices (notice_id, title, buyer_name, service_category, duration_months, mapping, record, enriched_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (notice_id) DO UPDATE SET
	title = EXCLUDED.title,
	buyer_name = EXCLUDED.buyer_name,
	service_category = EXCLUDED.service_category,
	duration_months = EXCLUDED.duration_months,
	mapping = EXCLUDED.mapping,
	record = EXCLUDED.record,
	enriched_at = EXCLUDED.enriched_at`

func (s *PostgresStore) SaveEnriched(ctx context.Context, records []model.EnrichedNotice) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin")
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	for _, record := range records {
		full, err := json.Marshal(record)
		if err != nil {
			return eris.Wrapf(err, "postgres: marshal record for %s", record.NoticeID)
		}
		var mapping []byte
		if record.Mapping != nil {
			if mapping, err = json.Marshal(record.Mapping); err != nil {
				return eris.Wrapf(err, "postgres: marshal mapping for %s", record.NoticeID)
			}
		}
		_, err = tx.Exec(ctx, upsertEnrichedSQL,
			record.NoticeID, record.Title, record.BuyerName,
			nullable(record.ServiceCategory), record.DurationMonths, mapping, full, now,
		)
		if err != nil {
			return eris.Wrapf(err, "postgres: upsert enriched for %s", record.NoticeID)
		}
	}

	return eris.Wrap(tx.Commit(ctx), "postgres: commit enriched")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
