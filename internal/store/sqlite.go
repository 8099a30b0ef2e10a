package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/insource-health/tender-triage/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. Used for local
// single-user runs where Postgres is not available.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS notice_classifications (
	notice_id      TEXT PRIMARY KEY,
	classification TEXT NOT NULL,
	reason         TEXT NOT NULL,
	confidence     INTEGER NOT NULL,
	detail         TEXT NOT NULL,
	classified_at  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS enriched_notices (
	notice_id        TEXT PRIMARY KEY,
	title            TEXT NOT NULL,
	buyer_name       TEXT NOT NULL,
	service_category TEXT,
	duration_months  INTEGER,
	mapping          TEXT,
	record           TEXT NOT NULL,
	enriched_at      DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_classifications_class ON notice_classifications(classification);
CREATE INDEX IF NOT EXISTS idx_enriched_category ON enriched_notices(service_category);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) SaveClassifications(ctx context.Context, results map[string]model.ClassificationResult) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin")
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for noticeID, result := range results {
		detail, err := json.Marshal(result)
		if err != nil {
			return eris.Wrapf(err, "sqlite: marshal result for %s", noticeID)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO notice_classifications (notice_id, classification, reason, confidence, detail, classified_at)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT (notice_id) DO UPDATE SET
				classification = excluded.classification,
				reason = excluded.reason,
				confidence = excluded.confidence,
				detail = excluded.detail,
				classified_at = excluded.classified_at`,
			noticeID, string(result.Classification), result.Reason, result.Confidence, string(detail), now,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: upsert classification for %s", noticeID)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit classifications")
}

func (s *SQLiteStore) SaveEnriched(ctx context.Context, records []model.EnrichedNotice) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin")
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, record := range records {
		full, err := json.Marshal(record)
		if err != nil {
			return eris.Wrapf(err, "sqlite: marshal record for %s", record.NoticeID)
		}
		var mapping any
		if record.Mapping != nil {
			data, err := json.Marshal(record.Mapping)
			if err != nil {
				return eris.Wrapf(err, "sqlite: marshal mapping for %s", record.NoticeID)
			}
			mapping = string(data)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO enriched_notices (notice_id, title, buyer_name, service_category, duration_months, mapping, record, enriched_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (notice_id) DO UPDATE SET
				title = excluded.title,
				buyer_name = excluded.buyer_name,
				service_category = excluded.service_category,
				duration_months = excluded.duration_months,
				mapping = excluded.mapping,
				record = excluded.record,
				enriched_at = excluded.enriched_at`,
			record.NoticeID, record.Title, record.BuyerName,
			nullable(record.ServiceCategory), record.DurationMonths, mapping, string(full), now,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: upsert enriched for %s", record.NoticeID)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit enriched")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
