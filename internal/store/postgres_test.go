package store

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insource-health/tender-triage/internal/model"
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return &PostgresStore{pool: mock}, mock
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS notice_classifications`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveClassifications(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO notice_classifications`).
		WithArgs("n1", "insourcing_opportunity", "matched", 95, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := s.SaveClassifications(context.Background(), map[string]model.ClassificationResult{
		"n1": {Classification: model.ClassOpportunity, Reason: "matched", Confidence: 95},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveClassifications_Empty(t *testing.T) {
	s, mock := newMockStore(t)

	// No transaction is opened for an empty batch.
	require.NoError(t, s.SaveClassifications(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveClassifications_ExecFailureRollsBack(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO notice_classifications`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	err := s.SaveClassifications(context.Background(), map[string]model.ClassificationResult{
		"n1": {Classification: model.ClassDiscard, Reason: "x", Confidence: 80},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert classification")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveEnriched(t *testing.T) {
	s, mock := newMockStore(t)

	months := 6
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO enriched_notices`).
		WithArgs("n1", "Endoscopy Lists", "Barts Health NHS Trust", "Endoscopy",
			&months, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := s.SaveEnriched(context.Background(), []model.EnrichedNotice{
		{
			RecordID:        "rec-1",
			NoticeID:        "n1",
			Title:           "Endoscopy Lists",
			BuyerName:       "Barts Health NHS Trust",
			ServiceCategory: "Endoscopy",
			DurationMonths:  &months,
			Mapping:         &model.EntityMapping{ProviderCode: "R1H", MappingMethod: model.MappingExact},
		},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
