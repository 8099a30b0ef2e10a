package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insource-health/tender-triage/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteStore_SaveClassifications(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	results := map[string]model.ClassificationResult{
		"n1": {Classification: model.ClassOpportunity, Reason: "matched", Confidence: 95},
		"n2": {Classification: model.ClassDiscard, Reason: "no entity", Confidence: 80},
	}
	require.NoError(t, s.SaveClassifications(ctx, results))

	var count int
	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notice_classifications`).Scan(&count))
	assert.Equal(t, 2, count)

	var classification string
	var confidence int
	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT classification, confidence FROM notice_classifications WHERE notice_id = ?`, "n1").
		Scan(&classification, &confidence))
	assert.Equal(t, "insourcing_opportunity", classification)
	assert.Equal(t, 95, confidence)
}

func TestSQLiteStore_SaveClassifications_Upsert(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.SaveClassifications(ctx, map[string]model.ClassificationResult{
		"n1": {Classification: model.ClassDiscard, Reason: "first pass", Confidence: 80},
	}))
	require.NoError(t, s.SaveClassifications(ctx, map[string]model.ClassificationResult{
		"n1": {Classification: model.ClassOpportunity, Reason: "second pass", Confidence: 95},
	}))

	var count int
	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notice_classifications`).Scan(&count))
	assert.Equal(t, 1, count)

	var reason string
	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT reason FROM notice_classifications WHERE notice_id = ?`, "n1").Scan(&reason))
	assert.Equal(t, "second pass", reason)
}

func TestSQLiteStore_SaveEnriched(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	months := 12
	require.NoError(t, s.SaveEnriched(ctx, []model.EnrichedNotice{
		{
			RecordID:        "rec-1",
			NoticeID:        "n1",
			Title:           "Locum Cover",
			BuyerName:       "Barts Health NHS Trust",
			ServiceCategory: "Other Clinical Services",
			DurationMonths:  &months,
			Mapping:         &model.EntityMapping{ProviderCode: "R1H", MappingMethod: model.MappingExact},
		},
		{
			RecordID:  "rec-2",
			NoticeID:  "n2",
			Title:     "Unmapped Notice",
			BuyerName: "Acme Widgets Ltd",
		},
	}))

	var mapping *string
	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT mapping FROM enriched_notices WHERE notice_id = ?`, "n1").Scan(&mapping))
	require.NotNil(t, mapping)
	assert.Contains(t, *mapping, `"R1H"`)

	// Unresolved buyer persists with NULL mapping and category.
	var category *string
	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT mapping FROM enriched_notices WHERE notice_id = ?`, "n2").Scan(&mapping))
	assert.Nil(t, mapping)
	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT service_category FROM enriched_notices WHERE notice_id = ?`, "n2").Scan(&category))
	assert.Nil(t, category)
}

func TestSQLiteStore_SaveEnriched_Empty(t *testing.T) {
	s := newTestSQLite(t)
	assert.NoError(t, s.SaveEnriched(context.Background(), nil))
}
