package enrich

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insource-health/tender-triage/internal/model"
	"github.com/insource-health/tender-triage/internal/registry"
	"github.com/insource-health/tender-triage/internal/resolve"
)

func testEnricher(t *testing.T) *Enricher {
	t.Helper()
	reg := registry.New()
	err := reg.Load(context.Background(), &registry.StaticSource{
		ProviderList: []model.Provider{
			{Code: "RGT", Name: "Cambridge University Hospitals NHS Foundation Trust", ParentBodyCode: "QUE", ParentBodyName: "NHS Cambridgeshire and Peterborough Integrated Care Board"},
			{Code: "R1H", Name: "Barts Health NHS Trust", ParentBodyCode: "QMF", ParentBodyName: "NHS North East London Integrated Care Board"},
		},
	})
	require.NoError(t, err)

	resolver := resolve.New(reg, resolve.LevenshteinScorer{}, 0)
	return NewEnricher(resolver, NewCategoryScorer(testCategories()), 2)
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestEnrich(t *testing.T) {
	e := testEnricher(t)

	record, err := e.Enrich(context.Background(), model.Notice{
		ID:          "notice-1",
		Title:       "Insourced Endoscopy Lists",
		Description: "Weekend colonoscopy sessions.",
		Buyer:       model.Buyer{Name: "Barts Health NHS Trust"},
		Value:       model.Value{AmountMin: 100000, AmountMax: 250000, Currency: "GBP"},
		StartDate:   date(2026, time.January, 1),
		EndDate:     date(2026, time.July, 1),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, record.RecordID)
	assert.Equal(t, "notice-1", record.NoticeID)
	assert.Equal(t, "Barts Health NHS Trust", record.BuyerName)
	require.NotNil(t, record.Mapping)
	assert.Equal(t, "R1H", record.Mapping.ProviderCode)
	assert.Equal(t, model.MappingExact, record.Mapping.MappingMethod)
	assert.Equal(t, "Endoscopy", record.ServiceCategory)
	assert.Equal(t, 250000.0, record.ValueMax)
	require.NotNil(t, record.DurationMonths)
	assert.Equal(t, 6, *record.DurationMonths) // 181 days / 30
}

func TestEnrich_UnresolvedBuyerIsNotAnError(t *testing.T) {
	e := testEnricher(t)

	record, err := e.Enrich(context.Background(), model.Notice{
		ID:    "notice-2",
		Title: "Cataract Surgery Capacity",
		Buyer: model.Buyer{Name: "Acme Widgets Ltd"},
	})
	require.NoError(t, err)
	assert.Nil(t, record.Mapping)
	assert.Equal(t, "Ophthalmology", record.ServiceCategory)
}

func TestEnrich_DurationRequiresBothDates(t *testing.T) {
	e := testEnricher(t)

	record, err := e.Enrich(context.Background(), model.Notice{
		ID:        "notice-3",
		StartDate: date(2026, time.January, 1),
	})
	require.NoError(t, err)
	assert.Nil(t, record.DurationMonths)

	// End before start also yields no duration.
	record, err = e.Enrich(context.Background(), model.Notice{
		ID:        "notice-4",
		StartDate: date(2026, time.July, 1),
		EndDate:   date(2026, time.January, 1),
	})
	require.NoError(t, err)
	assert.Nil(t, record.DurationMonths)
}

func TestEnrich_MissingID(t *testing.T) {
	e := testEnricher(t)

	_, err := e.Enrich(context.Background(), model.Notice{Title: "No ID"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no identifier")
}

func TestEnrich_CancelledContext(t *testing.T) {
	e := testEnricher(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Enrich(ctx, model.Notice{ID: "notice-5"})
	require.Error(t, err)
}

func TestEnrichBatch_PartialFailure(t *testing.T) {
	e := testEnricher(t)

	records := e.EnrichBatch(context.Background(), []model.Notice{
		{ID: "a", Buyer: model.Buyer{Name: "Barts Health NHS Trust"}},
		{Title: "missing identifier"}, // fails, is skipped
		{ID: "c", Buyer: model.Buyer{Name: "Cambridge University Hospitals NHS Foundation Trust"}},
	})

	require.Len(t, records, 2)
	// Input order is preserved for the surviving items.
	assert.Equal(t, "a", records[0].NoticeID)
	assert.Equal(t, "c", records[1].NoticeID)
	assert.Equal(t, "RGT", records[1].Mapping.ProviderCode)
}

func TestEnrichBatch_Empty(t *testing.T) {
	e := testEnricher(t)
	assert.Empty(t, e.EnrichBatch(context.Background(), nil))
}
