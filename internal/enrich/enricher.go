// Package enrich builds persistence-ready enriched records from notices
// using the entity resolver and category scorer.
package enrich

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/insource-health/tender-triage/internal/model"
	"github.com/insource-health/tender-triage/internal/resolve"
)

// daysPerMonth is the fixed approximation used to derive contract duration.
const daysPerMonth = 30

// Enricher orchestrates entity resolution and category scoring for
// ingestion. Its resolver-based match is precision-optimized and may
// disagree with the classification engine's audit match on the same notice.
type Enricher struct {
	resolver    *resolve.Resolver
	scorer      *CategoryScorer
	concurrency int
}

// NewEnricher creates an Enricher. concurrency bounds EnrichBatch workers;
// values below 1 run serially.
func NewEnricher(resolver *resolve.Resolver, scorer *CategoryScorer, concurrency int) *Enricher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Enricher{resolver: resolver, scorer: scorer, concurrency: concurrency}
}

// Enrich builds the normalized record for one notice. A buyer that resolves
// to no provider leaves Mapping nil; that is not an error.
func (e *Enricher) Enrich(ctx context.Context, n model.Notice) (*model.EnrichedNotice, error) {
	if n.ID == "" {
		return nil, eris.New("enrich: notice has no identifier")
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "enrich: context cancelled")
	}

	record := &model.EnrichedNotice{
		RecordID:      uuid.New().String(),
		NoticeID:      n.ID,
		Title:         n.Title,
		BuyerName:     n.Buyer.Name,
		ValueMin:      n.Value.AmountMin,
		ValueMax:      n.Value.AmountMax,
		Currency:      n.Value.Currency,
		PublishedDate: n.PublishedDate,
		ClosingDate:   n.ClosingDate,
	}

	if mapping, ok := e.resolver.Resolve(n.Buyer.Name); ok {
		record.Mapping = mapping
	}

	record.ServiceCategory = e.scorer.Score(n.Title + " " + n.Description)

	if n.StartDate != nil && n.EndDate != nil && !n.EndDate.Before(*n.StartDate) {
		days := int(n.EndDate.Sub(*n.StartDate).Hours() / 24)
		months := days / daysPerMonth
		record.DurationMonths = &months
	}

	return record, nil
}

// EnrichBatch enriches each notice with bounded concurrency. A failing item
// is logged and excluded; the batch continues. Result order follows input
// order.
func (e *Enricher) EnrichBatch(ctx context.Context, notices []model.Notice) []model.EnrichedNotice {
	slots := make([]*model.EnrichedNotice, len(notices))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, n := range notices {
		g.Go(func() error {
			record, err := e.Enrich(gctx, n)
			if err != nil {
				zap.L().Error("enrich: item failed, skipping",
					zap.String("notice_id", n.ID),
					zap.Error(err),
				)
				return nil // partial-failure semantics: never abort the batch
			}
			mu.Lock()
			slots[i] = record
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	out := make([]model.EnrichedNotice, 0, len(notices))
	for _, record := range slots {
		if record != nil {
			out = append(out, *record)
		}
	}
	return out
}
