package registry

import (
	"context"

	"github.com/insource-health/tender-triage/internal/model"
)

// Source supplies the canonical provider registry and the service-category
// keyword definitions. Implementations must return de-duplicated provider
// tuples; the Registry deduplicates defensively by provider code anyway.
type Source interface {
	Providers(ctx context.Context) ([]model.Provider, error)
	Categories(ctx context.Context) ([]model.Category, error)
}

// StaticSource is a Source backed by in-memory slices. Used in tests and for
// small fixed registries.
type StaticSource struct {
	ProviderList []model.Provider
	CategoryList []model.Category
}

func (s *StaticSource) Providers(ctx context.Context) ([]model.Provider, error) {
	return s.ProviderList, nil
}

func (s *StaticSource) Categories(ctx context.Context) ([]model.Category, error) {
	return s.CategoryList, nil
}
