package enrich

import (
	"strings"

	"github.com/insource-health/tender-triage/internal/model"
)

// FallbackCategory is assigned when category definitions exist but none of
// their keywords hit the notice text.
const FallbackCategory = "Other Clinical Services"

// CategoryScorer assigns a service category by counting keyword hits per
// category. Ties break toward the earlier-registered category.
type CategoryScorer struct {
	categories []model.Category
}

// NewCategoryScorer creates a scorer over the externally supplied category
// definitions. A nil or empty slice disables scoring.
func NewCategoryScorer(categories []model.Category) *CategoryScorer {
	return &CategoryScorer{categories: categories}
}

// Score returns the category whose keyword list hits the text most often.
// Returns FallbackCategory when definitions exist but nothing hit, and ""
// when no definitions are available.
func (s *CategoryScorer) Score(text string) string {
	if len(s.categories) == 0 {
		return ""
	}

	text = strings.ToLower(text)
	bestName := ""
	bestHits := 0
	for _, category := range s.categories {
		hits := 0
		for _, kw := range category.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				hits++
			}
		}
		// Strict > keeps the earlier category on ties.
		if hits > bestHits {
			bestHits = hits
			bestName = category.Name
		}
	}

	if bestHits == 0 {
		return FallbackCategory
	}
	return bestName
}
