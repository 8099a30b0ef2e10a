package model

import "time"

// Classification is the final label the engine assigns to a notice.
type Classification string

const (
	ClassOpportunity Classification = "insourcing_opportunity"
	ClassFramework   Classification = "framework"
	ClassDiscard     Classification = "discard"
)

// EntityType distinguishes which registry set a classification-time entity
// match came from.
type EntityType string

const (
	EntityProvider   EntityType = "provider"
	EntityParentBody EntityType = "parent_body"
)

// ClassificationResult is the outcome of running a notice through the
// classification pipeline. MatchedEntityType is set iff one of the matched
// code fields is set. Confidence is a fixed per-rule label in [0, 100],
// not a calibrated probability.
type ClassificationResult struct {
	Classification        Classification `json:"classification"`
	Reason                string         `json:"reason"`
	Confidence            int            `json:"confidence"`
	MatchedProviderCode   string         `json:"matched_provider_code,omitempty"`
	MatchedProviderName   string         `json:"matched_provider_name,omitempty"`
	MatchedParentBodyCode string         `json:"matched_parent_body_code,omitempty"`
	MatchedParentBodyName string         `json:"matched_parent_body_name,omitempty"`
	MatchedEntityType     EntityType     `json:"matched_entity_type,omitempty"`
	IsFramework           bool           `json:"is_framework,omitempty"`
	FrameworkName         string         `json:"framework_name,omitempty"`
}

// Matched reports whether the pipeline found any provider or parent-body
// entity for the notice.
func (r ClassificationResult) Matched() bool {
	return r.MatchedProviderCode != "" || r.MatchedParentBodyCode != ""
}

// EnrichedNotice is the persistence-ready projection of a notice built by
// the enrichment orchestrator. Mapping is nil when the buyer name resolved
// to no provider.
type EnrichedNotice struct {
	RecordID        string         `json:"record_id"`
	NoticeID        string         `json:"notice_id"`
	Title           string         `json:"title"`
	BuyerName       string         `json:"buyer_name"`
	Mapping         *EntityMapping `json:"mapping,omitempty"`
	ServiceCategory string         `json:"service_category,omitempty"`
	DurationMonths  *int           `json:"duration_months,omitempty"`
	ValueMin        float64        `json:"value_min,omitempty"`
	ValueMax        float64        `json:"value_max,omitempty"`
	Currency        string         `json:"currency,omitempty"`
	PublishedDate   *time.Time     `json:"published_date,omitempty"`
	ClosingDate     *time.Time     `json:"closing_date,omitempty"`
}
