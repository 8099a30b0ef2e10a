package model

// Provider is a healthcare delivery organization (e.g. a hospital trust)
// from the national registry. Read-only after registry load.
type Provider struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	ParentBodyCode string `json:"parent_body_code,omitempty"`
	ParentBodyName string `json:"parent_body_name,omitempty"`
}

// ParentBody is an administrative body (e.g. an integrated care board)
// overseeing a group of providers. Derived from the provider registry.
type ParentBody struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Category maps a service category name to the keywords that indicate it.
// Registration order is significant: ties during scoring break toward the
// earlier category.
type Category struct {
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// MappingMethod identifies which resolver tier produced an entity mapping.
type MappingMethod string

const (
	MappingExact   MappingMethod = "exact_match"
	MappingFuzzy   MappingMethod = "fuzzy_match"
	MappingKeyword MappingMethod = "keyword_match"
	MappingManual  MappingMethod = "manual"
)

// EntityMapping is the result of resolving a free-text buyer name to a
// canonical provider. ConfidenceScore is in [0.0, 1.0].
type EntityMapping struct {
	ProviderCode    string        `json:"provider_code"`
	ProviderName    string        `json:"provider_name"`
	ParentBodyCode  string        `json:"parent_body_code,omitempty"`
	ConfidenceScore float64       `json:"confidence_score"`
	MappingMethod   MappingMethod `json:"mapping_method"`
}
