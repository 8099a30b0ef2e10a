// Package classify labels procurement notices as framework, insourcing
// opportunity, or discard via an ordered, short-circuiting rule pipeline.
package classify

import (
	"fmt"
	"strings"

	"github.com/insource-health/tender-triage/internal/model"
	"github.com/insource-health/tender-triage/internal/registry"
)

// Stage confidence constants. These are fixed per-rule priority labels, not
// calibrated probabilities.
const (
	confFramework     = 95
	confNonHealthcare = 95
	confCoreKeyword   = 95
	confMediumKeyword = 80
	confCPVPrefix     = 70
	confNoRelevance   = 85
	confNoEntity      = 80
	confNonStaffing   = 90
	confNoIndicator   = 85
	confOpportunity   = 95
)

// Engine classifies notices against a loaded registry. Classify is pure
// given a fixed registry and safe for concurrent use.
type Engine struct {
	reg *registry.Registry
}

// NewEngine creates an Engine over a loaded registry.
func NewEngine(reg *registry.Registry) *Engine {
	return &Engine{reg: reg}
}

// Classify runs the staged pipeline over one notice. Stages are evaluated in
// order and each may short-circuit with a final result.
func (e *Engine) Classify(n model.Notice) model.ClassificationResult {
	text := strings.ToLower(n.Title + " " + n.Description)

	// Stage 1: framework detection.
	if name, ok := matchFramework(text); ok {
		return model.ClassificationResult{
			Classification: model.ClassFramework,
			Reason:         fmt.Sprintf("framework indicator %q found", name),
			Confidence:     confFramework,
			IsFramework:    true,
			FrameworkName:  name,
		}
	}

	// Stage 2: non-healthcare exclusion, first firing rule wins.
	for _, rule := range nonHealthcareRules {
		if trigger, ok := rule.Fires(text); ok {
			return model.ClassificationResult{
				Classification: model.ClassDiscard,
				Reason:         fmt.Sprintf("non-healthcare notice: %s (%q)", rule.Name, trigger),
				Confidence:     confNonHealthcare,
			}
		}
	}

	// Stage 3: healthcare/insourcing relevance gate.
	relevanceKw, ok := e.relevance(text, n.CPVCodes)
	if !ok {
		return model.ClassificationResult{
			Classification: model.ClassDiscard,
			Reason:         "no insourcing or healthcare keywords found",
			Confidence:     confNoRelevance,
		}
	}

	// Stage 4: entity match, kept on the result for audit whatever follows.
	match := e.matchEntity(n, text)
	if match == nil {
		return model.ClassificationResult{
			Classification: model.ClassDiscard,
			Reason:         "no provider or parent body entity matched",
			Confidence:     confNoEntity,
		}
	}

	// Stage 5: non-staffing verification, first category with a hit wins.
	for _, category := range nonStaffingCategories {
		if trigger, ok := category.Fires(text); ok {
			result := model.ClassificationResult{
				Classification: model.ClassDiscard,
				Reason:         fmt.Sprintf("not a staffing/service opportunity: %s (%q)", category.Name, trigger),
				Confidence:     confNonStaffing,
			}
			match.apply(&result)
			return result
		}
	}

	indicator, ok := containsAny(text, positiveIndicators)
	if !ok {
		result := model.ClassificationResult{
			Classification: model.ClassDiscard,
			Reason:         "no clinical staffing or service-delivery indicator found",
			Confidence:     confNoIndicator,
		}
		match.apply(&result)
		return result
	}

	result := model.ClassificationResult{
		Classification: model.ClassOpportunity,
		Reason:         fmt.Sprintf("insourcing opportunity: relevance %q, indicator %q, matched %s", relevanceKw, indicator, match.name),
		Confidence:     confOpportunity,
	}
	match.apply(&result)
	return result
}

// ClassifyBatch classifies each notice and keys results by notice ID.
// Duplicate IDs in the input overwrite earlier results.
func (e *Engine) ClassifyBatch(notices []model.Notice) map[string]model.ClassificationResult {
	results := make(map[string]model.ClassificationResult, len(notices))
	for _, n := range notices {
		results[n.ID] = e.Classify(n)
	}
	return results
}

// relevance applies the stage-3 gate: core keywords, then medium service
// keywords, then the health-services CPV prefix. The returned keyword feeds
// the final reason text.
func (e *Engine) relevance(text string, cpvCodes []string) (string, bool) {
	if kw, ok := containsAny(text, coreKeywords); ok {
		return kw, true
	}
	if kw, ok := containsAny(text, mediumKeywords); ok {
		return kw, true
	}
	for _, code := range cpvCodes {
		if strings.HasPrefix(strings.TrimSpace(code), cpvHealthPrefix) {
			return "cpv " + strings.TrimSpace(code), true
		}
	}
	return "", false
}

func matchFramework(text string) (string, bool) {
	if name, ok := containsAny(text, frameworkIndicators); ok {
		return name, true
	}
	return containsAny(text, namedFrameworks)
}

// entityMatch records a stage-4 hit for audit purposes. This substring scan
// is deliberately recall-optimized and separate from the tiered resolver
// used at enrichment time.
type entityMatch struct {
	name       string
	code       string
	entityType model.EntityType
}

func (m *entityMatch) apply(r *model.ClassificationResult) {
	r.MatchedEntityType = m.entityType
	switch m.entityType {
	case model.EntityProvider:
		r.MatchedProviderCode = m.code
		r.MatchedProviderName = m.name
	case model.EntityParentBody:
		r.MatchedParentBodyCode = m.code
		r.MatchedParentBodyName = m.name
	}
}

// matchEntity scans provider name variants, then parent-body variants, for a
// substring hit against buyer + title + description.
func (e *Engine) matchEntity(n model.Notice, text string) *entityMatch {
	searchText := strings.ToLower(n.Buyer.Name) + " " + text

	for _, entry := range e.reg.Providers() {
		for _, variant := range entry.Variants {
			if strings.Contains(searchText, strings.ToLower(variant)) {
				return &entityMatch{
					name:       entry.Provider.Name,
					code:       entry.Provider.Code,
					entityType: model.EntityProvider,
				}
			}
		}
	}

	for _, entry := range e.reg.ParentBodies() {
		for _, variant := range entry.Variants {
			if strings.Contains(searchText, strings.ToLower(variant)) {
				return &entityMatch{
					name:       entry.ParentBody.Name,
					code:       entry.ParentBody.Code,
					entityType: model.EntityParentBody,
				}
			}
		}
	}

	return nil
}
