package resolve

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/insource-health/tender-triage/internal/model"
	"github.com/insource-health/tender-triage/internal/registry"
)

// DefaultFuzzyThreshold is the dissimilarity above which a best fuzzy
// candidate is rejected.
const DefaultFuzzyThreshold = 0.3

// keywordConfidence is the fixed confidence assigned to tier-3 matches.
const keywordConfidence = 0.7

// Resolver maps buyer names to canonical providers. Tiers are tried in
// order — exact, fuzzy, keyword — and the first success wins. Successful
// lookups are cached for the resolver's lifetime, keyed by lower-cased
// buyer name.
type Resolver struct {
	reg       *registry.Registry
	scorer    Scorer
	threshold float64

	// Precomputed per provider, aligned with reg.Providers().
	normalized []string
	lowered    []string

	mu    sync.Mutex
	cache map[string]model.EntityMapping
}

// New creates a Resolver over a loaded registry. scorer may be nil, which
// skips the fuzzy tier. A non-positive threshold uses DefaultFuzzyThreshold.
func New(reg *registry.Registry, scorer Scorer, threshold float64) *Resolver {
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}

	providers := reg.Providers()
	normalized := make([]string, len(providers))
	lowered := make([]string, len(providers))
	for i, entry := range providers {
		normalized[i] = NormalizeName(entry.Provider.Name)
		lowered[i] = strings.ToLower(entry.Provider.Name)
	}

	return &Resolver{
		reg:        reg,
		scorer:     scorer,
		threshold:  threshold,
		normalized: normalized,
		lowered:    lowered,
		cache:      make(map[string]model.EntityMapping),
	}
}

// Resolve maps buyerName to a provider. The boolean is false when no tier
// produced a match; that is a normal outcome, logged as a warning.
func (r *Resolver) Resolve(buyerName string) (*model.EntityMapping, bool) {
	key := strings.ToLower(strings.TrimSpace(buyerName))
	if key == "" {
		return nil, false
	}

	r.mu.Lock()
	if cached, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return &cached, true
	}
	r.mu.Unlock()

	mapping, ok := r.lookup(buyerName, key)
	if !ok {
		zap.L().Warn("resolve: no provider match for buyer",
			zap.String("buyer_name", buyerName),
		)
		return nil, false
	}

	// Only successful lookups are cached. Last writer wins; racing writers
	// store identical values since resolution is pure over the registry.
	r.mu.Lock()
	r.cache[key] = *mapping
	r.mu.Unlock()

	return mapping, true
}

func (r *Resolver) lookup(buyerName, lowerName string) (*model.EntityMapping, bool) {
	providers := r.reg.Providers()

	// Tier 1: exact match on normalized names.
	norm := NormalizeName(buyerName)
	if norm != "" {
		for i, entry := range providers {
			if r.normalized[i] == norm {
				return mappingFor(entry.Provider, model.MappingExact, 1.0), true
			}
		}
	}

	// Tier 2: fuzzy match, skipped when no scorer is available.
	if r.scorer != nil {
		if best, ok := r.scorer.Best(lowerName, r.lowered); ok && best.Dissimilarity < r.threshold {
			p := providers[best.Index].Provider
			return mappingFor(p, model.MappingFuzzy, 1.0-best.Dissimilarity), true
		}
	}

	// Tier 3: leading-location-token equality in registry order.
	if token := LeadingToken(buyerName); token != "" {
		for _, entry := range providers {
			if LeadingToken(entry.Provider.Name) == token {
				return mappingFor(entry.Provider, model.MappingKeyword, keywordConfidence), true
			}
		}
	}

	return nil, false
}

func mappingFor(p model.Provider, method model.MappingMethod, confidence float64) *model.EntityMapping {
	return &model.EntityMapping{
		ProviderCode:    p.Code,
		ProviderName:    p.Name,
		ParentBodyCode:  p.ParentBodyCode,
		ConfidenceScore: confidence,
		MappingMethod:   method,
	}
}

// MappingStats reports the cache size partitioned by mapping method.
func (r *Resolver) MappingStats() map[model.MappingMethod]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := make(map[model.MappingMethod]int)
	for _, m := range r.cache {
		stats[m.MappingMethod]++
	}
	return stats
}
