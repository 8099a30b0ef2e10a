// Package registry loads the canonical provider registry and derives the
// name-variant sets used for matching.
package registry

import (
	"context"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/insource-health/tender-triage/internal/model"
)

// ProviderEntry pairs a provider with its derived name variants.
type ProviderEntry struct {
	Provider model.Provider
	Variants []string
}

// ParentBodyEntry pairs a parent body with its derived name variants.
type ParentBodyEntry struct {
	ParentBody model.ParentBody
	Variants   []string
}

// Registry holds the provider and parent-body reference data. It is built
// once via Load and read-only afterwards; classification and resolution must
// not run against an unloaded registry.
type Registry struct {
	mu         sync.Mutex
	loaded     bool
	providers  []ProviderEntry
	parents    []ParentBodyEntry
	categories []model.Category
}

// New returns an empty, unloaded Registry.
func New() *Registry {
	return &Registry{}
}

// Load populates the registry from src. The first successful call wins;
// subsequent calls are no-ops. A load failure propagates and leaves the
// registry unloaded — there is no partial mode, since classifying against an
// incomplete registry would silently under-match.
func (r *Registry) Load(ctx context.Context, src Source) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded {
		return nil
	}

	providers, err := src.Providers(ctx)
	if err != nil {
		return eris.Wrap(err, "registry: load providers")
	}
	if len(providers) == 0 {
		return eris.New("registry: source returned no providers")
	}

	categories, err := src.Categories(ctx)
	if err != nil {
		return eris.Wrap(err, "registry: load categories")
	}

	seen := make(map[string]struct{}, len(providers))
	parentSeen := make(map[string]struct{})
	var entries []ProviderEntry
	var parents []ParentBodyEntry

	for _, p := range providers {
		code := strings.TrimSpace(p.Code)
		if code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}

		entries = append(entries, ProviderEntry{
			Provider: p,
			Variants: ProviderVariants(p.Name),
		})

		// Project parent bodies from providers that carry both fields.
		if p.ParentBodyCode != "" && p.ParentBodyName != "" {
			if _, dup := parentSeen[p.ParentBodyCode]; !dup {
				parentSeen[p.ParentBodyCode] = struct{}{}
				parents = append(parents, ParentBodyEntry{
					ParentBody: model.ParentBody{Code: p.ParentBodyCode, Name: p.ParentBodyName},
					Variants:   ParentBodyVariants(p.ParentBodyName),
				})
			}
		}
	}

	r.providers = entries
	r.parents = parents
	r.categories = categories
	r.loaded = true

	zap.L().Info("registry: loaded",
		zap.Int("providers", len(entries)),
		zap.Int("parent_bodies", len(parents)),
		zap.Int("categories", len(categories)),
	)

	return nil
}

// Loaded reports whether Load has completed successfully.
func (r *Registry) Loaded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loaded
}

// Providers returns the provider entries in registry order.
func (r *Registry) Providers() []ProviderEntry {
	return r.providers
}

// ParentBodies returns the parent-body entries in registry order.
func (r *Registry) ParentBodies() []ParentBodyEntry {
	return r.parents
}

// Categories returns the service-category definitions in registration order.
func (r *Registry) Categories() []model.Category {
	return r.categories
}
