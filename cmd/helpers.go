package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/insource-health/tender-triage/internal/model"
	"github.com/insource-health/tender-triage/internal/registry"
)

// readNoticesFile loads a JSON array of notices. The transport that produced
// the file (portal download, feed export) is outside this tool.
func readNoticesFile(path string) ([]model.Notice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "notices: read file")
	}

	var notices []model.Notice
	if err := json.Unmarshal(data, &notices); err != nil {
		return nil, eris.Wrap(err, "notices: parse json")
	}

	return notices, nil
}

// loadRegistry builds and loads the registry from the configured source.
func loadRegistry(ctx context.Context) (*registry.Registry, error) {
	if err := cfg.Validate("registry"); err != nil {
		return nil, err
	}

	var src registry.Source
	switch cfg.Registry.Source {
	case "csv":
		src = &registry.CSVSource{
			ProvidersPath:  cfg.Registry.ProvidersPath,
			CategoriesPath: cfg.Registry.CategoriesPath,
		}
	case "xlsx":
		src = &registry.XLSXSource{
			ProvidersPath:  cfg.Registry.ProvidersPath,
			CategoriesPath: cfg.Registry.CategoriesPath,
		}
	case "postgres":
		pool, err := registryPool(ctx)
		if err != nil {
			return nil, err
		}
		src = registry.NewPostgresSource(pool)
	default:
		return nil, eris.Errorf("unknown registry source %q", cfg.Registry.Source)
	}

	reg := registry.New()
	if err := reg.Load(ctx, src); err != nil {
		return nil, err
	}
	return reg, nil
}

// writeJSON renders v as indented JSON to path, or stdout when path is "".
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrap(err, "output: marshal json")
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return eris.Wrap(os.WriteFile(path, data, 0o644), "output: write file")
}
