package registry

import (
	"context"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/insource-health/tender-triage/internal/fetcher"
	"github.com/insource-health/tender-triage/internal/model"
)

// CSVSource loads providers from a CSV export of the national provider
// directory and categories from a YAML definition file.
type CSVSource struct {
	ProvidersPath  string
	CategoriesPath string // optional; empty means no category definitions
}

func (s *CSVSource) Providers(ctx context.Context) ([]model.Provider, error) {
	f, err := os.Open(s.ProvidersPath)
	if err != nil {
		return nil, eris.Wrap(err, "registry: open providers csv")
	}
	defer f.Close()

	header, rows, err := fetcher.ReadCSV(f, fetcher.CSVOptions{HasHeader: true, TrimSpace: true})
	if err != nil {
		return nil, err
	}

	cols, err := providerColumns(header)
	if err != nil {
		return nil, err
	}

	return providersFromRows(rows, cols)
}

func (s *CSVSource) Categories(ctx context.Context) ([]model.Category, error) {
	return loadCategoriesYAML(s.CategoriesPath)
}

// XLSXSource loads providers from a spreadsheet export of the national
// provider directory and categories from a YAML definition file.
type XLSXSource struct {
	ProvidersPath  string
	SheetName      string // optional; default first sheet
	CategoriesPath string
}

func (s *XLSXSource) Providers(ctx context.Context) ([]model.Provider, error) {
	all, err := fetcher.ReadXLSX(s.ProvidersPath, fetcher.XLSXOptions{SheetName: s.SheetName})
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, eris.New("registry: providers sheet is empty")
	}

	cols, err := providerColumns(all[0])
	if err != nil {
		return nil, err
	}

	return providersFromRows(all[1:], cols)
}

func (s *XLSXSource) Categories(ctx context.Context) ([]model.Category, error) {
	return loadCategoriesYAML(s.CategoriesPath)
}

// providerCols maps header names to column indexes for the provider file.
type providerCols struct {
	code, name, parentCode, parentName int
}

// headerAliases maps accepted header spellings to canonical field names.
var headerAliases = map[string]string{
	"provider_code":     "code",
	"code":              "code",
	"organisation_code": "code",
	"provider_name":     "name",
	"name":              "name",
	"organisation_name": "name",
	"parent_body_code":  "parent_code",
	"parent_code":       "parent_code",
	"icb_code":          "parent_code",
	"parent_body_name":  "parent_name",
	"parent_name":       "parent_name",
	"icb_name":          "parent_name",
}

func providerColumns(header []string) (providerCols, error) {
	cols := providerCols{code: -1, name: -1, parentCode: -1, parentName: -1}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		key = strings.ReplaceAll(key, " ", "_")
		switch headerAliases[key] {
		case "code":
			cols.code = i
		case "name":
			cols.name = i
		case "parent_code":
			cols.parentCode = i
		case "parent_name":
			cols.parentName = i
		}
	}
	if cols.code < 0 || cols.name < 0 {
		return cols, eris.Errorf("registry: provider file is missing code/name columns (header: %s)", strings.Join(header, ","))
	}
	return cols, nil
}

func providersFromRows(rows [][]string, cols providerCols) ([]model.Provider, error) {
	providers := make([]model.Provider, 0, len(rows))
	for _, row := range rows {
		p := model.Provider{
			Code: cell(row, cols.code),
			Name: cell(row, cols.name),
		}
		if p.Code == "" || p.Name == "" {
			continue
		}
		p.ParentBodyCode = cell(row, cols.parentCode)
		p.ParentBodyName = cell(row, cols.parentName)
		providers = append(providers, p)
	}
	return providers, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// loadCategoriesYAML reads service-category keyword definitions. An empty
// path returns no categories, which the enricher treats as "category scoring
// unavailable".
func loadCategoriesYAML(path string) ([]model.Category, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "registry: read categories file")
	}

	var doc struct {
		Categories []model.Category `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "registry: parse categories yaml")
	}

	return doc.Categories, nil
}
