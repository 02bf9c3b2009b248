// cmd/pfimport/overrides.go
package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/pfman/portfolio-import/pkg/model"
	"github.com/pfman/portfolio-import/pkg/wizard"
)

// applyMappingOverrides reads a YAML file of column-to-field assignments and
// applies each to the wizard's mapping. The file maps source column names to
// canonical field names, or "ignored" to drop a suggested mapping:
//
//	Zip: postal_code
//	Internal Ref: ignored
//
// Overrides are applied in sorted column order so the uniqueness rule
// resolves collisions deterministically.
func applyMappingOverrides(w *wizard.Wizard, path string) error {
	if path == "" {
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read mapping file: %w", err)
	}

	overrides := make(map[string]string)
	if err := yaml.Unmarshal(content, &overrides); err != nil {
		return fmt.Errorf("failed to parse mapping file: %w", err)
	}

	columns := make([]string, 0, len(overrides))
	for col := range overrides {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	for _, col := range columns {
		if err := w.SetMapping(col, model.Field(overrides[col])); err != nil {
			return fmt.Errorf("invalid mapping override %q: %w", col, err)
		}
	}

	return nil
}
