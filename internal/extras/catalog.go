// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extras

import (
	_ "embed"
	"fmt"

	"go.yaml.in/yaml/v3"
)

//go:embed extras.yaml
var catalogYAML []byte

// CatalogEntry describes one installable markitdown extras group.
type CatalogEntry struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// Catalog returns the known extras groups from the embedded manifest.
func Catalog() ([]CatalogEntry, error) {
	var manifest struct {
		Extras []CatalogEntry `yaml:"extras"`
	}
	if err := yaml.Unmarshal(catalogYAML, &manifest); err != nil {
		return nil, fmt.Errorf("parsing extras manifest: %w", err)
	}
	return manifest.Extras, nil
}
