// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog loads the static content collection searched by the
// engine. The compiled-in collection is an embedded YAML document; other
// collections load from a YAML file or a SQLite database.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/sitesearch/pkg/types"
)

// Sentinel errors returned (wrapped) by this package.
var (
	ErrInvalidCatalog    = errors.New("invalid catalog")
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
)

//go:embed videos.yaml
var defaultCatalog []byte

// Document is the YAML layout of a catalog file.
type Document struct {
	Items []types.ContentItem `yaml:"items"`
}

// Default returns the compiled-in collection.
func Default() ([]types.ContentItem, error) {
	items, err := ParseYAML(defaultCatalog)
	if err != nil {
		return nil, fmt.Errorf("loading embedded catalog: %w", err)
	}
	return items, nil
}

// LoadFile reads a collection from path. The extension selects the format:
// .yaml and .yml are YAML documents, .db and .sqlite are SQLite databases.
func LoadFile(path string) ([]types.ContentItem, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(path)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// LoadYAML reads a YAML catalog file.
func LoadYAML(path string) ([]types.ContentItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	items, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// ParseYAML decodes and validates a YAML catalog document.
func ParseYAML(data []byte) ([]types.ContentItem, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := Validate(doc.Items); err != nil {
		return nil, err
	}
	return doc.Items, nil
}

// WriteYAML writes items to path as a YAML catalog document.
func WriteYAML(path string, items []types.ContentItem) error {
	if err := Validate(items); err != nil {
		return err
	}
	data, err := yaml.Marshal(&Document{Items: items})
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks that every item has an ID and a title and that IDs are
// unique. Errors wrap ErrInvalidCatalog.
func Validate(items []types.ContentItem) error {
	seen := make(map[string]int, len(items))
	for i, item := range items {
		if strings.TrimSpace(item.ID) == "" {
			return fmt.Errorf("item %d: missing id: %w", i, ErrInvalidCatalog)
		}
		if strings.TrimSpace(item.Title) == "" {
			return fmt.Errorf("item %q: missing title: %w", item.ID, ErrInvalidCatalog)
		}
		if j, dup := seen[item.ID]; dup {
			return fmt.Errorf("item %d: duplicate id %q (first at %d): %w", i, item.ID, j, ErrInvalidCatalog)
		}
		seen[item.ID] = i
	}
	return nil
}

// Categories returns the distinct non-empty categories in collection order.
func Categories(items []types.ContentItem) []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range items {
		if item.Category == "" || seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		out = append(out, item.Category)
	}
	return out
}
