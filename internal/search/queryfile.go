// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/sitesearch/pkg/types"
)

// QueryFile is the on-disk representation of a query and its ranked
// results, so a search can be reviewed later without re-running it.
type QueryFile struct {
	Query   QueryParams          `yaml:"query"`
	Weights types.Weights        `yaml:"weights"`
	Results []types.SearchResult `yaml:"results"`
	Summary QuerySummary         `yaml:"summary"`
}

// QueryParams stores the query in serializable form.
type QueryParams struct {
	Raw      string `yaml:"raw"`
	Text     string `yaml:"text"`
	Category string `yaml:"category,omitempty"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total     int       `yaml:"total"`
	TopScore  int       `yaml:"top_score"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves q, the category filter (if any), and results to a
// YAML file at path.
func WriteQueryFile(path string, q Query, category string, weights types.Weights, results Results) error {
	qf := QueryFile{
		Query: QueryParams{
			Raw:      q.Raw,
			Text:     q.Text,
			Category: category,
		},
		Weights: weights,
		Results: results,
		Summary: QuerySummary{
			Total:     len(results),
			Timestamp: time.Now().UTC(),
		},
	}
	if len(results) > 0 {
		qf.Summary.TopScore = results[0].Score
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// ToQuery re-normalizes the stored raw input.
func (p QueryParams) ToQuery() Query {
	return Normalize(p.Raw)
}

// SearchResults returns the stored results as a Results list.
func (qf *QueryFile) SearchResults() Results {
	return Results(qf.Results)
}
