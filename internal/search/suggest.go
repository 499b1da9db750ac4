// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"strings"

	"github.com/pdiddy/sitesearch/pkg/types"
)

// SuggestTitles returns up to limit distinct titles, in collection order,
// whose lowercased form contains q.Text. It does not score; it is a cheap
// prefix/substring scan for autocomplete. An empty query yields nothing.
func SuggestTitles(items []types.ContentItem, q Query, limit int) []string {
	out := []string{}
	if q.Text == "" || limit <= 0 {
		return out
	}

	seen := make(map[string]bool)
	for _, item := range items {
		if seen[item.Title] {
			continue
		}
		if !strings.Contains(lower(item.Title), q.Text) {
			continue
		}
		seen[item.Title] = true
		out = append(out, item.Title)
		if len(out) == limit {
			break
		}
	}
	return out
}
