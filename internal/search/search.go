// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search ranks a static content collection against free-text
// queries. It provides the query normalizer, the tiered relevance scorer,
// the title suggestion provider, and Engine, which combines them with a
// debounce timer, a FIFO result cache, and a recent-query list.
package search

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/sitesearch/pkg/types"
)

// Query is a normalized search query.
type Query struct {
	// Raw is the input as typed.
	Raw string

	// Text is the lowercased, trimmed input. It is the cache key.
	Text string

	// Terms is Text split on runs of whitespace.
	Terms []string
}

// IsEmpty reports whether the query has no searchable terms.
func (q Query) IsEmpty() bool {
	return len(q.Terms) == 0
}

// Normalize lowercases and trims raw and splits it into terms. It is
// deterministic and idempotent: Normalize(Normalize(s).Text) yields the same
// Text and Terms as Normalize(s).
func Normalize(raw string) Query {
	text := strings.TrimSpace(lower(raw))
	return Query{
		Raw:   raw,
		Text:  text,
		Terms: strings.Fields(text),
	}
}

// lower applies Unicode lowercase mapping. A Caser is stateful, so one is
// built per call.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Results is a ranked result list.
type Results []types.SearchResult

// IDs returns the item IDs in rank order.
func (r Results) IDs() []string {
	ids := make([]string, len(r))
	for i, res := range r {
		ids[i] = res.Item.ID
	}
	return ids
}

// Titles returns the item titles in rank order.
func (r Results) Titles() []string {
	titles := make([]string, len(r))
	for i, res := range r {
		titles[i] = res.Item.Title
	}
	return titles
}

// FilterByCategory returns results whose category equals category,
// compared case-insensitively.
func (r Results) FilterByCategory(category string) Results {
	filtered := Results{}
	for _, res := range r {
		if strings.EqualFold(res.Item.Category, category) {
			filtered = append(filtered, res)
		}
	}
	return filtered
}

// FilterByMinScore returns results with score >= minScore.
func (r Results) FilterByMinScore(minScore int) Results {
	filtered := Results{}
	for _, res := range r {
		if res.Score >= minScore {
			filtered = append(filtered, res)
		}
	}
	return filtered
}

// Limit returns at most n results. n <= 0 means no limit.
func (r Results) Limit(n int) Results {
	if n <= 0 || len(r) <= n {
		return r
	}
	return r[:n]
}

// clone deep-copies r so callers cannot reach the slices held by the cache.
func (r Results) clone() Results {
	out := make(Results, len(r))
	for i, res := range r {
		res.MatchedFields = slices.Clone(res.MatchedFields)
		res.Item.Keywords = slices.Clone(res.Item.Keywords)
		out[i] = res
	}
	return out
}
