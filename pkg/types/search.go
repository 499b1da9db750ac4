// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for sitesearch: the content
// collection, ranked search results, and configuration.
package types

// Field names a ContentItem field that can contribute to a relevance score.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldCategory    Field = "category"
	FieldKeywords    Field = "keywords"
)

// Fields lists every scorable field in canonical order.
var Fields = []Field{FieldTitle, FieldDescription, FieldCategory, FieldKeywords}

// ContentItem is one entry of the static content collection (a video in the
// showcase). Items are loaded once and never mutated.
type ContentItem struct {
	// ID uniquely identifies the item within its collection.
	ID string `json:"id" yaml:"id"`

	// Title is the display title.
	Title string `json:"title" yaml:"title"`

	// Category groups items for browsing (e.g. "React", "DevOps").
	Category string `json:"category" yaml:"category"`

	// Description is optional; an empty string means absent.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Keywords is an optional ordered list of search keywords.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// SearchResult is a ContentItem that matched a query, with its score.
type SearchResult struct {
	Item ContentItem `json:"item" yaml:"item"`

	// Score is the weighted relevance score. Always > 0 for listed results.
	Score int `json:"score" yaml:"score"`

	// MatchedFields lists the fields that contributed a nonzero score, in
	// canonical field order. Used for labeling only, never for ranking.
	MatchedFields []Field `json:"matched_fields" yaml:"matched_fields"`
}

// Matched reports whether f contributed to the score.
func (r SearchResult) Matched(f Field) bool {
	for _, m := range r.MatchedFields {
		if m == f {
			return true
		}
	}
	return false
}
