// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/sitesearch/pkg/types"
)

// Points awarded per query term within a text field.
const (
	wholeWordPoints = 2
	substringPoints = 1
	keywordPoints   = 1
)

// Scorer computes tiered relevance scores. Within title, description and
// category, each term earns wholeWordPoints for a match bounded by non-word runes or
// substringPoints for a plain substring match; the field total is then
// multiplied by the field weight. Keywords earn keywordPoints per
// (keyword, term) substring hit, times the keyword weight.
type Scorer struct {
	weights types.Weights
}

// NewScorer returns a Scorer using w, or the default weights when w is zero.
func NewScorer(w types.Weights) *Scorer {
	if w.IsZero() {
		w = types.DefaultWeights()
	}
	return &Scorer{weights: w}
}

// Weights returns the scorer's field weights.
func (s *Scorer) Weights() types.Weights { return s.weights }

// termMatcher matches one normalized query term.
type termMatcher struct {
	term string
}

func compileTerms(terms []string) []termMatcher {
	matchers := make([]termMatcher, 0, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		matchers = append(matchers, termMatcher{term: t})
	}
	return matchers
}

// isWordRune reports whether r continues a word. Combining marks count so
// that vowel signs in scripts such as Telugu stay inside the word.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// wholeWord reports whether m.term occurs in text with no word rune
// directly before or after it.
func (m termMatcher) wholeWord(text string) bool {
	for off := 0; off < len(text); {
		i := strings.Index(text[off:], m.term)
		if i < 0 {
			return false
		}
		start, end := off+i, off+i+len(m.term)
		before, after := true, true
		if start > 0 {
			r, _ := utf8.DecodeLastRuneInString(text[:start])
			before = !isWordRune(r)
		}
		if end < len(text) {
			r, _ := utf8.DecodeRuneInString(text[end:])
			after = !isWordRune(r)
		}
		if before && after {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		off = start + size
	}
	return false
}

// fieldPoints scores one lowercased field against the terms.
func fieldPoints(text string, matchers []termMatcher) int {
	if text == "" {
		return 0
	}
	total := 0
	for _, m := range matchers {
		switch {
		case m.wholeWord(text):
			total += wholeWordPoints
		case strings.Contains(text, m.term):
			total += substringPoints
		}
	}
	return total
}

func keywordPointsFor(keywords []string, matchers []termMatcher) int {
	total := 0
	for _, kw := range keywords {
		kw = lower(kw)
		for _, m := range matchers {
			if strings.Contains(kw, m.term) {
				total += keywordPoints
			}
		}
	}
	return total
}

// Score returns the relevance score of item for the normalized terms and
// the fields that contributed to it.
func (s *Scorer) Score(item types.ContentItem, terms []string) (int, []types.Field) {
	return s.score(item, compileTerms(terms))
}

func (s *Scorer) score(item types.ContentItem, matchers []termMatcher) (int, []types.Field) {
	if len(matchers) == 0 {
		return 0, nil
	}

	contrib := [...]int{
		fieldPoints(lower(item.Title), matchers) * s.weights.Title,
		fieldPoints(lower(item.Description), matchers) * s.weights.Description,
		fieldPoints(lower(item.Category), matchers) * s.weights.Category,
		keywordPointsFor(item.Keywords, matchers) * s.weights.Keywords,
	}

	total := 0
	var matched []types.Field
	for i, c := range contrib {
		if c > 0 {
			total += c
			matched = append(matched, types.Fields[i])
		}
	}
	return total, matched
}

// Rank scores every item against q, drops items scoring zero, and sorts the
// rest by score descending. Ties keep collection order.
func (s *Scorer) Rank(items []types.ContentItem, q Query) Results {
	results := Results{}
	if q.IsEmpty() {
		return results
	}

	matchers := compileTerms(q.Terms)
	for _, item := range items {
		score, fields := s.score(item, matchers)
		if score <= 0 {
			continue
		}
		results = append(results, types.SearchResult{
			Item:          item,
			Score:         score,
			MatchedFields: fields,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// Rank ranks items with the default weights.
func Rank(items []types.ContentItem, q Query) Results {
	return NewScorer(types.Weights{}).Rank(items, q)
}
