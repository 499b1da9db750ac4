// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/sitesearch/internal/metrics"
	"github.com/pdiddy/sitesearch/internal/replay"
	"github.com/pdiddy/sitesearch/internal/search"
	"github.com/pdiddy/sitesearch/pkg/types"
)

// FormatJSON writes v as indented JSON to w.
func FormatJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatYAML writes v as YAML to w.
func FormatYAML(v any, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// Results writes ranked results as a table, highlighting the query terms in
// each title.
func (p *Printer) Results(q search.Query, results search.Results) error {
	if len(results) == 0 {
		p.Print("No results found.")
		return nil
	}

	t := newTable(p.out, "Rank", "Score", "Title", "Category", "Matched")
	for i, r := range results {
		t.add(
			strconv.Itoa(i+1),
			p.Score(r.Score),
			p.Highlight(r.Item.Title, q.Terms),
			r.Item.Category,
			p.Dim(joinFields(r.MatchedFields)),
		)
	}
	if err := t.render(); err != nil {
		return fmt.Errorf("rendering results: %w", err)
	}

	p.Print("\n%d results for %q", len(results), q.Text)
	return nil
}

// Suggestions writes one suggestion per line.
func (p *Printer) Suggestions(list []string) {
	if len(list) == 0 {
		p.Print("No suggestions.")
		return
	}
	for _, s := range list {
		p.Print("  %s", s)
	}
}

// Catalog writes a collection as a table.
func (p *Printer) Catalog(items []types.ContentItem) error {
	if len(items) == 0 {
		p.Print("Catalog is empty.")
		return nil
	}

	t := newTable(p.out, "ID", "Title", "Category", "Keywords")
	for _, item := range items {
		t.add(item.ID, item.Title, item.Category, strings.Join(item.Keywords, ", "))
	}
	if err := t.render(); err != nil {
		return fmt.Errorf("rendering catalog: %w", err)
	}
	p.Print("\n%d items", len(items))
	return nil
}

// Report writes a replay report: one row per committed query, then the
// recent-query list.
func (p *Printer) Report(r *replay.Report) error {
	title := "Replay"
	if r.Script != "" {
		title += " " + r.Script
	}
	p.Header(title)

	if len(r.Commits) == 0 {
		p.Print("No queries committed.")
	} else {
		t := newTable(p.out, "At", "Query", "Results", "Top")
		for _, c := range r.Commits {
			top := ""
			if len(c.Results) > 0 {
				top = c.Results[0]
			}
			t.add(c.At.String(), strconv.Quote(c.Query), strconv.Itoa(len(c.Results)), top)
		}
		if err := t.render(); err != nil {
			return fmt.Errorf("rendering report: %w", err)
		}
	}

	p.Print("")
	p.Info("%s", r.Summary())
	if len(r.Recent) > 0 {
		p.Print("recent: %s", strings.Join(r.Recent, ", "))
	}
	return nil
}

// Metrics writes gathered samples as a table.
func (p *Printer) Metrics(samples []metrics.Sample) error {
	t := newTable(p.out, "Metric", "Label", "Value")
	for _, s := range samples {
		t.add(s.Name, s.Label, strconv.FormatFloat(s.Value, 'f', -1, 64))
	}
	if err := t.render(); err != nil {
		return fmt.Errorf("rendering metrics: %w", err)
	}
	return nil
}

func joinFields(fields []types.Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = string(f)
	}
	return strings.Join(parts, ",")
}
