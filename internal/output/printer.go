// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output renders search results, suggestions, catalogs, replay
// reports and metrics for the terminal, as JSON, or as YAML.
package output

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/fatih/color"
)

// ColorMode selects when ANSI colors are used.
type ColorMode int

const (
	// ColorAuto uses colors on a terminal unless NO_COLOR or TERM=dumb says otherwise.
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on.
	ColorAlways
	// ColorNever forces colors off.
	ColorNever
)

// ParseColorMode parses auto, always or never. Empty means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q: must be auto, always, or never", s)
	}
}

// ResolveColors reports whether mode enables colors in this environment.
// isTerminal is consulted only in auto mode.
func ResolveColors(mode ColorMode, isTerminal bool) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		if os.Getenv("TERM") == "dumb" {
			return false
		}
		return isTerminal
	}
}

// Printer writes formatted output to a writer.
type Printer struct {
	out       io.Writer
	useColors bool
}

// NewPrinter returns a Printer writing to w. In auto mode colors follow
// fatih/color's terminal detection for stdout.
func NewPrinter(w io.Writer, mode ColorMode) *Printer {
	return &Printer{out: w, useColors: ResolveColors(mode, !color.NoColor)}
}

// Colors reports whether the printer emits ANSI colors.
func (p *Printer) Colors() bool { return p.useColors }

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer { return p.out }

// Print writes a plain line.
func (p *Printer) Print(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Info writes a cyan line.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.out, p.paint(fmt.Sprintf(format, args...), color.FgCyan))
}

// Header writes a bold title with an underline.
func (p *Printer) Header(title string) {
	underline := strings.Repeat("-", len([]rune(title)))
	fmt.Fprintf(p.out, "%s\n%s\n", p.paint(title, color.Bold), p.paint(underline, color.Faint))
}

// Bold returns text in bold.
func (p *Printer) Bold(text string) string { return p.paint(text, color.Bold) }

// Dim returns dimmed text.
func (p *Printer) Dim(text string) string { return p.paint(text, color.Faint) }

// Score returns n colored by magnitude.
func (p *Printer) Score(n int) string {
	s := fmt.Sprintf("%d", n)
	switch {
	case n >= 10:
		return p.paint(s, color.FgGreen, color.Bold)
	case n >= 5:
		return p.paint(s, color.FgGreen)
	default:
		return p.paint(s, color.FgYellow)
	}
}

// Highlight marks every case-insensitive occurrence of terms in text.
func (p *Printer) Highlight(text string, terms []string) string {
	if !p.useColors || len(terms) == 0 {
		return text
	}
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		if t != "" {
			quoted = append(quoted, regexp.QuoteMeta(t))
		}
	}
	if len(quoted) == 0 {
		return text
	}
	re := regexp.MustCompile(`(?i)(` + strings.Join(quoted, "|") + `)`)
	return re.ReplaceAllStringFunc(text, func(m string) string {
		return p.paint(m, color.FgYellow, color.Bold)
	})
}

func (p *Printer) paint(text string, attrs ...color.Attribute) string {
	if !p.useColors {
		return text
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(text)
}
