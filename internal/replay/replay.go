// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package replay runs scripted keystroke sessions against a search engine
// on a virtual clock. A script describes what a user types and how long
// they pause; the report shows which queries the debouncer actually
// committed and what they returned.
package replay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/sitesearch/internal/debounce"
	"github.com/pdiddy/sitesearch/internal/search"
	"github.com/pdiddy/sitesearch/pkg/types"
)

// ErrInvalidStep is returned (wrapped) for a malformed script step.
var ErrInvalidStep = errors.New("invalid replay step")

// StepType names a replay action.
type StepType string

const (
	// StepTypeText feeds Text to the engine as one keystroke.
	StepTypeText StepType = "type"
	// StepWait advances the virtual clock by Duration.
	StepWait StepType = "wait"
	// StepSubmit commits any pending keystroke and records the committed
	// input as a recent query.
	StepSubmit StepType = "submit"
	// StepClear empties the recent-query list.
	StepClear StepType = "clear"
	// StepFlush commits any pending keystroke.
	StepFlush StepType = "flush"
)

// Step is one scripted action.
type Step struct {
	Type     StepType `yaml:"type"`
	Text     string   `yaml:"text,omitempty"`
	Duration string   `yaml:"duration,omitempty"`
}

// Script is a named list of steps.
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// LoadScript reads and validates a YAML script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes and validates a YAML script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every step. Errors wrap ErrInvalidStep.
func (s *Script) Validate() error {
	for i, step := range s.Steps {
		switch step.Type {
		case StepTypeText, StepSubmit, StepClear, StepFlush:
		case StepWait:
			d, err := time.ParseDuration(step.Duration)
			if err != nil {
				return fmt.Errorf("step %d: duration %q: %w", i+1, step.Duration, ErrInvalidStep)
			}
			if d < 0 {
				return fmt.Errorf("step %d: negative duration: %w", i+1, ErrInvalidStep)
			}
		default:
			return fmt.Errorf("step %d: unknown type %q: %w", i+1, step.Type, ErrInvalidStep)
		}
	}
	return nil
}

// Commit is one query the engine committed during a replay.
type Commit struct {
	At      time.Duration `json:"at" yaml:"at"`
	Query   string        `json:"query" yaml:"query"`
	Results []string      `json:"results" yaml:"results"`
}

// Report summarizes a replay.
type Report struct {
	Script     string        `json:"script" yaml:"script"`
	Session    string        `json:"session" yaml:"session"`
	Keystrokes int           `json:"keystrokes" yaml:"keystrokes"`
	Elapsed    time.Duration `json:"elapsed" yaml:"elapsed"`
	Commits    []Commit      `json:"commits" yaml:"commits"`
	Recent     []string      `json:"recent" yaml:"recent"`
	Cached     []string      `json:"cached" yaml:"cached"`
}

// Options configures Run.
type Options struct {
	Config   types.SearchConfig
	Logger   *slog.Logger
	Observer search.Observer
}

// epoch is the virtual start time of every replay.
var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// Run replays script against a fresh engine over items. Time is virtual:
// wait steps advance a ManualClock, so a replay never sleeps.
func Run(ctx context.Context, script *Script, items []types.ContentItem, opts Options) (*Report, error) {
	if err := script.Validate(); err != nil {
		return nil, err
	}

	clock := debounce.NewManualClock(epoch)
	tap := &commitTap{next: opts.Observer}
	engine := search.New(items, search.Options{
		Config:   opts.Config,
		Clock:    clock,
		Logger:   opts.Logger,
		Observer: tap,
	})
	defer engine.Close()

	report := &Report{
		Script:  script.Name,
		Session: engine.ID(),
		Commits: []Commit{},
	}

	var typed string
	for _, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		before := tap.commits
		switch step.Type {
		case StepTypeText:
			typed = step.Text
			report.Keystrokes++
			engine.SetQuery(step.Text)
		case StepWait:
			d, _ := time.ParseDuration(step.Duration)
			clock.Advance(d)
		case StepFlush:
			engine.Flush()
		case StepSubmit:
			engine.Flush()
			engine.RecordQuery(typed)
		case StepClear:
			engine.ClearRecentQueries()
		}

		if tap.commits != before {
			q, _ := engine.CommittedQuery()
			report.Commits = append(report.Commits, Commit{
				At:      clock.Now().Sub(epoch),
				Query:   q.Raw,
				Results: engine.Results().IDs(),
			})
		}
	}

	report.Elapsed = clock.Now().Sub(epoch)
	report.Recent = engine.RecentQueries()
	report.Cached = engine.CachedQueries()
	return report, nil
}

// Summary returns a one-line description of the report.
func (r *Report) Summary() string {
	queries := make([]string, len(r.Commits))
	for i, c := range r.Commits {
		queries[i] = fmt.Sprintf("%q", c.Query)
	}
	return fmt.Sprintf("%d keystrokes, %d commits [%s] in %s",
		r.Keystrokes, len(r.Commits), strings.Join(queries, ", "), r.Elapsed)
}

// commitTap counts commits and forwards every event to next. The engine
// calls it with its locks held on the replay goroutine, since a ManualClock
// fires timers synchronously.
type commitTap struct {
	next    search.Observer
	commits int
}

func (t *commitTap) Keystroke() {
	if t.next != nil {
		t.next.Keystroke()
	}
}

func (t *commitTap) Committed(results int) {
	t.commits++
	if t.next != nil {
		t.next.Committed(results)
	}
}

func (t *commitTap) CacheLookup(hit bool) {
	if t.next != nil {
		t.next.CacheLookup(hit)
	}
}

func (t *commitTap) CacheEvicted() {
	if t.next != nil {
		t.next.CacheEvicted()
	}
}
