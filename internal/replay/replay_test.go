// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package replay

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sitesearch/internal/metrics"
	"github.com/pdiddy/sitesearch/pkg/types"
)

func testItems() []types.ContentItem {
	return []types.ContentItem{
		{ID: "react-hooks", Title: "React Hooks in Telugu Tutorial 2025", Category: "React"},
		{ID: "git", Title: "Git and GitHub Tutorial", Category: "DevOps", Keywords: []string{"git"}},
		{ID: "reactive", Title: "Reactive Streams", Category: "Java"},
	}
}

func TestLoadScript(t *testing.T) {
	s, err := LoadScript(filepath.Join("testdata", "rea-react.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "rea-react", s.Name)
	require.Len(t, s.Steps, 8)
	assert.Equal(t, StepTypeText, s.Steps[0].Type)
	assert.Equal(t, "100ms", s.Steps[1].Duration)
}

func TestRun_DebounceCancelsPrefix(t *testing.T) {
	s, err := LoadScript(filepath.Join("testdata", "rea-react.yaml"))
	require.NoError(t, err)

	report, err := Run(context.Background(), s, testItems(), Options{})
	require.NoError(t, err)

	require.Len(t, report.Commits, 2)
	assert.Equal(t, "react", report.Commits[0].Query, "rea is cancelled by the next keystroke")
	assert.Equal(t, 400*time.Millisecond, report.Commits[0].At)
	assert.Equal(t, []string{"react-hooks", "reactive"}, report.Commits[0].Results)
	assert.Equal(t, "git", report.Commits[1].Query)
	assert.Equal(t, []string{"git"}, report.Commits[1].Results)

	assert.Equal(t, 3, report.Keystrokes)
	assert.Equal(t, 1400*time.Millisecond, report.Elapsed)
	assert.Equal(t, []string{"git", "react"}, report.Recent)
	assert.Equal(t, []string{"react", "git"}, report.Cached)
	assert.NotEmpty(t, report.Session)
}

func TestRun_FlushCommitsImmediately(t *testing.T) {
	s := &Script{Steps: []Step{
		{Type: StepTypeText, Text: "git"},
		{Type: StepFlush},
		{Type: StepWait, Duration: "1s"},
	}}
	report, err := Run(context.Background(), s, testItems(), Options{})
	require.NoError(t, err)
	require.Len(t, report.Commits, 1)
	assert.Zero(t, report.Commits[0].At)
	assert.Empty(t, report.Recent, "flush does not record a recent query")
}

func TestRun_ClearEmptiesRecent(t *testing.T) {
	s := &Script{Steps: []Step{
		{Type: StepTypeText, Text: "git"},
		{Type: StepSubmit},
		{Type: StepClear},
	}}
	report, err := Run(context.Background(), s, testItems(), Options{})
	require.NoError(t, err)
	assert.Empty(t, report.Recent)
	assert.Len(t, report.Commits, 1)
}

func TestRun_UnfinishedKeystrokeNeverCommits(t *testing.T) {
	s := &Script{Steps: []Step{
		{Type: StepTypeText, Text: "react"},
		{Type: StepWait, Duration: "299ms"},
	}}
	report, err := Run(context.Background(), s, testItems(), Options{})
	require.NoError(t, err)
	assert.Empty(t, report.Commits)
	assert.Empty(t, report.Cached)
}

func TestRun_ForwardsToObserver(t *testing.T) {
	s, err := LoadScript(filepath.Join("testdata", "rea-react.yaml"))
	require.NoError(t, err)

	rec := metrics.NewRecorder()
	_, err = Run(context.Background(), s, testItems(), Options{Observer: rec})
	require.NoError(t, err)

	assert.Equal(t, 3.0, rec.Value("sitesearch_keystrokes_total", ""))
	assert.Equal(t, 2.0, rec.Value("sitesearch_queries_committed_total", ""))
	assert.Equal(t, 2.0, rec.Value("sitesearch_cache_lookups_total", "result=miss"))
}

func TestRun_CustomDebounce(t *testing.T) {
	s := &Script{Steps: []Step{
		{Type: StepTypeText, Text: "git"},
		{Type: StepWait, Duration: "50ms"},
	}}
	report, err := Run(context.Background(), s, testItems(), Options{
		Config: types.SearchConfig{Debounce: 50 * time.Millisecond},
	})
	require.NoError(t, err)
	assert.Len(t, report.Commits, 1)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, &Script{Steps: []Step{{Type: StepFlush}}}, testItems(), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		step Step
	}{
		{"unknown type", Step{Type: "paste"}},
		{"missing duration", Step{Type: StepWait}},
		{"bad duration", Step{Type: StepWait, Duration: "soon"}},
		{"negative duration", Step{Type: StepWait, Duration: "-1s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Script{Steps: []Step{tt.step}}
			assert.ErrorIs(t, s.Validate(), ErrInvalidStep)

			_, err := Run(context.Background(), s, nil, Options{})
			assert.ErrorIs(t, err, ErrInvalidStep)
		})
	}
}

func TestParseScript_Errors(t *testing.T) {
	_, err := ParseScript([]byte("steps: ["))
	assert.ErrorContains(t, err, "parsing script")

	_, err = ParseScript([]byte("steps:\n  - type: wait\n    duration: forever\n"))
	assert.ErrorIs(t, err, ErrInvalidStep)

	path := filepath.Join(t.TempDir(), "missing.yaml")
	_, err = LoadScript(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReportSummary(t *testing.T) {
	r := &Report{
		Keystrokes: 2,
		Elapsed:    400 * time.Millisecond,
		Commits:    []Commit{{Query: "react"}},
	}
	assert.Equal(t, `2 keystrokes, 1 commits ["react"] in 400ms`, r.Summary())
}
