// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sitesearch/internal/catalog"
	"github.com/pdiddy/sitesearch/internal/replay"
	"github.com/pdiddy/sitesearch/internal/search"
	"github.com/pdiddy/sitesearch/pkg/types"
)

// --- test helpers ---

// resetFlags restores every flag to its default, since commands are package
// globals shared by all tests.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("NO_COLOR", "1")
	resetFlags(rootCmd)
	viper.Reset()
	bindFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "videos.yaml")
	require.NoError(t, catalog.WriteYAML(path, []types.ContentItem{
		{ID: "react", Title: "React Hooks", Category: "React", Keywords: []string{"react"}},
		{ID: "js", Title: "JavaScript Basics", Category: "React Hooks"},
		{ID: "git", Title: "Git Basics", Category: "DevOps"},
	}))
	return path
}

// --- config ---

func TestLoadConfigDefaults(t *testing.T) {
	_, err := execute(t, "version")
	require.NoError(t, err)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, types.DefaultDebounce, cfg.Search.Debounce)
	assert.Equal(t, types.DefaultCacheCapacity, cfg.Search.CacheCapacity)
	assert.Equal(t, types.DefaultWeights(), cfg.Search.Weights)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SITESEARCH_SEARCH_DEBOUNCE", "150ms")
	t.Setenv("SITESEARCH_SEARCH_WEIGHTS_TITLE", "5")
	_, err := execute(t, "version")
	require.NoError(t, err)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 150*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, 5, cfg.Search.Weights.Title)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  suggestion_limit: 1\n"), 0o644))

	out, err := execute(t, "--config", path, "suggest", "basics", "--catalog", writeCatalog(t))
	require.NoError(t, err)
	assert.Equal(t, "  JavaScript Basics\n", out)
}

// --- search ---

func TestSearchTable(t *testing.T) {
	out, err := execute(t, "search", "--catalog", writeCatalog(t), "React", "Hooks")
	require.NoError(t, err)
	assert.Contains(t, out, "React Hooks")
	assert.Contains(t, out, `2 results for "react hooks"`)
}

func TestSearchJSON(t *testing.T) {
	out, err := execute(t, "search", "--catalog", writeCatalog(t), "--json", "react hooks")
	require.NoError(t, err)

	var results []types.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "react", results[0].Item.ID)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestSearchCategoryAndLimit(t *testing.T) {
	out, err := execute(t, "search", "--catalog", writeCatalog(t), "--json", "--category", "react hooks", "react")
	require.NoError(t, err)

	var results []types.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "js", results[0].Item.ID)

	out, err = execute(t, "search", "--catalog", writeCatalog(t), "--json", "--limit", "1", "basics")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Len(t, results, 1)
}

func TestSearchSaveAndLoad(t *testing.T) {
	saved := filepath.Join(t.TempDir(), "q.yaml")
	_, err := execute(t, "search", "--catalog", writeCatalog(t), "--save", saved, "git")
	require.NoError(t, err)

	qf, err := search.ReadQueryFile(saved)
	require.NoError(t, err)
	assert.Equal(t, "git", qf.Query.Text)
	assert.Equal(t, []string{"git"}, qf.SearchResults().IDs())

	out, err := execute(t, "search", "--load", saved, "--json")
	require.NoError(t, err)
	var results []types.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Len(t, results, 1)
}

func TestSearchErrors(t *testing.T) {
	_, err := execute(t, "search")
	assert.ErrorContains(t, err, "query required")

	_, err = execute(t, "search", "--json", "--yaml", "git")
	assert.ErrorContains(t, err, "mutually exclusive")

	_, err = execute(t, "search", "--catalog", "videos.csv", "git")
	assert.ErrorIs(t, err, catalog.ErrUnsupportedFormat)

	_, err = execute(t, "search", "--color", "rainbow", "git")
	assert.ErrorContains(t, err, "invalid color mode")
}

func TestSearchBuiltInCatalog(t *testing.T) {
	out, err := execute(t, "search", "--json", "React Hooks")
	require.NoError(t, err)

	var results []types.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.NotEmpty(t, results)
	assert.Equal(t, "React Hooks in Telugu Tutorial 2025", results[0].Item.Title)
}

// --- suggest ---

func TestSuggestRecent(t *testing.T) {
	out, err := execute(t, "suggest", "--json", "--recent", "git,git,node")
	require.NoError(t, err)

	var list []string
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Equal(t, []string{"node", "git"}, list)
}

func TestSuggestTitles(t *testing.T) {
	out, err := execute(t, "suggest", "--catalog", writeCatalog(t), "BASICS")
	require.NoError(t, err)
	assert.Equal(t, "  JavaScript Basics\n  Git Basics\n", out)
}

// --- replay ---

func TestReplay(t *testing.T) {
	script := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(script, []byte(`name: demo
steps:
  - {type: type, text: rea}
  - {type: wait, duration: 100ms}
  - {type: type, text: react}
  - {type: wait, duration: 300ms}
  - {type: submit}
`), 0o644))

	out, err := execute(t, "replay", "--catalog", writeCatalog(t), "--json", script)
	require.NoError(t, err)

	var report replay.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Commits, 1)
	assert.Equal(t, "react", report.Commits[0].Query)
	assert.Equal(t, []string{"react"}, report.Recent)

	out, err = execute(t, "replay", "--catalog", writeCatalog(t), "--metrics", script)
	require.NoError(t, err)
	assert.Contains(t, out, "sitesearch_queries_committed_total")
	assert.Contains(t, out, "Replay demo")
}

func TestReplayInvalidScript(t *testing.T) {
	script := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(script, []byte("steps:\n  - {type: paste}\n"), 0o644))

	_, err := execute(t, "replay", script)
	assert.ErrorIs(t, err, replay.ErrInvalidStep)
}

// --- catalog ---

func TestCatalogList(t *testing.T) {
	out, err := execute(t, "catalog", "list", "--catalog", writeCatalog(t), "--category", "devops")
	require.NoError(t, err)
	assert.Contains(t, out, "Git Basics")
	assert.NotContains(t, out, "React Hooks")
	assert.Contains(t, out, "1 items")
}

func TestCatalogValidate(t *testing.T) {
	out, err := execute(t, "catalog", "validate", writeCatalog(t))
	require.NoError(t, err)
	assert.Contains(t, out, "3 items, 3 categories")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("items: [{id: a, title: x}, {id: a, title: y}]"), 0o644))
	_, err = execute(t, "catalog", "validate", bad)
	assert.ErrorIs(t, err, catalog.ErrInvalidCatalog)

	out, err = execute(t, "catalog", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "built-in")
}

func TestCatalogExport(t *testing.T) {
	dir := t.TempDir()
	src := writeCatalog(t)

	db := filepath.Join(dir, "videos.db")
	out, err := execute(t, "catalog", "export", "--catalog", src, "--out", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 3 items")

	items, err := catalog.LoadFile(db)
	require.NoError(t, err)
	assert.Equal(t, []string{"react", "js", "git"}, []string{items[0].ID, items[1].ID, items[2].ID})

	yml := filepath.Join(dir, "out.txt")
	_, err = execute(t, "catalog", "export", "--catalog", db, "--format", "yaml", "--out", yml)
	require.NoError(t, err)
	data, err := os.ReadFile(yml)
	require.NoError(t, err)
	items, err = catalog.ParseYAML(data)
	require.NoError(t, err)
	assert.Len(t, items, 3)

	_, err = execute(t, "catalog", "export", "--out", filepath.Join(dir, "x.csv"))
	assert.ErrorContains(t, err, "unsupported format")

	_, err = execute(t, "catalog", "export")
	assert.ErrorContains(t, err, "--out is required")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "sitesearch dev\n", out)

	out, err = execute(t, "version", "--json")
	require.NoError(t, err)
	var info versionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "dev", info.Version)
	assert.NotEmpty(t, info.GoVersion)
	embedded, err := catalog.Default()
	require.NoError(t, err)
	assert.Equal(t, len(embedded), info.CatalogItems)
}
