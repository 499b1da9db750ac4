// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/sitesearch/internal/catalog"
	"github.com/pdiddy/sitesearch/internal/logging"
	"github.com/pdiddy/sitesearch/internal/output"
	"github.com/pdiddy/sitesearch/pkg/types"
)

// configErr holds a config file read failure from initConfig. A missing
// file is not an error.
var configErr error

func setDefaults() {
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("color", "auto")
	viper.SetDefault("search.debounce", types.DefaultDebounce)
	viper.SetDefault("search.cache_capacity", types.DefaultCacheCapacity)
	viper.SetDefault("search.recent_capacity", types.DefaultRecentCapacity)
	viper.SetDefault("search.suggestion_limit", types.DefaultSuggestionLimit)

	w := types.DefaultWeights()
	viper.SetDefault("search.weights.title", w.Title)
	viper.SetDefault("search.weights.description", w.Description)
	viper.SetDefault("search.weights.category", w.Category)
	viper.SetDefault("search.weights.keywords", w.Keywords)
}

// loadConfig assembles the effective configuration from flags, environment
// and config file.
func loadConfig() (types.Config, error) {
	if configErr != nil {
		return types.Config{}, fmt.Errorf("reading config: %w", configErr)
	}

	cfg := types.Config{
		Catalog: viper.GetString("catalog"),
		Color:   viper.GetString("color"),
		Log: types.LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		},
		Search: types.SearchConfig{
			Debounce:        viper.GetDuration("search.debounce"),
			CacheCapacity:   viper.GetInt("search.cache_capacity"),
			RecentCapacity:  viper.GetInt("search.recent_capacity"),
			SuggestionLimit: viper.GetInt("search.suggestion_limit"),
			Weights: types.Weights{
				Title:       viper.GetInt("search.weights.title"),
				Description: viper.GetInt("search.weights.description"),
				Category:    viper.GetInt("search.weights.category"),
				Keywords:    viper.GetInt("search.weights.keywords"),
			},
		},
	}

	if w := cfg.Search.Weights; w.Title < 0 || w.Description < 0 || w.Category < 0 || w.Keywords < 0 {
		return types.Config{}, fmt.Errorf("search weights must not be negative: %+v", w)
	}
	cfg.Search = cfg.Search.WithDefaults()
	return cfg, nil
}

// commandEnv is what every subcommand needs: the configuration, a logger on
// stderr, a printer on the command's output, and the catalog.
type commandEnv struct {
	cfg     types.Config
	logger  *slog.Logger
	printer *output.Printer
	items   []types.ContentItem
}

func newCommandEnv(cmd *cobra.Command) (*commandEnv, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return nil, err
	}
	if used := viper.ConfigFileUsed(); used != "" {
		logger.Info("using config file", "path", used)
	}

	mode, err := output.ParseColorMode(cfg.Color)
	if err != nil {
		return nil, err
	}

	items, err := loadItems(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	logger.Debug("catalog loaded", "source", catalogSource(cfg.Catalog), "items", len(items))

	return &commandEnv{
		cfg:     cfg,
		logger:  logger,
		printer: output.NewPrinter(cmd.OutOrStdout(), mode),
		items:   items,
	}, nil
}

func loadItems(path string) ([]types.ContentItem, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

func catalogSource(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}
