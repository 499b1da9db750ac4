// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the sitesearch CLI.
// It wraps the search engine for one-shot searches, suggestions, keystroke
// replays, and catalog maintenance.
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the sitesearch CLI.
var rootCmd = &cobra.Command{
	Use:   "sitesearch",
	Short: "Debounced, relevance-ranked search over a content catalog",
	Long: `sitesearch ranks a static content catalog (the compiled-in video
collection, or a YAML or SQLite file) against free-text queries.

Titles weigh most, then descriptions and categories, then keywords. Use
search for a one-shot ranked query, suggest for autocomplete entries, and
replay to run a scripted keystroke session through the debouncer and
result cache.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./sitesearch.yaml or ~/.config/sitesearch/sitesearch.yaml)")
	pf.String("catalog", "", "catalog file (.yaml, .yml, .db, .sqlite); default is the built-in collection")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")
	pf.String("color", "auto", "color output: auto, always, never")

	bindFlags()
}

// bindFlags lets the global flags override config file and environment
// values.
func bindFlags() {
	pf := rootCmd.PersistentFlags()
	_ = viper.BindPFlag("catalog", pf.Lookup("catalog"))
	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", pf.Lookup("log-format"))
	_ = viper.BindPFlag("color", pf.Lookup("color"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("sitesearch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "sitesearch"))
		}
	}

	viper.SetEnvPrefix("SITESEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	configErr = nil
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			configErr = err
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
