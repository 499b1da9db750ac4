// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sitesearch/internal/output"
	"github.com/pdiddy/sitesearch/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Rank the catalog against a query",
	Long: `Search ranks every catalog item against the query and prints the
matches, best first. Title matches outweigh description and category
matches, which outweigh keyword matches; whole-word matches outweigh
substring matches.

Use --save to keep the query and its results in a YAML file, and --load to
print a saved file without searching again.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	yamlOutput, _ := cmd.Flags().GetBool("yaml")
	if jsonOutput && yamlOutput {
		return fmt.Errorf("--json and --yaml are mutually exclusive")
	}
	limit, _ := cmd.Flags().GetInt("limit")
	category, _ := cmd.Flags().GetString("category")
	savePath, _ := cmd.Flags().GetString("save")
	loadPath, _ := cmd.Flags().GetString("load")

	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}

	var (
		q       search.Query
		results search.Results
	)
	if loadPath != "" {
		qf, err := search.ReadQueryFile(loadPath)
		if err != nil {
			return err
		}
		q = qf.Query.ToQuery()
		results = qf.SearchResults()
		if category == "" {
			category = qf.Query.Category
		}
	} else {
		if len(args) == 0 {
			return fmt.Errorf("query required: provide search terms or --load")
		}
		engine := search.New(env.items, search.Options{
			Config: env.cfg.Search,
			Logger: env.logger,
		})
		defer engine.Close()

		q = search.Normalize(strings.Join(args, " "))
		results = engine.Search(q.Raw)
		env.logger.Debug("search", "session", engine.ID(), "query", q.Text, "results", len(results))
	}

	if category != "" {
		results = results.FilterByCategory(category)
	}
	results = results.Limit(limit)

	if savePath != "" {
		if err := search.WriteQueryFile(savePath, q, category, env.cfg.Search.Weights, results); err != nil {
			return err
		}
		env.logger.Info("query saved", "path", savePath)
	}

	w := cmd.OutOrStdout()
	switch {
	case jsonOutput:
		return output.FormatJSON(results, w)
	case yamlOutput:
		return output.FormatYAML(results, w)
	default:
		return env.printer.Results(q, results)
	}
}

func init() {
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("yaml", false, "output results as YAML")
	searchCmd.Flags().Int("limit", 0, "maximum number of results (0 for all)")
	searchCmd.Flags().String("category", "", "only show results in this category")
	searchCmd.Flags().String("save", "", "save the query and results to a YAML file")
	searchCmd.Flags().String("load", "", "print a saved query file instead of searching")

	rootCmd.AddCommand(searchCmd)
}
