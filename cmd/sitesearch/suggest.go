// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sitesearch/internal/output"
	"github.com/pdiddy/sitesearch/internal/search"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [partial...]",
	Short: "List autocomplete suggestions for partial input",
	Long: `Suggest prints catalog titles containing the partial input. With no
input it prints the recent queries instead, most recent first; seed them
with --recent, repeated or comma-separated, oldest first.`,
	RunE: runSuggest,
}

func runSuggest(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	recentQueries, _ := cmd.Flags().GetStringSlice("recent")

	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}

	engine := search.New(env.items, search.Options{
		Config: env.cfg.Search,
		Logger: env.logger,
	})
	defer engine.Close()

	for _, term := range recentQueries {
		engine.RecordQuery(term)
	}

	list := engine.Suggestions(strings.Join(args, " "))
	if jsonOutput {
		return output.FormatJSON(list, cmd.OutOrStdout())
	}
	env.printer.Suggestions(list)
	return nil
}

func init() {
	suggestCmd.Flags().Bool("json", false, "output suggestions as JSON")
	suggestCmd.Flags().StringSlice("recent", nil, "recent queries to seed, oldest first")

	rootCmd.AddCommand(suggestCmd)
}
