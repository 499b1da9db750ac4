// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sitesearch/internal/catalog"
	"github.com/pdiddy/sitesearch/internal/output"
	"github.com/pdiddy/sitesearch/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect, validate, and export the content catalog",
	Long: `Catalog works with the collection sitesearch searches: the built-in
video collection by default, or the file given by --catalog.`,
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog items",
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	yamlOutput, _ := cmd.Flags().GetBool("yaml")
	category, _ := cmd.Flags().GetString("category")

	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}

	items := env.items
	if category != "" {
		items = []types.ContentItem{}
		for _, item := range env.items {
			if strings.EqualFold(item.Category, category) {
				items = append(items, item)
			}
		}
	}

	w := cmd.OutOrStdout()
	switch {
	case jsonOutput:
		return output.FormatJSON(items, w)
	case yamlOutput:
		return output.FormatYAML(catalog.Document{Items: items}, w)
	default:
		return env.printer.Catalog(items)
	}
}

// --- validate subcommand ---

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a catalog for missing fields and duplicate IDs",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogValidate,
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := cfg.Catalog
	if len(args) > 0 {
		path = args[0]
	}

	items, err := loadItems(path)
	if err != nil {
		return err
	}

	categories := catalog.Categories(items)
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d items, %d categories (%s)\n",
		catalogSource(path), len(items), len(categories), strings.Join(categories, ", "))
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the catalog to a YAML file or SQLite database",
	Long: `Export writes the active catalog to --out. The format defaults to the
output file's extension (.yaml/.yml or .db/.sqlite) and can be forced with
--format yaml or --format sqlite. A SQLite export replaces the videos table.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return fmt.Errorf("--out is required")
	}

	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}

	if format == "" {
		format = formatFromExt(out)
	}

	switch format {
	case "yaml":
		if err := catalog.WriteYAML(out, env.items); err != nil {
			return err
		}
	case "sqlite":
		if err := catalog.WriteSQLite(cmd.Context(), out, env.items); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use yaml or sqlite", format)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d items to %s\n", len(env.items), out)
	return nil
}

func formatFromExt(path string) string {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return "yaml"
	case strings.HasSuffix(lower, ".db"), strings.HasSuffix(lower, ".sqlite"), strings.HasSuffix(lower, ".sqlite3"):
		return "sqlite"
	default:
		return ""
	}
}

func init() {
	catalogListCmd.Flags().Bool("json", false, "output items as JSON")
	catalogListCmd.Flags().Bool("yaml", false, "output items as a YAML catalog document")
	catalogListCmd.Flags().String("category", "", "only list items in this category")

	catalogExportCmd.Flags().String("format", "", "output format: yaml or sqlite (default: from --out extension)")
	catalogExportCmd.Flags().String("out", "", "output file path")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	rootCmd.AddCommand(catalogCmd)
}
