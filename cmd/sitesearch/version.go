// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sitesearch/internal/catalog"
	"github.com/pdiddy/sitesearch/internal/output"
)

// versionInfo is the --json form of the version command.
type versionInfo struct {
	Version      string `json:"version"`
	GoVersion    string `json:"go_version"`
	CatalogItems int    `json:"catalog_items"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of sitesearch",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if !jsonOutput {
			fmt.Fprintf(cmd.OutOrStdout(), "sitesearch %s\n", version)
			return nil
		}

		items, err := catalog.Default()
		if err != nil {
			return err
		}
		return output.FormatJSON(versionInfo{
			Version:      version,
			GoVersion:    runtime.Version(),
			CatalogItems: len(items),
		}, cmd.OutOrStdout())
	},
}

func init() {
	versionCmd.Flags().Bool("json", false, "output version details as JSON")
	rootCmd.AddCommand(versionCmd)
}
