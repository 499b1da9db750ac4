// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/sitesearch/internal/metrics"
	"github.com/pdiddy/sitesearch/internal/output"
	"github.com/pdiddy/sitesearch/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Replay a scripted keystroke session",
	Long: `Replay runs a YAML keystroke script through the search engine on a
virtual clock and reports which queries the debouncer committed.

A script is a list of steps:

  name: rea-react
  steps:
    - {type: type, text: rea}
    - {type: wait, duration: 100ms}
    - {type: type, text: react}
    - {type: wait, duration: 300ms}
    - {type: submit}

Step types are type, wait, submit (commit and record as a recent query),
flush (commit only) and clear (empty the recent queries).`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	showMetrics, _ := cmd.Flags().GetBool("metrics")

	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}

	script, err := replay.LoadScript(args[0])
	if err != nil {
		return err
	}

	rec := metrics.NewRecorder()
	report, err := replay.Run(cmd.Context(), script, env.items, replay.Options{
		Config:   env.cfg.Search,
		Logger:   env.logger,
		Observer: rec,
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return output.FormatJSON(report, cmd.OutOrStdout())
	}
	if err := env.printer.Report(report); err != nil {
		return err
	}

	if showMetrics {
		samples, err := rec.Snapshot()
		if err != nil {
			return err
		}
		env.printer.Print("")
		env.printer.Header("Metrics")
		return env.printer.Metrics(samples)
	}
	return nil
}

func init() {
	replayCmd.Flags().Bool("json", false, "output the report as JSON")
	replayCmd.Flags().Bool("metrics", false, "print engine metrics after the report")

	rootCmd.AddCommand(replayCmd)
}
