package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/janindragoonetilleke-oss/codeassist/internal/episode"
	"github.com/janindragoonetilleke-oss/codeassist/internal/summary"
	"github.com/janindragoonetilleke-oss/codeassist/internal/telemetry"
)

var reportDryRun bool
var reportFormat string

var reportCmd = &cobra.Command{
	Use:   "report <episode.json>",
	Short: "Summarize a recorded episode and send it to the telemetry collector",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ep, err := episode.Load(args[0])
		if err != nil {
			if errors.Is(err, episode.ErrNoEpisode) {
				return fmt.Errorf("episode file not found: %s", args[0])
			}
			return err
		}

		pusher := telemetry.New(GetConfig())

		if reportDryRun {
			rec := pusher.Summarize(cmd.Context(), ep)

			var renderer summary.Renderer
			if reportFormat == "markdown" {
				renderer = &summary.MarkdownRenderer{}
			} else {
				renderer = &summary.JSONRenderer{}
			}
			out, err := renderer.Render(rec)
			if err != nil {
				return fmt.Errorf("render summary: %w", err)
			}
			cmd.Println(string(out))
			return nil
		}

		// Push never fails the workflow; transmission problems are logged.
		pusher.Push(cmd.Context(), ep)
		cmd.Printf("Reported episode %s\n", ep.ID)
		return nil
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportDryRun, "dry-run", false, "print the summary record instead of sending it")
	reportCmd.Flags().StringVar(&reportFormat, "format", "json", "dry-run output format: json or markdown")
	rootCmd.AddCommand(reportCmd)
}
