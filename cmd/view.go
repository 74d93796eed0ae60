package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/janindragoonetilleke-oss/codeassist/internal/episode"
	"github.com/janindragoonetilleke-oss/codeassist/internal/summary"
	"github.com/janindragoonetilleke-oss/codeassist/internal/telemetry"
	"github.com/janindragoonetilleke-oss/codeassist/internal/tui"
)

var plainOutput bool

var viewCmd = &cobra.Command{
	Use:   "view <episode.json>",
	Short: "Compute an episode summary and browse it locally",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ep, err := episode.Load(args[0])
		if err != nil {
			if errors.Is(err, episode.ErrNoEpisode) {
				return fmt.Errorf("episode file not found: %s", args[0])
			}
			return err
		}

		rec := telemetry.New(GetConfig()).Summarize(cmd.Context(), ep)

		// Fall back to plain output when not attached to a terminal
		// (tests, pipes, CI).
		if plainOutput || !term.IsTerminal(os.Stdout.Fd()) {
			printRecord(cmd, rec)
			return nil
		}
		return tui.Run(rec, args[0])
	},
}

// printRecord writes a plain-text summary to the command's output.
func printRecord(cmd *cobra.Command, r *summary.Session) {
	cmd.Println("## Session")
	cmd.Printf("  Episode:   %s\n", r.EpisodeID)
	cmd.Printf("  Duration:  %d ms\n", r.DurationMS)
	cmd.Printf("  Turns:     %d\n", r.TotalTurns)
	cmd.Printf("  User:      %s\n", r.UserID)
	if r.QuestionID != nil {
		cmd.Printf("  Question:  %d\n", *r.QuestionID)
	}
	cmd.Println()

	cmd.Println("## Outcome")
	cmd.Printf("  Success:       %v\n", r.Success)
	if r.TimeToPassMS != nil {
		cmd.Printf("  Time to pass:  %d ms\n", *r.TimeToPassMS)
	}
	if r.TurnsToPass != nil {
		cmd.Printf("  Turns to pass: %d\n", *r.TurnsToPass)
	}
	cmd.Printf("  Compile: +%.3f / -%.3f\n", r.CompileProgressionRate, r.CompileRegressionRate)
	cmd.Printf("  Tests:   +%.3f / -%.3f\n", r.TestProgressionRate, r.TestRegressionRate)
	cmd.Println()

	cmd.Println("## Latency")
	cmd.Printf("  p50: %d ms  p90: %d ms  p99: %d ms\n", r.P50LatencyMS, r.P90LatencyMS, r.P99LatencyMS)
	cmd.Println()

	cmd.Println("## Actions (assistant/human)")
	cmd.Printf("  no_op:                          %d/%d\n", r.AssistantNoopCount, r.HumanNoopCount)
	cmd.Printf("  fill_partial_line:              %d/%d\n", r.AssistantFillPartialCount, r.HumanFillPartialCount)
	cmd.Printf("  replace_and_append_single_line: %d/%d\n", r.AssistantWriteSingleCount, r.HumanWriteSingleCount)
	cmd.Printf("  replace_and_append_multi_line:  %d/%d\n", r.AssistantWriteMultiCount, r.HumanWriteMultiCount)
	cmd.Printf("  edit_existing_lines:            %d/%d\n", r.AssistantEditExistingCount, r.HumanEditExistingCount)
	cmd.Printf("  explain_single_lines:           %d/%d\n", r.AssistantExplainSingleCount, r.HumanExplainSingleCount)
	cmd.Printf("  explain_multi_line:             %d/%d\n", r.AssistantExplainMultiCount, r.HumanExplainMultiCount)
}

func init() {
	viewCmd.Flags().BoolVar(&plainOutput, "plain", false, "plain text output instead of TUI")
	rootCmd.AddCommand(viewCmd)
}
