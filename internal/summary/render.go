package summary

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Renderer serializes a Session to bytes for display or export.
type Renderer interface {
	Render(s *Session) ([]byte, error)
}

// JSONRenderer renders a Session as indented JSON — the same shape the
// collector receives, readable for --dry-run inspection.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(s *Session) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// MarkdownRenderer renders a Session as a human-readable Markdown report.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(s *Session) ([]byte, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Episode %s\n\n", s.EpisodeID)

	sb.WriteString("## Session\n\n")
	fmt.Fprintf(&sb, "- Reported: %s\n", s.Timestamp)
	fmt.Fprintf(&sb, "- Duration: %d ms\n", s.DurationMS)
	fmt.Fprintf(&sb, "- Turns: %d\n", s.TotalTurns)
	fmt.Fprintf(&sb, "- User: %s\n", s.UserID)
	if s.QuestionID != nil {
		fmt.Fprintf(&sb, "- Question: %d\n", *s.QuestionID)
	}
	fmt.Fprintf(&sb, "- Version: %s\n\n", s.Version)

	sb.WriteString("## Outcome\n\n")
	fmt.Fprintf(&sb, "- Success: %v\n", s.Success)
	if s.TimeToPassMS != nil {
		fmt.Fprintf(&sb, "- Time to pass: %d ms\n", *s.TimeToPassMS)
	} else {
		sb.WriteString("- Time to pass: n/a\n")
	}
	if s.TurnsToPass != nil {
		fmt.Fprintf(&sb, "- Turns to pass: %d\n", *s.TurnsToPass)
	} else {
		sb.WriteString("- Turns to pass: n/a\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## Transition rates\n\n")
	sb.WriteString("| Signal | Regression | Progression |\n")
	sb.WriteString("|--------|-----------:|------------:|\n")
	fmt.Fprintf(&sb, "| Compile | %.3f | %.3f |\n", s.CompileRegressionRate, s.CompileProgressionRate)
	fmt.Fprintf(&sb, "| Tests | %.3f | %.3f |\n\n", s.TestRegressionRate, s.TestProgressionRate)

	sb.WriteString("## Latency\n\n")
	fmt.Fprintf(&sb, "- p50: %d ms\n- p90: %d ms\n- p99: %d ms\n\n", s.P50LatencyMS, s.P90LatencyMS, s.P99LatencyMS)

	sb.WriteString("## Actions\n\n")
	sb.WriteString("| Kind | Assistant | Human |\n")
	sb.WriteString("|------|----------:|------:|\n")
	rows := []struct {
		name             string
		assistant, human int
	}{
		{"no_op", s.AssistantNoopCount, s.HumanNoopCount},
		{"fill_partial_line", s.AssistantFillPartialCount, s.HumanFillPartialCount},
		{"replace_and_append_single_line", s.AssistantWriteSingleCount, s.HumanWriteSingleCount},
		{"replace_and_append_multi_line", s.AssistantWriteMultiCount, s.HumanWriteMultiCount},
		{"edit_existing_lines", s.AssistantEditExistingCount, s.HumanEditExistingCount},
		{"explain_single_lines", s.AssistantExplainSingleCount, s.HumanExplainSingleCount},
		{"explain_multi_line", s.AssistantExplainMultiCount, s.HumanExplainMultiCount},
	}
	for _, row := range rows {
		fmt.Fprintf(&sb, "| %s | %d | %d |\n", row.name, row.assistant, row.human)
	}
	sb.WriteString("\n")

	sb.WriteString("## Cursor distance (mean lines)\n\n")
	fmt.Fprintf(&sb, "- edit_existing_lines: %.1f\n", s.EditExistingDistanceMean)
	fmt.Fprintf(&sb, "- explain_single_lines: %.1f\n", s.ExplainSingleDistanceMean)
	fmt.Fprintf(&sb, "- explain_multi_line: %.1f\n", s.ExplainMultiDistanceMean)

	return []byte(sb.String()), nil
}
