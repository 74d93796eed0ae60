package summary

import (
	"github.com/janindragoonetilleke-oss/codeassist/internal/episode"
)

// Session is the flattened per-episode summary record transmitted to the
// telemetry collector. Field names match the collector's episode-session
// schema.
type Session struct {
	Timestamp string `json:"timestamp"`
	EpisodeID string `json:"episode_id"`

	DurationMS int64 `json:"duration_ms"`
	TotalTurns int   `json:"total_turns"`

	UserID     string  `json:"user_id"`
	QuestionID *int    `json:"question_id"`
	IPAddr     *string `json:"ip_addr"`
	Version    string  `json:"codeassist_version"`

	Success      bool   `json:"success"`
	TimeToPassMS *int64 `json:"time_to_pass"`
	TurnsToPass  *int   `json:"turns_to_pass"`

	TestRegressionRate     float64 `json:"test_regression_rate"`
	CompileRegressionRate  float64 `json:"compile_regression_rate"`
	TestProgressionRate    float64 `json:"test_progression_rate"`
	CompileProgressionRate float64 `json:"compile_progression_rate"`

	P50LatencyMS int64 `json:"p50_latency_ms"`
	P90LatencyMS int64 `json:"p90_latency_ms"`
	P99LatencyMS int64 `json:"p99_latency_ms"`

	AssistantNoopCount          int `json:"assistant_noop_count"`
	AssistantFillPartialCount   int `json:"assistant_fill_partial_count"`
	AssistantWriteSingleCount   int `json:"assistant_write_single_count"`
	AssistantWriteMultiCount    int `json:"assistant_write_multi_count"`
	AssistantEditExistingCount  int `json:"assistant_edit_existing_count"`
	AssistantExplainSingleCount int `json:"assistant_explain_single_count"`
	AssistantExplainMultiCount  int `json:"assistant_explain_multi_count"`

	HumanNoopCount          int `json:"human_noop_count"`
	HumanFillPartialCount   int `json:"human_fill_partial_count"`
	HumanWriteSingleCount   int `json:"human_write_single_count"`
	HumanWriteMultiCount    int `json:"human_write_multi_count"`
	HumanEditExistingCount  int `json:"human_edit_existing_count"`
	HumanExplainSingleCount int `json:"human_explain_single_count"`
	HumanExplainMultiCount  int `json:"human_explain_multi_count"`

	EditExistingDistanceMean  float64 `json:"edit_existing_distance_mean"`
	ExplainSingleDistanceMean float64 `json:"explain_single_distance_mean"`
	ExplainMultiDistanceMean  float64 `json:"explain_multi_distance_mean"`
}

// Meta is the externally resolved metadata the assembler merges into the
// record. Nil pointer fields mean the lookup failed upstream; the record is
// still produced.
type Meta struct {
	// Timestamp is the report time in RFC 3339 form.
	Timestamp string
	// Version is the codeassist process version string.
	Version string
	// UserID is the resolved user identity ("unknown" when unresolvable).
	UserID string
	// QuestionID is the numeric problem identifier, nil if dataset lookup
	// failed.
	QuestionID *int
	// IPAddr is the resolved public IP, nil if the lookup failed.
	IPAddr *string
}

// Assemble merges the classifier and analyzer outputs with external
// metadata into one Session. It is a pure merge: no recomputation, no
// validation, and it never fails — upstream resolution failures arrive
// here as nil fields and stay nil fields.
func Assemble(ep *episode.Episode, stats ActionStats, rates Rates, outcome Outcome, lat Latency, meta Meta) *Session {
	return &Session{
		Timestamp: meta.Timestamp,
		EpisodeID: ep.ID,

		DurationMS: ep.EndTime - ep.StartTime,
		TotalTurns: len(ep.States),

		UserID:     meta.UserID,
		QuestionID: meta.QuestionID,
		IPAddr:     meta.IPAddr,
		Version:    meta.Version,

		Success:      outcome.Success,
		TimeToPassMS: outcome.TimeToPassMS,
		TurnsToPass:  outcome.TurnsToPass,

		TestRegressionRate:     rates.TestRegression,
		CompileRegressionRate:  rates.CompileRegression,
		TestProgressionRate:    rates.TestProgression,
		CompileProgressionRate: rates.CompileProgression,

		P50LatencyMS: lat.P50,
		P90LatencyMS: lat.P90,
		P99LatencyMS: lat.P99,

		AssistantNoopCount:          stats.Assistant[episode.NoOp],
		AssistantFillPartialCount:   stats.Assistant[episode.FillPartialLine],
		AssistantWriteSingleCount:   stats.Assistant[episode.ReplaceAndAppendSingleLine],
		AssistantWriteMultiCount:    stats.Assistant[episode.ReplaceAndAppendMultiLine],
		AssistantEditExistingCount:  stats.Assistant[episode.EditExistingLines],
		AssistantExplainSingleCount: stats.Assistant[episode.ExplainSingleLines],
		AssistantExplainMultiCount:  stats.Assistant[episode.ExplainMultiLine],

		HumanNoopCount:          stats.Human[episode.NoOp],
		HumanFillPartialCount:   stats.Human[episode.FillPartialLine],
		HumanWriteSingleCount:   stats.Human[episode.ReplaceAndAppendSingleLine],
		HumanWriteMultiCount:    stats.Human[episode.ReplaceAndAppendMultiLine],
		HumanEditExistingCount:  stats.Human[episode.EditExistingLines],
		HumanExplainSingleCount: stats.Human[episode.ExplainSingleLines],
		HumanExplainMultiCount:  stats.Human[episode.ExplainMultiLine],

		EditExistingDistanceMean:  mean(stats.EditExistingDistances),
		ExplainSingleDistanceMean: mean(stats.ExplainSingleDistances),
		ExplainMultiDistanceMean:  mean(stats.ExplainMultiDistances),
	}
}

// Build runs the full aggregation pipeline over an episode: classifier,
// outcome analyzer, and latency analyzer feed one assembled record. The
// three analyzers are independent and order-free.
func Build(ep *episode.Episode, meta Meta) *Session {
	return Assemble(ep, Classify(ep), Transitions(ep), DetectOutcome(ep), Latencies(ep), meta)
}
