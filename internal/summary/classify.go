// Package summary turns one recorded episode into a flat telemetry summary
// record: action tallies, cursor-distance stats, compile/test transition
// rates, latency percentiles, and pass detection.
package summary

import (
	"math"

	"github.com/janindragoonetilleke-oss/codeassist/internal/episode"
)

// ActionStats is the Action Classifier output: complete per-actor count
// maps (an entry for every enumerated kind, zero-initialized) plus cursor
// distances for the three distance-tracked kinds.
type ActionStats struct {
	Assistant map[episode.ActionKind]int
	Human     map[episode.ActionKind]int

	EditExistingDistances  []float64
	ExplainSingleDistances []float64
	ExplainMultiDistances  []float64
}

// Classify partitions each state's action by actor and kind. States with no
// action, or whose action type did not resolve to a known kind, are counted
// nowhere. For the distance-tracked kinds the cursor distance is appended
// to the matching list.
func Classify(ep *episode.Episode) ActionStats {
	stats := ActionStats{
		Assistant: newKindCounts(),
		Human:     newKindCounts(),
	}

	for i := range ep.States {
		st := &ep.States[i]
		act := st.Action
		if act == nil || !act.Known {
			continue
		}

		if act.Actor == episode.ActorAssistant {
			stats.Assistant[act.Kind]++
		} else {
			stats.Human[act.Kind]++
		}

		switch act.Kind {
		case episode.EditExistingLines:
			stats.EditExistingDistances = append(stats.EditExistingDistances, cursorDistance(st))
		case episode.ExplainSingleLines:
			stats.ExplainSingleDistances = append(stats.ExplainSingleDistances, cursorDistance(st))
		case episode.ExplainMultiLine:
			stats.ExplainMultiDistances = append(stats.ExplainMultiDistances, cursorDistance(st))
		}
	}
	return stats
}

// newKindCounts builds a count map with an entry for every kind so
// consumers can index any kind unconditionally.
func newKindCounts() map[episode.ActionKind]int {
	m := make(map[episode.ActionKind]int, len(episode.Kinds()))
	for _, k := range episode.Kinds() {
		m[k] = 0
	}
	return m
}

// cursorDistance is the absolute line distance between the action's target
// line and the cursor position resolved from the state's attribution.
// Missing cursor information is not an error: the distance is 0.
func cursorDistance(st *episode.State) float64 {
	cursorLine, ok := st.CursorLine()
	if !ok {
		return 0
	}
	return math.Abs(float64(st.Action.TargetLine - cursorLine))
}

// mean returns the arithmetic mean of xs, or 0 for an empty list.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
