package summary

import (
	"sort"

	"github.com/janindragoonetilleke-oss/codeassist/internal/episode"
)

// Latency holds inter-state latency percentiles in milliseconds.
type Latency struct {
	P50 int64
	P90 int64
	P99 int64
}

// Latencies computes nearest-rank p50/p90/p99 over the positive deltas
// between consecutive state timestamps, with states ordered by timestep.
// Pairs with a missing timestamp on either side, and non-positive deltas,
// are discarded. Fewer than two states or no valid deltas yields all zeros.
func Latencies(ep *episode.Episode) Latency {
	if len(ep.States) < 2 {
		return Latency{}
	}

	ordered := make([]*episode.State, len(ep.States))
	for i := range ep.States {
		ordered[i] = &ep.States[i]
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Timestep < ordered[j].Timestep })

	var deltas []int64
	for i := 1; i < len(ordered); i++ {
		prev, curr := ordered[i-1].TimestampMS, ordered[i].TimestampMS
		if prev == nil || curr == nil {
			continue
		}
		if d := *curr - *prev; d > 0 {
			deltas = append(deltas, d)
		}
	}
	if len(deltas) == 0 {
		return Latency{}
	}

	sort.Slice(deltas, func(i, j int) bool { return deltas[i] < deltas[j] })
	return Latency{
		P50: deltas[rankIndex(len(deltas), 0.5)],
		P90: deltas[rankIndex(len(deltas), 0.9)],
		P99: deltas[rankIndex(len(deltas), 0.99)],
	}
}

// rankIndex is the zero-based nearest-rank index floor(n*q), clamped to
// n-1 so a fractional index equal to n can never read past the end.
func rankIndex(n int, q float64) int {
	idx := int(float64(n) * q)
	if idx > n-1 {
		return n - 1
	}
	return idx
}
