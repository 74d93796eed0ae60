package summary

import (
	"sort"

	"github.com/janindragoonetilleke-oss/codeassist/internal/episode"
)

// Rates holds compile/test regression and progression rates, each a
// fraction of the episode's state transitions in [0, 1].
type Rates struct {
	TestRegression     float64
	CompileRegression  float64
	TestProgression    float64
	CompileProgression float64
}

// Transitions scans consecutive state pairs in stored order and counts
// compile regressions (compiled → not), compile progressions (the
// reverse), and test regressions/progressions (strict decrease/increase in
// passed-test count). Episodes with fewer than two states have all rates 0.
func Transitions(ep *episode.Episode) Rates {
	if len(ep.States) < 2 {
		return Rates{}
	}

	var testReg, compileReg, testProg, compileProg int
	transitions := len(ep.States) - 1

	for i := 1; i < len(ep.States); i++ {
		prev := &ep.States[i-1]
		curr := &ep.States[i]

		switch {
		case prev.Env.Compiled && !curr.Env.Compiled:
			compileReg++
		case !prev.Env.Compiled && curr.Env.Compiled:
			compileProg++
		}

		switch {
		case curr.Env.Tests.Passed < prev.Env.Tests.Passed:
			testReg++
		case curr.Env.Tests.Passed > prev.Env.Tests.Passed:
			testProg++
		}
	}

	n := float64(max(transitions, 1))
	return Rates{
		TestRegression:     float64(testReg) / n,
		CompileRegression:  float64(compileReg) / n,
		TestProgression:    float64(testProg) / n,
		CompileProgression: float64(compileProg) / n,
	}
}

// Outcome is the pass-detection result for an episode.
type Outcome struct {
	// Success is true when the final state (maximum timestep) compiled and
	// passed at least one test.
	Success bool
	// TimeToPassMS is the elapsed time from episode start to the first
	// passing state, floored at 0. Nil when no state passed.
	TimeToPassMS *int64
	// TurnsToPass is the timestep of the first passing state. Nil when no
	// state passed.
	TurnsToPass *int
}

// DetectOutcome determines overall success from the final state and finds
// the first passing state in timestep order.
func DetectOutcome(ep *episode.Episode) Outcome {
	if len(ep.States) == 0 {
		return Outcome{}
	}

	final := &ep.States[0]
	for i := 1; i < len(ep.States); i++ {
		if ep.States[i].Timestep > final.Timestep {
			final = &ep.States[i]
		}
	}

	out := Outcome{Success: statePasses(final)}

	ordered := make([]*episode.State, len(ep.States))
	for i := range ep.States {
		ordered[i] = &ep.States[i]
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Timestep < ordered[j].Timestep })

	for _, st := range ordered {
		if !statePasses(st) {
			continue
		}
		// Missing timestamps count as 0 rather than aborting the record.
		var ts int64
		if st.TimestampMS != nil {
			ts = *st.TimestampMS
		}
		elapsed := max(ts-ep.StartTime, 0)
		turns := st.Timestep
		out.TimeToPassMS = &elapsed
		out.TurnsToPass = &turns
		break
	}
	return out
}

// statePasses reports whether a state's environment compiled and passed at
// least one test.
func statePasses(st *episode.State) bool {
	return st.Env.Compiled && st.Env.Tests.Passed > 0
}
