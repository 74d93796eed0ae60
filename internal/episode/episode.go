// Package episode defines the recorded coding-episode model and its JSON loader.
package episode

// Episode is one recorded interactive coding session. It is owned by the
// caller and treated as read-only by the summary pipeline.
type Episode struct {
	ID        string
	ProblemID string
	// StartTime and EndTime are absolute wall-clock timestamps in
	// milliseconds since the Unix epoch.
	StartTime int64
	EndTime   int64
	States    []State
}

// State is a snapshot at one timestep of the episode.
type State struct {
	// Timestep is a monotonic sequence index. Recorders may skip values,
	// so consecutive states are not necessarily gap-free.
	Timestep int
	// TimestampMS is the absolute wall-clock time of the snapshot in
	// milliseconds. Nil when the recorder did not capture it or the wire
	// value was not numeric.
	TimestampMS *int64
	// Action is the edit/explain action taken at this step, nil for
	// observation-only states.
	Action      *Action
	Attribution []Attribution
	Env         EnvSnapshot
}

// Attribution is one contextual record attached to a state, optionally
// carrying the cursor position at the time of the action.
type Attribution struct {
	Cursor *Cursor
}

// EnvSnapshot captures the compile/test outcome observed at a state.
type EnvSnapshot struct {
	Compiled bool
	Tests    TestReport
}

// TestReport holds per-state test counts. Only Passed participates in
// outcome analysis; the other fields are carried for completeness.
type TestReport struct {
	Passed int
	Failed int
	Total  int
}

// CursorLine resolves the cursor line for a state by scanning its
// attribution records in order and returning the first one that carries a
// cursor. The second return is false when no attribution yields a cursor.
func (s *State) CursorLine() (int, bool) {
	for _, attr := range s.Attribution {
		if attr.Cursor != nil {
			return attr.Cursor.Line(), true
		}
	}
	return 0, false
}
