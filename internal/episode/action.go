package episode

// Actor identifies who took an action at a state.
type Actor int

const (
	ActorAssistant Actor = iota
	ActorHuman
)

func (a Actor) String() string {
	if a == ActorAssistant {
		return "assistant"
	}
	return "human"
}

// ActionKind is the closed enumeration of recognized action types.
type ActionKind int

const (
	NoOp ActionKind = iota
	FillPartialLine
	ReplaceAndAppendSingleLine
	ReplaceAndAppendMultiLine
	EditExistingLines
	ExplainSingleLines
	ExplainMultiLine

	kindCount
)

// kindNames maps each kind to its wire string, as written by the episode
// recorder.
var kindNames = [kindCount]string{
	NoOp:                       "no_op",
	FillPartialLine:            "fill_partial_line",
	ReplaceAndAppendSingleLine: "replace_and_append_single_line",
	ReplaceAndAppendMultiLine:  "replace_and_append_multi_line",
	EditExistingLines:          "edit_existing_lines",
	ExplainSingleLines:         "explain_single_lines",
	ExplainMultiLine:           "explain_multi_line",
}

func (k ActionKind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Kinds returns every enumerated action kind in declaration order.
// Count maps keyed by ActionKind are initialized from this list so they are
// never sparse.
func Kinds() []ActionKind {
	kinds := make([]ActionKind, kindCount)
	for i := range kinds {
		kinds[i] = ActionKind(i)
	}
	return kinds
}

// ParseActionKind maps a wire string to its ActionKind. The second return
// is false for unrecognized values.
func ParseActionKind(s string) (ActionKind, bool) {
	for k, name := range kindNames {
		if s == name {
			return ActionKind(k), true
		}
	}
	return 0, false
}

// Action is the resolved two-variant action union. The tagged wire form
// ({"A": {...}} for assistant, {"H": {...}} for human) is decoded once at
// ingestion; consumers never re-inspect the raw payload.
type Action struct {
	Actor Actor
	Kind  ActionKind
	// Known is false when the wire action type was missing, malformed, or
	// not in the ActionKind enumeration. Unclassified actions are excluded
	// from every count and distance list.
	Known bool
	// TargetLine is the line the action applies to, from the action
	// payload. Defaults to 1 when absent.
	TargetLine int
}
