package episode

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// ErrNoEpisode is returned by Load when the episode file does not exist.
var ErrNoEpisode = errors.New("no episode file")

// Wire-format mirror types. The recorder writes loosely-typed JSON; the
// loader resolves it into the strict model exactly once.

type wireEpisode struct {
	EpisodeID string      `json:"episode_id"`
	ProblemID string      `json:"problem_id"`
	StartTime int64       `json:"start_time"`
	EndTime   int64       `json:"end_time"`
	States    []wireState `json:"states"`
}

type wireState struct {
	Timestep    int             `json:"timestep"`
	TimestampMS json.RawMessage `json:"timestamp_ms"`
	Action      json.RawMessage `json:"action"`
	Attribution []wireAttr      `json:"attribution"`
	Env         wireEnv         `json:"env"`
}

type wireAttr struct {
	Cursor *wireCursor `json:"cursor"`
}

type wireCursor struct {
	Line *int `json:"line"`
	Char *int `json:"char"`
}

type wireEnv struct {
	Compiled bool      `json:"compiled"`
	Tests    wireTests `json:"tests"`
}

type wireTests struct {
	Passed int `json:"passed"`
	Failed int `json:"failed"`
	Total  int `json:"total"`
}

// wireAction is the tagged union as recorded: exactly one of A (assistant)
// or H (human) is expected to be present.
type wireAction struct {
	A *wirePayload `json:"A"`
	H *wirePayload `json:"H"`
}

type wirePayload struct {
	Type       json.RawMessage `json:"type"`
	TargetLine *int            `json:"target_line"`
}

// Load reads and parses an episode file.
// Returns ErrNoEpisode if the file does not exist.
func Load(path string) (*Episode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoEpisode
		}
		return nil, fmt.Errorf("failed to read episode file: %w", err)
	}
	return Parse(data)
}

// Parse decodes an episode from its recorded JSON form. Malformed actions,
// cursors, and timestamps inside states degrade to their documented
// defaults; only structurally invalid JSON is an error.
func Parse(data []byte) (*Episode, error) {
	var w wireEpisode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to parse episode: %w", err)
	}

	ep := &Episode{
		ID:        w.EpisodeID,
		ProblemID: w.ProblemID,
		StartTime: w.StartTime,
		EndTime:   w.EndTime,
		States:    make([]State, 0, len(w.States)),
	}
	if ep.ID == "" {
		ep.ID = uuid.New().String()
	}

	for _, ws := range w.States {
		st := State{
			Timestep:    ws.Timestep,
			TimestampMS: parseTimestamp(ws.TimestampMS),
			Action:      parseAction(ws.Action),
			Env: EnvSnapshot{
				Compiled: ws.Env.Compiled,
				Tests: TestReport{
					Passed: ws.Env.Tests.Passed,
					Failed: ws.Env.Tests.Failed,
					Total:  ws.Env.Tests.Total,
				},
			},
		}
		for _, wa := range ws.Attribution {
			st.Attribution = append(st.Attribution, Attribution{Cursor: parseCursor(wa.Cursor)})
		}
		ep.States = append(ep.States, st)
	}
	return ep, nil
}

// parseTimestamp accepts a numeric timestamp_ms and returns nil for
// anything else (absent, null, or non-numeric). An explicit null must be
// checked for before unmarshalling: decoding null into a float64 is a
// no-op that would leave a fabricated zero timestamp.
func parseTimestamp(raw json.RawMessage) *int64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	ts := int64(f)
	return &ts
}

// parseAction resolves the tagged wire union into an Action. A present but
// unrecognized or malformed action type yields Known=false so the
// classifier can skip the state without surfacing an error.
func parseAction(raw json.RawMessage) *Action {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var wa wireAction
	if err := json.Unmarshal(raw, &wa); err != nil {
		return nil
	}

	// Attribution follows the assistant tag: assistant when present,
	// human otherwise.
	actor := ActorHuman
	payload := wa.H
	if wa.A != nil {
		actor = ActorAssistant
		payload = wa.A
	}
	if payload == nil {
		return &Action{Actor: actor, TargetLine: 1}
	}

	act := &Action{Actor: actor, TargetLine: 1}
	if payload.TargetLine != nil {
		act.TargetLine = *payload.TargetLine
	}

	var typ string
	if err := json.Unmarshal(payload.Type, &typ); err != nil {
		return act
	}
	if kind, ok := ParseActionKind(typ); ok {
		act.Kind = kind
		act.Known = true
	}
	return act
}

// parseCursor keeps the line variant when both are present, matching the
// recorder's precedence. A cursor record with neither field is treated as
// absent so attribution scanning moves on to the next entry.
func parseCursor(wc *wireCursor) *Cursor {
	if wc == nil {
		return nil
	}
	if wc.Line != nil {
		return CursorAtLine(*wc.Line)
	}
	if wc.Char != nil {
		return CursorAtOffset(*wc.Char)
	}
	return nil
}
