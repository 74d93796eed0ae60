package episode

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseResolvesAssistantAction(t *testing.T) {
	data := []byte(`{
		"episode_id": "ep-1",
		"problem_id": "two-sum",
		"start_time": 1000,
		"end_time": 2000,
		"states": [
			{
				"timestep": 0,
				"timestamp_ms": 1000,
				"action": {"A": {"type": "edit_existing_lines", "target_line": 10}},
				"attribution": [{"cursor": {"line": 7}}],
				"env": {"compiled": true, "tests": {"passed": 1}}
			}
		]
	}`)

	ep, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ep.States) != 1 {
		t.Fatalf("expected 1 state, got %d", len(ep.States))
	}

	act := ep.States[0].Action
	if act == nil {
		t.Fatal("expected a resolved action, got nil")
	}
	if act.Actor != ActorAssistant {
		t.Errorf("actor: want assistant, got %s", act.Actor)
	}
	if !act.Known || act.Kind != EditExistingLines {
		t.Errorf("kind: want known edit_existing_lines, got known=%v kind=%s", act.Known, act.Kind)
	}
	if act.TargetLine != 10 {
		t.Errorf("target line: want 10, got %d", act.TargetLine)
	}

	line, ok := ep.States[0].CursorLine()
	if !ok || line != 7 {
		t.Errorf("cursor line: want 7, got %d (ok=%v)", line, ok)
	}
}

func TestParseResolvesHumanAction(t *testing.T) {
	data := []byte(`{
		"episode_id": "ep-2",
		"states": [
			{"timestep": 0, "action": {"H": {"type": "no_op"}}, "env": {"compiled": false, "tests": {"passed": 0}}}
		]
	}`)

	ep, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	act := ep.States[0].Action
	if act == nil || act.Actor != ActorHuman {
		t.Fatalf("expected human action, got %+v", act)
	}
	if !act.Known || act.Kind != NoOp {
		t.Errorf("kind: want known no_op, got known=%v kind=%s", act.Known, act.Kind)
	}
	if act.TargetLine != 1 {
		t.Errorf("target line should default to 1, got %d", act.TargetLine)
	}
}

func TestParseUnknownActionTypeIsUnclassified(t *testing.T) {
	cases := []struct {
		name   string
		action string
	}{
		{"unknown type string", `{"A": {"type": "teleport_cursor"}}`},
		{"non-string type", `{"A": {"type": 42}}`},
		{"missing type", `{"A": {"target_line": 3}}`},
		{"empty payload", `{"H": {}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := []byte(`{"episode_id": "e", "states": [{"timestep": 0, "action": ` + tc.action + `, "env": {}}]}`)
			ep, err := Parse(data)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			act := ep.States[0].Action
			if act == nil {
				t.Fatal("action should be present but unclassified, got nil")
			}
			if act.Known {
				t.Errorf("expected Known=false for %s", tc.action)
			}
		})
	}
}

func TestParseNullActionStaysNil(t *testing.T) {
	data := []byte(`{"episode_id": "e", "states": [{"timestep": 0, "action": null, "env": {}}]}`)
	ep, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ep.States[0].Action != nil {
		t.Errorf("expected nil action, got %+v", ep.States[0].Action)
	}
}

func TestParseCursorVariants(t *testing.T) {
	data := []byte(`{
		"episode_id": "e",
		"states": [
			{"timestep": 0, "attribution": [{"cursor": {"line": 12}}], "env": {}},
			{"timestep": 1, "attribution": [{"cursor": {"char": 640}}], "env": {}},
			{"timestep": 2, "attribution": [{"cursor": {"char": 10}}], "env": {}},
			{"timestep": 3, "attribution": [{"cursor": {}}, {"cursor": {"line": 4}}], "env": {}},
			{"timestep": 4, "attribution": [{}], "env": {}}
		]
	}`)

	ep, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		line int
		ok   bool
	}{
		{12, true}, // explicit line
		{8, true},  // 640 chars / 80 per line
		{1, true},  // offset estimate floors at line 1
		{4, true},  // empty cursor record is skipped, next entry wins
		{0, false}, // no cursor anywhere
	}
	for i, w := range want {
		line, ok := ep.States[i].CursorLine()
		if ok != w.ok || line != w.line {
			t.Errorf("state %d: want (%d,%v), got (%d,%v)", i, w.line, w.ok, line, ok)
		}
	}
}

func TestParseTimestampHandling(t *testing.T) {
	data := []byte(`{
		"episode_id": "e",
		"states": [
			{"timestep": 0, "timestamp_ms": 1500, "env": {}},
			{"timestep": 1, "timestamp_ms": null, "env": {}},
			{"timestep": 2, "timestamp_ms": "soon", "env": {}},
			{"timestep": 3, "env": {}}
		]
	}`)

	ep, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts := ep.States[0].TimestampMS; ts == nil || *ts != 1500 {
		t.Errorf("state 0: want timestamp 1500, got %v", ts)
	}
	for i := 1; i < 4; i++ {
		if ep.States[i].TimestampMS != nil {
			t.Errorf("state %d: non-numeric timestamp should be nil, got %d", i, *ep.States[i].TimestampMS)
		}
	}
}

func TestParseAssignsIDWhenMissing(t *testing.T) {
	ep, err := Parse([]byte(`{"problem_id": "p", "states": []}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ep.ID == "" {
		t.Error("expected a generated episode id, got empty string")
	}
}

func TestParseInvalidJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"states": [`)); err == nil {
		t.Fatal("expected an error for truncated JSON, got nil")
	}
}

func TestLoadMissingFileReturnsErrNoEpisode(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, ErrNoEpisode) {
		t.Fatalf("want ErrNoEpisode, got %v", err)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ep.json")
	content := `{"episode_id": "disk-ep", "problem_id": "p", "start_time": 1, "end_time": 9, "states": []}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	ep, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ep.ID != "disk-ep" || ep.ProblemID != "p" || ep.StartTime != 1 || ep.EndTime != 9 {
		t.Errorf("unexpected episode fields: %+v", ep)
	}
}
