package telemetry

import (
	"context"
	"encoding/json"
	"os"
)

// DatasetResolver maps a human-readable problem identifier (task id) to the
// dataset's numeric question id.
type DatasetResolver interface {
	// QuestionID returns false when the problem is absent or the registry
	// cannot be read.
	QuestionID(ctx context.Context, problemID string) (int, bool)
}

// FileDataset resolves question ids from a problems.json registry file
// mapping task ids to problem metadata.
type FileDataset struct {
	Path string
}

// datasetProblem mirrors one problem record of the registry. Question ids
// are declared as raw JSON because the registry mixes hand-written entries;
// only integral numeric ids resolve.
type datasetProblem struct {
	QuestionID json.RawMessage `json:"question_id"`
}

// QuestionID looks up the numeric question id for problemID.
func (f *FileDataset) QuestionID(ctx context.Context, problemID string) (int, bool) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return 0, false
	}

	var problems map[string]datasetProblem
	if err := json.Unmarshal(data, &problems); err != nil {
		return 0, false
	}

	problem, ok := problems[problemID]
	if !ok {
		return 0, false
	}
	var id int
	if err := json.Unmarshal(problem.QuestionID, &id); err != nil {
		return 0, false
	}
	return id, true
}
