package chain

import (
	"encoding/json"
	"time"
)

// StageResult is the outcome of one stage: trimmed model text on
// success, an error on failure, never both.
type StageResult struct {
	Key    string
	Name   string
	Output string
	Err    error
}

// Failed reports whether the stage produced an error instead of text.
func (r StageResult) Failed() bool {
	return r.Err != nil
}

// MarshalJSON renders the error as a plain string so results can be
// piped as JSON.
func (r StageResult) MarshalJSON() ([]byte, error) {
	out := struct {
		Key    string `json:"key"`
		Name   string `json:"name"`
		Output string `json:"output,omitempty"`
		Error  string `json:"error,omitempty"`
	}{Key: r.Key, Name: r.Name, Output: r.Output}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return json.Marshal(&out)
}

// Result is the outcome of a full chain run. Under the default policy
// Stages carries one entry per stage even when some of them failed.
type Result struct {
	ID      string
	Query   string
	Stages  []StageResult
	Elapsed time.Duration
}

// Failed reports whether any stage failed.
func (r *Result) Failed() bool {
	for _, s := range r.Stages {
		if s.Err != nil {
			return true
		}
	}
	return false
}

// Outputs returns one string per stage in order: the stage's text on
// success, the error text on failure.
func (r *Result) Outputs() []string {
	outs := make([]string, 0, len(r.Stages))
	for _, s := range r.Stages {
		if s.Err != nil {
			outs = append(outs, s.Err.Error())
		} else {
			outs = append(outs, s.Output)
		}
	}
	return outs
}

// FinalResponse returns the drafted customer reply (the last stage's
// output), or "" if the run never got that far or the stage failed.
func (r *Result) FinalResponse() string {
	if len(r.Stages) == 0 {
		return ""
	}
	last := r.Stages[len(r.Stages)-1]
	if last.Err != nil {
		return ""
	}
	return last.Output
}

// MarshalJSON reports elapsed time in milliseconds.
func (r *Result) MarshalJSON() ([]byte, error) {
	out := struct {
		ID         string        `json:"id"`
		Query      string        `json:"query"`
		Stages     []StageResult `json:"stages"`
		DurationMs int64         `json:"duration_ms"`
	}{r.ID, r.Query, r.Stages, r.Elapsed.Milliseconds()}
	return json.Marshal(&out)
}
