package domain

import (
	"errors"
	"fmt"
)

// Stage names the pipeline phase a failure came from, so callers can
// tell a dead voice backend apart from a broken encode.
type Stage string

const (
	StageRender    Stage = "render"
	StageSynthesis Stage = "synthesis"
	StageAssembly  Stage = "assembly"
	StageEncoding  Stage = "encoding"
)

// PipelineError wraps a failure with the stage it happened in. Only
// stages without a safe degraded fallback produce one; recoverable
// degradations (a single bad slide, a missing font) are absorbed where
// they happen.
type PipelineError struct {
	Stage Stage
	Err   error
}

func NewPipelineError(stage Stage, err error) *PipelineError {
	return &PipelineError{Stage: stage, Err: err}
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// StageOf reports the failing stage of err, if err carries one.
func StageOf(err error) (Stage, bool) {
	var pipelineErr *PipelineError
	if errors.As(err, &pipelineErr) {
		return pipelineErr.Stage, true
	}
	return "", false
}
