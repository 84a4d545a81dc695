package harvest

import (
	"errors"
	"fmt"
)

// Stage names the pipeline state a contest reached. A recoverable
// failure at any stage moves the contest to the implicit skipped
// terminal without aborting the run.
type Stage string

const (
	StageDiscovered Stage = "discovered"
	StageBranch     Stage = "branch_resolved"
	StageTree       Stage = "tree_or_clone_resolved"
	StageSource     Stage = "source_acquired"
	StageCompiled   Stage = "compiled"
	StageExtracted  Stage = "extracted"
)

type stageError struct {
	stage Stage
	err   error
}

func (e *stageError) Error() string {
	return fmt.Sprintf("%s: %v", e.stage, e.err)
}

func (e *stageError) Unwrap() error {
	return e.err
}

// failAt tags an error with the stage it interrupted.
func failAt(stage Stage, err error) error {
	return &stageError{stage: stage, err: err}
}

func stageOf(err error, fallback Stage) Stage {
	var se *stageError
	if errors.As(err, &se) {
		return se.stage
	}
	return fallback
}
