package pipeline

import "fmt"

// Stage names one step of the job run. Stages execute strictly in
// sequence; there is no branching back.
type Stage string

const (
	StageFork        Stage = "fork"
	StageSandbox     Stage = "sandbox"
	StageClone       Stage = "clone"
	StageFindFiles   Stage = "find-files"
	StageSelectFiles Stage = "select-files"
	StageReadContext Stage = "read-context"
	StageGenerate    Stage = "generate"
	StageApplyOps    Stage = "apply-operations"
	StageRunCommands Stage = "run-commands"
	StageCommitPush  Stage = "commit-push"
	StageOpenPR      Stage = "open-pr"
	StageCleanup     Stage = "cleanup"
)

// checkpoints maps a stage to the progress value recorded once it has
// succeeded. Stages without an entry run inside the previous checkpoint's
// window.
var checkpoints = map[Stage]int{
	StageFork:        10,
	StageSandbox:     20,
	StageClone:       30,
	StageFindFiles:   40,
	StageReadContext: 60,
	StageGenerate:    70,
	StageApplyOps:    80,
	StageCommitPush:  90,
	StageCleanup:     100,
}

// StageError wraps a stage failure with the stage that raised it. The
// stringified form becomes the job's recorded failure reason.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
