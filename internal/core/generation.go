package core

// ForkRef identifies the fork a job pushes to. Obtained once per job and
// never cached across jobs.
type ForkRef struct {
	ForkURL   string `json:"forkUrl"`
	ForkOwner string `json:"forkOwner"`
}

// FileOpKind is the action a FileOp performs on the working copy.
type FileOpKind string

const (
	FileOpCreate FileOpKind = "create"
	FileOpUpdate FileOpKind = "update"
	FileOpDelete FileOpKind = "delete"
)

// FileOp is one file-level change. The pipeline applies operations strictly
// in the order given; a later operation may depend on an earlier one.
type FileOp struct {
	Op      FileOpKind `json:"op"`
	Path    string     `json:"path"`
	Content string     `json:"content,omitempty"`
}

// Generation is the full code-change output produced for one task.
type Generation struct {
	FileOperations []FileOp `json:"fileOperations"`
	ShellCommands  []string `json:"shellCommands,omitempty"`
	Explanation    string   `json:"explanation"`
}
