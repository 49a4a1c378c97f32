package pipeline

import (
	"fmt"

	"github.com/google/uuid"
)

// newBranchName returns a branch name that is unique by construction, so
// concurrent jobs never negotiate over the remote branch namespace.
func newBranchName() string {
	return fmt.Sprintf("swe/%s", uuid.NewString())
}
