package pipeline

import (
	"strings"
	"testing"
)

func TestNewBranchNameIsUnique(t *testing.T) {
	const n = 10000

	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		name := newBranchName()
		if !strings.HasPrefix(name, "swe/") {
			t.Fatalf("branch %q lacks swe/ prefix", name)
		}
		if _, dup := seen[name]; dup {
			t.Fatalf("duplicate branch name %q after %d generations", name, i)
		}
		seen[name] = struct{}{}
	}
}
