package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Deepak7704/100xSWE/internal/core"
)

// applyFileOperations executes the generated operations against the working
// copy strictly in order; a later operation may depend on an earlier one
// having been applied.
func applyFileOperations(repoDir string, ops []core.FileOp) error {
	for i, op := range ops {
		target, err := resolveWithinRepo(repoDir, op.Path)
		if err != nil {
			return fmt.Errorf("operation %d (%s %s): %w", i, op.Op, op.Path, err)
		}

		switch op.Op {
		case core.FileOpCreate, core.FileOpUpdate:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("operation %d (%s %s): %w", i, op.Op, op.Path, err)
			}
			if err := os.WriteFile(target, []byte(op.Content), 0o644); err != nil {
				return fmt.Errorf("operation %d (%s %s): %w", i, op.Op, op.Path, err)
			}
		case core.FileOpDelete:
			// A delete of an already-absent file is not a failure.
			if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("operation %d (delete %s): %w", i, op.Path, err)
			}
		default:
			return fmt.Errorf("operation %d has unsupported op %q", i, op.Op)
		}
	}
	return nil
}

// resolveWithinRepo joins a model-supplied relative path onto the working
// copy root and rejects anything that would escape it.
func resolveWithinRepo(repoDir, rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("empty path")
	}
	if filepath.IsAbs(rel) || strings.HasPrefix(filepath.ToSlash(rel), "/") {
		return "", fmt.Errorf("absolute path not allowed")
	}

	target := filepath.Join(repoDir, filepath.FromSlash(rel))

	root := filepath.Clean(repoDir)
	if target != root && !strings.HasPrefix(target, root+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes working copy")
	}
	if target == root {
		return "", fmt.Errorf("path resolves to working copy root")
	}
	return target, nil
}
