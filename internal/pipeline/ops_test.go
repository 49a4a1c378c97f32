package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Deepak7704/100xSWE/internal/core"
)

func TestApplyFileOperationsInOrder(t *testing.T) {
	dir := t.TempDir()

	ops := []core.FileOp{
		{Op: core.FileOpCreate, Path: "pkg/util/helper.go", Content: "package util\n"},
		{Op: core.FileOpUpdate, Path: "pkg/util/helper.go", Content: "package util\n\nfunc Help() {}\n"},
		{Op: core.FileOpCreate, Path: "README.md", Content: "# hello\n"},
	}
	require.NoError(t, applyFileOperations(dir, ops))

	data, err := os.ReadFile(filepath.Join(dir, "pkg", "util", "helper.go"))
	require.NoError(t, err)
	assert.Equal(t, "package util\n\nfunc Help() {}\n", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "# hello\n", string(data))
}

func TestApplyFileOperationsDelete(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "old.txt")
	require.NoError(t, os.WriteFile(target, []byte("stale"), 0o644))

	ops := []core.FileOp{{Op: core.FileOpDelete, Path: "old.txt"}}
	require.NoError(t, applyFileOperations(dir, ops))

	_, err := os.Stat(target)
	assert.True(t, os.IsNotExist(err))
}

func TestApplyFileOperationsDeleteMissingFile(t *testing.T) {
	ops := []core.FileOp{{Op: core.FileOpDelete, Path: "never-existed.txt"}}
	assert.NoError(t, applyFileOperations(t.TempDir(), ops))
}

func TestApplyFileOperationsRejectsEscapingPaths(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{name: "parent traversal", path: "../outside.txt"},
		{name: "nested traversal", path: "docs/../../outside.txt"},
		{name: "absolute path", path: "/etc/passwd"},
		{name: "empty path", path: ""},
		{name: "repo root itself", path: "."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := []core.FileOp{{Op: core.FileOpCreate, Path: tt.path, Content: "x"}}
			assert.Error(t, applyFileOperations(dir, ops))
		})
	}
}

func TestApplyFileOperationsRejectsUnknownOp(t *testing.T) {
	ops := []core.FileOp{{Op: "rename", Path: "a.txt"}}
	err := applyFileOperations(t.TempDir(), ops)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rename")
}
