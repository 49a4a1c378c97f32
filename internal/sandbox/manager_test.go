package sandbox

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProjectID(t *testing.T) {
	if got := ProjectID("abc-123"); got != "job-abc-123" {
		t.Errorf("ProjectID() = %q, want job-abc-123", got)
	}
}

func TestManagerAcquireCreatesDirectory(t *testing.T) {
	m, err := NewManager(t.TempDir(), discardLogger())
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	ws, err := m.Acquire("job-1")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if info, err := os.Stat(ws.Path); err != nil || !info.IsDir() {
		t.Fatalf("workspace path %s is not a directory: %v", ws.Path, err)
	}
	if !strings.HasSuffix(ws.RepoDir(), "repo") {
		t.Errorf("RepoDir() = %q, want a repo subdirectory", ws.RepoDir())
	}
}

func TestManagerAcquireIsIdempotent(t *testing.T) {
	m, err := NewManager(t.TempDir(), discardLogger())
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	first, err := m.Acquire("job-1")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	second, err := m.Acquire("job-1")
	if err != nil {
		t.Fatalf("second Acquire() error = %v", err)
	}
	if first.Path != second.Path {
		t.Errorf("repeated Acquire returned different paths: %q, %q", first.Path, second.Path)
	}
}

func TestManagerReleaseRemovesWorkspace(t *testing.T) {
	m, err := NewManager(t.TempDir(), discardLogger())
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	ws, err := m.Acquire("job-1")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if err := m.Release("job-1"); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(ws.Path); !os.IsNotExist(err) {
		t.Errorf("workspace still exists after release: %v", err)
	}
}

func TestManagerDoubleReleaseIsNoError(t *testing.T) {
	m, err := NewManager(t.TempDir(), discardLogger())
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	if _, err := m.Acquire("job-1"); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if err := m.Release("job-1"); err != nil {
		t.Fatalf("first Release() error = %v", err)
	}
	if err := m.Release("job-1"); err != nil {
		t.Errorf("second Release() error = %v, want nil", err)
	}
	if err := m.Release("never-acquired"); err != nil {
		t.Errorf("Release() of unknown workspace error = %v, want nil", err)
	}
}

func TestRunnerExecutesInWorkspace(t *testing.T) {
	dir := t.TempDir()
	r := NewRunner(discardLogger())

	out, err := r.Run(context.Background(), dir, "echo hello > greeting.txt && cat greeting.txt")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("output = %q, want hello", out)
	}
	if _, err := os.Stat(dir + "/greeting.txt"); err != nil {
		t.Errorf("command did not run in the workspace: %v", err)
	}
}

func TestRunnerReportsFailure(t *testing.T) {
	r := NewRunner(discardLogger())

	_, err := r.Run(context.Background(), t.TempDir(), "exit 3")
	if err == nil {
		t.Fatal("Run() should fail for a non-zero exit")
	}
}
