// Package sandbox manages the isolated working directories jobs run in.
// Each job gets a workspace keyed by its project id; the workspace is owned
// exclusively by that job and removed when the job finishes.
package sandbox

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// CleanupError wraps a failure to release a workspace. Callers log it and
// carry on; it never replaces the error that triggered the cleanup.
type CleanupError struct {
	ProjectID string
	Err       error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("cleanup of sandbox %s failed: %v", e.ProjectID, e.Err)
}

func (e *CleanupError) Unwrap() error {
	return e.Err
}

// ProjectID derives the workspace key for a job.
func ProjectID(jobID string) string {
	return "job-" + jobID
}

// Workspace is one acquired execution environment.
type Workspace struct {
	ProjectID string
	Path      string
}

// RepoDir is the path the repository is materialized at inside the
// workspace.
func (w *Workspace) RepoDir() string {
	return filepath.Join(w.Path, "repo")
}

// Manager provisions and releases workspaces under a common root.
type Manager struct {
	root   string
	logger *slog.Logger

	mu     sync.Mutex
	active map[string]*Workspace
}

// NewManager creates the workspace root if needed. An empty root falls back
// to the system temp directory.
func NewManager(root string, logger *slog.Logger) (*Manager, error) {
	if root == "" {
		root = filepath.Join(os.TempDir(), "swe-sandboxes")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create sandbox root %s: %w", root, err)
	}
	return &Manager{
		root:   root,
		logger: logger,
		active: make(map[string]*Workspace),
	}, nil
}

// Acquire obtains or creates the workspace for a project id. Acquiring an
// already-active workspace returns the same handle.
func (m *Manager) Acquire(projectID string) (*Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ws, ok := m.active[projectID]; ok {
		return ws, nil
	}

	path := filepath.Join(m.root, projectID)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create sandbox %s: %w", projectID, err)
	}

	ws := &Workspace{ProjectID: projectID, Path: path}
	m.active[projectID] = ws
	m.logger.Info("sandbox acquired", "project_id", projectID, "path", path)
	return ws, nil
}

// Release removes the workspace for a project id. Releasing a workspace
// that was already released, or never acquired, is not an error.
func (m *Manager) Release(projectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ws, ok := m.active[projectID]
	if !ok {
		return nil
	}
	delete(m.active, projectID)

	if err := os.RemoveAll(ws.Path); err != nil {
		return &CleanupError{ProjectID: projectID, Err: err}
	}
	m.logger.Info("sandbox released", "project_id", projectID)
	return nil
}
