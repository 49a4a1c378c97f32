package queue

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Deepak7704/100xSWE/internal/core"
	"github.com/Deepak7704/100xSWE/internal/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func directInput(task string) *core.JobInput {
	return &core.JobInput{
		Kind:    core.JobKindDirect,
		RepoURL: "https://github.com/acme/widget",
		Task:    task,
		Trigger: core.TriggerAPI,
	}
}

func TestEnqueueCreatesWaitingJob(t *testing.T) {
	store := storage.NewMemoryStore()
	q := NewQueue(store, discardLogger())

	job, err := q.Enqueue(context.Background(), directInput("add a LICENSE file"))
	if err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	if job.ID == "" {
		t.Error("enqueued job must have an id")
	}
	if job.State != core.JobStateWaiting {
		t.Errorf("state = %s, want waiting", job.State)
	}
	if job.Progress != 0 {
		t.Errorf("progress = %d, want 0", job.Progress)
	}

	stored, err := store.GetJob(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("GetJob() error = %v", err)
	}
	if stored.Input.Task != "add a LICENSE file" {
		t.Errorf("stored task = %q", stored.Input.Task)
	}
}

func TestEnqueueRejectsInvalidInput(t *testing.T) {
	q := NewQueue(storage.NewMemoryStore(), discardLogger())

	_, err := q.Enqueue(context.Background(), &core.JobInput{Kind: core.JobKindDirect})
	if err == nil {
		t.Fatal("Enqueue() should reject input without repoUrl and task")
	}
	var verr *core.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("error type = %T, want *core.ValidationError", err)
	}
}

type failingStore struct {
	storage.JobStore
}

func (f *failingStore) CreateJob(context.Context, *core.Job) error {
	return errors.New("connection refused")
}

func TestEnqueueWrapsStoreFailure(t *testing.T) {
	q := NewQueue(&failingStore{}, discardLogger())

	_, err := q.Enqueue(context.Background(), directInput("task"))
	if err == nil {
		t.Fatal("Enqueue() should surface store failure")
	}
	var qerr *Error
	if !errors.As(err, &qerr) {
		t.Fatalf("error type = %T, want *queue.Error", err)
	}
	if qerr.Op != "enqueue" {
		t.Errorf("Op = %q, want enqueue", qerr.Op)
	}
}

func TestEnqueueAssignsDistinctIDs(t *testing.T) {
	q := NewQueue(storage.NewMemoryStore(), discardLogger())

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		job, err := q.Enqueue(context.Background(), directInput("task"))
		if err != nil {
			t.Fatalf("Enqueue() error = %v", err)
		}
		if seen[job.ID] {
			t.Fatalf("duplicate job id %s", job.ID)
		}
		seen[job.ID] = true
	}
}
