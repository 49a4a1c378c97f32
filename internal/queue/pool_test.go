package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Deepak7704/100xSWE/internal/core"
	"github.com/Deepak7704/100xSWE/internal/storage"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

type fakeProcessor struct {
	mu      sync.Mutex
	order   []string
	gate    chan struct{}
	running atomic.Int32
	maxSeen atomic.Int32
	err     error
}

func (f *fakeProcessor) Process(_ context.Context, job *core.Job) (*core.Result, error) {
	now := f.running.Add(1)
	for {
		max := f.maxSeen.Load()
		if now <= max || f.maxSeen.CompareAndSwap(max, now) {
			break
		}
	}
	defer f.running.Add(-1)

	f.mu.Lock()
	f.order = append(f.order, job.ID)
	f.mu.Unlock()

	if f.gate != nil {
		<-f.gate
	}
	if f.err != nil {
		return nil, f.err
	}
	return &core.Result{PRURL: "https://github.com/acme/widget/pull/9", PRNumber: 9}, nil
}

func (f *fakeProcessor) processed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

func jobState(t *testing.T, store storage.JobStore, id string) *core.Job {
	t.Helper()
	job, err := store.GetJob(context.Background(), id)
	if err != nil {
		t.Fatalf("GetJob(%s) error = %v", id, err)
	}
	return job
}

func TestPoolProcessesInAdmissionOrder(t *testing.T) {
	store := storage.NewMemoryStore()
	q := NewQueue(store, discardLogger())
	proc := &fakeProcessor{}
	pool := NewPool(store, proc, 1, q.Wake(), discardLogger())

	var ids []string
	for i := 0; i < 3; i++ {
		job, err := q.Enqueue(context.Background(), directInput("task"))
		if err != nil {
			t.Fatalf("Enqueue() error = %v", err)
		}
		ids = append(ids, job.ID)
	}

	pool.Start()
	defer pool.Stop()

	waitFor(t, "all jobs processed", func() bool {
		return len(proc.processed()) == 3
	})
	waitFor(t, "all jobs completed", func() bool {
		return jobState(t, store, ids[2]).State == core.JobStateCompleted
	})

	got := proc.processed()
	for i, id := range ids {
		if got[i] != id {
			t.Fatalf("processed order %v, want %v", got, ids)
		}
	}

	job := jobState(t, store, ids[0])
	if job.Result == nil || job.Result.PRNumber != 9 {
		t.Errorf("completed job result = %+v", job.Result)
	}
}

func TestPoolRecordsFailure(t *testing.T) {
	store := storage.NewMemoryStore()
	q := NewQueue(store, discardLogger())
	proc := &fakeProcessor{err: errors.New("clone: connection reset")}
	pool := NewPool(store, proc, 1, q.Wake(), discardLogger())

	job, err := q.Enqueue(context.Background(), directInput("task"))
	if err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	pool.Start()
	defer pool.Stop()

	waitFor(t, "job failed", func() bool {
		return jobState(t, store, job.ID).State == core.JobStateFailed
	})

	failed := jobState(t, store, job.ID)
	if failed.FailureReason != "clone: connection reset" {
		t.Errorf("failure reason = %q", failed.FailureReason)
	}
	if failed.Result != nil {
		t.Errorf("failed job has result %+v", failed.Result)
	}
}

func TestPoolRespectsConcurrencyBound(t *testing.T) {
	store := storage.NewMemoryStore()
	q := NewQueue(store, discardLogger())
	proc := &fakeProcessor{gate: make(chan struct{})}
	pool := NewPool(store, proc, 2, q.Wake(), discardLogger())

	var ids []string
	for i := 0; i < 5; i++ {
		job, err := q.Enqueue(context.Background(), directInput("task"))
		if err != nil {
			t.Fatalf("Enqueue() error = %v", err)
		}
		ids = append(ids, job.ID)
	}

	pool.Start()

	waitFor(t, "two jobs running", func() bool {
		return proc.running.Load() == 2
	})
	if got := proc.running.Load(); got != 2 {
		t.Errorf("running = %d, want 2", got)
	}

	close(proc.gate)
	waitFor(t, "all jobs completed", func() bool {
		for _, id := range ids {
			if jobState(t, store, id).State != core.JobStateCompleted {
				return false
			}
		}
		return true
	})
	pool.Stop()

	if max := proc.maxSeen.Load(); max > 2 {
		t.Errorf("max concurrent jobs = %d, want at most 2", max)
	}
}

func TestPoolStopWaitsForInflightJob(t *testing.T) {
	store := storage.NewMemoryStore()
	q := NewQueue(store, discardLogger())
	proc := &fakeProcessor{gate: make(chan struct{})}
	pool := NewPool(store, proc, 1, q.Wake(), discardLogger())

	job, err := q.Enqueue(context.Background(), directInput("task"))
	if err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	pool.Start()
	waitFor(t, "job running", func() bool {
		return proc.running.Load() == 1
	})

	stopped := make(chan struct{})
	go func() {
		pool.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop() returned while a job was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(proc.gate)
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop() did not return after the job finished")
	}

	if got := jobState(t, store, job.ID).State; got != core.JobStateCompleted {
		t.Errorf("job state after Stop = %s, want completed", got)
	}
}

func TestPoolDefaultConcurrency(t *testing.T) {
	pool := NewPool(storage.NewMemoryStore(), &fakeProcessor{}, 0, nil, discardLogger())
	if pool.concurrency != 2 {
		t.Errorf("default concurrency = %d, want 2", pool.concurrency)
	}
}
