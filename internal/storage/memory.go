package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Deepak7704/100xSWE/internal/core"
)

// memoryStore keeps all records in process memory. It is the default
// backend for development and the one the test suite runs against.
type memoryStore struct {
	mu       sync.RWMutex
	jobs     map[string]*core.Job
	waiting  []string
	sessions map[string]*core.Session
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() Store {
	return &memoryStore{
		jobs:     make(map[string]*core.Job),
		sessions: make(map[string]*core.Session),
	}
}

func (s *memoryStore) CreateJob(_ context.Context, job *core.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.ID]; exists {
		return fmt.Errorf("job %s already exists", job.ID)
	}
	s.jobs[job.ID] = cloneJob(job)
	s.waiting = append(s.waiting, job.ID)
	return nil
}

func (s *memoryStore) GetJob(_ context.Context, id string) (*core.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneJob(job), nil
}

func (s *memoryStore) ClaimJob(_ context.Context) (*core.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.waiting) > 0 {
		id := s.waiting[0]
		s.waiting = s.waiting[1:]
		job, ok := s.jobs[id]
		if !ok || job.State != core.JobStateWaiting {
			continue
		}
		job.State = core.JobStateActive
		job.UpdatedAt = time.Now().UTC()
		return cloneJob(job), nil
	}
	return nil, ErrNoWaitingJobs
}

func (s *memoryStore) UpdateJobProgress(_ context.Context, id string, progress int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}
	if job.State.Terminal() || progress <= job.Progress {
		return nil
	}
	job.Progress = progress
	job.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *memoryStore) CompleteJob(_ context.Context, id string, result *core.Result) error {
	return s.finish(id, core.JobStateCompleted, func(job *core.Job) {
		job.Result = result
	})
}

func (s *memoryStore) FailJob(_ context.Context, id string, reason string) error {
	return s.finish(id, core.JobStateFailed, func(job *core.Job) {
		job.FailureReason = reason
	})
}

func (s *memoryStore) finish(id string, state core.JobState, apply func(*core.Job)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}
	if !job.State.CanTransitionTo(state) {
		return fmt.Errorf("job %s: illegal transition %s -> %s", id, job.State, state)
	}
	job.State = state
	job.UpdatedAt = time.Now().UTC()
	apply(job)
	return nil
}

func (s *memoryStore) SaveSession(_ context.Context, session *core.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *memoryStore) GetSession(_ context.Context, id string) (*core.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *memoryStore) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

func cloneJob(job *core.Job) *core.Job {
	copied := *job
	if job.Result != nil {
		result := *job.Result
		copied.Result = &result
	}
	return &copied
}
