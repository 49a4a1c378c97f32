// Package queue admits jobs into the durable store and schedules their
// execution across a fixed pool of workers.
package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Deepak7704/100xSWE/internal/core"
	"github.com/Deepak7704/100xSWE/internal/storage"
)

// Error marks a failure of the queue layer itself, as opposed to invalid
// input. Handlers map it to a 500.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("queue %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Queue implements core.Enqueuer on top of a JobStore and nudges the worker
// pool when new work arrives.
type Queue struct {
	store  storage.JobStore
	wake   chan struct{}
	logger *slog.Logger
}

func NewQueue(store storage.JobStore, logger *slog.Logger) *Queue {
	return &Queue{
		store:  store,
		wake:   make(chan struct{}, 1),
		logger: logger,
	}
}

// Enqueue validates the input, persists a new waiting job and wakes a
// worker. The job id is assigned here and never changes.
func (q *Queue) Enqueue(ctx context.Context, input *core.JobInput) (*core.Job, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	job := &core.Job{
		ID:        uuid.NewString(),
		Input:     *input,
		State:     core.JobStateWaiting,
		Progress:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := q.store.CreateJob(ctx, job); err != nil {
		return nil, &Error{Op: "enqueue", Err: err}
	}

	q.logger.Info("job enqueued", "job_id", job.ID, "kind", input.Kind, "trigger", input.Trigger)

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return job, nil
}

// Wake exposes the new-work signal the pool listens on.
func (q *Queue) Wake() <-chan struct{} {
	return q.wake
}
