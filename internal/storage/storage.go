// Package storage persists job and session records. Three backends exist:
// an in-process map for development and tests, Postgres for durable
// single-writer deployments, and Redis where the queue is shared with
// other tooling. All of them enforce the same job state machine and the
// monotonic-progress rule, so the rest of the service never cares which
// one is wired in.
package storage

import (
	"context"
	"errors"

	"github.com/Deepak7704/100xSWE/internal/core"
)

var (
	// ErrNotFound is returned when no record exists for the given id.
	ErrNotFound = errors.New("not found")

	// ErrNoWaitingJobs is returned by Claim when the queue is drained.
	ErrNoWaitingJobs = errors.New("no waiting jobs")
)

// JobStore is the durable record of every job. Jobs are created in state
// waiting and never deleted; terminal jobs stay queryable.
//
// UpdateProgress keeps progress monotonic: a value lower than the current
// one is ignored, and a terminal job's progress is frozen. Complete and
// Fail refuse illegal state transitions.
type JobStore interface {
	CreateJob(ctx context.Context, job *core.Job) error
	GetJob(ctx context.Context, id string) (*core.Job, error)
	// ClaimJob atomically moves the oldest waiting job to active and
	// returns it. Admission order is FIFO by enqueue time.
	ClaimJob(ctx context.Context) (*core.Job, error)
	UpdateJobProgress(ctx context.Context, id string, progress int) error
	CompleteJob(ctx context.Context, id string, result *core.Result) error
	FailJob(ctx context.Context, id string, reason string) error
}

// SessionStore holds login sessions keyed by the id embedded in tokens.
type SessionStore interface {
	SaveSession(ctx context.Context, session *core.Session) error
	GetSession(ctx context.Context, id string) (*core.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

// Store bundles the persistence operations the service needs. A deployment
// selects one backend; it provides both halves.
type Store interface {
	JobStore
	SessionStore
}
