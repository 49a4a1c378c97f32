// Package core defines the data structures shared by every layer of the
// service: the Job record and its state machine, the tagged union of job
// inputs, and the code-change generation the pipeline applies. These types
// are deliberately free of transport and storage concerns so that queue
// backends and HTTP handlers can evolve independently.
package core

import (
	"context"
	"time"
)

// JobState is the lifecycle state of a job. Transitions are monotonic:
// waiting -> active -> completed|failed, with no way back.
type JobState string

const (
	JobStateWaiting   JobState = "waiting"
	JobStateActive    JobState = "active"
	JobStateCompleted JobState = "completed"
	JobStateFailed    JobState = "failed"
)

var validTransitions = map[JobState][]JobState{
	JobStateWaiting:   {JobStateActive},
	JobStateActive:    {JobStateCompleted, JobStateFailed},
	JobStateCompleted: {},
	JobStateFailed:    {},
}

// CanTransitionTo reports whether moving from s to next is a legal state
// transition. Stores use this to refuse stale or duplicated updates.
func (s JobState) CanTransitionTo(next JobState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the state admits no further transitions.
func (s JobState) Terminal() bool {
	return s == JobStateCompleted || s == JobStateFailed
}

// Result is the outcome of a successfully completed job.
type Result struct {
	PRURL    string `json:"prUrl"`
	PRNumber int    `json:"prNumber"`
}

// Job is one unit of requested work, tracked from enqueue to terminal state.
// The record is never deleted by the pipeline; finished jobs stay queryable.
type Job struct {
	ID            string    `json:"id"`
	Input         JobInput  `json:"input"`
	State         JobState  `json:"state"`
	Progress      int       `json:"progress"`
	Result        *Result   `json:"result,omitempty"`
	FailureReason string    `json:"failureReason,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Enqueuer accepts validated job inputs into the work queue. It decouples
// the HTTP boundary from the scheduling mechanism behind it.
type Enqueuer interface {
	Enqueue(ctx context.Context, input *JobInput) (*Job, error)
}

// Processor executes one claimed job to completion. Implementations must be
// safe for concurrent use; the worker pool calls Process from several
// goroutines at once, each with its own job.
type Processor interface {
	Process(ctx context.Context, job *Job) (*Result, error)
}
