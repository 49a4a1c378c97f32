package core

import (
	"fmt"
	"time"
)

// JobKind discriminates the closed set of job input shapes. Every input
// carries exactly one kind; Validate enforces the required fields for it
// before the job is admitted to the queue.
type JobKind string

const (
	JobKindDirect      JobKind = "direct-submission"
	JobKindWebhookPush JobKind = "webhook-push"
	JobKindWebhookPR   JobKind = "webhook-pull-request"
)

// Trigger records how a job entered the system.
type Trigger string

const (
	TriggerAPI     Trigger = "api"
	TriggerWebhook Trigger = "webhook"
)

// ValidationError marks an input that fails its kind's required-field check.
// Handlers map it to a 4xx response; no job is created.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

// JobInput is the payload a job is created from. Direct submissions carry a
// repository URL and a task; webhook-derived inputs additionally carry the
// event fields the delivery was normalized from.
type JobInput struct {
	Kind      JobKind   `json:"kind"`
	ProjectID string    `json:"projectId,omitempty"`
	RepoURL   string    `json:"repoUrl"`
	RepoID    int64     `json:"repoId,omitempty"`
	Branch    string    `json:"branch,omitempty"`
	Task      string    `json:"task,omitempty"`
	Trigger   Trigger   `json:"trigger"`
	Event     string    `json:"event,omitempty"`
	Pusher    string    `json:"pusher,omitempty"`
	Commits   int       `json:"commits,omitempty"`
	PRNumber  int       `json:"prNumber,omitempty"`
	Action    string    `json:"action,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Validate checks the required-field set for the input's kind.
func (in *JobInput) Validate() error {
	switch in.Kind {
	case JobKindDirect:
		if in.RepoURL == "" {
			return &ValidationError{Field: "repoUrl", Reason: "is required"}
		}
		if in.Task == "" {
			return &ValidationError{Field: "task", Reason: "is required"}
		}
	case JobKindWebhookPush:
		if in.ProjectID == "" {
			return &ValidationError{Field: "projectId", Reason: "is required"}
		}
		if in.RepoURL == "" {
			return &ValidationError{Field: "repoUrl", Reason: "is required"}
		}
		if in.Event != "push" {
			return &ValidationError{Field: "event", Reason: "must be push"}
		}
	case JobKindWebhookPR:
		if in.ProjectID == "" {
			return &ValidationError{Field: "projectId", Reason: "is required"}
		}
		if in.RepoURL == "" {
			return &ValidationError{Field: "repoUrl", Reason: "is required"}
		}
		if in.PRNumber <= 0 {
			return &ValidationError{Field: "prNumber", Reason: "must be positive"}
		}
		if in.Action != "opened" && in.Action != "synchronize" {
			return &ValidationError{Field: "action", Reason: "must be opened or synchronize"}
		}
	default:
		return &ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown job kind %q", in.Kind)}
	}
	return nil
}
