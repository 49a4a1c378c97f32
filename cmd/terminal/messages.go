package main

import "github.com/Deepak7704/100xSWE/internal/client"

// Indicates that the service accepted the change request.
type submittedMsg struct {
	jobID string
	err   error
}

// Carries one poll of the watched job's status.
type statusMsg struct {
	status *client.JobStatus
	err    error
}

// Fires when the poll interval elapses.
type pollTickMsg struct{}

// Carries the rendered outcome card for a completed job.
type outcomeRenderedMsg struct {
	content string
	err     error
}
