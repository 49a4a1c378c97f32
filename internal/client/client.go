// Package client is a typed HTTP client for the orchestration service API,
// shared by the command-line and terminal frontends.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Deepak7704/100xSWE/internal/core"
)

// JobStatus is the wire shape of GET /api/status/{jobID}.
type JobStatus struct {
	JobID        string        `json:"jobId"`
	State        core.JobState `json:"state"`
	Progress     int           `json:"progress"`
	Result       *core.Result  `json:"result,omitempty"`
	FailedReason string        `json:"failedReason,omitempty"`
}

// Done reports whether the job has reached a terminal state.
func (s *JobStatus) Done() bool {
	return s.State.Terminal()
}

// SubmitReply is the acceptance response of POST /api/chat.
type SubmitReply struct {
	JobID     string `json:"jobId"`
	StatusURL string `json:"statusUrl"`
}

// Client calls the orchestration service over HTTP.
type Client struct {
	base string
	http *http.Client
}

// New returns a client for the service rooted at base, e.g.
// "http://localhost:8080".
func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// Submit sends a change request and returns the accepted job's identity.
func (c *Client) Submit(ctx context.Context, repoURL, task string) (*SubmitReply, error) {
	payload, err := json.Marshal(map[string]string{"repoUrl": repoURL, "task": task})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not reach service at %s: %w", c.base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return nil, apiError(resp)
	}

	var reply SubmitReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}
	return &reply, nil
}

// Status fetches the current state of a job.
func (c *Client) Status(ctx context.Context, jobID string) (*JobStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/status/"+jobID, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not reach service at %s: %w", c.base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var status JobStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}
	return &status, nil
}

// apiError surfaces the service's structured error body when there is one.
func apiError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return fmt.Errorf("service returned %s: %s", resp.Status, body.Error)
	}
	return fmt.Errorf("service returned %s", resp.Status)
}
