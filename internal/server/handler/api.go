package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Deepak7704/100xSWE/internal/auth"
	"github.com/Deepak7704/100xSWE/internal/core"
	"github.com/Deepak7704/100xSWE/internal/queue"
	"github.com/Deepak7704/100xSWE/internal/storage"
)

// JobsHandler serves direct job submission and status polling.
type JobsHandler struct {
	enqueuer core.Enqueuer
	jobs     storage.JobStore
	logger   *slog.Logger
}

func NewJobsHandler(enqueuer core.Enqueuer, jobs storage.JobStore, logger *slog.Logger) *JobsHandler {
	return &JobsHandler{
		enqueuer: enqueuer,
		jobs:     jobs,
		logger:   logger,
	}
}

type chatRequest struct {
	RepoURL string `json:"repoUrl"`
	Task    string `json:"task"`
}

type chatResponse struct {
	JobID     string `json:"jobId"`
	StatusURL string `json:"statusUrl"`
}

// statusResponse is the polled view of one job. The failure reason is keyed
// failedReason on the wire.
type statusResponse struct {
	JobID        string        `json:"jobId"`
	State        core.JobState `json:"state"`
	Progress     int           `json:"progress"`
	Result       *core.Result  `json:"result,omitempty"`
	FailedReason string        `json:"failedReason,omitempty"`
}

// Chat accepts a change request for a repository and queues a job for it.
func (h *JobsHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "request body must be JSON")
		return
	}

	input := &core.JobInput{
		Kind:      core.JobKindDirect,
		RepoURL:   req.RepoURL,
		Task:      req.Task,
		Trigger:   core.TriggerAPI,
		Timestamp: time.Now().UTC(),
	}

	job, err := h.enqueuer.Enqueue(r.Context(), input)
	if err != nil {
		var validationErr *core.ValidationError
		if errors.As(err, &validationErr) {
			respondError(w, http.StatusBadRequest, validationErr.Error())
			return
		}
		var queueErr *queue.Error
		if errors.As(err, &queueErr) {
			h.logger.Error("failed to enqueue chat job", "error", err)
			respondError(w, http.StatusInternalServerError, "failed to queue job")
			return
		}
		h.logger.Error("unexpected enqueue failure", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.logger.Info("chat job accepted", "job_id", job.ID, "repo_url", req.RepoURL)
	respondJSON(w, http.StatusAccepted, chatResponse{JobID: job.ID, StatusURL: statusURL(job.ID)})
}

// Status reports the current state of a job. Finished jobs stay queryable
// indefinitely.
func (h *JobsHandler) Status(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "jobID")

	job, err := h.jobs.GetJob(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "job not found")
			return
		}
		h.logger.Error("failed to load job", "job_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, statusResponse{
		JobID:        job.ID,
		State:        job.State,
		Progress:     job.Progress,
		Result:       job.Result,
		FailedReason: job.FailureReason,
	})
}

// Me returns the identity resolved by the authentication middleware.
func Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "no authenticated user")
		return
	}
	respondJSON(w, http.StatusOK, user)
}
