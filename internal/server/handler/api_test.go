package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Deepak7704/100xSWE/internal/auth"
	"github.com/Deepak7704/100xSWE/internal/core"
	"github.com/Deepak7704/100xSWE/internal/queue"
	"github.com/Deepak7704/100xSWE/internal/storage"
)

func newJobsFixture(t *testing.T) (*JobsHandler, storage.Store) {
	t.Helper()
	logger := discardLogger()
	store := storage.NewMemoryStore()
	return NewJobsHandler(queue.NewQueue(store, logger), store, logger), store
}

func postChat(h *JobsHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Chat(rec, req)
	return rec
}

func getStatus(h *JobsHandler, jobID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/status/"+jobID, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("jobID", jobID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()
	h.Status(rec, req)
	return rec
}

func TestChatAcceptsSubmission(t *testing.T) {
	h, store := newJobsFixture(t)

	rec := postChat(h, `{"repoUrl": "https://github.com/acme/widget", "task": "add a LICENSE file"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var body chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.JobID)
	assert.Equal(t, "/api/status/"+body.JobID, body.StatusURL)

	job, err := store.GetJob(context.Background(), body.JobID)
	require.NoError(t, err)
	assert.Equal(t, core.JobKindDirect, job.Input.Kind)
	assert.Equal(t, core.TriggerAPI, job.Input.Trigger)
	assert.Equal(t, "add a LICENSE file", job.Input.Task)
	assert.Equal(t, 0, job.Progress)
}

func TestChatRejectsIncompleteRequests(t *testing.T) {
	h, _ := newJobsFixture(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing task", body: `{"repoUrl": "https://github.com/acme/widget"}`},
		{name: "missing repo url", body: `{"task": "add a LICENSE file"}`},
		{name: "empty object", body: `{}`},
		{name: "not json", body: `add a LICENSE file`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postChat(h, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestChatQueueFailure(t *testing.T) {
	h := NewJobsHandler(failingEnqueuer{}, storage.NewMemoryStore(), discardLogger())

	rec := postChat(h, `{"repoUrl": "https://github.com/acme/widget", "task": "add a LICENSE file"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestStatusUnknownJob(t *testing.T) {
	h, _ := newJobsFixture(t)

	rec := getStatus(h, "no-such-job")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusReportsProgressAndFailure(t *testing.T) {
	h, store := newJobsFixture(t)
	ctx := context.Background()

	job := &core.Job{ID: "j-1", Input: core.JobInput{Kind: core.JobKindDirect, RepoURL: "https://github.com/acme/widget", Task: "t"}, State: core.JobStateWaiting}
	require.NoError(t, store.CreateJob(ctx, job))
	_, err := store.ClaimJob(ctx)
	require.NoError(t, err)
	require.NoError(t, store.UpdateJobProgress(ctx, "j-1", 20))
	require.NoError(t, store.FailJob(ctx, "j-1", "stage clone: remote hung up"))

	rec := getStatus(h, "j-1")
	require.Equal(t, http.StatusOK, rec.Code)

	// The wire key for the failure reason is failedReason.
	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, "failed", raw["state"])
	assert.Equal(t, float64(20), raw["progress"])
	assert.Equal(t, "stage clone: remote hung up", raw["failedReason"])
	assert.NotContains(t, raw, "result")
}

func TestStatusReportsResult(t *testing.T) {
	h, store := newJobsFixture(t)
	ctx := context.Background()

	job := &core.Job{ID: "j-2", Input: core.JobInput{Kind: core.JobKindDirect, RepoURL: "https://github.com/acme/widget", Task: "t"}, State: core.JobStateWaiting}
	require.NoError(t, store.CreateJob(ctx, job))
	_, err := store.ClaimJob(ctx)
	require.NoError(t, err)
	require.NoError(t, store.UpdateJobProgress(ctx, "j-2", 100))
	require.NoError(t, store.CompleteJob(ctx, "j-2", &core.Result{PRURL: "https://github.com/acme/widget/pull/7", PRNumber: 7}))

	rec := getStatus(h, "j-2")
	require.Equal(t, http.StatusOK, rec.Code)

	var body statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, core.JobStateCompleted, body.State)
	assert.Equal(t, 100, body.Progress)
	require.NotNil(t, body.Result)
	assert.Equal(t, 7, body.Result.PRNumber)
	assert.Empty(t, body.FailedReason)
}

func TestMe(t *testing.T) {
	user := &core.User{UserID: "u-1", Username: "octocat", SessionID: "s-1"}

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req = req.WithContext(auth.WithUser(req.Context(), user))
	rec := httptest.NewRecorder()
	Me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "octocat", body["username"])
	assert.Equal(t, "s-1", body["sessionId"])
	assert.NotContains(t, body, "githubAccessToken")
}

func TestMeWithoutUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()
	Me(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
