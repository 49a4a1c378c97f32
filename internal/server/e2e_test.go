package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	gh "github.com/google/go-github/v73/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Deepak7704/100xSWE/internal/auth"
	"github.com/Deepak7704/100xSWE/internal/config"
	"github.com/Deepak7704/100xSWE/internal/core"
	"github.com/Deepak7704/100xSWE/internal/pipeline"
	"github.com/Deepak7704/100xSWE/internal/queue"
	"github.com/Deepak7704/100xSWE/internal/sandbox"
	"github.com/Deepak7704/100xSWE/internal/storage"
	"github.com/Deepak7704/100xSWE/internal/webhook"
	"github.com/Deepak7704/100xSWE/mocks"
)

// e2eGit stands in for the git layer: clone materializes an empty working
// copy and the write operations succeed without a remote.
type e2eGit struct{}

func (e2eGit) Clone(_ context.Context, _, path, _ string) (*git.Repository, error) {
	return nil, os.MkdirAll(path, 0o755)
}
func (e2eGit) CheckoutNewBranch(context.Context, string, string) error { return nil }
func (e2eGit) CommitAll(context.Context, string, string) error         { return nil }
func (e2eGit) Push(context.Context, string, string) error              { return nil }

type e2eStatus struct {
	JobID        string       `json:"jobId"`
	State        string       `json:"state"`
	Progress     int          `json:"progress"`
	Result       *core.Result `json:"result"`
	FailedReason string       `json:"failedReason"`
}

func TestSubmissionToPullRequestFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := storage.NewMemoryStore()
	q := queue.NewQueue(store, logger)

	mgr, err := sandbox.NewManager(t.TempDir(), logger)
	require.NoError(t, err)

	ghMock := mocks.NewMockClient(ctrl)
	engMock := mocks.NewMockEngine(ctrl)

	ghMock.EXPECT().EnsureFork(gomock.Any(), "acme", "widget").
		Return(&core.ForkRef{ForkURL: "https://github.com/bot/widget", ForkOwner: "bot"}, nil)
	engMock.EXPECT().FindFiles(gomock.Any(), gomock.Any()).Return([]string{"README.md"}, nil)
	engMock.EXPECT().ExtractKeywords("add a LICENSE file").Return([]string{"add", "license", "file"})
	engMock.EXPECT().SelectFiles(gomock.Any(), gomock.Any(), gomock.Any()).Return([]string{"README.md"})
	engMock.EXPECT().ReadContext(gomock.Any(), gomock.Any()).Return(map[string]string{"README.md": "# widget\n"}, nil)
	engMock.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(&core.Generation{
		FileOperations: []core.FileOp{{Op: core.FileOpCreate, Path: "LICENSE", Content: "MIT License\n"}},
		Explanation:    "Adds an MIT LICENSE file.",
	}, nil)
	ghMock.EXPECT().GetRepository(gomock.Any(), "acme", "widget").
		Return(&gh.Repository{DefaultBranch: gh.Ptr("main")}, nil)
	ghMock.EXPECT().CreatePullRequest(gomock.Any(), "acme", "widget", gomock.Any()).
		Return(&core.Result{PRURL: "https://github.com/acme/widget/pull/42", PRNumber: 42}, nil)

	processor := pipeline.NewProcessor(store, ghMock, e2eGit{}, mgr, sandbox.NewRunner(logger), engMock, "tok", logger)
	pool := queue.NewPool(store, processor, 2, q.Wake(), logger)
	pool.Start()
	defer pool.Stop()

	authMgr := auth.NewManager("jwt-secret", time.Hour, store, logger)
	router := NewRouter(&config.Config{}, Deps{
		Enqueuer: q,
		Jobs:     store,
		Verifier: webhook.NewVerifier("s3cret"),
		Ingestor: webhook.NewIngestor(logger),
		Auth:     authMgr,
	}, logger)

	ts := httptest.NewServer(router)
	defer ts.Close()

	// Submit the change request.
	resp, err := http.Post(ts.URL+"/api/chat", "application/json",
		strings.NewReader(`{"repoUrl": "https://github.com/acme/widget", "task": "add a LICENSE file"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var accepted struct {
		JobID     string `json:"jobId"`
		StatusURL string `json:"statusUrl"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&accepted))
	require.NotEmpty(t, accepted.JobID)

	// Poll until terminal, checking that progress never goes backwards.
	var status e2eStatus
	lastProgress := 0
	deadline := time.Now().Add(10 * time.Second)
	for {
		require.True(t, time.Now().Before(deadline), "job did not finish in time, last state %q at %d", status.State, status.Progress)

		pollResp, err := http.Get(ts.URL + accepted.StatusURL)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, pollResp.StatusCode)
		require.NoError(t, json.NewDecoder(pollResp.Body).Decode(&status))
		pollResp.Body.Close()

		require.GreaterOrEqual(t, status.Progress, lastProgress, "progress went backwards")
		lastProgress = status.Progress

		if status.State == "completed" || status.State == "failed" {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}

	require.Equal(t, "completed", status.State, "failed reason: %s", status.FailedReason)
	assert.Equal(t, 100, status.Progress)
	require.NotNil(t, status.Result)
	assert.Equal(t, 42, status.Result.PRNumber)
	assert.Equal(t, "https://github.com/acme/widget/pull/42", status.Result.PRURL)
	assert.Empty(t, status.FailedReason)
}

func TestHealthAndAuthenticatedRoutes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.NewMemoryStore()
	authMgr := auth.NewManager("jwt-secret", time.Hour, store, logger)

	router := NewRouter(&config.Config{}, Deps{
		Enqueuer: queue.NewQueue(store, logger),
		Jobs:     store,
		Verifier: webhook.NewVerifier("s3cret"),
		Ingestor: webhook.NewIngestor(logger),
		Auth:     authMgr,
	}, logger)
	ts := httptest.NewServer(router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// /api/me requires a Bearer token.
	resp, err = http.Get(ts.URL + "/api/me")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, token, err := authMgr.StartSession(context.Background(), auth.Profile{UserID: "u-1", Username: "octocat"})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.Equal(t, "octocat", me["username"])
}
