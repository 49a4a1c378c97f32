// Package github provides functionality for interacting with the GitHub API.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"github.com/Deepak7704/100xSWE/internal/core"
)

// PullRequestParams describes the pull request the pipeline opens after
// pushing its branch. Head uses the cross-repository "owner:branch" form.
type PullRequestParams struct {
	Title string
	Head  string
	Base  string
	Body  string
}

// Client defines the GitHub operations the pipeline needs: fork management,
// repository lookup and pull request creation.
//
//go:generate mockgen -destination=../../mocks/mock_github_client.go -package=mocks . Client
type Client interface {
	EnsureFork(ctx context.Context, owner, repo string) (*core.ForkRef, error)
	GetRepository(ctx context.Context, owner, repo string) (*github.Repository, error)
	CreatePullRequest(ctx context.Context, owner, repo string, params PullRequestParams) (*core.Result, error)
}

type gitHubClient struct {
	client *github.Client
	logger *slog.Logger

	mu    sync.Mutex
	login string
}

// NewGitHubClient wraps the official go-github client to provide a focused,
// testable interface for application-specific GitHub operations.
func NewGitHubClient(client *github.Client, logger *slog.Logger) Client {
	return &gitHubClient{client: client, logger: logger}
}

// NewPATClient creates a new GitHub client authenticated with a Personal Access Token (PAT).
func NewPATClient(ctx context.Context, token string, logger *slog.Logger) Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)
	return &gitHubClient{client: client, logger: logger}
}

// viewer resolves and caches the login of the acting identity. The fork
// lives under this namespace.
func (g *gitHubClient) viewer(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.login != "" {
		return g.login, nil
	}
	user, _, err := g.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to resolve authenticated user: %w", err)
	}
	g.login = user.GetLogin()
	return g.login, nil
}

// EnsureFork makes sure a fork of owner/repo exists under the acting
// identity and returns its location. GitHub schedules fork creation
// asynchronously and answers 202 whether or not the fork already existed,
// so the call is idempotent; the result is confirmed by polling the fork's
// repository until it materializes.
func (g *gitHubClient) EnsureFork(ctx context.Context, owner, repo string) (*core.ForkRef, error) {
	login, err := g.viewer(ctx)
	if err != nil {
		return nil, err
	}

	fork, _, err := g.client.Repositories.CreateFork(ctx, owner, repo, &github.RepositoryCreateForkOptions{})
	if err != nil {
		var accepted *github.AcceptedError
		if !errors.As(err, &accepted) {
			g.logger.Error("failed to create fork", "owner", owner, "repo", repo, "error", err)
			return nil, fmt.Errorf("failed to create fork of %s/%s: %w", owner, repo, err)
		}
		// 202: creation is in flight; resolve the fork by name below.
		fork = nil
	}

	if fork == nil {
		fork, err = g.waitForFork(ctx, login, repo)
		if err != nil {
			return nil, err
		}
	}

	return &core.ForkRef{
		ForkURL:   fork.GetCloneURL(),
		ForkOwner: fork.GetOwner().GetLogin(),
	}, nil
}

// waitForFork polls until the scheduled fork shows up. Small repositories
// fork in well under a second; the bound only guards against a wedged
// creation.
func (g *gitHubClient) waitForFork(ctx context.Context, login, repo string) (*github.Repository, error) {
	var lastErr error
	for attempt := 0; attempt < 10; attempt++ {
		fork, resp, err := g.client.Repositories.Get(ctx, login, repo)
		if err == nil {
			return fork, nil
		}
		lastErr = err
		if resp == nil || resp.StatusCode != http.StatusNotFound {
			return nil, fmt.Errorf("failed to look up fork %s/%s: %w", login, repo, err)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	return nil, fmt.Errorf("fork %s/%s did not appear: %w", login, repo, lastErr)
}

// GetRepository retrieves repository metadata, including the default branch
// used as the pull request base.
func (g *gitHubClient) GetRepository(ctx context.Context, owner, repo string) (*github.Repository, error) {
	repository, _, err := g.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		g.logger.Error("failed to get repository", "owner", owner, "repo", repo, "error", err)
		return nil, err
	}
	return repository, nil
}

// CreatePullRequest opens a pull request against the upstream repository.
func (g *gitHubClient) CreatePullRequest(ctx context.Context, owner, repo string, params PullRequestParams) (*core.Result, error) {
	newPR := &github.NewPullRequest{
		Title:               github.Ptr(params.Title),
		Head:                github.Ptr(params.Head),
		Base:                github.Ptr(params.Base),
		Body:                github.Ptr(params.Body),
		MaintainerCanModify: github.Ptr(true),
	}

	pr, _, err := g.client.PullRequests.Create(ctx, owner, repo, newPR)
	if err != nil {
		g.logger.Error("failed to create pull request", "owner", owner, "repo", repo, "head", params.Head, "error", err)
		return nil, fmt.Errorf("failed to create pull request for %s/%s: %w", owner, repo, err)
	}

	return &core.Result{
		PRURL:    pr.GetHTMLURL(),
		PRNumber: pr.GetNumber(),
	}, nil
}
