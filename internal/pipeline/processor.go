// Package pipeline runs claimed jobs through the staged flow that ends in
// an opened pull request: fork, sandbox, clone, file discovery, generation,
// apply, commit, push, PR, cleanup. Stages are strictly sequential and a
// failure at any point halts the run; the sandbox is released on every
// exit path exactly once.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	git "github.com/go-git/go-git/v5"

	"github.com/Deepak7704/100xSWE/internal/config"
	"github.com/Deepak7704/100xSWE/internal/core"
	"github.com/Deepak7704/100xSWE/internal/engine"
	"github.com/Deepak7704/100xSWE/internal/github"
	"github.com/Deepak7704/100xSWE/internal/gitutil"
	"github.com/Deepak7704/100xSWE/internal/sandbox"
	"github.com/Deepak7704/100xSWE/internal/storage"
)

// Git abstracts the git operations performed on the sandbox working copy.
// *gitutil.Client satisfies it.
type Git interface {
	Clone(ctx context.Context, repoURL, path, token string) (*git.Repository, error)
	CheckoutNewBranch(ctx context.Context, path, branch string) error
	CommitAll(ctx context.Context, path, message string) error
	Push(ctx context.Context, path, branch string) error
}

// Processor executes one job at a time on behalf of a worker. It is safe
// for concurrent use; per-job state lives on the stack.
type Processor struct {
	store       storage.JobStore
	gh          github.Client
	git         Git
	sandbox     *sandbox.Manager
	runner      *sandbox.Runner
	engine      engine.Engine
	accessToken string
	logger      *slog.Logger
}

// NewProcessor wires the pipeline's collaborators. The access token is the
// acting credential used for clone and push.
func NewProcessor(
	store storage.JobStore,
	gh github.Client,
	gitClient Git,
	sandboxMgr *sandbox.Manager,
	runner *sandbox.Runner,
	eng engine.Engine,
	accessToken string,
	logger *slog.Logger,
) *Processor {
	if store == nil {
		panic("store cannot be nil")
	}
	if gh == nil {
		panic("github client cannot be nil")
	}
	if gitClient == nil {
		panic("git client cannot be nil")
	}
	if sandboxMgr == nil {
		panic("sandbox manager cannot be nil")
	}
	if eng == nil {
		panic("engine cannot be nil")
	}
	return &Processor{
		store:       store,
		gh:          gh,
		git:         gitClient,
		sandbox:     sandboxMgr,
		runner:      runner,
		engine:      eng,
		accessToken: accessToken,
		logger:      logger,
	}
}

// Process runs the job to completion. Direct submissions execute the full
// change pipeline; webhook-derived jobs record the delivery and finish.
func (p *Processor) Process(ctx context.Context, job *core.Job) (*core.Result, error) {
	log := p.logger.With("job_id", job.ID, "kind", job.Input.Kind)

	if job.Input.Kind != core.JobKindDirect {
		return p.recordDelivery(ctx, job, log)
	}
	return p.run(ctx, job, log)
}

// recordDelivery is the short path for webhook jobs: the delivery is
// durably tracked but no change is generated for it.
func (p *Processor) recordDelivery(ctx context.Context, job *core.Job, log *slog.Logger) (*core.Result, error) {
	log.Info("recording webhook delivery",
		"project_id", job.Input.ProjectID,
		"event", job.Input.Event,
		"branch", job.Input.Branch,
	)
	p.checkpoint(ctx, job.ID, StageCleanup, log)
	return nil, nil
}

func (p *Processor) run(ctx context.Context, job *core.Job, log *slog.Logger) (*core.Result, error) {
	log.Info("starting job run", "repo_url", job.Input.RepoURL, "task", job.Input.Task)

	owner, repo, err := gitutil.ParseRepoURL(job.Input.RepoURL)
	if err != nil {
		return nil, &StageError{Stage: StageFork, Err: err}
	}

	fork, err := p.gh.EnsureFork(ctx, owner, repo)
	if err != nil {
		return nil, &StageError{Stage: StageFork, Err: err}
	}
	p.checkpoint(ctx, job.ID, StageFork, log)
	log.Info("fork ready", "fork_owner", fork.ForkOwner, "fork_url", fork.ForkURL)

	projectID := sandbox.ProjectID(job.ID)
	ws, err := p.sandbox.Acquire(projectID)
	if err != nil {
		return nil, &StageError{Stage: StageSandbox, Err: err}
	}
	released := false
	defer func() {
		// The failure-path half of the cleanup stage. Release errors are
		// logged, never raised, so they cannot mask the run's own error.
		if released {
			return
		}
		if cerr := p.sandbox.Release(projectID); cerr != nil {
			log.Error("sandbox cleanup failed", "project_id", projectID, "error", cerr)
		}
	}()
	p.checkpoint(ctx, job.ID, StageSandbox, log)

	repoDir := ws.RepoDir()
	if _, err := p.git.Clone(ctx, fork.ForkURL, repoDir, p.accessToken); err != nil {
		return nil, &StageError{Stage: StageClone, Err: err}
	}
	p.checkpoint(ctx, job.ID, StageClone, log)

	repoConfig, err := config.LoadRepoConfig(repoDir)
	if err != nil {
		if !errors.Is(err, config.ErrConfigNotFound) {
			log.Warn("ignoring unusable .swe.yml", "error", err)
		}
		if repoConfig == nil {
			repoConfig = core.DefaultRepoConfig()
		}
	}

	candidates, err := p.engine.FindFiles(repoDir, repoConfig)
	if err != nil {
		return nil, &StageError{Stage: StageFindFiles, Err: err}
	}
	p.checkpoint(ctx, job.ID, StageFindFiles, log)

	// Keywords are computed once here and reused for both selection and
	// generation.
	keywords := p.engine.ExtractKeywords(job.Input.Task)
	selected := p.engine.SelectFiles(candidates, keywords, repoConfig.MaxContextFiles)
	log.Info("selected files for generation", "candidates", len(candidates), "selected", len(selected), "keywords", keywords)

	contents, err := p.engine.ReadContext(repoDir, selected)
	if err != nil {
		return nil, &StageError{Stage: StageReadContext, Err: err}
	}
	p.checkpoint(ctx, job.ID, StageReadContext, log)

	gen, err := p.engine.Generate(ctx, &engine.GenerateRequest{
		Task:          job.Input.Task,
		Keywords:      keywords,
		SelectedFiles: selected,
		FileContents:  contents,
		Tree:          candidates,
	})
	if err != nil {
		return nil, &StageError{Stage: StageGenerate, Err: err}
	}
	p.checkpoint(ctx, job.ID, StageGenerate, log)

	if err := applyFileOperations(repoDir, gen.FileOperations); err != nil {
		return nil, &StageError{Stage: StageApplyOps, Err: err}
	}
	p.checkpoint(ctx, job.ID, StageApplyOps, log)

	for _, command := range gen.ShellCommands {
		out, err := p.runner.Run(ctx, repoDir, command)
		if err != nil {
			return nil, &StageError{Stage: StageRunCommands, Err: fmt.Errorf("command %q: %w", command, err)}
		}
		log.Debug("ran generated command", "command", command, "output_bytes", len(out))
	}

	branch := newBranchName()
	if err := p.git.CheckoutNewBranch(ctx, repoDir, branch); err != nil {
		return nil, &StageError{Stage: StageCommitPush, Err: err}
	}
	if err := p.git.CommitAll(ctx, repoDir, fmt.Sprintf("feat: %s", job.Input.Task)); err != nil {
		return nil, &StageError{Stage: StageCommitPush, Err: err}
	}
	if err := p.git.Push(ctx, repoDir, branch); err != nil {
		return nil, &StageError{Stage: StageCommitPush, Err: err}
	}
	p.checkpoint(ctx, job.ID, StageCommitPush, log)
	log.Info("pushed working branch", "branch", branch)

	base := "main"
	if upstream, err := p.gh.GetRepository(ctx, owner, repo); err != nil {
		log.Warn("could not resolve upstream default branch, assuming main", "error", err)
	} else if db := upstream.GetDefaultBranch(); db != "" {
		base = db
	}

	result, err := p.gh.CreatePullRequest(ctx, owner, repo, github.PullRequestParams{
		Title: job.Input.Task,
		Head:  fmt.Sprintf("%s:%s", fork.ForkOwner, branch),
		Base:  base,
		Body:  gen.Explanation,
	})
	if err != nil {
		return nil, &StageError{Stage: StageOpenPR, Err: err}
	}
	log.Info("pull request opened", "pr_url", result.PRURL, "pr_number", result.PRNumber)

	// The success-path half of the cleanup stage. The release is invoked
	// here exactly once; the deferred release sees the flag and stays out.
	if cerr := p.sandbox.Release(projectID); cerr != nil {
		log.Error("sandbox cleanup failed", "project_id", projectID, "error", cerr)
	}
	released = true
	p.checkpoint(ctx, job.ID, StageCleanup, log)

	return result, nil
}

// checkpoint records the progress value reached after a completed stage.
// Recording is best-effort: the run's outcome is the job's source of truth
// and a store hiccup here must not fail an otherwise healthy run.
func (p *Processor) checkpoint(ctx context.Context, jobID string, stage Stage, log *slog.Logger) {
	value, ok := checkpoints[stage]
	if !ok {
		return
	}
	if err := p.store.UpdateJobProgress(ctx, jobID, value); err != nil {
		log.Warn("failed to record progress checkpoint", "stage", stage, "value", value, "error", err)
	}
}
