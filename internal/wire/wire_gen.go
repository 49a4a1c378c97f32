// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"
	"fmt"

	"github.com/Deepak7704/100xSWE/internal/app"
	"github.com/Deepak7704/100xSWE/internal/config"
	"github.com/Deepak7704/100xSWE/internal/engine"
	"github.com/Deepak7704/100xSWE/internal/gitutil"
	"github.com/Deepak7704/100xSWE/internal/pipeline"
	"github.com/Deepak7704/100xSWE/internal/queue"
	"github.com/Deepak7704/100xSWE/internal/sandbox"
	"github.com/Deepak7704/100xSWE/internal/server"
	"github.com/Deepak7704/100xSWE/internal/webhook"
)

// InitializeApp creates and wires all application dependencies.
func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	// Configuration and logging come first; everything else reports
	// through them.
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	slogLogger := provideLogger(cfg)

	// Store backend
	store, storeCleanup, err := provideStore(ctx, cfg, slogLogger)
	if err != nil {
		return nil, nil, err
	}

	// GitHub identity
	ghClient, gitToken, err := provideGitHubClient(ctx, cfg, slogLogger)
	if err != nil {
		storeCleanup()
		return nil, nil, err
	}

	// Sandbox
	sandboxMgr, err := provideSandboxManager(cfg, slogLogger)
	if err != nil {
		storeCleanup()
		return nil, nil, err
	}
	runner := sandbox.NewRunner(slogLogger)

	// Generation engine
	model, err := engine.NewGeneratorModel(ctx, cfg, slogLogger)
	if err != nil {
		storeCleanup()
		return nil, nil, fmt.Errorf("failed to create generator model: %w", err)
	}
	promptMgr, err := engine.NewPromptManager()
	if err != nil {
		storeCleanup()
		return nil, nil, fmt.Errorf("failed to initialize prompt manager: %w", err)
	}
	eng := engine.NewEngine(cfg, promptMgr, model, slogLogger)

	// Pipeline and queue
	gitClient := gitutil.NewClient(slogLogger)
	processor := pipeline.NewProcessor(store, ghClient, gitClient, sandboxMgr, runner, eng, gitToken, slogLogger)
	q := queue.NewQueue(store, slogLogger)
	pool := queue.NewPool(store, processor, cfg.WorkerConcurrency, q.Wake(), slogLogger)

	// HTTP surface
	srv := server.NewServer(cfg, server.Deps{
		Enqueuer: q,
		Jobs:     store,
		Verifier: provideVerifier(cfg),
		Ingestor: webhook.NewIngestor(slogLogger),
		Auth:     provideAuthManager(cfg, store, slogLogger),
	}, slogLogger)

	application := app.NewApp(cfg, srv, pool, slogLogger)

	return application, storeCleanup, nil
}
