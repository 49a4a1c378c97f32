// Package wire assembles the application object graph. wire.go declares
// the injector for the wire tool; wire_gen.go is the checked-in result.
package wire

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"

	"github.com/Deepak7704/100xSWE/internal/app"
	"github.com/Deepak7704/100xSWE/internal/auth"
	"github.com/Deepak7704/100xSWE/internal/config"
	"github.com/Deepak7704/100xSWE/internal/db"
	"github.com/Deepak7704/100xSWE/internal/engine"
	"github.com/Deepak7704/100xSWE/internal/github"
	"github.com/Deepak7704/100xSWE/internal/gitutil"
	"github.com/Deepak7704/100xSWE/internal/logger"
	"github.com/Deepak7704/100xSWE/internal/queue"
	"github.com/Deepak7704/100xSWE/internal/sandbox"
	"github.com/Deepak7704/100xSWE/internal/server"
	"github.com/Deepak7704/100xSWE/internal/storage"
	"github.com/Deepak7704/100xSWE/internal/webhook"
)

var AppSet = wire.NewSet(
	app.NewApp,
	config.LoadConfig,
	gitutil.NewClient,
	engine.NewPromptManager,
	engine.NewEngine,
	engine.NewGeneratorModel,
	queue.NewQueue,
	webhook.NewIngestor,
	provideLogger,
	provideStore,
	provideGitHubClient,
	provideSandboxManager,
	provideVerifier,
	provideAuthManager,
)

func provideLogger(cfg *config.Config) *slog.Logger {
	return logger.NewLogger(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cfg.LogOutput,
	}, nil)
}

// provideStore selects the job and session store backend. The returned
// cleanup closes whatever connection the backend holds.
func provideStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Store, func(), error) {
	switch cfg.QueueBackend {
	case "postgres":
		dbConn, cleanup, err := db.NewDatabase(&cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		logger.Info("running database migrations")
		if err := dbConn.RunMigrations(); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
		logger.Info("using postgres job store", "host", cfg.DB.Host, "database", cfg.DB.Database)
		return storage.NewPostgresStore(dbConn.DB), cleanup, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		logger.Info("using redis job store", "addr", cfg.Redis.Addr)
		return storage.NewRedisStore(client), func() { _ = client.Close() }, nil

	default:
		logger.Info("using in-memory job store")
		return storage.NewMemoryStore(), func() {}, nil
	}
}

// provideGitHubClient builds the acting GitHub identity plus the token used
// for git-over-HTTPS clone and push.
func provideGitHubClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (github.Client, string, error) {
	if cfg.GitHub.AuthMode == "app" {
		return github.NewInstallationClient(ctx, &cfg.GitHub, logger)
	}
	return github.NewPATClient(ctx, cfg.GitHub.AccessToken, logger), cfg.GitHub.AccessToken, nil
}

func provideSandboxManager(cfg *config.Config, logger *slog.Logger) (*sandbox.Manager, error) {
	return sandbox.NewManager(cfg.SandboxRoot, logger)
}

func provideVerifier(cfg *config.Config) *webhook.Verifier {
	return webhook.NewVerifier(cfg.GitHub.WebhookSecret)
}

func provideAuthManager(cfg *config.Config, store storage.Store, logger *slog.Logger) *auth.Manager {
	ttl := time.Duration(cfg.Auth.SessionTTLDays) * 24 * time.Hour
	return auth.NewManager(cfg.Auth.JWTSecret, ttl, store, logger)
}
