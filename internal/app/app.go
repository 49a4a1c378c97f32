// Package app assembles and supervises the long-running halves of the
// service: the worker pool draining the job queue and the HTTP server
// feeding it.
package app

import (
	"log/slog"

	"github.com/Deepak7704/100xSWE/internal/config"
	"github.com/Deepak7704/100xSWE/internal/queue"
	"github.com/Deepak7704/100xSWE/internal/server"
)

// App holds the main application components.
type App struct {
	cfg    *config.Config
	server *server.Server
	pool   *queue.Pool
	logger *slog.Logger
}

// NewApp bundles the wired components into a startable application.
func NewApp(cfg *config.Config, srv *server.Server, pool *queue.Pool, logger *slog.Logger) *App {
	return &App{
		cfg:    cfg,
		server: srv,
		pool:   pool,
		logger: logger,
	}
}

// Start launches the worker pool and then blocks serving HTTP until the
// server stops or fails.
func (a *App) Start() error {
	a.logger.Info("starting service",
		"server_port", a.cfg.ServerPort,
		"queue_backend", a.cfg.QueueBackend,
		"worker_concurrency", a.cfg.WorkerConcurrency,
	)

	a.pool.Start()
	return a.server.Start()
}

// Stop shuts the service down cleanly: the HTTP server first so no new
// work is admitted, then the pool so in-flight jobs can finish. Waiting
// jobs stay in the store for the next start.
func (a *App) Stop() error {
	a.logger.Info("shutting down service")

	serverErr := a.server.Stop()
	if serverErr != nil {
		a.logger.Error("error during HTTP server shutdown", "error", serverErr)
	}

	a.pool.Stop()

	if serverErr != nil {
		return serverErr
	}
	a.logger.Info("service stopped")
	return nil
}
