package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Deepak7704/100xSWE/internal/auth"
	"github.com/Deepak7704/100xSWE/internal/config"
	"github.com/Deepak7704/100xSWE/internal/core"
	"github.com/Deepak7704/100xSWE/internal/server/handler"
	"github.com/Deepak7704/100xSWE/internal/storage"
	"github.com/Deepak7704/100xSWE/internal/webhook"
)

// Deps carries the collaborators the HTTP surface is built from.
type Deps struct {
	Enqueuer core.Enqueuer
	Jobs     storage.JobStore
	Verifier *webhook.Verifier
	Ingestor *webhook.Ingestor
	Auth     *auth.Manager
}

// NewRouter creates and configures the HTTP router with middleware and all
// API routes.
func NewRouter(_ *config.Config, deps Deps, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Configure middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	webhookHandler := handler.NewWebhookHandler(deps.Verifier, deps.Ingestor, deps.Enqueuer, logger)
	r.Post("/webhook/github", webhookHandler.Handle)

	jobsHandler := handler.NewJobsHandler(deps.Enqueuer, deps.Jobs, logger)
	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", jobsHandler.Chat)
		r.Get("/status/{jobID}", jobsHandler.Status)

		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.Middleware)
			r.Get("/me", handler.Me)
		})
	})

	return r
}
