// Package handler provides the HTTP handlers of the service API.
package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Deepak7704/100xSWE/internal/core"
	"github.com/Deepak7704/100xSWE/internal/queue"
	"github.com/Deepak7704/100xSWE/internal/webhook"
)

// WebhookHandler processes incoming webhook deliveries from GitHub.
type WebhookHandler struct {
	verifier *webhook.Verifier
	ingestor *webhook.Ingestor
	enqueuer core.Enqueuer
	logger   *slog.Logger
}

// NewWebhookHandler creates a webhook handler around the signature verifier
// and delivery classifier.
func NewWebhookHandler(verifier *webhook.Verifier, ingestor *webhook.Ingestor, enqueuer core.Enqueuer, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		verifier: verifier,
		ingestor: ingestor,
		enqueuer: enqueuer,
		logger:   logger,
	}
}

type webhookAck struct {
	Message string `json:"message"`
	Event   string `json:"event"`
}

type webhookEnqueued struct {
	Message   string `json:"message"`
	Event     string `json:"event"`
	JobID     string `json:"jobId"`
	StatusURL string `json:"statusUrl"`
}

// Handle authenticates, classifies and possibly enqueues one delivery. The
// signature is verified over the raw request bytes before anything parses
// the payload.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	if !h.verifier.Verify(body, r.Header.Get("X-Hub-Signature-256")) {
		h.logger.Warn("rejected webhook with invalid signature",
			"remote_ip", r.RemoteAddr,
			"event", r.Header.Get("X-GitHub-Event"),
		)
		respondError(w, http.StatusForbidden, "invalid signature")
		return
	}

	eventType := r.Header.Get("X-GitHub-Event")
	h.logger.Info("webhook delivery received",
		"event", eventType,
		"delivery_id", r.Header.Get("X-GitHub-Delivery"),
	)

	classification, err := h.ingestor.Classify(eventType, body)
	if err != nil {
		var validationErr *core.ValidationError
		if errors.As(err, &validationErr) {
			respondError(w, http.StatusBadRequest, validationErr.Error())
			return
		}
		h.logger.Error("failed to classify webhook delivery", "event", eventType, "error", err)
		respondError(w, http.StatusBadRequest, "could not process webhook payload")
		return
	}

	if classification.Input == nil {
		respondJSON(w, http.StatusOK, webhookAck{Message: classification.Message, Event: classification.Event})
		return
	}

	job, err := h.enqueuer.Enqueue(r.Context(), classification.Input)
	if err != nil {
		h.respondEnqueueError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, webhookEnqueued{
		Message:   classification.Message,
		Event:     classification.Event,
		JobID:     job.ID,
		StatusURL: statusURL(job.ID),
	})
}

func (h *WebhookHandler) respondEnqueueError(w http.ResponseWriter, err error) {
	var validationErr *core.ValidationError
	if errors.As(err, &validationErr) {
		respondError(w, http.StatusBadRequest, validationErr.Error())
		return
	}

	var queueErr *queue.Error
	if errors.As(err, &queueErr) {
		h.logger.Error("failed to enqueue webhook job", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to queue job")
		return
	}

	h.logger.Error("unexpected enqueue failure", "error", err)
	respondError(w, http.StatusInternalServerError, "internal error")
}
