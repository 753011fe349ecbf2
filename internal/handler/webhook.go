package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/ArushAwasthi-ctrl/POC-polar-payments/internal/webhook"
)

// maxWebhookBody caps how much of a delivery body is read. Polar payloads
// are small; anything past this is not a legitimate event.
const maxWebhookBody = 65536

type WebhookHandler struct {
	verifier *webhook.Verifier
	router   *webhook.Router
	replays  *webhook.ReplayLog
	logger   *slog.Logger
}

// NewWebhookHandler wires the authenticate-then-dispatch pipeline. verifier
// may be nil when no webhook secret is configured; the handler then fails
// closed with a 500 on every delivery until the service is fixed.
func NewWebhookHandler(v *webhook.Verifier, rt *webhook.Router, replays *webhook.ReplayLog, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{verifier: v, router: rt, replays: replays, logger: logger}
}

func (h *WebhookHandler) HandlePolarWebhook(w http.ResponseWriter, r *http.Request) {
	if h.verifier == nil {
		h.logger.Error("webhook received but no secret configured")
		http.Error(w, "webhook secret not configured", http.StatusInternalServerError)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}

	deliveryID := r.Header.Get("webhook-id")
	event, err := h.verifier.Authenticate(
		body,
		deliveryID,
		r.Header.Get("webhook-timestamp"),
		r.Header.Get("webhook-signature"),
	)
	if err != nil {
		h.logger.Warn("webhook rejected", "delivery_id", deliveryID, "error", err)
		if errors.Is(err, webhook.ErrMalformedEvent) {
			http.Error(w, "malformed event", http.StatusBadRequest)
			return
		}
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	if h.replays.Seen(deliveryID) {
		h.logger.Info("duplicate delivery, already processed",
			"delivery_id", deliveryID, "type", event.Type)
		w.WriteHeader(http.StatusOK)
		return
	}

	h.router.Dispatch(event)
	w.WriteHeader(http.StatusOK)
}
