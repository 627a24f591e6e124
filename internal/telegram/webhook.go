package telegram

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// MessageHandler is called for each incoming text message.
type MessageHandler func(ctx context.Context, chatID int64, text string)

type WebhookHandler struct {
	onMessage MessageHandler
	log       *zap.Logger
}

func NewWebhookHandler(onMessage MessageHandler, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		onMessage: onMessage,
		log:       log,
	}
}

// HandleIncoming processes an incoming webhook POST. Every path — malformed
// body, irrelevant update, internal failure — answers 200: Telegram retries
// webhooks on non-2xx responses, and duplicate deliveries are worse than a
// silently dropped reply.
func (h *WebhookHandler) HandleIncoming(w http.ResponseWriter, r *http.Request) {
	var update Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.log.Warn("webhook: failed to decode payload", zap.Error(err))
		w.WriteHeader(http.StatusOK)
		return
	}

	if update.Message == nil || update.Message.Text == "" {
		w.WriteHeader(http.StatusOK)
		return
	}

	h.onMessage(r.Context(), update.Message.Chat.ID, update.Message.Text)
	w.WriteHeader(http.StatusOK)
}
