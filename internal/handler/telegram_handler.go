package handler

import (
	"encoding/json"
	"net/http"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/transport"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/pkg/logger"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// menuFallbackText is sent when the Channel Router can't resolve a
// tenant/vertical for this channel identity (§4.2 tier 3).
const menuFallbackText = "Hi! Reply with a link from one of our partner agencies to get started."

// TelegramWebhookHandler handles inbound Telegram Bot API webhooks.
type TelegramWebhookHandler struct {
	hm *HandlerManager
}

// NewTelegramWebhookHandler builds the Telegram webhook handler.
func NewTelegramWebhookHandler(hm *HandlerManager) *TelegramWebhookHandler {
	return &TelegramWebhookHandler{hm: hm}
}

// Register mounts the handler's routes on r.
func (h *TelegramWebhookHandler) Register(r *mux.Router) {
	r.HandleFunc("/webhooks/telegram", h.handleWebhook).Methods(http.MethodPost)
}

func (h *TelegramWebhookHandler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var in transport.TelegramInbound
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	msg := transport.NormalizeTelegram(in)

	outcome, err := h.hm.router.Route(ctx, msg.ChannelIdentity, msg.Text)
	if err != nil {
		logger.Base().Error("telegram router failure", zap.Error(err))
		http.Error(w, "routing failure", http.StatusInternalServerError)
		return
	}
	if outcome.MenuOnly {
		if sendErr := h.hm.dispatcher.Send(ctx, "telegram", msg.ChannelIdentity, transport.BotResponse{Text: menuFallbackText}); sendErr != nil {
			logger.Base().Warn("failed to send menu fallback", zap.Error(sendErr))
		}
		w.WriteHeader(http.StatusOK)
		return
	}

	resp, err := h.hm.processInbound(ctx, outcome.Tenant, "telegram", msg)
	if err != nil {
		logger.Base().Error("telegram turn failed", zap.String("tenant_id", outcome.Tenant.ID), zap.Error(err))
		http.Error(w, "processing failure", http.StatusInternalServerError)
		return
	}

	if err := h.hm.dispatcher.Send(ctx, "telegram", msg.ChannelIdentity, resp); err != nil {
		logger.Base().Error("failed to deliver telegram response", zap.Error(err))
	}
	w.WriteHeader(http.StatusOK)
}
