package handler

import (
	"encoding/json"
	"net/http"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/transport"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/pkg/logger"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// GatewayWebhookHandler handles inbound WhatsApp-gateway webhooks. Unlike
// Telegram, the gateway deployment model pins one tenant per webhook
// integration: the tenant is carried on X-Tenant-ID rather than resolved
// from a deep link, and X-Vertical-Mode supplies the vertical directly.
type GatewayWebhookHandler struct {
	hm *HandlerManager
}

// NewGatewayWebhookHandler builds the gateway webhook handler.
func NewGatewayWebhookHandler(hm *HandlerManager) *GatewayWebhookHandler {
	return &GatewayWebhookHandler{hm: hm}
}

// Register mounts the handler's routes on r.
func (h *GatewayWebhookHandler) Register(r *mux.Router) {
	r.HandleFunc("/webhooks/gateway", h.handleWebhook).Methods(http.MethodPost)
}

func (h *GatewayWebhookHandler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	tenantID := r.Header.Get("X-Tenant-ID")
	if tenantID == "" {
		http.Error(w, "missing X-Tenant-ID", http.StatusBadRequest)
		return
	}
	vertical := r.Header.Get("X-Vertical-Mode")

	ctx := r.Context()
	tenant, err := h.hm.repos.Tenant().GetByID(ctx, tenantID)
	if err != nil {
		logger.Base().Warn("gateway webhook for unknown tenant", zap.String("tenant_id", tenantID), zap.Error(err))
		http.Error(w, "unknown tenant", http.StatusNotFound)
		return
	}

	var in transport.GatewayInbound
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	msg := transport.NormalizeGateway(tenant.ID, in)
	msg.Vertical = vertical

	resp, err := h.hm.processInbound(ctx, *tenant, "gateway", msg)
	if err != nil {
		logger.Base().Error("gateway turn failed", zap.String("tenant_id", tenant.ID), zap.Error(err))
		http.Error(w, "processing failure", http.StatusInternalServerError)
		return
	}

	if err := h.hm.dispatcher.Send(ctx, "gateway", msg.ChannelIdentity, resp); err != nil {
		logger.Base().Error("failed to deliver gateway response", zap.Error(err))
	}
	w.WriteHeader(http.StatusOK)
}
