package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/core/fsm"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/transport"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/pkg/logger"
	"go.uber.org/zap"
)

// processInbound is the shared per-channel pipeline: resolve the tenant
// (already known to the caller), load or create the lead, dispatch the
// /start and /set_admin operator commands as ordinary inbound messages
// with a recognised command prefix, otherwise hand off to the state
// machine, and deliver any AdminAlert the turn produced.
func (hm *HandlerManager) processInbound(ctx context.Context, tenant domain.Tenant, channelType string, msg transport.Message) (transport.BotResponse, error) {
	msg.TenantID = tenant.ID

	lead, err := hm.loadOrCreateLead(ctx, tenant.ID, channelType, msg)
	if err != nil {
		return transport.BotResponse{}, err
	}

	if resp, handled := hm.handleOperatorCommand(ctx, tenant, lead, msg); handled {
		return resp, nil
	}

	knowledge, err := hm.repos.Knowledge().ActiveByLanguage(ctx, tenant.ID, lead.Language)
	if err != nil {
		logger.Base().Warn("knowledge lookup failed, continuing without snippets",
			zap.String("tenant_id", tenant.ID), zap.Error(err))
	}
	entries := make([]domain.KnowledgeEntry, 0, len(knowledge))
	for _, k := range knowledge {
		entries = append(entries, *k)
	}

	deps := &fsm.Deps{
		Repos:     hm.repos,
		Cache:     hm.cache,
		Oracle:    hm.oracleClient,
		Knowledge: entries,
		Tenant:    tenant,
	}

	resp, err := hm.machine.Process(ctx, deps, lead, msg)
	if err != nil {
		return transport.BotResponse{}, err
	}

	hm.deliverAdminAlert(ctx, tenant, resp)
	return resp, nil
}

func (hm *HandlerManager) loadOrCreateLead(ctx context.Context, tenantID, channelType string, msg transport.Message) (*domain.Lead, error) {
	lead, err := hm.repos.Lead().GetByChannelIdentity(ctx, tenantID, msg.ChannelIdentity)
	if err == nil {
		return lead, nil
	}

	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		return nil, err
	}

	lead = &domain.Lead{
		TenantID:        tenantID,
		ChannelType:     channelType,
		ChannelIdentity: msg.ChannelIdentity,
		Vertical:        msg.Vertical,
		Language:        domain.LanguageEN,
		State:           domain.StateStart,
		Status:          domain.StatusNew,
	}
	return hm.repos.Lead().Create(ctx, lead)
}

// handleOperatorCommand recognises a small set of command-prefixed
// messages handled outside the dialogue state machine: "/start" resets an
// existing lead back to the greeting, and "/set_admin" registers the
// sending channel as the tenant's Hot-Lead alert destination.
func (hm *HandlerManager) handleOperatorCommand(ctx context.Context, tenant domain.Tenant, lead *domain.Lead, msg transport.Message) (transport.BotResponse, bool) {
	command := strings.Fields(strings.TrimSpace(msg.Text))
	if len(command) == 0 {
		return transport.BotResponse{}, false
	}

	switch strings.ToLower(command[0]) {
	case "/start":
		lead.Reset()
		if err := hm.repos.Lead().Update(ctx, lead); err != nil {
			logger.Base().Error("failed to persist lead reset on /start", zap.String("lead_id", lead.ID), zap.Error(err))
		}
		return greetingResponse(), true

	case "/set_admin":
		if err := hm.repos.Tenant().UpdateAdminChannel(ctx, tenant.ID, lead.ChannelIdentity, lead.ChannelType); err != nil {
			logger.Base().Error("failed to set admin channel", zap.String("tenant_id", tenant.ID), zap.Error(err))
			return transport.BotResponse{Text: "Couldn't register this channel as the admin channel — please try again."}, true
		}
		return transport.BotResponse{Text: "This channel is now registered to receive hot-lead alerts."}, true

	default:
		return transport.BotResponse{}, false
	}
}

func greetingResponse() transport.BotResponse {
	return transport.BotResponse{
		Text: "Hi! Which language would you like to continue in?",
		Buttons: []transport.Button{
			{Label: "English", Payload: "lang_en"},
			{Label: "فارسی", Payload: "lang_fa"},
			{Label: "العربية", Payload: "lang_ar"},
			{Label: "Русский", Payload: "lang_ru"},
		},
	}
}

// deliverAdminAlert sends a turn's AdminAlert, if any, to the tenant's
// configured admin channel. A failure here is logged, not propagated —
// the user-facing reply still goes out (§4.10: alert delivery never
// blocks the conversing user's turn).
func (hm *HandlerManager) deliverAdminAlert(ctx context.Context, tenant domain.Tenant, resp transport.BotResponse) {
	if resp.AdminAlert == nil {
		return
	}
	channelType := tenant.AdminChannelType
	if channelType == "" {
		channelType = "telegram"
	}
	alertMsg := transport.BotResponse{Text: resp.AdminAlert.Text}
	if err := hm.dispatcher.Send(ctx, channelType, resp.AdminAlert.ChatID, alertMsg); err != nil {
		logger.Base().Error("failed to deliver admin alert",
			zap.String("tenant_id", tenant.ID), zap.Error(err))
	}
}
