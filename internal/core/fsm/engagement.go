package fsm

import (
	"context"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/core/oracle"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/transport"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/pkg/logger"
	"go.uber.org/zap"
)

// maxInventoryContext bounds how many of the lead's matched properties are
// fed to the oracle as tenant context — enough to ground answers about
// "the apartment you showed me" without inflating every turn's prompt.
const maxInventoryContext = 5

// handleEngagement is reached once a lead is qualified and contacted: free
// conversation flows through the AI Oracle with inventory context, with
// scheduling intent promoted to HANDOFF_SCHEDULE (§4.1 ENGAGEMENT row).
func handleEngagement(ctx context.Context, deps *Deps, lead *domain.Lead, msg transport.Message) (transport.BotResponse, error) {
	if msg.Button == "schedule_viewing" || hasSchedulingIntent(msg.Text) {
		lead.State = domain.StateHandoffSchedule
		return enterHandoffSchedule(ctx, deps, lead)
	}

	if deps.Oracle == nil {
		return transport.BotResponse{Text: "I'll pass that along to the team."}, nil
	}

	properties, err := deps.Repos.Property().FindAvailable(
		ctx, lead.TenantID, lead.PropertyCategory, lead.BudgetMin, lead.BudgetMax, lead.PropertyType, maxInventoryContext)
	if err != nil {
		return transport.BotResponse{}, err
	}

	extraction, err := deps.Oracle.Extract(ctx, oracle.ExtractRequest{
		Utterance:         msg.Text,
		LanguageHint:      msg.LocaleHint,
		KnowledgeSnippets: snippetTexts(deps.Knowledge, msg.Text, lead.Language),
		TenantContext:     inventoryContext(properties),
	})
	if err != nil {
		logger.Base().Warn("oracle extraction failed during free conversation",
			zap.String("lead_id", lead.ID), zap.Error(err))
		return transport.BotResponse{Text: "I'll pass that along to the team."}, nil
	}

	applyLanguageSwitch(lead, extraction.Language)

	if extraction.FreeTextAnswer != "" {
		return transport.BotResponse{Text: extraction.FreeTextAnswer}, nil
	}
	return transport.BotResponse{Text: "I'll pass that along to the team."}, nil
}

func inventoryContext(properties []*domain.Property) map[string]string {
	ctx := make(map[string]string, len(properties))
	for i, p := range properties {
		ctx[itoa(int64(i))] = p.Title
	}
	return ctx
}
