package fsm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/core/knowledge"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/core/scarcity"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/transport"
)

// maxMatchedProperties bounds the VALUE_PROPOSITION property listing
// (§4.1 scenario 1: "up to 5 matching properties").
const maxMatchedProperties = 5

// enterValueProposition is invoked the instant all qualifying slots are
// filled, in the same turn that filled the last one — the properties
// appear in the same reply that acknowledged the final button tap
// (§4.1 scenario 1), rather than waiting for a further inbound message.
func enterValueProposition(ctx context.Context, deps *Deps, lead *domain.Lead) (transport.BotResponse, error) {
	lead.State = domain.StateValueProposition

	properties, err := deps.Repos.Property().FindAvailable(
		ctx, lead.TenantID, lead.PropertyCategory, lead.BudgetMin, lead.BudgetMax, lead.PropertyType, maxMatchedProperties)
	if err != nil {
		return transport.BotResponse{}, err
	}

	if len(properties) == 0 {
		scarcity.ApplyHotMarketIncrement(lead)
		return transport.BotResponse{Text: scarcity.HotMarketMessage}, nil
	}

	now := time.Now()
	var sb strings.Builder
	for i, p := range properties {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		annotation := scarcity.Annotate(*p, now)
		sb.WriteString(fmt.Sprintf("%s — %s\n%s\n%s", p.Title, formatAED(p.Price), annotation.ScarcityLine, annotation.SocialProofLine))
		if annotation.TimePressureLine != "" {
			sb.WriteString("\n" + annotation.TimePressureLine)
		}
		scarcity.ApplyFomoIncrement(lead)
	}

	if snippet := educationSnippetFor(deps.Knowledge, lead); snippet != "" {
		sb.WriteString("\n\n" + snippet)
	}

	return transport.BotResponse{
		Text: sb.String(),
		Buttons: []transport.Button{
			{Label: "Schedule a viewing", Payload: "schedule_viewing"},
		},
	}, nil
}

func educationSnippetFor(entries []domain.KnowledgeEntry, lead *domain.Lead) string {
	matches := knowledge.EducationSnippet(entries, lead.Goal, lead.Language)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Content
}

// handleValueProposition reacts to a further inbound message while the
// lead is still parked in VALUE_PROPOSITION: a scheduling intent moves to
// HANDOFF_SCHEDULE, anything else moves into free-form ENGAGEMENT (§4.1).
func handleValueProposition(ctx context.Context, deps *Deps, lead *domain.Lead, msg transport.Message) (transport.BotResponse, error) {
	if msg.Button == "schedule_viewing" || hasSchedulingIntent(msg.Text) {
		lead.State = domain.StateHandoffSchedule
		return enterHandoffSchedule(ctx, deps, lead)
	}

	lead.State = domain.StateEngagement
	return handleEngagement(ctx, deps, lead, msg)
}

func hasSchedulingIntent(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range []string{"schedule", "book", "viewing", "visit", "see it"} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
