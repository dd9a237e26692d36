package fsm

import (
	"context"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/core/knowledge"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/transport"
)

// handleHardGate requests a phone when one is needed for artifact delivery
// (a ROI report, a schedule confirmation) but was never captured — e.g. a
// lead that reached VALUE_PROPOSITION through a channel where contact
// capture was skipped. Re-asking attaches a trust snippet rather than a
// bare request (§4.1 HARD_GATE row).
func handleHardGate(ctx context.Context, deps *Deps, lead *domain.Lead, msg transport.Message) (transport.BotResponse, error) {
	name, phone, ok := extractContact(msg)
	if !ok {
		resp := promptHardGate(lead.Language)
		if snippet := trustSnippetFor(deps.Knowledge, lead.Language); snippet != "" {
			resp.Text = resp.Text + "\n\n" + snippet
		}
		return resp, nil
	}

	wasUnset := lead.Phone == ""
	lead.Phone = phone
	if name != "" {
		lead.Name = name
	}
	lead.FillSlot(domain.SlotPhone)

	lead.State = domain.StateEngagement
	resp, err := handleEngagement(ctx, deps, lead, msg)
	if err != nil {
		return transport.BotResponse{}, err
	}
	if wasUnset && deps.Tenant.AdminChannel != "" {
		resp.AdminAlert = &transport.AdminAlert{ChatID: deps.Tenant.AdminChannel, Text: hotLeadAlertText(lead)}
	}
	return resp, nil
}

func trustSnippetFor(entries []domain.KnowledgeEntry, lang domain.Language) string {
	matches := knowledge.TrustSnippet(entries, "escrow safety", lang)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Content
}
