package fsm

import (
	"context"
	"strings"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/core/budget"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/core/knowledge"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/core/oracle"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/transport"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/pkg/logger"
	"go.uber.org/zap"
)

// handleSlotFilling implements §4.1's slot-filling loop: button answers
// fill the pending slot directly; free text or voice first tries the
// deterministic budget parser, then falls back to the AI Oracle, with FAQ
// tolerance and zombie-input protection along the way.
func handleSlotFilling(ctx context.Context, deps *Deps, lead *domain.Lead, msg transport.Message) (transport.BotResponse, error) {
	if (len(msg.MediaRefs) > 0 || msg.VoiceRef != "") && msg.Button == "" && msg.Text == "" {
		pending := rerenderPendingPrompt(lead)
		return promptZombieAck(lead.Language, pending), nil
	}

	if msg.Button != "" {
		return handleSlotButton(ctx, deps, lead, msg.Button)
	}

	return handleSlotFreeText(ctx, deps, lead, msg)
}

func handleSlotButton(ctx context.Context, deps *Deps, lead *domain.Lead, payload string) (transport.BotResponse, error) {
	switch lead.PendingSlot {
	case domain.SlotTransactionType:
		switch payload {
		case "tx_buy":
			lead.TransactionType = domain.TransactionBuy
		case "tx_rent":
			lead.TransactionType = domain.TransactionRent
		default:
			return promptTransactionType(lead.Language), nil
		}
		lead.FillSlot(domain.SlotTransactionType)
	case domain.SlotPropertyCategory:
		switch payload {
		case "category_residential":
			lead.PropertyCategory = domain.CategoryResidential
		case "category_commercial":
			lead.PropertyCategory = domain.CategoryCommercial
		default:
			return promptPropertyCategory(lead.Language), nil
		}
		lead.FillSlot(domain.SlotPropertyCategory)
	case domain.SlotBudget:
		b, ok := budget.ParseLabel(payload, lead.TransactionType)
		if !ok {
			return promptBudget(lead.Language, lead.TransactionType), nil
		}
		lead.BudgetMin, lead.BudgetMax = b.Min, b.Max
		lead.FillSlot(domain.SlotBudget)
	case domain.SlotPropertyType:
		propertyType := strings.TrimPrefix(payload, "prop_")
		if propertyType == payload {
			return promptPropertyType(lead.Language), nil
		}
		lead.PropertyType = propertyType
		lead.FillSlot(domain.SlotPropertyType)
	}

	return advanceSlotFilling(ctx, deps, lead)
}

// advanceSlotFilling asks for the next missing slot, or — the instant the
// last qualifying slot lands — continues in the same turn straight into
// VALUE_PROPOSITION's property matching (§4.1 scenario 1).
func advanceSlotFilling(ctx context.Context, deps *Deps, lead *domain.Lead) (transport.BotResponse, error) {
	resp := promptNextSlot(lead)
	if lead.State == domain.StateValueProposition {
		return enterValueProposition(ctx, deps, lead)
	}
	return resp, nil
}

// handleSlotFreeText tries the deterministic budget parser first, then
// the AI Oracle; an oracle FAQ answer is appended above a re-ask of the
// pending slot rather than replacing it (§4.1).
func handleSlotFreeText(ctx context.Context, deps *Deps, lead *domain.Lead, msg transport.Message) (transport.BotResponse, error) {
	if lead.PendingSlot == domain.SlotBudget {
		if b, ok := budget.ParseFreeText(msg.Text, lead.TransactionType); ok {
			lead.BudgetMin, lead.BudgetMax = b.Min, b.Max
			lead.FillSlot(domain.SlotBudget)
			return advanceSlotFilling(ctx, deps, lead)
		}
	}

	if deps.Oracle == nil {
		return rerenderPendingPrompt(lead), nil
	}

	extraction, err := deps.Oracle.Extract(ctx, oracle.ExtractRequest{
		Utterance:         msg.Text,
		LanguageHint:      msg.LocaleHint,
		SlotSchema:        []string{lead.PendingSlot},
		KnowledgeSnippets: snippetTexts(deps.Knowledge, msg.Text, lead.Language),
	})
	if err != nil {
		logger.Base().Warn("oracle extraction failed, degrading to button prompt",
			zap.String("lead_id", lead.ID), zap.Error(err))
		return rerenderPendingPrompt(lead), nil
	}

	applyLanguageSwitch(lead, extraction.Language)

	if value, ok := extraction.SlotsFilled[lead.PendingSlot]; ok && value != "" {
		if applySlotValue(lead, lead.PendingSlot, value) {
			return advanceSlotFilling(ctx, deps, lead)
		}
		return rerenderPendingPrompt(lead), nil
	}

	if extraction.FreeTextAnswer != "" {
		pending := rerenderPendingPrompt(lead)
		pending.Text = extraction.FreeTextAnswer + "\n\n" + pending.Text
		return pending, nil
	}

	return rerenderPendingPrompt(lead), nil
}

func applyLanguageSwitch(lead *domain.Lead, oracleLang string) {
	if oracleLang == "" {
		return
	}
	candidate := domain.Language(strings.ToUpper(oracleLang))
	switch candidate {
	case domain.LanguageEN, domain.LanguageFA, domain.LanguageAR, domain.LanguageRU:
		lead.Language = candidate
	}
}

// applySlotValue applies an oracle-extracted slot value to lead and
// reports whether it filled the slot. A budget value goes through
// budget.ParseFreeText so BudgetMin/BudgetMax carry the same Min/Max
// semantics as the button and deterministic free-text paths; an
// unparseable budget value is left unfilled rather than marked done.
func applySlotValue(lead *domain.Lead, slot, value string) bool {
	switch slot {
	case domain.SlotTransactionType:
		lead.TransactionType = domain.TransactionType(value)
	case domain.SlotPropertyCategory:
		lead.PropertyCategory = domain.PropertyCategory(value)
	case domain.SlotBudget:
		b, ok := budget.ParseFreeText(value, lead.TransactionType)
		if !ok {
			return false
		}
		lead.BudgetMin, lead.BudgetMax = b.Min, b.Max
	case domain.SlotPropertyType:
		lead.PropertyType = value
	case domain.SlotLocation:
		lead.PreferredLocations = lead.PreferredLocations.Add(value)
	case domain.SlotPaymentMethod:
		lead.PaymentMethod = value
	}
	lead.FillSlot(slot)
	return true
}

func rerenderPendingPrompt(lead *domain.Lead) transport.BotResponse {
	switch lead.PendingSlot {
	case domain.SlotTransactionType:
		return promptTransactionType(lead.Language)
	case domain.SlotPropertyCategory:
		return promptPropertyCategory(lead.Language)
	case domain.SlotBudget:
		return promptBudget(lead.Language, lead.TransactionType)
	case domain.SlotPropertyType:
		return promptPropertyType(lead.Language)
	default:
		return promptNextSlot(lead)
	}
}

func snippetTexts(entries []domain.KnowledgeEntry, query string, lang domain.Language) []string {
	matches := knowledge.Retrieve(entries, query, lang, knowledge.DefaultTopK)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Content)
	}
	return out
}
