package fsm

import (
	"context"
	"fmt"
	"time"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/core/contact"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/transport"
)

// handleCaptureContact validates the inbound name/phone and, on success,
// fills the phone slot and emits a one-time Hot-Lead alert to the
// tenant's admin channel before moving into slot filling (§4.1
// CAPTURE_CONTACT row, §4.9).
func handleCaptureContact(ctx context.Context, deps *Deps, lead *domain.Lead, msg transport.Message) (transport.BotResponse, error) {
	name, phone, ok := extractContact(msg)
	if !ok {
		return transport.BotResponse{Text: text(lead.Language, "invalid_phone"), RequestContact: true}, nil
	}

	wasUnset := lead.Phone == ""
	lead.Phone = phone
	if name != "" {
		lead.Name = name
	}
	lead.FillSlot(domain.SlotPhone)

	resp := promptNextSlotOrTransitionToSlotFilling(lead)

	if wasUnset && deps.Tenant.AdminChannel != "" {
		resp.AdminAlert = &transport.AdminAlert{
			ChatID: deps.Tenant.AdminChannel,
			Text:   hotLeadAlertText(lead),
		}
	}
	return resp, nil
}

func promptNextSlotOrTransitionToSlotFilling(lead *domain.Lead) transport.BotResponse {
	lead.State = domain.StateSlotFilling
	return promptNextSlot(lead)
}

func extractContact(msg transport.Message) (name, phone string, ok bool) {
	if msg.ContactPhone != "" {
		normalized, valid := contact.Normalize(msg.ContactPhone)
		if !valid {
			return "", "", false
		}
		return msg.ContactName, normalized, true
	}

	parsed := contact.ParseFreeText(msg.Text)
	normalized, valid := contact.Normalize(parsed.Phone)
	if !valid {
		return "", "", false
	}
	return parsed.Name, normalized, true
}

func hotLeadAlertText(lead *domain.Lead) string {
	return fmt.Sprintf("New hot lead: %s, %s, goal=%s, at %s",
		lead.Name, lead.Phone, lead.Goal, time.Now().Format(time.RFC3339))
}
