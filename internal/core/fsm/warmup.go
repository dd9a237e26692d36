package fsm

import (
	"context"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/transport"
)

// handleWarmup is a defensive fallback: in normal operation
// handleLanguageSelected transitions straight past WARMUP into
// CAPTURE_CONTACT, but a lead persisted mid-turn before that transition
// lands here on retry and simply re-asks for contact (§4.1 WARMUP row).
func handleWarmup(ctx context.Context, deps *Deps, lead *domain.Lead, msg transport.Message) (transport.BotResponse, error) {
	lead.State = domain.StateCaptureContact
	return promptContact(lead.Language), nil
}
