package fsm

import (
	"context"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/transport"
)

// handleStart greets an unknown or freshly-reset user and waits for a
// language pick (§4.1 START row).
func handleStart(ctx context.Context, deps *Deps, lead *domain.Lead, msg transport.Message) (transport.BotResponse, error) {
	if msg.Button == "" || !isLanguageButton(msg.Button) {
		return promptGreeting(), nil
	}
	lead.Language = languageFromButton(msg.Button)
	lead.State = domain.StateLanguageSelected
	return promptGoal(lead.Language), nil
}

func isLanguageButton(payload string) bool {
	switch payload {
	case "lang_en", "lang_fa", "lang_ar", "lang_ru":
		return true
	default:
		return false
	}
}

func languageFromButton(payload string) domain.Language {
	switch payload {
	case "lang_fa":
		return domain.LanguageFA
	case "lang_ar":
		return domain.LanguageAR
	case "lang_ru":
		return domain.LanguageRU
	default:
		return domain.LanguageEN
	}
}
