package fsm

import (
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/core/budget"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/transport"
)

// copy holds the small, closed set of localised strings the state
// machine itself emits (as opposed to knowledge-base content, which is
// already per-tenant and per-language). Only EN is filled in completely;
// other languages fall back to EN for any key they don't override, which
// keeps this table from growing without bound as tenants add verticals.
var copyTable = map[domain.Language]map[string]string{
	domain.LanguageEN: {
		"greeting":          "Hi! Which language would you like to continue in?",
		"ask_goal":          "Great, let's find what fits. What brings you here today?",
		"ask_contact":       "Could you share your name and phone number so we can follow up?",
		"invalid_phone":     "That doesn't look like a valid phone number. Could you try again?",
		"ask_transaction":   "Are you looking to buy or rent?",
		"ask_category":      "Residential or commercial?",
		"ask_budget":        "What's your budget range?",
		"ask_property_type": "What type of property are you after?",
		"ask_bedrooms":      "How many bedrooms?",
		"ask_location":      "Any preferred area?",
		"zombie_ack":        "I'll look at that shortly — first, please pick one of the options above.",
		"hard_gate":         "To send you the full details, I'll need a phone number to reach you on.",
		"handoff_offer":     "Here are a few times our team is available for a viewing:",
		"completed":         "Thanks for chatting with us! Send /start any time to begin again.",
	},
	domain.LanguageFA: {
		"greeting": "سلام! میخواهید به چه زبانی ادامه دهیم؟",
		"ask_goal":  "خیلی خب، بیایید مناسب‌ترین گزینه را پیدا کنیم. هدف شما از این گفتگو چیست؟",
	},
	domain.LanguageAR: {
		"greeting": "مرحباً! بأي لغة تود المتابعة؟",
	},
	domain.LanguageRU: {
		"greeting": "Привет! На каком языке продолжим?",
	},
}

func text(lang domain.Language, key string) string {
	if table, ok := copyTable[lang]; ok {
		if v, ok := table[key]; ok {
			return v
		}
	}
	return copyTable[domain.LanguageEN][key]
}

func languageButtons() []transport.Button {
	return []transport.Button{
		{Label: "English", Payload: "lang_en"},
		{Label: "فارسی", Payload: "lang_fa"},
		{Label: "العربية", Payload: "lang_ar"},
		{Label: "Русский", Payload: "lang_ru"},
	}
}

func goalButtons(lang domain.Language) []transport.Button {
	return []transport.Button{
		{Label: "Investment", Payload: "goal_investment"},
		{Label: "Living", Payload: "goal_living"},
		{Label: "Residency", Payload: "goal_residency"},
		{Label: "Rent", Payload: "goal_rent"},
	}
}

func promptGreeting() transport.BotResponse {
	return transport.BotResponse{Text: text(domain.LanguageEN, "greeting"), Buttons: languageButtons()}
}

func promptGoal(lang domain.Language) transport.BotResponse {
	return transport.BotResponse{Text: text(lang, "ask_goal"), Buttons: goalButtons(lang)}
}

func promptContact(lang domain.Language) transport.BotResponse {
	return transport.BotResponse{Text: text(lang, "ask_contact"), RequestContact: true}
}

func promptTransactionType(lang domain.Language) transport.BotResponse {
	return transport.BotResponse{
		Text: text(lang, "ask_transaction"),
		Buttons: []transport.Button{
			{Label: "Buy", Payload: "tx_buy"},
			{Label: "Rent", Payload: "tx_rent"},
		},
	}
}

func promptPropertyCategory(lang domain.Language) transport.BotResponse {
	return transport.BotResponse{
		Text: text(lang, "ask_category"),
		Buttons: []transport.Button{
			{Label: "Residential", Payload: "category_residential"},
			{Label: "Commercial", Payload: "category_commercial"},
		},
	}
}

func promptBudget(lang domain.Language, txType domain.TransactionType) transport.BotResponse {
	buttons := make([]transport.Button, 0, 5)
	for _, b := range budget.BandsFor(txType) {
		buttons = append(buttons, transport.Button{Label: budgetLabelText(b), Payload: budget.Label(b)})
	}
	return transport.BotResponse{Text: text(lang, "ask_budget"), Buttons: buttons}
}

func budgetLabelText(b budget.Band) string {
	if b.Max == 0 {
		return formatAED(b.Min) + "+"
	}
	return formatAED(b.Min) + "-" + formatAED(b.Max)
}

func formatAED(v int64) string {
	switch {
	case v >= 1_000_000:
		return itoa(v/1_000_000) + "M"
	case v >= 1_000:
		return itoa(v/1_000) + "k"
	default:
		return itoa(v)
	}
}

func itoa(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func promptPropertyType(lang domain.Language) transport.BotResponse {
	return transport.BotResponse{
		Text: text(lang, "ask_property_type"),
		Buttons: []transport.Button{
			{Label: "Apartment", Payload: "prop_apartment"},
			{Label: "Villa", Payload: "prop_villa"},
			{Label: "Townhouse", Payload: "prop_townhouse"},
			{Label: "Penthouse", Payload: "prop_penthouse"},
		},
	}
}

func promptZombieAck(lang domain.Language, pending transport.BotResponse) transport.BotResponse {
	pending.Text = text(lang, "zombie_ack") + "\n\n" + pending.Text
	return pending
}

func promptHardGate(lang domain.Language) transport.BotResponse {
	return transport.BotResponse{Text: text(lang, "hard_gate"), RequestContact: true}
}

func promptCompleted(lang domain.Language) transport.BotResponse {
	return transport.BotResponse{Text: text(lang, "completed")}
}

// promptNextSlot asks for the single most-informative missing slot, in
// the fixed priority order the SLOT_FILLING row of §4.1 names: category,
// budget, property type. Once those three (plus the transaction_type
// already captured with the goal in LANGUAGE_SELECTED) are filled, the turn transitions to
// VALUE_PROPOSITION; location and payment_method are soft preferences the
// oracle may fill opportunistically but are never gated on here.
func promptNextSlot(lead *domain.Lead) transport.BotResponse {
	switch {
	case !lead.HasSlot(domain.SlotTransactionType):
		lead.PendingSlot = domain.SlotTransactionType
		return promptTransactionType(lead.Language)
	case !lead.HasSlot(domain.SlotPropertyCategory):
		lead.PendingSlot = domain.SlotPropertyCategory
		return promptPropertyCategory(lead.Language)
	case !lead.HasSlot(domain.SlotBudget):
		lead.PendingSlot = domain.SlotBudget
		return promptBudget(lead.Language, lead.TransactionType)
	case !lead.HasSlot(domain.SlotPropertyType):
		lead.PendingSlot = domain.SlotPropertyType
		return promptPropertyType(lead.Language)
	default:
		lead.PendingSlot = ""
		lead.State = domain.StateValueProposition
		return transport.BotResponse{}
	}
}
