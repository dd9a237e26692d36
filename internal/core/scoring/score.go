// Package scoring computes lead_score and its derived Temperature bucket
// (§4.5). Recomputed on every inbound turn and on worker-driven state
// changes, never stored as a cumulative counter independent of the Lead's
// own fields.
package scoring

import (
	"time"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
)

func capped(value, cap int) int {
	if value > cap {
		return cap
	}
	return value
}

func engagement(l domain.Lead) int {
	score := capped(l.QRScanCount*3, 15)
	score += capped(l.CatalogViews*2, 10)
	score += capped(l.MessagesCount, 10)
	if l.VoiceMessagesCount > 0 {
		score += 5
	}
	return capped(score, 40)
}

func qualification(l domain.Lead) int {
	score := 0
	if l.HasValidatedPhone() {
		score += 10
	}
	if l.HasSlot(domain.SlotBudget) {
		score += 10
	}
	if l.HasSlot(domain.SlotTransactionType) {
		score += 5
	}
	if l.HasSlot(domain.SlotPropertyType) {
		score += 5
	}
	if l.HasSlot(domain.SlotLocation) {
		score += 5
	}
	if l.HasSlot(domain.SlotPaymentMethod) {
		score += 5
	}
	return capped(score, 40)
}

func recency(lastInteraction time.Time, now time.Time) int {
	if lastInteraction.IsZero() {
		return 0
	}
	elapsed := now.Sub(lastInteraction)
	switch {
	case elapsed < time.Hour:
		return 20
	case elapsed < 6*time.Hour:
		return 15
	case elapsed < 24*time.Hour:
		return 10
	case elapsed < 72*time.Hour:
		return 5
	default:
		return 0
	}
}

// Score computes lead_score as of now, the clock passed explicitly so
// recency is reproducible in tests.
func Score(l domain.Lead, now time.Time) int {
	return engagement(l) + qualification(l) + recency(l.LastInteraction, now)
}

// TemperatureFor derives the Temperature bucket from a score: 0-24 cold,
// 25-49 warm, 50-69 hot, 70-100 burning.
func TemperatureFor(score int) domain.Temperature {
	switch {
	case score >= 70:
		return domain.TemperatureBurning
	case score >= 50:
		return domain.TemperatureHot
	case score >= 25:
		return domain.TemperatureWarm
	default:
		return domain.TemperatureCold
	}
}
