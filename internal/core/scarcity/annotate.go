// Package scarcity implements the scarcity/social-proof/time-pressure
// annotation appended to property cards in VALUE_PROPOSITION (§4.6). The
// numbers it quotes ("2 units left", "8 viewers today") change from day
// to day yet stay stable across repeated renders of the same card within
// a day — so they're derived from a PRNG seeded on
// (property id, calendar date) rather than process-global randomness.
package scarcity

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
)

// Annotation is the set of lines appended to a property card.
type Annotation struct {
	ScarcityLine     string
	SocialProofLine  string
	TimePressureLine string // empty unless the property is flagged urgent
}

// HotMarketMessage is emitted in place of per-property cards when a
// VALUE_PROPOSITION turn matched no inventory (§4.6).
const HotMarketMessage = "The market here is moving fast right now — let's widen the search a little."

func seededRNG(propertyID string, day time.Time) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(propertyID))
	_, _ = h.Write([]byte(day.Format("2006-01-02")))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

// Annotate computes the day-stable annotation for p as of now.
func Annotate(p domain.Property, now time.Time) Annotation {
	rng := seededRNG(p.ID, now)

	var lo, hi int
	switch {
	case p.Price > 5_000_000:
		lo, hi = 1, 2
	case p.Price > 2_000_000:
		lo, hi = 2, 4
	default:
		lo, hi = 3, 6
	}
	unitsLeft := lo + rng.Intn(hi-lo+1)

	var viewerLo, viewerHi int
	if p.IsFeatured {
		viewerLo, viewerHi = 5, 12
	} else {
		viewerLo, viewerHi = 2, 6
	}
	viewers := viewerLo + rng.Intn(viewerHi-viewerLo+1)

	a := Annotation{
		ScarcityLine:    fmt.Sprintf("Only %d units left at this price point.", unitsLeft),
		SocialProofLine: fmt.Sprintf("%d people viewed this property today.", viewers),
	}
	if p.IsUrgent {
		a.TimePressureLine = "This listing's promotional pricing ends soon."
	}
	return a
}

// ApplyFomoIncrement advances a lead's fomo_messages_sent and
// urgency_score counters after emitting one property annotation (§4.6).
// urgency_score is capped at 10.
func ApplyFomoIncrement(l *domain.Lead) {
	l.FomoMessagesSent++
	if l.UrgencyScore < 10 {
		l.UrgencyScore++
	}
}

// ApplyHotMarketIncrement advances urgency_score by 2 (capped at 10) when
// no properties matched and the hot-market fallback message was sent.
func ApplyHotMarketIncrement(l *domain.Lead) {
	l.UrgencyScore += 2
	if l.UrgencyScore > 10 {
		l.UrgencyScore = 10
	}
}
