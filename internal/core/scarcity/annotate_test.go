package scarcity

import (
	"testing"
	"time"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAnnotate_DeterministicWithinDay(t *testing.T) {
	p := domain.Property{ID: "prop-1", Price: 3_000_000, IsFeatured: true}
	now := time.Date(2026, 7, 30, 9, 0, 0, 0, time.UTC)
	later := time.Date(2026, 7, 30, 21, 0, 0, 0, time.UTC)

	a1 := Annotate(p, now)
	a2 := Annotate(p, later)
	assert.Equal(t, a1, a2)
}

func TestAnnotate_DiffersAcrossDays(t *testing.T) {
	p := domain.Property{ID: "prop-1", Price: 3_000_000}
	day1 := Annotate(p, time.Date(2026, 7, 30, 9, 0, 0, 0, time.UTC))
	day2 := Annotate(p, time.Date(2026, 7, 31, 9, 0, 0, 0, time.UTC))
	// Not guaranteed to differ, but the seed inputs do: assert the
	// generator is actually date-keyed by checking the two underlying
	// RNGs would diverge.
	rng1 := seededRNG(p.ID, time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC))
	rng2 := seededRNG(p.ID, time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC))
	assert.NotEqual(t, rng1.Int63(), rng2.Int63())
	_ = day1
	_ = day2
}

func TestAnnotate_TimePressureOnlyWhenUrgent(t *testing.T) {
	p := domain.Property{ID: "prop-2", Price: 1_000_000, IsUrgent: true}
	a := Annotate(p, time.Now())
	assert.NotEmpty(t, a.TimePressureLine)

	p.IsUrgent = false
	a = Annotate(p, time.Now())
	assert.Empty(t, a.TimePressureLine)
}

func TestApplyFomoIncrement_CapsAtTen(t *testing.T) {
	l := &domain.Lead{UrgencyScore: 10}
	ApplyFomoIncrement(l)
	assert.Equal(t, 10, l.UrgencyScore)
	assert.Equal(t, 1, l.FomoMessagesSent)
}

func TestApplyHotMarketIncrement_Caps(t *testing.T) {
	l := &domain.Lead{UrgencyScore: 9}
	ApplyHotMarketIncrement(l)
	assert.Equal(t, 10, l.UrgencyScore)
}
