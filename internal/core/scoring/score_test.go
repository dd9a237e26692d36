package scoring

import (
	"testing"
	"time"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestScore_EngagementCaps(t *testing.T) {
	l := domain.Lead{QRScanCount: 100, CatalogViews: 100, MessagesCount: 100, VoiceMessagesCount: 1}
	assert.Equal(t, 40, engagement(l))
}

func TestScore_QualificationAllSlots(t *testing.T) {
	l := domain.Lead{
		Phone:       "+971501234567",
		FilledSlots: domain.StringSet{domain.SlotBudget, domain.SlotTransactionType, domain.SlotPropertyType, domain.SlotLocation, domain.SlotPaymentMethod},
	}
	assert.Equal(t, 40, qualification(l))
}

func TestScore_RecencyBuckets(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 20, recency(now.Add(-30*time.Minute), now))
	assert.Equal(t, 15, recency(now.Add(-3*time.Hour), now))
	assert.Equal(t, 10, recency(now.Add(-12*time.Hour), now))
	assert.Equal(t, 5, recency(now.Add(-48*time.Hour), now))
	assert.Equal(t, 0, recency(now.Add(-100*time.Hour), now))
}

func TestTemperatureFor_Buckets(t *testing.T) {
	assert.Equal(t, domain.TemperatureCold, TemperatureFor(10))
	assert.Equal(t, domain.TemperatureWarm, TemperatureFor(30))
	assert.Equal(t, domain.TemperatureHot, TemperatureFor(55))
	assert.Equal(t, domain.TemperatureBurning, TemperatureFor(90))
}
