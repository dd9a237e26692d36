package workers

import (
	"testing"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMatches_BudgetFlex(t *testing.T) {
	lead := domain.Lead{BudgetMin: 500_000, BudgetMax: 1_000_000}

	assert.True(t, matches(lead, domain.Property{Price: 1_050_000}), "10% flex should admit a property just over budget_max")
	assert.False(t, matches(lead, domain.Property{Price: 1_150_000}), "a property beyond the 10% flex must be rejected")
	assert.False(t, matches(lead, domain.Property{Price: 400_000}), "a property below budget_min must be rejected")
}

func TestMatches_BedroomRangeRequiresBoth(t *testing.T) {
	lead := domain.Lead{BedroomsMin: 2, BedroomsMax: 3}
	assert.True(t, matches(lead, domain.Property{Bedrooms: 2}))
	assert.False(t, matches(lead, domain.Property{Bedrooms: 1}))
	assert.False(t, matches(lead, domain.Property{Bedrooms: 4}))

	// only one bound set: bedroom filter does not apply
	onlyMin := domain.Lead{BedroomsMin: 2}
	assert.True(t, matches(onlyMin, domain.Property{Bedrooms: 1}))
}

func TestMatches_PreferredLocationsCaseInsensitiveSubstring(t *testing.T) {
	lead := domain.Lead{PreferredLocations: []string{"Downtown", "Marina"}}
	assert.True(t, matches(lead, domain.Property{Location: "JBR Marina Walk"}))
	assert.False(t, matches(lead, domain.Property{Location: "Business Bay"}))
}

func TestMatches_PropertyTypeEquality(t *testing.T) {
	lead := domain.Lead{PropertyType: "apartment"}
	assert.True(t, matches(lead, domain.Property{PropertyType: "apartment"}))
	assert.False(t, matches(lead, domain.Property{PropertyType: "villa"}))
}

func TestMatches_NoCriteriaSetMatchesEverything(t *testing.T) {
	assert.True(t, matches(domain.Lead{}, domain.Property{Price: 50_000_000}))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "AED 1.5M", formatPrice(1_500_000))
	assert.Equal(t, "AED 750k", formatPrice(750_000))
	assert.Equal(t, "AED 500", formatPrice(500))
}
