package workers

import (
	"testing"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestGhostFollowUpText_VariesByLanguage(t *testing.T) {
	en := ghostFollowUpText(domain.LanguageEN)
	fa := ghostFollowUpText(domain.LanguageFA)
	ar := ghostFollowUpText(domain.LanguageAR)
	ru := ghostFollowUpText(domain.LanguageRU)

	assert.NotEmpty(t, en)
	assert.NotEqual(t, en, fa)
	assert.NotEqual(t, en, ar)
	assert.NotEqual(t, en, ru)
}

func TestGhostFollowUpText_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, ghostFollowUpText(domain.LanguageEN), ghostFollowUpText(domain.Language("xx")))
}
