package budget

import (
	"testing"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestLabelParseLabel_RoundTrip(t *testing.T) {
	for _, b := range buyBands {
		label := Label(b)
		got, ok := ParseLabel(label, domain.TransactionBuy)
		assert.True(t, ok)
		assert.Equal(t, b, got)
	}
}

func TestParseFreeText_NumericSuffixes(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"2M", 4},
		{"300k", 2},
		{"100 thousand", 0},
		{"750000", 4},
	}
	for _, c := range cases {
		b, ok := ParseFreeText(c.text, domain.TransactionBuy)
		assert.True(t, ok, c.text)
		assert.Equal(t, c.want, b.Index, c.text)
	}
}

func TestParseFreeText_PersianWords(t *testing.T) {
	b, ok := ParseFreeText("دو میلیون", domain.TransactionBuy)
	assert.True(t, ok)
	assert.Equal(t, 4, b.Index)
}

func TestParseFreeText_Unparseable(t *testing.T) {
	_, ok := ParseFreeText("not a number at all", domain.TransactionBuy)
	assert.False(t, ok)
}

func TestBandsFor_RentVsBuy(t *testing.T) {
	rent := BandsFor(domain.TransactionRent)
	assert.Equal(t, int64(50_000), rent[1].Min)
	buy := BandsFor(domain.TransactionBuy)
	assert.Equal(t, int64(150_000), buy[1].Min)
}
