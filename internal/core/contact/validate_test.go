package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Valid(t *testing.T) {
	got, ok := Normalize("+971 (50) 123-4567")
	assert.True(t, ok)
	assert.Equal(t, "+971501234567", got)
}

func TestNormalize_Idempotent(t *testing.T) {
	once, ok := Normalize("+971501234567")
	assert.True(t, ok)
	twice, ok := Normalize(once)
	assert.True(t, ok)
	assert.Equal(t, once, twice)
}

func TestNormalize_RejectsMonotonicRun(t *testing.T) {
	_, ok := Normalize("123456789")
	assert.False(t, ok)
	_, ok = Normalize("987654321")
	assert.False(t, ok)
}

func TestNormalize_RejectsLowVariety(t *testing.T) {
	_, ok := Normalize("1111111111")
	assert.False(t, ok)
}

func TestNormalize_RejectsBadLength(t *testing.T) {
	_, ok := Normalize("12345")
	assert.False(t, ok)
}

func TestParseFreeText_NameDashPhone(t *testing.T) {
	p := ParseFreeText("Ali Reza - +971501234567")
	assert.Equal(t, "Ali Reza", p.Name)
	assert.Equal(t, "+971501234567", p.Phone)
}

func TestParseFreeText_BarePhone(t *testing.T) {
	p := ParseFreeText("+971501234567")
	assert.Equal(t, "", p.Name)
	assert.Equal(t, "+971501234567", p.Phone)
}
