package handler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadKeywords_NoFixtureConfiguredReturnsFallback(t *testing.T) {
	t.Setenv("KEYWORDS_FIXTURE_PATH", "")
	assert.Equal(t, fallbackKeywords, loadKeywords())
}

func TestLoadKeywords_ValidFixtureOverridesFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keywords.yaml")
	contents := "keywords:\n  listing: realty\n  booth: expo\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	t.Setenv("KEYWORDS_FIXTURE_PATH", path)

	got := loadKeywords()
	assert.Equal(t, map[string]string{"listing": "realty", "booth": "expo"}, got)
}

func TestLoadKeywords_MissingFileFallsBack(t *testing.T) {
	t.Setenv("KEYWORDS_FIXTURE_PATH", "/no/such/file.yaml")
	assert.Equal(t, fallbackKeywords, loadKeywords())
}

func TestLoadKeywords_MalformedFixtureFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keywords.yaml")
	if err := os.WriteFile(path, []byte("not: [valid: yaml"), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	t.Setenv("KEYWORDS_FIXTURE_PATH", path)

	assert.Equal(t, fallbackKeywords, loadKeywords())
}
