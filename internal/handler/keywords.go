package handler

import (
	"os"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/pkg/logger"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// fallbackKeywords supplements the "start_<vertical>" deep-link grammar
// with the bare substring triggers §4.2 names as examples; used when no
// KEYWORDS_FIXTURE_PATH is configured.
var fallbackKeywords = map[string]string{
	"property": "realty",
	"event":    "expo",
	"support":  "support",
}

// keywordFixture is the YAML shape of a deep-link keyword table: a flat
// map of bare substring keyword to the vertical it routes to, suitable
// for local dev/test fixtures that don't need a real tenant deployment.
type keywordFixture struct {
	Keywords map[string]string `yaml:"keywords"`
}

// loadKeywords reads the vertical keyword table from KEYWORDS_FIXTURE_PATH
// if set, falling back to fallbackKeywords otherwise — the router still
// works with zero configuration, the fixture only lets local dev
// customise it without a code change.
func loadKeywords() map[string]string {
	path := os.Getenv("KEYWORDS_FIXTURE_PATH")
	if path == "" {
		return fallbackKeywords
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Base().Warn("keywords fixture unreadable, using defaults", zap.String("path", path), zap.Error(err))
		return fallbackKeywords
	}

	var fixture keywordFixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		logger.Base().Warn("keywords fixture malformed, using defaults", zap.String("path", path), zap.Error(err))
		return fallbackKeywords
	}
	if len(fixture.Keywords) == 0 {
		return fallbackKeywords
	}
	return fixture.Keywords
}
