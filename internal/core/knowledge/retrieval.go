// Package knowledge implements stateless knowledge retrieval (§4.4):
// scoring a tenant's knowledge base against a free-text query and a
// language, with two named specialisations used by the state machine.
package knowledge

import (
	"sort"
	"strings"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
)

// DefaultTopK is used when a caller doesn't specify one.
const DefaultTopK = 3

var trustKeywords = []string{"escrow", "safety", "secure", "trust", "legal", "rera"}
var educationKeywords = []string{"roi", "golden visa", "investment", "yield", "return"}

// Retrieve scores every active knowledge entry in lang against query and
// returns up to topK entries with score > 0, ordered by score then
// priority, both descending (§4.4).
func Retrieve(entries []domain.KnowledgeEntry, query string, lang domain.Language, topK int) []domain.KnowledgeEntry {
	if topK <= 0 {
		topK = DefaultTopK
	}
	q := strings.ToLower(query)

	type scored struct {
		entry domain.KnowledgeEntry
		score int
	}
	var candidates []scored
	for _, e := range entries {
		if e.Language != lang || !e.IsActive {
			continue
		}
		s := score(e, q)
		if s > 0 {
			candidates = append(candidates, scored{entry: e, score: s})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].entry.Priority > candidates[j].entry.Priority
	})

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}
	out := make([]domain.KnowledgeEntry, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.entry)
	}
	return out
}

func score(e domain.KnowledgeEntry, lowerQuery string) int {
	total := 0
	for _, kw := range e.Keywords {
		if strings.Contains(lowerQuery, strings.ToLower(kw)) {
			total += 2
		}
	}
	for _, token := range strings.Fields(strings.ToLower(e.Title)) {
		if strings.Contains(lowerQuery, token) {
			total++
		}
	}
	return total
}

// TrustSnippet retrieves escrow/safety-flavoured knowledge for lang,
// keyed by the lead's raised concern rather than by goal.
func TrustSnippet(entries []domain.KnowledgeEntry, concern string, lang domain.Language) []domain.KnowledgeEntry {
	query := concern + " " + strings.Join(trustKeywords, " ")
	return Retrieve(entries, query, lang, 1)
}

// EducationSnippet retrieves ROI/Golden-Visa-flavoured knowledge for lang,
// keyed by the lead's stated goal (§4.5's goal slot feeds this directly).
func EducationSnippet(entries []domain.KnowledgeEntry, goal domain.Goal, lang domain.Language) []domain.KnowledgeEntry {
	query := string(goal) + " " + strings.Join(educationKeywords, " ")
	return Retrieve(entries, query, lang, 1)
}
