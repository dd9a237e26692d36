// Package oracle is the client for the AI Oracle external collaborator
// (§4.3): a single operation that turns a free-text utterance into a
// language hint, filled slots, and an optional free-text answer.
package oracle

import (
	"context"
)

// ExtractRequest is everything the oracle needs to resolve one utterance.
type ExtractRequest struct {
	Utterance         string            `json:"utterance"`
	LanguageHint      string            `json:"lang_hint,omitempty"`
	SlotSchema        []string          `json:"slot_schema"`
	KnowledgeSnippets []string          `json:"knowledge_snippets,omitempty"`
	TenantContext     map[string]string `json:"tenant_context,omitempty"`
}

// ExtractResponse is the schema-enforced result. Any field the oracle
// returns that doesn't parse against this schema is dropped by the
// client, never propagated as a partial/garbled value (§4.3).
type ExtractResponse struct {
	Language       string            `json:"lang"`
	SlotsFilled    map[string]string `json:"slots_filled"`
	FreeTextAnswer string            `json:"free_text_answer,omitempty"`
	Confidence     float64           `json:"confidence"`
}

// Client is the abstract AI Oracle operation the state machine depends
// on. Production code uses ResilientClient wrapping HTTPClient; tests use
// a fake.
type Client interface {
	Extract(ctx context.Context, req ExtractRequest) (*ExtractResponse, error)
}
