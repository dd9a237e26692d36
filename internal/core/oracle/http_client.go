package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
)

// HTTPClient is the unwrapped transport to the AI Oracle service. It does
// not retry, rate-limit, or trip a breaker — those concerns live one
// layer up in ResilientClient, so they can be tested and tuned in
// isolation (§4.3).
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewHTTPClient builds an HTTPClient bound to baseURL, defaulting the
// per-call timeout to the 10s ceiling spec.md §5 assigns the oracle out
// of a turn's overall 15s budget.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
	}
}

// Extract calls the oracle's /v1/extract endpoint once. Any field in the
// decoded response that doesn't satisfy ExtractResponse's schema is
// zero-valued by json.Unmarshal and treated by the caller as absent.
func (c *HTTPClient) Extract(ctx context.Context, req ExtractRequest) (*ExtractResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &domain.ErrFatalDependency{Dependency: "ai_oracle", Err: err}
	}

	url := fmt.Sprintf("%s/v1/extract", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &domain.ErrFatalDependency{Dependency: "ai_oracle", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &domain.ErrTransientDependency{Dependency: "ai_oracle", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return nil, &domain.ErrTransientDependency{Dependency: "ai_oracle", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &domain.ErrFatalDependency{Dependency: "ai_oracle", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var out ExtractResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &domain.ErrFatalDependency{Dependency: "ai_oracle", Err: err}
	}
	return &out, nil
}
