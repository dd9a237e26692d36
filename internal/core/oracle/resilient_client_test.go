package oracle

import (
	"context"
	"errors"
	"testing"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingClient struct {
	calls int
	fail  int
	resp  *ExtractResponse
}

func (c *countingClient) Extract(ctx context.Context, req ExtractRequest) (*ExtractResponse, error) {
	c.calls++
	if c.calls <= c.fail {
		return nil, &domain.ErrTransientDependency{Dependency: "ai_oracle", Err: errors.New("boom")}
	}
	return c.resp, nil
}

func TestResilientClient_SucceedsAfterTransientFailures(t *testing.T) {
	inner := &countingClient{fail: 2, resp: &ExtractResponse{Language: "en"}}
	rc := NewResilientClient(inner, 100, 10)

	resp, err := rc.Extract(context.Background(), ExtractRequest{Utterance: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "en", resp.Language)
	assert.Equal(t, 3, inner.calls)
}

func TestResilientClient_GivesUpAfterExhaustingRetries(t *testing.T) {
	inner := &countingClient{fail: 99}
	rc := NewResilientClient(inner, 100, 10)

	_, err := rc.Extract(context.Background(), ExtractRequest{Utterance: "hi"})
	require.Error(t, err)
	var transient *domain.ErrTransientDependency
	assert.True(t, errors.As(err, &transient))
	assert.Equal(t, 4, inner.calls)
}

func TestResilientClient_DoesNotRetryFatalErrors(t *testing.T) {
	inner := &fatalClient{}
	rc := NewResilientClient(inner, 100, 10)

	_, err := rc.Extract(context.Background(), ExtractRequest{Utterance: "hi"})
	require.Error(t, err)
	var fatal *domain.ErrFatalDependency
	assert.True(t, errors.As(err, &fatal))
	assert.Equal(t, 1, inner.calls)
}

type fatalClient struct{ calls int }

func (c *fatalClient) Extract(ctx context.Context, req ExtractRequest) (*ExtractResponse, error) {
	c.calls++
	return nil, &domain.ErrFatalDependency{Dependency: "ai_oracle", Err: errors.New("schema invalid")}
}
