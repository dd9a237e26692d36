package oracle

import (
	"context"
	"errors"
	"time"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/pkg/logger"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// backoffSchedule is the exact delay sequence pinned for the oracle call:
// an initial attempt followed by up to three retries delayed 1s, 2s, 4s,
// no jitter (fixed delays, not a jittered envelope like the teacher's
// voice-transcription retry).
var backoffSchedule = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

// ResilientClient wraps a Client with the full fault-tolerance stack
// spec.md §4.3 and §5 require: a rate limiter so the CQC stays within the
// oracle's shared quota, a circuit breaker so a wounded oracle stops
// being hammered, and exponential backoff retry bounded by a per-call
// timeout. Grounded on the resilience composition in
// internal/infra/client/agent.go of the Boddenberg pack entry, adapted to
// this spec's fixed (non-jittered) backoff schedule.
type ResilientClient struct {
	inner   Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// NewResilientClient builds the wrapper. ratePerSecond/burst size the
// limiter to the oracle's shared quota (§5); callers typically pick
// values comfortably under the vendor's documented rate.
func NewResilientClient(inner Client, ratePerSecond float64, burst int) *ResilientClient {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ai_oracle",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
	})
	return &ResilientClient{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		breaker: breaker,
	}
}

// Extract runs the wrapped call through the rate limiter, circuit
// breaker, and retry schedule. On total failure it returns the last
// transient error untouched; callers (the state machine) are expected to
// degrade to a button prompt rather than crash the turn (§4.3).
func (c *ResilientClient) Extract(ctx context.Context, req ExtractRequest) (*ExtractResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &domain.ErrTransientDependency{Dependency: "ai_oracle", Err: err}
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.retryingExtract(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &domain.ErrTransientDependency{Dependency: "ai_oracle", Err: err}
		}
		return nil, err
	}
	return result.(*ExtractResponse), nil
}

func (c *ResilientClient) retryingExtract(ctx context.Context, req ExtractRequest) (*ExtractResponse, error) {
	var lastErr error
	for attempt := 0; attempt < len(backoffSchedule)+1; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := c.inner.Extract(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		var transient *domain.ErrTransientDependency
		if !errors.As(err, &transient) {
			return nil, err
		}

		if attempt < len(backoffSchedule) {
			logger.Base().Warn("ai oracle call failed, retrying",
				zap.Int("attempt", attempt+1), zap.Duration("backoff", backoffSchedule[attempt]), zap.Error(err))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoffSchedule[attempt]):
			}
		}
	}
	return nil, lastErr
}
