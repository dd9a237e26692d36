// Package workers implements the CQC's three background tasks (§4.7,
// §4.8, and a supplementary daily digest): long-running processes that
// wake on a schedule or on an event and drive proactive outbound
// messages outside the inbound-webhook request path.
package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/metrics"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/repository"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/transport"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/pkg/logger"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ghostInactivityThreshold is the §4.7 cutoff: a lead untouched for this
// long is considered gone quiet.
const ghostInactivityThreshold = 2 * time.Hour

// ghostFanoutLimit bounds how many leads one tenant's tick sends to
// concurrently, so a large backlog on one tenant doesn't starve the
// others sharing the process.
const ghostFanoutLimit = 8

// ghostWorkerName labels this worker's metrics and logs.
const ghostWorkerName = "ghost_protocol"

// GhostProtocolWorker re-engages leads that have gone quiet (§4.7).
type GhostProtocolWorker struct {
	repos      repository.RepositoryManager
	dispatcher *transport.Dispatcher
}

// NewGhostProtocolWorker builds a worker ready to be registered on a cron.
func NewGhostProtocolWorker(repos repository.RepositoryManager, dispatcher *transport.Dispatcher) *GhostProtocolWorker {
	return &GhostProtocolWorker{repos: repos, dispatcher: dispatcher}
}

// Register schedules the worker to run every 30 minutes, per tenant, on c.
func (w *GhostProtocolWorker) Register(c *cron.Cron) error {
	_, err := c.AddFunc("@every 30m", func() {
		w.RunAllTenants(context.Background())
	})
	return err
}

// RunAllTenants fans a single tick out across every tenant with leads. A
// failure resolving tenants or running one tenant's pass is logged and
// does not stop the others (§4.7: "errors on a single lead must not abort
// the batch" generalises to errors on a single tenant here).
func (w *GhostProtocolWorker) RunAllTenants(ctx context.Context) {
	tenantIDs, err := w.repos.Lead().ListTenantIDs(ctx)
	if err != nil {
		logger.Base().Error("ghost protocol: failed to list tenants", zap.Error(err))
		return
	}
	for _, tenantID := range tenantIDs {
		if err := w.RunTenant(ctx, tenantID); err != nil {
			logger.Base().Error("ghost protocol tenant pass failed", zap.String("tenant_id", tenantID), zap.Error(err))
			metrics.WorkerErrors.WithLabelValues(ghostWorkerName, tenantID).Inc()
		}
	}
}

// RunTenant selects and re-engages one tenant's ghost candidates.
func (w *GhostProtocolWorker) RunTenant(ctx context.Context, tenantID string) error {
	cutoff := time.Now().Add(-ghostInactivityThreshold)
	candidates, err := w.repos.Lead().GhostCandidates(ctx, tenantID, cutoff)
	if err != nil {
		return fmt.Errorf("ghost candidates: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ghostFanoutLimit)
	for _, lead := range candidates {
		lead := lead
		g.Go(func() error {
			if err := w.reengage(gctx, lead); err != nil {
				logger.Base().Warn("ghost protocol: failed to re-engage lead",
					zap.String("lead_id", lead.ID), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()

	metrics.WorkerRuns.WithLabelValues(ghostWorkerName, tenantID).Inc()
	return nil
}

func (w *GhostProtocolWorker) reengage(ctx context.Context, lead *domain.Lead) error {
	resp := transport.BotResponse{Text: ghostFollowUpText(lead.Language)}
	if err := w.dispatcher.Send(ctx, lead.ChannelType, lead.ChannelIdentity, resp); err != nil {
		return err
	}

	lead.GhostReminderSent = true
	lead.FomoMessagesSent++
	lead.LastInteraction = time.Now()
	return w.repos.Lead().Update(ctx, lead)
}

func ghostFollowUpText(lang domain.Language) string {
	switch lang {
	case domain.LanguageFA:
		return "همکار ما ملکی پیدا کرد که می‌خواستید — کی می‌توانیم صحبت کنیم؟"
	case domain.LanguageAR:
		return "زميلنا وجد العقار الذي كنت تبحث عنه — متى يمكننا التحدث؟"
	case domain.LanguageRU:
		return "Коллега нашёл объект, который вы искали — когда удобно поговорить?"
	default:
		return "A colleague found the property you wanted — when can you talk?"
	}
}
