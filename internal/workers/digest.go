package workers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/metrics"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/repository"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/transport"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/pkg/logger"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const digestWorkerName = "daily_digest"

// DailyDigestWorker summarises each tenant's qualified and hot leads once a day
// into a single admin-channel message. This supplements spec.md's
// literal §4 worker list — it is additive, not required by any invariant
// there, and reuses the same AdminAlert path as the Hot-Lead alert.
type DailyDigestWorker struct {
	repos      repository.RepositoryManager
	dispatcher *transport.Dispatcher

	mu       sync.Mutex
	lastRun  map[string]time.Time // tenant_id -> last digest boundary
}

// NewDailyDigestWorker builds a digest worker.
func NewDailyDigestWorker(repos repository.RepositoryManager, dispatcher *transport.Dispatcher) *DailyDigestWorker {
	return &DailyDigestWorker{
		repos:      repos,
		dispatcher: dispatcher,
		lastRun:    make(map[string]time.Time),
	}
}

// Register schedules the worker for 08:00 daily on c.
func (w *DailyDigestWorker) Register(c *cron.Cron) error {
	_, err := c.AddFunc("0 8 * * *", func() {
		w.RunAllTenants(context.Background())
	})
	return err
}

// RunAllTenants runs one digest pass per tenant.
func (w *DailyDigestWorker) RunAllTenants(ctx context.Context) {
	tenants, err := w.repos.Tenant().GetAll(ctx)
	if err != nil {
		logger.Base().Error("daily digest: failed to list tenants", zap.Error(err))
		return
	}
	for _, tenant := range tenants {
		if err := w.RunTenant(ctx, *tenant); err != nil {
			logger.Base().Error("daily digest tenant pass failed", zap.String("tenant_id", tenant.ID), zap.Error(err))
			metrics.WorkerErrors.WithLabelValues(digestWorkerName, tenant.ID).Inc()
		}
	}
}

// RunTenant summarises tenant's qualified/hot leads updated since the previous run (or
// the last 24 hours, the first time it runs for that tenant) and sends
// the digest to its admin channel, if configured.
func (w *DailyDigestWorker) RunTenant(ctx context.Context, tenant domain.Tenant) error {
	since := w.boundaryFor(tenant.ID)

	leads, err := w.repos.Lead().MatchCandidates(ctx, tenant.ID)
	if err != nil {
		return fmt.Errorf("candidates: %w", err)
	}

	var fresh []*domain.Lead
	for _, l := range leads {
		if l.UpdatedAt.After(since) {
			fresh = append(fresh, l)
		}
	}

	w.recordBoundary(tenant.ID, time.Now())

	if len(fresh) == 0 || tenant.AdminChannel == "" {
		metrics.WorkerRuns.WithLabelValues(digestWorkerName, tenant.ID).Inc()
		return nil
	}

	channelType := tenant.AdminChannelType
	if channelType == "" {
		channelType = "telegram"
	}
	if err := w.dispatcher.Send(ctx, channelType, tenant.AdminChannel, transport.BotResponse{Text: digestText(fresh)}); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}

	metrics.WorkerRuns.WithLabelValues(digestWorkerName, tenant.ID).Inc()
	return nil
}

func (w *DailyDigestWorker) boundaryFor(tenantID string) time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.lastRun[tenantID]; ok {
		return t
	}
	return time.Now().Add(-24 * time.Hour)
}

func (w *DailyDigestWorker) recordBoundary(tenantID string, t time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastRun[tenantID] = t
}

func digestText(leads []*domain.Lead) string {
	var hot, qualified int
	for _, l := range leads {
		switch l.Status {
		case domain.StatusHot:
			hot++
		case domain.StatusQualified:
			qualified++
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Daily digest: %d hot, %d qualified lead(s) since yesterday.\n", hot, qualified)
	for _, l := range leads {
		fmt.Fprintf(&b, "- %s (%s) — %s, score %d\n", l.Name, l.Phone, l.Status, l.LeadScore)
	}
	return b.String()
}
