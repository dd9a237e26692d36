package workers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/core/scarcity"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/documents"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/metrics"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/repository"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/transport"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// budgetFlexFactor is the §4.8 10% upward flex applied to budget_max when
// matching a newly inserted property against existing qualified/hot leads.
const budgetFlexFactor = 1.10

// matchFanoutLimit bounds concurrent sends for a single property's match
// run.
const matchFanoutLimit = 8

const matchWorkerName = "match_notifier"

// MatchNotifier re-targets existing qualified/hot leads when a new
// property is inserted (§4.8).
type MatchNotifier struct {
	repos      repository.RepositoryManager
	dispatcher *transport.Dispatcher
	documents  *documents.Service // nil when no document service is configured
}

// NewMatchNotifier builds a notifier. documents may be nil.
func NewMatchNotifier(repos repository.RepositoryManager, dispatcher *transport.Dispatcher, docs *documents.Service) *MatchNotifier {
	return &MatchNotifier{repos: repos, dispatcher: dispatcher, documents: docs}
}

// OnPropertyCreated runs the match pass for a single newly inserted
// property, the trigger §4.8 names ("invoked after a Property insert").
func (m *MatchNotifier) OnPropertyCreated(ctx context.Context, tenant domain.Tenant, property domain.Property) error {
	leads, err := m.repos.Lead().MatchCandidates(ctx, tenant.ID)
	if err != nil {
		metrics.WorkerErrors.WithLabelValues(matchWorkerName, tenant.ID).Inc()
		return fmt.Errorf("match candidates: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(matchFanoutLimit)
	for _, lead := range leads {
		lead := lead
		if !matches(*lead, property) {
			continue
		}
		g.Go(func() error {
			if err := m.notify(gctx, tenant, lead, property); err != nil {
				logger.Base().Warn("match notifier: failed to notify lead",
					zap.String("lead_id", lead.ID), zap.String("property_id", property.ID), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()

	metrics.WorkerRuns.WithLabelValues(matchWorkerName, tenant.ID).Inc()
	return nil
}

// matches implements §4.8's predicate exactly: budget flex, bedroom
// range, location substring, and property type equality when specified.
// It intentionally does not reuse domain.Property.MatchesLead, which
// applies a hard budget_max ceiling rather than the notifier's 10% flex.
func matches(lead domain.Lead, p domain.Property) bool {
	if lead.BudgetMin > 0 && p.Price < lead.BudgetMin {
		return false
	}
	if lead.BudgetMax > 0 && float64(p.Price) > float64(lead.BudgetMax)*budgetFlexFactor {
		return false
	}
	if lead.BedroomsMin > 0 && lead.BedroomsMax > 0 {
		if p.Bedrooms < lead.BedroomsMin || p.Bedrooms > lead.BedroomsMax {
			return false
		}
	}
	if len(lead.PreferredLocations) > 0 {
		matched := false
		for _, loc := range lead.PreferredLocations {
			if loc != "" && strings.Contains(strings.ToLower(p.Location), strings.ToLower(loc)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	if lead.PropertyType != "" && p.PropertyType != lead.PropertyType {
		return false
	}
	return true
}

func (m *MatchNotifier) notify(ctx context.Context, tenant domain.Tenant, lead *domain.Lead, property domain.Property) error {
	already, err := m.repos.Notification().AlreadyNotified(ctx, tenant.ID, lead.ID, property.ID)
	if err != nil {
		return err
	}
	if already {
		return nil
	}

	annotation := scarcity.Annotate(property, time.Now())
	text := fmt.Sprintf("New match for you: %s — %s\n%s\n%s",
		property.Title, formatPrice(property.Price), annotation.ScarcityLine, annotation.SocialProofLine)
	if annotation.TimePressureLine != "" {
		text += "\n" + annotation.TimePressureLine
	}

	resp := transport.BotResponse{Text: text}
	if m.documents != nil {
		ref, err := m.documents.GenerateROIReport(ctx, tenant, *lead, property)
		if err != nil {
			logger.Base().Warn("match notifier: roi report unavailable, sending without attachment",
				zap.String("lead_id", lead.ID), zap.Error(err))
		} else if ref != "" {
			resp.DocumentRef = ref
		}
	}

	if err := m.dispatcher.Send(ctx, lead.ChannelType, lead.ChannelIdentity, resp); err != nil {
		return err
	}

	scarcity.ApplyFomoIncrement(lead)
	if err := m.repos.Lead().Update(ctx, lead); err != nil {
		return err
	}

	return m.repos.Notification().Record(ctx, &domain.PropertyNotification{
		TenantID:   tenant.ID,
		LeadID:     lead.ID,
		PropertyID: property.ID,
	})
}

func formatPrice(v int64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("AED %.1fM", float64(v)/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("AED %dk", v/1_000)
	default:
		return fmt.Sprintf("AED %d", v)
	}
}
