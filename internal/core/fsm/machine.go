// Package fsm implements the CQC state machine (§4.1): a handler table
// keyed by domain.LeadState, with a single process entry point that
// enforces the budget/category flow-integrity invariant before dispatch.
package fsm

import (
	"context"
	"fmt"
	"time"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/cache"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/core/budget"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/core/lock"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/core/oracle"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/core/scoring"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/repository"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/transport"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/pkg/logger"
	"github.com/jinzhu/copier"
	"go.uber.org/zap"
)

// TurnBudget is the overall wall-clock ceiling for one inbound turn (§5);
// the AI Oracle's own client enforces its 10s slice of it.
const TurnBudget = 15 * time.Second

// Handler processes one inbound turn for a lead already in a given state.
// A handler records a transition by setting lead.State itself;
// Machine.Process persists whatever state the handler leaves set.
type Handler func(ctx context.Context, deps *Deps, lead *domain.Lead, msg transport.Message) (transport.BotResponse, error)

// Deps bundles every external collaborator a handler may need. Handlers
// receive it rather than reaching into globals, so they stay testable
// with fakes.
type Deps struct {
	Repos     repository.RepositoryManager
	Cache     *cache.Cache
	Oracle    oracle.Client
	Knowledge []domain.KnowledgeEntry
	Tenant    domain.Tenant
}

// Machine dispatches inbound turns to the handler table and serialises
// per-lead mutation through a lock.Manager (§5).
type Machine struct {
	handlers map[domain.LeadState]Handler
	locks    *lock.Manager
}

// New builds a Machine with the full §4.1 handler table wired in.
func New(locks *lock.Manager) *Machine {
	return &Machine{
		locks: locks,
		handlers: map[domain.LeadState]Handler{
			domain.StateStart:           handleStart,
			domain.StateLanguageSelected: handleLanguageSelected,
			domain.StateWarmup:          handleWarmup,
			domain.StateCaptureContact:  handleCaptureContact,
			domain.StateSlotFilling:     handleSlotFilling,
			domain.StateValueProposition: handleValueProposition,
			domain.StateHardGate:        handleHardGate,
			domain.StateEngagement:      handleEngagement,
			domain.StateHandoffSchedule: handleHandoffSchedule,
			domain.StateCompleted:       handleCompleted,
		},
	}
}

// Process is the single entry point §4.1 names: it acquires the per-lead
// lock, validates state integrity, dispatches to the handler for
// lead.State, recomputes scoring, and persists the lead before returning.
func (m *Machine) Process(ctx context.Context, deps *Deps, lead *domain.Lead, msg transport.Message) (transport.BotResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, TurnBudget)
	defer cancel()

	var resp transport.BotResponse
	err := m.locks.WithLock(ctx, lead.TenantID, lead.ChannelIdentity, func() error {
		if err := assertStateIntegrity(lead); err != nil {
			logger.Base().Error("state integrity violated, recovering", zap.String("lead_id", lead.ID), zap.Error(err))
			resp = recoverFromIntegrityViolation(lead, err)
			return persist(ctx, deps, lead)
		}

		handler, ok := m.handlers[lead.State]
		if !ok {
			return fmt.Errorf("no handler registered for state %q", lead.State)
		}

		snapshot := snapshotLead(lead)

		lead.MessagesCount++
		if msg.VoiceRef != "" {
			lead.VoiceMessagesCount++
		}
		lead.LastInteraction = time.Now()

		out, err := handler(ctx, deps, lead, msg)
		if err != nil {
			restoreLead(lead, snapshot)
			return err
		}
		resp = out

		now := time.Now()
		lead.LeadScore = scoring.Score(*lead, now)
		lead.Temperature = scoring.TemperatureFor(lead.LeadScore)

		return persist(ctx, deps, lead)
	})
	if err != nil {
		return transport.BotResponse{}, err
	}
	return resp, nil
}

func persist(ctx context.Context, deps *Deps, lead *domain.Lead) error {
	return deps.Repos.Lead().Update(ctx, lead)
}

// snapshotLead deep-copies lead before a handler runs, so a failed turn can
// be rolled back instead of persisting a partially-mutated record. A copy
// failure is logged and treated as "no snapshot" rather than aborting the
// turn — the handler still runs, it just loses rollback safety for this
// one turn.
func snapshotLead(lead *domain.Lead) *domain.Lead {
	var snapshot domain.Lead
	if err := copier.CopyWithOption(&snapshot, lead, copier.Option{DeepCopy: true}); err != nil {
		logger.Base().Warn("failed to snapshot lead before turn, rollback unavailable", zap.String("lead_id", lead.ID), zap.Error(err))
		return nil
	}
	return &snapshot
}

// restoreLead rolls lead back to snapshot in place, preserving the pointer
// identity callers already hold.
func restoreLead(lead *domain.Lead, snapshot *domain.Lead) {
	if snapshot == nil {
		return
	}
	*lead = *snapshot
}

// assertStateIntegrity is the §4.1 validator: asking for a budget without
// a known transaction_type, or a property type without a known
// property_category, is a defect, not a case to paper over with a
// default.
func assertStateIntegrity(lead *domain.Lead) error {
	if lead.PendingSlot == domain.SlotBudget && !lead.HasSlot(domain.SlotTransactionType) {
		return &domain.ErrIntegrity{LeadID: lead.ID, Reason: "pending budget slot without transaction_type"}
	}
	if lead.PendingSlot == domain.SlotPropertyType && !lead.HasSlot(domain.SlotPropertyCategory) {
		return &domain.ErrIntegrity{LeadID: lead.ID, Reason: "pending property_type slot without property_category"}
	}
	if lead.State == domain.StateValueProposition && !lead.HasQualifyingSlots() {
		return &domain.ErrIntegrity{LeadID: lead.ID, Reason: "entered VALUE_PROPOSITION without qualifying slots"}
	}
	if lead.State == domain.StateEngagement && !lead.HasValidatedPhone() {
		return &domain.ErrIntegrity{LeadID: lead.ID, Reason: "entered ENGAGEMENT without a validated phone"}
	}
	return nil
}

// recoverFromIntegrityViolation re-asks the missing upstream slot instead
// of fabricating a default, per §4.1.
func recoverFromIntegrityViolation(lead *domain.Lead, cause error) transport.BotResponse {
	switch {
	case lead.PendingSlot == domain.SlotBudget && !lead.HasSlot(domain.SlotTransactionType):
		lead.PendingSlot = domain.SlotTransactionType
		return promptTransactionType(lead.Language)
	case lead.PendingSlot == domain.SlotPropertyType && !lead.HasSlot(domain.SlotPropertyCategory):
		lead.PendingSlot = domain.SlotPropertyCategory
		return promptPropertyCategory(lead.Language)
	case lead.State == domain.StateValueProposition:
		lead.State = domain.StateSlotFilling
		return promptNextSlot(lead)
	default:
		lead.State = domain.StateCaptureContact
		return promptContact(lead.Language)
	}
}

func budgetBandFor(lead *domain.Lead) ([]budget.Band, bool) {
	if !lead.HasSlot(domain.SlotTransactionType) {
		return nil, false
	}
	return budget.BandsFor(lead.TransactionType), true
}
