package fsm

import (
	"testing"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotLeadAndRestoreLead_RollsBackMutation(t *testing.T) {
	lead := &domain.Lead{
		ID:          "lead-1",
		State:       domain.StateSlotFilling,
		FilledSlots: domain.StringSet{domain.SlotGoal},
		BudgetMin:   100,
	}

	snapshot := snapshotLead(lead)
	require.NotNil(t, snapshot)

	lead.State = domain.StateValueProposition
	lead.FilledSlots = lead.FilledSlots.Add(domain.SlotBudget)
	lead.BudgetMin = 999

	restoreLead(lead, snapshot)

	assert.Equal(t, domain.StateSlotFilling, lead.State)
	assert.Equal(t, int64(100), lead.BudgetMin)
	assert.True(t, lead.HasSlot(domain.SlotGoal))
	assert.False(t, lead.HasSlot(domain.SlotBudget))
}

func TestRestoreLead_NilSnapshotIsNoOp(t *testing.T) {
	lead := &domain.Lead{ID: "lead-1", State: domain.StateWarmup}
	restoreLead(lead, nil)
	assert.Equal(t, domain.StateWarmup, lead.State)
}

func TestAssertStateIntegrity_PendingBudgetWithoutTransactionType(t *testing.T) {
	lead := &domain.Lead{PendingSlot: domain.SlotBudget}
	err := assertStateIntegrity(lead)
	require.Error(t, err)
	var integrityErr *domain.ErrIntegrity
	assert.ErrorAs(t, err, &integrityErr)
}

func TestAssertStateIntegrity_PendingPropertyTypeWithoutCategory(t *testing.T) {
	lead := &domain.Lead{PendingSlot: domain.SlotPropertyType}
	err := assertStateIntegrity(lead)
	require.Error(t, err)
}

func TestAssertStateIntegrity_ValuePropositionWithoutQualifyingSlots(t *testing.T) {
	lead := &domain.Lead{State: domain.StateValueProposition}
	err := assertStateIntegrity(lead)
	require.Error(t, err)
}

func TestAssertStateIntegrity_EngagementWithoutValidatedPhone(t *testing.T) {
	lead := &domain.Lead{State: domain.StateEngagement}
	err := assertStateIntegrity(lead)
	require.Error(t, err)
}

func TestAssertStateIntegrity_ValidLeadPassesCleanly(t *testing.T) {
	lead := &domain.Lead{
		State: domain.StateValueProposition,
		FilledSlots: domain.StringSet{
			domain.SlotGoal, domain.SlotTransactionType,
			domain.SlotPropertyCategory, domain.SlotBudget,
		},
	}
	assert.NoError(t, assertStateIntegrity(lead))
}

func TestRecoverFromIntegrityViolation_RevertsToMissingSlot(t *testing.T) {
	lead := &domain.Lead{PendingSlot: domain.SlotBudget, Language: domain.LanguageEN}
	resp := recoverFromIntegrityViolation(lead, &domain.ErrIntegrity{Reason: "x"})
	assert.Equal(t, domain.SlotTransactionType, lead.PendingSlot)
	assert.NotEmpty(t, resp.Text)
}

func TestRecoverFromIntegrityViolation_ValuePropositionFallsBackToSlotFilling(t *testing.T) {
	lead := &domain.Lead{State: domain.StateValueProposition, Language: domain.LanguageEN}
	recoverFromIntegrityViolation(lead, &domain.ErrIntegrity{Reason: "x"})
	assert.Equal(t, domain.StateSlotFilling, lead.State)
}

func TestRecoverFromIntegrityViolation_DefaultFallsBackToCaptureContact(t *testing.T) {
	lead := &domain.Lead{State: domain.StateHardGate, Language: domain.LanguageEN}
	recoverFromIntegrityViolation(lead, &domain.ErrIntegrity{Reason: "x"})
	assert.Equal(t, domain.StateCaptureContact, lead.State)
}
