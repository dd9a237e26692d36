package fsm

import (
	"context"
	"testing"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/core/oracle"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOracleClient struct {
	resp *oracle.ExtractResponse
	err  error
}

func (f *fakeOracleClient) Extract(ctx context.Context, req oracle.ExtractRequest) (*oracle.ExtractResponse, error) {
	return f.resp, f.err
}

func TestApplySlotValue_BudgetParsesFreeText(t *testing.T) {
	lead := &domain.Lead{TransactionType: domain.TransactionBuy}
	ok := applySlotValue(lead, domain.SlotBudget, "2M")
	assert.True(t, ok)
	assert.Equal(t, int64(750_000), lead.BudgetMin)
	assert.Equal(t, int64(0), lead.BudgetMax)
	assert.True(t, lead.HasSlot(domain.SlotBudget))
}

func TestApplySlotValue_UnparseableBudgetLeavesSlotUnfilled(t *testing.T) {
	lead := &domain.Lead{TransactionType: domain.TransactionBuy}
	ok := applySlotValue(lead, domain.SlotBudget, "not a number")
	assert.False(t, ok)
	assert.Equal(t, int64(0), lead.BudgetMin)
	assert.Equal(t, int64(0), lead.BudgetMax)
	assert.False(t, lead.HasSlot(domain.SlotBudget))
}

func TestHandleSlotFreeText_OracleBudgetExtractionFillsBudget(t *testing.T) {
	lead := &domain.Lead{
		PendingSlot:     domain.SlotBudget,
		TransactionType: domain.TransactionBuy,
		Language:        domain.LanguageEN,
	}
	deps := &Deps{
		Oracle: &fakeOracleClient{resp: &oracle.ExtractResponse{
			Language:    "EN",
			SlotsFilled: map[string]string{domain.SlotBudget: "300k"},
		}},
	}

	_, err := handleSlotFreeText(context.Background(), deps, lead, transport.Message{Text: "somewhere in that range"})
	require.NoError(t, err)

	assert.Equal(t, int64(300_000), lead.BudgetMin)
	assert.Equal(t, int64(500_000), lead.BudgetMax)
	assert.True(t, lead.HasSlot(domain.SlotBudget))
}

func TestHandleSlotFreeText_OracleUnparseableBudgetDoesNotFillSlot(t *testing.T) {
	lead := &domain.Lead{
		PendingSlot:     domain.SlotBudget,
		TransactionType: domain.TransactionBuy,
		Language:        domain.LanguageEN,
	}
	deps := &Deps{
		Oracle: &fakeOracleClient{resp: &oracle.ExtractResponse{
			Language:    "EN",
			SlotsFilled: map[string]string{domain.SlotBudget: "lots of money"},
		}},
	}

	_, err := handleSlotFreeText(context.Background(), deps, lead, transport.Message{Text: "lots of money"})
	require.NoError(t, err)

	assert.Equal(t, int64(0), lead.BudgetMin)
	assert.False(t, lead.HasSlot(domain.SlotBudget))
}
