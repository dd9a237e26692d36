package fsm

import (
	"context"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/transport"
)

// handleLanguageSelected waits for one of the three goal buttons (plus
// the rent affordance) and, once picked, moves straight to requesting
// contact details — WARMUP's entry action — since there is nothing else
// for WARMUP to wait on (§4.1 LANGUAGE_SELECTED / WARMUP rows).
func handleLanguageSelected(ctx context.Context, deps *Deps, lead *domain.Lead, msg transport.Message) (transport.BotResponse, error) {
	goal, ok := goalFromButton(msg.Button)
	if !ok {
		return promptGoal(lead.Language), nil
	}

	lead.Goal = goal
	lead.FillSlot(domain.SlotGoal)
	lead.TransactionType = transactionTypeForGoal(goal)
	lead.FillSlot(domain.SlotTransactionType)

	lead.State = domain.StateCaptureContact
	return promptContact(lead.Language), nil
}

func goalFromButton(payload string) (domain.Goal, bool) {
	switch payload {
	case "goal_investment":
		return domain.GoalInvestment, true
	case "goal_living":
		return domain.GoalLiving, true
	case "goal_residency":
		return domain.GoalResidency, true
	case "goal_rent":
		return domain.GoalRent, true
	default:
		return "", false
	}
}

// transactionTypeForGoal derives transaction_type from goal: renting
// always implies the rent band table; every other goal implies buy
// unless overridden later during slot filling (§4.1 budget ranges note).
func transactionTypeForGoal(goal domain.Goal) domain.TransactionType {
	if goal == domain.GoalRent {
		return domain.TransactionRent
	}
	return domain.TransactionBuy
}
