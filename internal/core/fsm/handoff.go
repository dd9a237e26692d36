package fsm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/repository"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/transport"
)

// maxOfferedSlots is the "3-4 available slots" §4.1's HANDOFF_SCHEDULE
// row names; 4 is the upper bound.
const maxOfferedSlots = 4

// enterHandoffSchedule presents up to four open viewing slots the instant
// scheduling intent is detected (§4.1 HANDOFF_SCHEDULE row).
func enterHandoffSchedule(ctx context.Context, deps *Deps, lead *domain.Lead) (transport.BotResponse, error) {
	slots, err := deps.Repos.Schedule().AvailableSlots(ctx, lead.TenantID, maxOfferedSlots)
	if err != nil {
		return transport.BotResponse{}, err
	}
	if len(slots) == 0 {
		return transport.BotResponse{Text: "No viewing slots are open right now — our team will reach out directly."}, nil
	}

	buttons := make([]transport.Button, 0, len(slots))
	for _, s := range slots {
		buttons = append(buttons, transport.Button{
			Label:   fmt.Sprintf("%s %s-%s", dayName(s.DayOfWeek), s.StartTime, s.EndTime),
			Payload: "slot_" + s.ID,
		})
	}
	return transport.BotResponse{Text: text(lead.Language, "handoff_offer"), Buttons: buttons}, nil
}

// handleHandoffSchedule books the picked slot atomically and creates the
// appointment (§3 invariant 8); a lost race is surfaced as a fresh offer
// rather than an error message.
func handleHandoffSchedule(ctx context.Context, deps *Deps, lead *domain.Lead, msg transport.Message) (transport.BotResponse, error) {
	slotID := strings.TrimPrefix(msg.Button, "slot_")
	if slotID == "" || slotID == msg.Button {
		return enterHandoffSchedule(ctx, deps, lead)
	}

	appointment := &domain.Appointment{
		TenantID: lead.TenantID,
		LeadID:   lead.ID,
		SlotID:   slotID,
		Status:   domain.AppointmentPending,
	}
	err := deps.Repos.WithTx(ctx, func(ctx context.Context, repos repository.RepositoryManager) error {
		if err := repos.Schedule().Book(ctx, lead.TenantID, slotID); err != nil {
			return err
		}
		_, err := repos.Appointment().Create(ctx, appointment)
		return err
	})
	if err != nil {
		var conflict *domain.ErrConflict
		if errors.As(err, &conflict) {
			refreshed, rerr := enterHandoffSchedule(ctx, deps, lead)
			if rerr != nil {
				return transport.BotResponse{}, rerr
			}
			refreshed.Text = "That slot was just taken — here's what's still open:\n" + refreshed.Text
			return refreshed, nil
		}
		return transport.BotResponse{}, err
	}

	lead.Status = domain.StatusViewingScheduled
	lead.State = domain.StateCompleted
	return transport.BotResponse{Text: "You're booked in — we'll send a reminder closer to the time."}, nil
}

func dayName(d int) string {
	names := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	if d < 0 || d >= len(names) {
		return "Day"
	}
	return names[d]
}
