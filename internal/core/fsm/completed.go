package fsm

import (
	"context"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/transport"
)

// handleCompleted is terminal: no automated messages advance the
// dialogue further. A fresh "/start" is handled upstream by the handler
// layer (it calls lead.Reset() before dispatch); anything else just gets
// an acknowledgement. Workers may still re-engage a completed lead
// out-of-band (§4.1 COMPLETED row).
func handleCompleted(ctx context.Context, deps *Deps, lead *domain.Lead, msg transport.Message) (transport.BotResponse, error) {
	return promptCompleted(lead.Language), nil
}
