package transport

import (
	"context"
	"fmt"
)

// Dispatcher routes an outbound BotResponse to the right channel client by
// a lead's channel_type, so callers outside the inbound-webhook path
// (workers sending proactive messages) don't need to know which adapter
// backs which lead.
type Dispatcher struct {
	telegram *TelegramClient
	gateway  *GatewaySender
}

// NewDispatcher builds a Dispatcher. Either client may be nil when that
// channel isn't configured for this deployment.
func NewDispatcher(telegram *TelegramClient, gateway *GatewaySender) *Dispatcher {
	return &Dispatcher{telegram: telegram, gateway: gateway}
}

// Send renders resp onto channelType's client for channelIdentity.
func (d *Dispatcher) Send(ctx context.Context, channelType, channelIdentity string, resp BotResponse) error {
	switch channelType {
	case "telegram":
		if d.telegram == nil {
			return fmt.Errorf("telegram channel not configured")
		}
		return d.telegram.Send(ctx, channelIdentity, resp)
	case "gateway":
		if d.gateway == nil {
			return fmt.Errorf("gateway channel not configured")
		}
		return d.gateway.Send(ctx, channelIdentity, resp)
	case "sms":
		if d.gateway == nil {
			return fmt.Errorf("sms channel not configured")
		}
		return d.gateway.SendSMS(ctx, channelIdentity, resp)
	default:
		return fmt.Errorf("unknown channel type %q", channelType)
	}
}
