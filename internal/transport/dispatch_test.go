package transport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_UnconfiguredChannelsError(t *testing.T) {
	d := NewDispatcher(nil, nil)

	err := d.Send(context.Background(), "telegram", "chat-1", BotResponse{Text: "hi"})
	assert.Error(t, err)

	err = d.Send(context.Background(), "gateway", "whatsapp:+1", BotResponse{Text: "hi"})
	assert.Error(t, err)

	err = d.Send(context.Background(), "sms", "+1", BotResponse{Text: "hi"})
	assert.Error(t, err)
}

func TestDispatcher_UnknownChannelErrors(t *testing.T) {
	d := NewDispatcher(nil, nil)
	err := d.Send(context.Background(), "carrier_pigeon", "x", BotResponse{})
	assert.Error(t, err)
}
