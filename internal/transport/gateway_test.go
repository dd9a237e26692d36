package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeGateway_Basic(t *testing.T) {
	msg := NormalizeGateway("tenant-1", GatewayInbound{From: "whatsapp:+971500000000", Body: "hi"})
	assert.Equal(t, "tenant-1", msg.TenantID)
	assert.Equal(t, "gateway", msg.Channel)
	assert.Equal(t, "whatsapp:+971500000000", msg.ChannelIdentity)
	assert.Equal(t, "hi", msg.Text)
	assert.Empty(t, msg.MediaRefs)
}

func TestNormalizeGateway_Media(t *testing.T) {
	msg := NormalizeGateway("tenant-1", GatewayInbound{From: "whatsapp:+1", Body: "", MediaURL: "https://example.com/a.jpg"})
	assert.Equal(t, []string{"https://example.com/a.jpg"}, msg.MediaRefs)
}

func TestRenderGatewayBody_NoButtons(t *testing.T) {
	body := renderGatewayBody(BotResponse{Text: "plain text"})
	assert.Equal(t, "plain text", body)
}

func TestRenderGatewayBody_Buttons(t *testing.T) {
	body := renderGatewayBody(BotResponse{
		Text: "Pick one",
		Buttons: []Button{
			{Label: "Buy", Payload: "buy"},
			{Label: "Rent", Payload: "rent"},
		},
	})
	assert.Contains(t, body, "Pick one")
	assert.Contains(t, body, "1. Buy")
	assert.Contains(t, body, "2. Rent")
}
