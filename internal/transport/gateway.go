package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// GatewayInbound is the WhatsApp-gateway webhook payload shape §6 names:
// the sender identity in "from", plus X-Tenant-ID/X-Vertical-Mode headers
// carried alongside the body rather than inside it.
type GatewayInbound struct {
	From       string `json:"from"`
	Body       string `json:"body"`
	ButtonText string `json:"button_text,omitempty"`
	MediaURL   string `json:"media_url,omitempty"`
}

// NormalizeGateway converts a GatewayInbound plus its sidecar headers into
// the canonical Message. tenantID comes straight from X-Tenant-ID, since
// the gateway deployment model pins one tenant per webhook path rather
// than relying on the Channel Router's deep-link/session resolution —
// vertical is still passed through as LocaleHint-adjacent metadata via
// the caller's own routing, not reparsed here.
func NormalizeGateway(tenantID string, in GatewayInbound) Message {
	msg := Message{
		TenantID:        tenantID,
		Channel:         "gateway",
		ChannelIdentity: in.From,
		Text:            in.Body,
		Button:          in.ButtonText,
	}
	if in.MediaURL != "" {
		msg.MediaRefs = []string{in.MediaURL}
	}
	return msg
}

// GatewaySender renders a BotResponse onto the WhatsApp-gateway channel.
// A tenant configured with Twilio credentials sends through twilio-go's
// WhatsApp messaging API; otherwise the adapter posts to a bespoke
// gateway HTTP endpoint.
type GatewaySender struct {
	twilioClient   *twilio.RestClient
	twilioFrom     string // e.g. "whatsapp:+14155238886"
	gatewayBaseURL string
	httpClient     *http.Client
}

// NewTwilioGatewaySender builds a sender backed by Twilio's WhatsApp API.
func NewTwilioGatewaySender(accountSID, authToken, fromNumber string) *GatewaySender {
	return &GatewaySender{
		twilioClient: twilio.NewRestClientWithParams(twilio.ClientParams{Username: accountSID, Password: authToken}),
		twilioFrom:   fromNumber,
	}
}

// NewBespokeGatewaySender builds a sender that posts plain JSON to a
// tenant-operated gateway endpoint instead of Twilio.
func NewBespokeGatewaySender(baseURL string) *GatewaySender {
	return &GatewaySender{
		gatewayBaseURL: baseURL,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Send renders resp to recipient, formatting Buttons as a numbered list
// appended to the message body since WhatsApp's free-form text channel
// has no native inline-keyboard equivalent for gateway-relayed messages.
func (s *GatewaySender) Send(ctx context.Context, recipient string, resp BotResponse) error {
	body := renderGatewayBody(resp)
	if s.twilioClient != nil {
		return s.sendViaTwilio(recipient, body)
	}
	return s.sendViaBespokeGateway(ctx, recipient, body)
}

func renderGatewayBody(resp BotResponse) string {
	if len(resp.Buttons) == 0 {
		return resp.Text
	}
	var b strings.Builder
	b.WriteString(resp.Text)
	b.WriteString("\n\n")
	for i, button := range resp.Buttons {
		fmt.Fprintf(&b, "%d. %s\n", i+1, button.Label)
	}
	return b.String()
}

func (s *GatewaySender) sendViaTwilio(recipient, body string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo("whatsapp:" + strings.TrimPrefix(recipient, "whatsapp:"))
	params.SetFrom(s.twilioFrom)
	params.SetBody(body)

	_, err := s.twilioClient.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio whatsapp send failed: %w", err)
	}
	return nil
}

// SendSMS delivers resp as a plain SMS, the admin-alert fallback channel
// for tenants who haven't wired a Telegram admin channel (§4.9's Hot-Lead
// alert, §6 admin_channel_type = "sms").
func (s *GatewaySender) SendSMS(ctx context.Context, toNumber string, resp BotResponse) error {
	if s.twilioClient == nil {
		return fmt.Errorf("sms admin alerts require a twilio-backed gateway sender")
	}
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(s.twilioFrom)
	params.SetBody(renderGatewayBody(resp))

	_, err := s.twilioClient.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio sms send failed: %w", err)
	}
	return nil
}

type bespokeGatewayRequest struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

func (s *GatewaySender) sendViaBespokeGateway(ctx context.Context, recipient, body string) error {
	payload, err := json.Marshal(bespokeGatewayRequest{To: recipient, Text: body})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.gatewayBaseURL+"/send", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= 300 {
		return fmt.Errorf("gateway send failed: status %d", httpResp.StatusCode)
	}
	return nil
}
