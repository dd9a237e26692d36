// Package transport normalises heterogeneous inbound webhook shapes into
// a canonical Message and renders a canonical BotResponse back out to
// each channel (§6).
package transport

// Message is the canonical inbound shape every transport adapter
// produces, regardless of the wire format it arrived in.
type Message struct {
	TenantID        string
	Channel         string // "telegram" | "gateway"
	ChannelIdentity string
	Text            string
	Button          string // callback/button payload, empty if none
	ContactPhone    string // present when the channel shared a native contact card
	ContactName     string
	MediaRefs       []string
	VoiceRef        string // non-empty when a voice message was attached
	LocaleHint      string
	Vertical        string // set by adapters that carry it directly (e.g. gateway's X-Vertical-Mode)
}

// Button is one outbound quick-reply option.
type Button struct {
	Label   string
	Payload string
}

// AdminAlert is an out-of-band message destined for the tenant's admin
// channel rather than the conversing user (the Hot-Lead alert, §4.9).
type AdminAlert struct {
	ChatID string
	Text   string
}

// BotResponse is the neutral outbound record every state-machine handler
// returns; adapters render it into channel-specific wire formats (§6).
type BotResponse struct {
	Text           string
	Buttons        []Button
	RequestContact bool
	DocumentRef    string // set when a generated document (e.g. ROI PDF) should be attached
	AdminAlert     *AdminAlert
	Metadata       map[string]interface{}
}
