package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// TelegramInbound is the Telegram-style webhook payload shape §6 names:
// chat_id, text, optional voice.file_id, optional callback_data, optional
// contact.phone_number.
type TelegramInbound struct {
	ChatID   string `json:"chat_id"`
	Text     string `json:"text"`
	Language string `json:"language_code,omitempty"`
	Voice    *struct {
		FileID string `json:"file_id"`
	} `json:"voice,omitempty"`
	CallbackData string `json:"callback_data,omitempty"`
	Contact      *struct {
		PhoneNumber string `json:"phone_number"`
		FirstName   string `json:"first_name"`
	} `json:"contact,omitempty"`
}

// NormalizeTelegram converts a TelegramInbound into the canonical Message
// (§6), leaving TenantID unset — the handler layer fills it in once the
// Channel Router has resolved this channel_identity to a tenant.
func NormalizeTelegram(in TelegramInbound) Message {
	msg := Message{
		Channel:         "telegram",
		ChannelIdentity: in.ChatID,
		Text:            in.Text,
		Button:          in.CallbackData,
		LocaleHint:      in.Language,
	}
	if in.Voice != nil {
		msg.VoiceRef = in.Voice.FileID
	}
	if in.Contact != nil {
		msg.ContactPhone = in.Contact.PhoneNumber
		msg.ContactName = in.Contact.FirstName
	}
	return msg
}

// TelegramClient renders a BotResponse to the Telegram Bot API.
type TelegramClient struct {
	httpClient *http.Client
	baseURL    string // e.g. https://api.telegram.org/bot<token>
}

// NewTelegramClient builds a client bound to a single bot token's base URL.
func NewTelegramClient(baseURL string) *TelegramClient {
	return &TelegramClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
	}
}

type telegramInlineButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type telegramSendMessageRequest struct {
	ChatID      string `json:"chat_id"`
	Text        string `json:"text"`
	ReplyMarkup *struct {
		InlineKeyboard [][]telegramInlineButton `json:"inline_keyboard"`
	} `json:"reply_markup,omitempty"`
}

// Send renders resp as a Telegram sendMessage call, encoding Buttons as a
// single-row inline keyboard.
func (c *TelegramClient) Send(ctx context.Context, chatID string, resp BotResponse) error {
	req := telegramSendMessageRequest{ChatID: chatID, Text: resp.Text}
	if len(resp.Buttons) > 0 {
		row := make([]telegramInlineButton, 0, len(resp.Buttons))
		for _, b := range resp.Buttons {
			row = append(row, telegramInlineButton{Text: b.Label, CallbackData: b.Payload})
		}
		req.ReplyMarkup = &struct {
			InlineKeyboard [][]telegramInlineButton `json:"inline_keyboard"`
		}{InlineKeyboard: [][]telegramInlineButton{row}}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sendMessage", bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= 300 {
		return fmt.Errorf("telegram sendMessage failed: status %d", httpResp.StatusCode)
	}
	return nil
}
