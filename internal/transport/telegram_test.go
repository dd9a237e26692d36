package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTelegram_PlainText(t *testing.T) {
	msg := NormalizeTelegram(TelegramInbound{ChatID: "chat-1", Text: "hello"})
	assert.Equal(t, "telegram", msg.Channel)
	assert.Equal(t, "chat-1", msg.ChannelIdentity)
	assert.Equal(t, "hello", msg.Text)
	assert.Empty(t, msg.VoiceRef)
	assert.Empty(t, msg.ContactPhone)
}

func TestNormalizeTelegram_CallbackData(t *testing.T) {
	msg := NormalizeTelegram(TelegramInbound{ChatID: "chat-1", CallbackData: "lang_en"})
	assert.Equal(t, "lang_en", msg.Button)
}

func TestNormalizeTelegram_Voice(t *testing.T) {
	in := TelegramInbound{ChatID: "chat-1"}
	in.Voice = &struct {
		FileID string `json:"file_id"`
	}{FileID: "file-123"}
	msg := NormalizeTelegram(in)
	assert.Equal(t, "file-123", msg.VoiceRef)
}

func TestNormalizeTelegram_Contact(t *testing.T) {
	in := TelegramInbound{ChatID: "chat-1"}
	in.Contact = &struct {
		PhoneNumber string `json:"phone_number"`
		FirstName   string `json:"first_name"`
	}{PhoneNumber: "+971500000000", FirstName: "Sam"}
	msg := NormalizeTelegram(in)
	assert.Equal(t, "+971500000000", msg.ContactPhone)
	assert.Equal(t, "Sam", msg.ContactName)
}
