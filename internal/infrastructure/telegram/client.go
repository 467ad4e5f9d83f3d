package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/flowcup/registration-api/internal/config"
	"github.com/flowcup/registration-api/internal/domain"
)

// Client talks to the Telegram Bot API over plain HTTP. It is a one-way
// notification channel toward a single admin chat: messages out, nothing
// written back into the stores. The inline approve/reject buttons it
// attaches are advisory; recording a decision happens through /admin/api.
type Client struct {
	httpClient *http.Client
	baseURL    string
	chatID     string
}

func NewClient(cfg *config.Config) *Client {
	base := cfg.TelegramAPIBaseURL
	if base == "" {
		base = "https://api.telegram.org/bot" + cfg.TelegramBotToken
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    base,
		chatID:     cfg.TelegramChatID,
	}
}

type inlineButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type inlineKeyboard struct {
	InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
}

type sendMessageRequest struct {
	ChatID      string          `json:"chat_id"`
	Text        string          `json:"text"`
	ParseMode   string          `json:"parse_mode,omitempty"`
	ReplyMarkup *inlineKeyboard `json:"reply_markup,omitempty"`
}

// Alert sends a plain text message to the admin chat.
func (c *Client) Alert(ctx context.Context, text string) error {
	return c.call(ctx, "sendMessage", sendMessageRequest{
		ChatID: c.chatID,
		Text:   text,
	})
}

// RegistrationSubmitted announces a new application with approve/reject
// buttons. The password is deliberately left out of the message.
func (c *Client) RegistrationSubmitted(ctx context.Context, reg *domain.Registration) error {
	text := fmt.Sprintf(
		"NEW REGISTRATION\nID: <code>%s</code>\nAccess code: <code>%s</code>\nIn-game ID: <code>%s</code>\nEmail: <code>%s</code>\nID verified: %t\nEmail verified: %t\n\nRecord your decision in the admin panel.",
		reg.ID, reg.AccessCode, reg.IngameID, reg.Email, reg.IDVerified, reg.EmailVerified,
	)
	return c.call(ctx, "sendMessage", sendMessageRequest{
		ChatID:    c.chatID,
		Text:      text,
		ParseMode: "HTML",
		ReplyMarkup: &inlineKeyboard{InlineKeyboard: [][]inlineButton{{
			{Text: "Approve", CallbackData: "approve:" + reg.ID},
			{Text: "Reject", CallbackData: "reject:" + reg.ID},
		}}},
	})
}

// AnswerCallback acknowledges a pressed inline button.
func (c *Client) AnswerCallback(ctx context.Context, callbackID, text string) error {
	return c.call(ctx, "answerCallbackQuery", map[string]string{
		"callback_query_id": callbackID,
		"text":              text,
	})
}

func (c *Client) call(ctx context.Context, method string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", method, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram %s: status %d", method, resp.StatusCode)
	}
	return nil
}
